package types

import "errors"

var (
	ErrMissingConfigFile     = errors.New("no configuration file given. Use --config-file or run 'tco-compare init' first")
	ErrUnsupportedFileFormat = errors.New("unsupported configuration file format")
	ErrUnsupportedReportType = errors.New("unsupported report type")
	ErrConfigFileExists      = errors.New("configuration file already exists. Use --force to overwrite it")
)

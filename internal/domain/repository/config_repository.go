package repository

import (
	"github.com/diillson/tco-compare-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading and writing configuration files.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	WriteConfigFile(filePath string, config *types.Config) (string, error)
}

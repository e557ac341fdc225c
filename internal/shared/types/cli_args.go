package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile      string
	ProcessType     string
	ScrapPolicy     string
	Rates           map[string]float64
	Reference       string
	ReferenceAmount *float64
	Retention       *float64
	Title           string
	ReportName      string
	ReportType      []string
	Dir             string
	Schedule        bool
	Chart           bool
}

// InitArgs são os argumentos do subcomando init.
type InitArgs struct {
	Format string
	Output string
	Force  bool
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/diillson/tco-compare-go/internal/application/usecase"
	"github.com/diillson/tco-compare-go/internal/shared/types"
	"github.com/diillson/tco-compare-go/pkg/version"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd           *cobra.Command
	comparisonUseCase *usecase.ComparisonUseCase
	version           string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "tco-compare",
		Short:         "Process cost of ownership comparison",
		Long:          "Compares the annual cost of a manufacturing process before and after a change of fluid, tooling or maintenance practice.",
		Version:       formattedVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "tco-compare version: %s\n" .Version}}`)

	flags := rootCmd.Flags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("process-type", "P", "", "Override the process type: forming, subtractive, generic")
	flags.StringP("scrap-policy", "s", "", "Override the scrap policy: unit_cost or burden")
	flags.StringSliceP("rate", "R", nil, "Savings rate override as category=percent, e.g. --rate fluid=40,scrap=20")
	flags.String("reference", "", "ROI reference: fluid, fluid+additives, projected-fluid, current-total, custom")
	flags.Float64("reference-amount", 0, "Reference spend for --reference custom")
	flags.Float64("retention", 0, "Share of maintenance events kept after the change (0-1)")
	flags.StringP("title", "t", "", "Report title")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.Bool("schedule", false, "Display the maintenance interval timeline")
	flags.Bool("chart", false, "Display the cumulative monthly projection as bars")

	rootCmd.AddCommand(app.newInitCommand(), app.newDefaultsCommand())

	app.rootCmd = rootCmd
	return app
}

func (app *CLIApp) newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			force, _ := cmd.Flags().GetBool("force")
			_, err := app.comparisonUseCase.InitConfig(types.InitArgs{
				Format: format,
				Output: output,
				Force:  force,
			})
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "toml", "Configuration format: toml, yaml, json")
	cmd.Flags().StringP("output", "o", "", "Output path (default: tco.<format>)")
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}

func (app *CLIApp) newDefaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Show process variants and their default savings rates",
		Run: func(cmd *cobra.Command, args []string) {
			app.comparisonUseCase.ShowDefaults()
		},
	}
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct. Only flags
// the user actually set are copied, so file values survive otherwise.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()

	configFile, _ := flags.GetString("config-file")
	processType, _ := flags.GetString("process-type")
	scrapPolicy, _ := flags.GetString("scrap-policy")
	rateFlags, _ := flags.GetStringSlice("rate")
	reference, _ := flags.GetString("reference")
	title, _ := flags.GetString("title")
	reportName, _ := flags.GetString("report-name")
	dir, _ := flags.GetString("dir")
	schedule, _ := flags.GetBool("schedule")
	chart, _ := flags.GetBool("chart")

	rates, err := parseRateFlags(rateFlags)
	if err != nil {
		return nil, err
	}

	args := &types.CLIArgs{
		ConfigFile:  configFile,
		ProcessType: processType,
		ScrapPolicy: scrapPolicy,
		Rates:       rates,
		Reference:   reference,
		Title:       title,
		ReportName:  reportName,
		Schedule:    schedule,
		Chart:       chart,
	}

	if flags.Changed("reference-amount") {
		v, _ := flags.GetFloat64("reference-amount")
		args.ReferenceAmount = &v
	}
	if flags.Changed("retention") {
		v, _ := flags.GetFloat64("retention")
		args.Retention = &v
	}
	if flags.Changed("report-type") {
		args.ReportType, _ = flags.GetStringSlice("report-type")
	}

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

// parseRateFlags converte "categoria=percentual" em um mapa. O sufixo % é opcional.
func parseRateFlags(values []string) (map[string]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	rates := make(map[string]float64, len(values))
	for _, raw := range values {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSuffix(strings.TrimSpace(value), "%")
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("invalid --rate %q: expected category=percent", raw)
		}
		pct, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --rate %q: %w", raw, err)
		}
		if _, dup := rates[key]; dup {
			return nil, fmt.Errorf("invalid --rate %q: category %s given twice", raw, key)
		}
		rates[key] = pct
	}
	return rates, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.comparisonUseCase.RunComparison(ctx, cliArgs)
}

// SetComparisonUseCase sets the comparison use case for the CLI app.
func (app *CLIApp) SetComparisonUseCase(useCase *usecase.ComparisonUseCase) {
	app.comparisonUseCase = useCase
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/tco-compare-go/internal/domain/engine"
	"github.com/diillson/tco-compare-go/internal/domain/entity"
	"github.com/diillson/tco-compare-go/internal/domain/projection"
	"github.com/diillson/tco-compare-go/internal/domain/repository"
	"github.com/diillson/tco-compare-go/internal/shared/types"
	"github.com/diillson/tco-compare-go/pkg/console"
	"github.com/diillson/tco-compare-go/pkg/format"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// ComparisonUseCase runs a cost of ownership comparison and presents it.
type ComparisonUseCase struct {
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	now        func() time.Time
}

// NewComparisonUseCase creates a new comparison use case.
func NewComparisonUseCase(
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *ComparisonUseCase {
	return &ComparisonUseCase{
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
		now:        time.Now,
	}
}

// LoadSettings lê o arquivo de configuração e aplica as flags por cima.
func (uc *ComparisonUseCase) LoadSettings(args *types.CLIArgs) (*types.Config, error) {
	cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return nil, err
	}

	if args.ProcessType != "" {
		cfg.Process.ProcessType = args.ProcessType
		if cfg.Projected != nil {
			cfg.Projected.ProcessType = args.ProcessType
		}
	}
	if args.ScrapPolicy != "" {
		cfg.ScrapPolicy = args.ScrapPolicy
	}
	if len(args.Rates) > 0 {
		merged := make(map[string]float64, len(cfg.Rates)+len(args.Rates))
		for k, v := range cfg.Rates {
			merged[k] = v
		}
		for k, v := range args.Rates {
			merged[k] = v
		}
		cfg.Rates = merged
	}
	if args.Reference != "" {
		cfg.Reference = args.Reference
	}
	if args.ReferenceAmount != nil {
		cfg.ReferenceAmount = *args.ReferenceAmount
	}
	if args.Retention != nil {
		cfg.Retention = args.Retention
	}
	if args.Title != "" {
		cfg.Title = args.Title
	}
	if args.ReportName != "" {
		cfg.ReportName = args.ReportName
	}
	if len(args.ReportType) > 0 {
		cfg.ReportType = args.ReportType
	}
	if args.Dir != "" {
		cfg.Dir = args.Dir
	}

	return cfg, nil
}

// Compare builds the configurations described by cfg and runs the engine.
// A projected section switches to scenario mode.
func (uc *ComparisonUseCase) Compare(ctx context.Context, cfg *types.Config) (entity.Report, error) {
	if err := ctx.Err(); err != nil {
		return entity.Report{}, err
	}

	current, err := entity.NewProcessConfiguration(cfg.Process)
	if err != nil {
		return entity.Report{}, fmt.Errorf("invalid process configuration: %w", err)
	}

	req, err := buildRequest(cfg, current.Variant)
	if err != nil {
		return entity.Report{}, err
	}

	var comparison entity.Comparison
	if cfg.Projected != nil {
		projected, err := entity.NewProcessConfiguration(*cfg.Projected)
		if err != nil {
			return entity.Report{}, fmt.Errorf("invalid projected configuration: %w", err)
		}
		comparison, err = engine.CompareScenarios(current, projected, req)
		if err != nil {
			return entity.Report{}, err
		}
	} else {
		comparison, err = engine.Compute(current, req)
		if err != nil {
			return entity.Report{}, err
		}
	}

	return entity.NewReport(cfg.Title, comparison, uc.now()), nil
}

func buildRequest(cfg *types.Config, variant entity.ProcessVariant) (engine.Request, error) {
	var req engine.Request

	if cfg.Projected == nil {
		rates, err := variant.DefaultRates().WithOverrides(cfg.Rates)
		if err != nil {
			return req, fmt.Errorf("invalid savings rates: %w", err)
		}
		req.Rates = rates
	}

	if strings.TrimSpace(cfg.ScrapPolicy) != "" {
		p, err := entity.ParseScrapPolicy(cfg.ScrapPolicy)
		if err != nil {
			return req, err
		}
		req.ScrapPolicy = p
	}

	ref, err := entity.NewReference(cfg.Reference, cfg.ReferenceAmount)
	if err != nil {
		return req, err
	}
	req.Reference = ref

	if cfg.Retention != nil {
		r, err := entity.NewRetention(*cfg.Retention)
		if err != nil {
			return req, err
		}
		req.Retention = &r
	}
	return req, nil
}

// RunComparison é o fluxo principal do comando raiz.
func (uc *ComparisonUseCase) RunComparison(ctx context.Context, args *types.CLIArgs) error {
	cfg, err := uc.LoadSettings(args)
	if err != nil {
		return err
	}
	if cfg.Projected != nil && len(cfg.Rates) > 0 {
		uc.console.LogWarning("Savings rates are ignored when a projected scenario is configured")
	}

	status := uc.console.Status("Computing cost of ownership...")
	report, err := uc.Compare(ctx, cfg)
	status.Stop()
	if err != nil {
		uc.logDomainError(err)
		return err
	}

	uc.displayReport(report, args)

	if cfg.ReportName != "" && len(cfg.ReportType) > 0 {
		uc.exportReport(ctx, report, cfg)
	}
	return nil
}

// logDomainError traduz o tipo do erro de domínio para uma mensagem de console.
func (uc *ComparisonUseCase) logDomainError(err error) {
	switch {
	case errors.Is(err, entity.ErrConfigurationMismatch):
		uc.console.LogError("Configuration mismatch: %s", err)
	case errors.Is(err, entity.ErrInvalidInput):
		uc.console.LogError("Invalid input: %s", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		uc.console.LogWarning("Comparison cancelled: %s", err)
	default:
		uc.console.LogError("Comparison failed: %s", err)
	}
}

func (uc *ComparisonUseCase) displayReport(report entity.Report, args *types.CLIArgs) {
	c := report.Comparison

	uc.console.DisplayPanel(report.Title, fmt.Sprintf(
		"Process: %s\nScrap policy: %s\nMode: %s\nRun: %s",
		c.ProcessType, c.ScrapPolicy, c.Mode, report.ID))

	table := uc.console.CreateTable()
	table.AddColumn("Category")
	table.AddColumn("Current")
	table.AddColumn("Projected")
	table.AddColumn("Savings")
	table.AddColumn("Reduction")
	for _, cat := range entity.Categories() {
		if !c.Current.Has(cat) && !c.Projected.Has(cat) {
			continue
		}
		table.AddRow(
			cat.Label(),
			format.Money(c.Current.Amount(cat)),
			format.Money(c.Projected.Amount(cat)),
			colorSavings(c.Savings.Amount(cat)),
			ratioText(c.Reductions[cat]),
		)
	}
	table.AddRow(
		pterm.Bold.Sprint("Total"),
		pterm.Bold.Sprint(format.Money(c.Current.Total)),
		pterm.Bold.Sprint(format.Money(c.Projected.Total)),
		colorSavings(c.Savings.Total),
		"",
	)
	uc.console.Print(table.Render())

	waterfall := uc.console.CreateTable()
	waterfall.AddColumn("Step")
	waterfall.AddColumn("Change")
	waterfall.AddColumn("Running Total")
	waterfall.AddRow("Current Total", "", format.Money(c.Current.Total))
	for _, step := range c.Waterfall {
		waterfall.AddRow(step.Label, format.SignedMoney(step.Change), format.Money(step.RunningTotal))
	}
	waterfall.AddRow("Projected Total", "", format.Money(c.Projected.Total))
	uc.console.Print(waterfall.Render())

	if c.ROI.Defined {
		uc.console.LogInfo("ROI: %s of %s reference spend (%s)",
			format.Percent(c.ROI.Value), c.Reference.Selector, format.Money(c.Reference.Amount))
	} else {
		uc.console.LogWarning("ROI is undefined: %s", c.ROI.Reason)
	}
	if c.Savings.Total.IsNegative() {
		uc.console.LogWarning("The projected configuration costs %s more per year", format.Money(c.Savings.Total.Neg()))
	} else {
		uc.console.LogSuccess("Annual savings: %s (%s per month)",
			format.Money(c.Savings.Total), format.Money(projection.MonthlyRate(c.Savings.Total)))
	}

	if args.Chart {
		uc.console.DisplayCumulativeBars(monthlySeries(c.Projection.Months, c.Projection.Current),
			monthlySeries(c.Projection.Months, c.Projection.Projected))
	}
	if args.Schedule {
		uc.displaySchedules(c.Schedules)
	}
}

func (uc *ComparisonUseCase) displaySchedules(schedules []entity.EventSchedule) {
	if len(schedules) == 0 {
		uc.console.LogInfo("No recurring maintenance events to schedule")
		return
	}
	table := uc.console.CreateTable()
	table.AddColumn("Event")
	table.AddColumn("Current")
	table.AddColumn("Projected")
	table.AddColumn("Annual Cost")
	for _, s := range schedules {
		table.AddRow(
			s.Label,
			describeSchedule(s.Current),
			describeSchedule(s.Projected),
			fmt.Sprintf("%s -> %s", format.Money(s.Current.AnnualCost()), format.Money(s.Projected.AnnualCost())),
		)
	}
	uc.console.Print(table.Render())
}

func describeSchedule(s entity.MaintenanceSchedule) string {
	if s.Frequency == 0 || len(s.Intervals) == 0 {
		return "none"
	}
	starts := make([]string, 0, len(s.Intervals))
	for _, iv := range s.Intervals {
		starts = append(starts, format.Months(iv.StartMonth))
	}
	return fmt.Sprintf("%d/yr every %s mo (at %s)", s.Frequency, format.Months(s.Intervals[0].Width), strings.Join(starts, ", "))
}

func (uc *ComparisonUseCase) exportReport(ctx context.Context, report entity.Report, cfg *types.Config) {
	progress := uc.console.ProgressWithTotal(len(cfg.ReportType))
	var messages []func()

	for _, reportType := range cfg.ReportType {
		if ctx.Err() != nil {
			messages = append(messages, func() { uc.console.LogWarning("Export cancelled: %s", ctx.Err()) })
			break
		}

		var (
			path string
			err  error
		)
		kind := strings.ToLower(strings.TrimSpace(reportType))
		switch kind {
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(report, cfg.ReportName, cfg.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(report, cfg.ReportName, cfg.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(report, cfg.ReportName, cfg.Dir)
		default:
			err = fmt.Errorf("%w: %q", types.ErrUnsupportedReportType, reportType)
		}
		progress.Increment()

		upper := strings.ToUpper(kind)
		if err != nil {
			messages = append(messages, func() { uc.console.LogError("Failed to export to %s: %s", upper, err) })
		} else {
			messages = append(messages, func() { uc.console.LogSuccess("Successfully exported to %s: %s", upper, path) })
		}
	}
	progress.Stop()

	// as mensagens só saem depois da barra para não quebrar o render
	for _, m := range messages {
		m()
	}
}

// InitConfig grava um arquivo de configuração de exemplo.
func (uc *ComparisonUseCase) InitConfig(args types.InitArgs) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(args.Format), "."))
	if ext == "" {
		ext = "toml"
	}
	switch ext {
	case "toml", "yaml", "yml", "json":
	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnsupportedFileFormat, args.Format)
	}

	path := args.Output
	if path == "" {
		path = "tco." + ext
	} else if filepath.Ext(path) == "" {
		path = path + "." + ext
	}

	if _, err := os.Stat(path); err == nil && !args.Force {
		return "", fmt.Errorf("%w: %s", types.ErrConfigFileExists, path)
	}

	written, err := uc.configRepo.WriteConfigFile(path, types.ExampleConfig())
	if err != nil {
		return "", err
	}
	uc.console.LogSuccess("Example configuration written to %s", written)
	uc.console.LogInfo("Run 'tco-compare --config-file %s' to compare", filepath.Base(written))
	return written, nil
}

// ShowDefaults imprime o registro de variantes de processo e suas taxas padrão.
func (uc *ComparisonUseCase) ShowDefaults() {
	variants := entity.ProcessVariants()

	table := uc.console.CreateTable()
	table.AddColumn("Process Type")
	table.AddColumn("Label")
	table.AddColumn("Scrap Policy")
	table.AddColumn("Categories")
	for _, v := range variants {
		cats := make([]string, 0, len(v.Categories))
		for _, c := range v.Categories {
			cats = append(cats, string(c))
		}
		table.AddRow(string(v.Type), v.Label, string(v.ScrapPolicy), strings.Join(cats, ", "))
	}
	uc.console.Print(table.Render())

	rates := uc.console.CreateTable()
	rates.AddColumn("Category")
	for _, v := range variants {
		rates.AddColumn(string(v.Type))
	}
	for _, c := range entity.Categories() {
		row := []interface{}{c.Label()}
		for _, v := range variants {
			if !v.Allows(c) {
				row = append(row, "-")
				continue
			}
			row = append(row, format.Percent(v.DefaultRates().Rate(c)))
		}
		rates.AddRow(row...)
	}
	uc.console.Print(rates.Render())
}

func monthlySeries(months []string, points []decimal.Decimal) []types.MonthlyCost {
	out := make([]types.MonthlyCost, 0, len(points))
	for i, p := range points {
		out = append(out, types.MonthlyCost{Month: months[i], Cost: p.InexactFloat64()})
	}
	return out
}

func colorSavings(d decimal.Decimal) string {
	switch {
	case d.IsNegative():
		return console.BoldRed(format.Money(d))
	case d.IsPositive():
		return console.BrightGreen(format.Money(d))
	default:
		return format.Money(d)
	}
}

func ratioText(r entity.Ratio) string {
	if !r.Defined {
		return console.BrightYellow("n/a")
	}
	return format.Percent(r.Value)
}

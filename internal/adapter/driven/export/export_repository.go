package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/tco-compare-go/internal/domain/entity"
	"github.com/diillson/tco-compare-go/internal/domain/repository"
	"github.com/diillson/tco-compare-go/pkg/format"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToCSV grava o relatório em seções: resumo, categorias, waterfall,
// projeção mensal e cronograma de manutenção.
func (r *ExportRepositoryImpl) ExportToCSV(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	c := report.Comparison

	rows := [][]string{
		{"Report", cleanRichTags(report.Title)},
		{"Run ID", report.ID.String()},
		{"Generated At", report.GeneratedAt.Format(time.RFC3339)},
		{"Process Type", string(c.ProcessType)},
		{"Scrap Policy", string(c.ScrapPolicy)},
		{"Mode", string(c.Mode)},
		{},
		{"Category", "Current", "Projected", "Savings", "Reduction"},
	}
	for _, cat := range categoriesOf(c) {
		rows = append(rows, []string{
			cat.Label(),
			c.Current.Amount(cat).StringFixed(2),
			c.Projected.Amount(cat).StringFixed(2),
			c.Savings.Amount(cat).StringFixed(2),
			ratioCell(c.Reductions[cat]),
		})
	}
	rows = append(rows,
		[]string{"Total", c.Current.Total.StringFixed(2), c.Projected.Total.StringFixed(2), c.Savings.Total.StringFixed(2), ""},
		[]string{},
		[]string{"Reference", string(c.Reference.Selector), c.Reference.Amount.StringFixed(2)},
		[]string{"ROI", ratioCell(c.ROI)},
		[]string{},
		[]string{"Step", "Change", "Running Total"},
		[]string{"Current Total", "", c.Current.Total.StringFixed(2)},
	)
	for _, step := range c.Waterfall {
		rows = append(rows, []string{step.Label, step.Change.StringFixed(2), step.RunningTotal.StringFixed(2)})
	}

	rows = append(rows, []string{}, []string{"Month", "Cumulative Current", "Cumulative Projected"})
	for i, month := range c.Projection.Months {
		rows = append(rows, []string{month, c.Projection.Current[i].StringFixed(2), c.Projection.Projected[i].StringFixed(2)})
	}

	if len(c.Schedules) > 0 {
		rows = append(rows, []string{}, []string{"Event", "State", "Interval", "Start Month", "End Month", "Width", "Cost"})
		for _, s := range c.Schedules {
			rows = append(rows, scheduleRows(s.Label, "current", s.Current)...)
			rows = append(rows, scheduleRows(s.Label, "projected", s.Projected)...)
		}
	}

	if err := writer.WriteAll(rows); err != nil {
		return "", fmt.Errorf("error writing CSV rows: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func scheduleRows(label, state string, s entity.MaintenanceSchedule) [][]string {
	out := make([][]string, 0, len(s.Intervals))
	for _, iv := range s.Intervals {
		out = append(out, []string{
			label,
			state,
			strconv.Itoa(iv.Index),
			format.Months(iv.StartMonth),
			format.Months(iv.EndMonth),
			format.Months(iv.Width),
			iv.Cost.StringFixed(2),
		})
	}
	return out
}

func (r *ExportRepositoryImpl) ExportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	c := report.Comparison

	headerColor := [3]int{0, 102, 204}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	sectionTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
	}

	drawSection := func(title string, content string) {
		content = cleanRichTags(content)
		if strings.TrimSpace(content) == "" {
			return
		}
		sectionTitle(title)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by tco-compare | %s | run %s", report.GeneratedAt.Format("2006-01-02"), report.ID)
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	title := truncateTitle(cleanRichTags(report.Title), 80)
	pdf.CellFormat(0, 12, tr("  "+title), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Process: %s | Scrap policy: %s | Mode: %s", c.ProcessType, c.ScrapPolicy, c.Mode)), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	// Resumo
	sectionTitle("Annual Cost Summary")
	colWidth := 190.0 / 3
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(colWidth, 7, "Current", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colWidth, 7, "Projected", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colWidth, 7, "Savings", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(colWidth, 12, tr(format.Money(c.Current.Total)), "", 0, "L", false, 0, "")
	pdf.CellFormat(colWidth, 12, tr(format.Money(c.Projected.Total)), "", 0, "L", false, 0, "")
	if c.Savings.Total.IsNegative() {
		pdf.SetTextColor(192, 0, 0)
	} else {
		pdf.SetTextColor(0, 128, 0)
	}
	pdf.CellFormat(colWidth, 12, tr(format.Money(c.Savings.Total)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("ROI vs %s (%s): %s", c.Reference.Selector, format.Money(c.Reference.Amount), ratioCell(c.ROI))), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	// Tabela por categoria
	sectionTitle("Cost By Category")
	widths := []float64{60, 35, 35, 35, 25}
	headers := []string{"Category", "Current", "Projected", "Savings", "Reduction"}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 7, h, "B", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, cat := range categoriesOf(c) {
		pdf.CellFormat(widths[0], 6, tr(cat.Label()), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(format.Money(c.Current.Amount(cat))), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(format.Money(c.Projected.Amount(cat))), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, tr(format.Money(c.Savings.Amount(cat))), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, tr(ratioCell(c.Reductions[cat])), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0], 7, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(widths[1], 7, tr(format.Money(c.Current.Total)), "T", 0, "R", false, 0, "")
	pdf.CellFormat(widths[2], 7, tr(format.Money(c.Projected.Total)), "T", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 7, tr(format.Money(c.Savings.Total)), "T", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 7, "", "T", 1, "R", false, 0, "")
	pdf.Ln(8)

	var wf strings.Builder
	wf.WriteString(fmt.Sprintf("Current total: %s\n", format.Money(c.Current.Total)))
	for _, step := range c.Waterfall {
		wf.WriteString(fmt.Sprintf("%s: %s  ->  %s\n", step.Label, format.SignedMoney(step.Change), format.Money(step.RunningTotal)))
	}
	drawSection("Savings Waterfall", wf.String())

	var months strings.Builder
	for i, m := range c.Projection.Months {
		months.WriteString(fmt.Sprintf("%s: %s / %s\n", m, format.Money(c.Projection.Current[i]), format.Money(c.Projection.Projected[i])))
	}
	drawSection("Cumulative Projection (current / projected)", months.String())

	var sched strings.Builder
	for _, s := range c.Schedules {
		sched.WriteString(fmt.Sprintf("%s: %d/yr every %s months -> %d/yr", s.Label,
			s.Current.Frequency, format.Months(firstWidth(s.Current)), s.Projected.Frequency))
		if s.Projected.Frequency > 0 {
			sched.WriteString(fmt.Sprintf(" every %s months", format.Months(firstWidth(s.Projected))))
		}
		sched.WriteString(fmt.Sprintf(" (%s -> %s)\n", format.Money(s.Current.AnnualCost()), format.Money(s.Projected.AnnualCost())))
	}
	drawSection("Maintenance Schedule", sched.String())

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// categoriesOf lista as categorias presentes em qualquer um dos lados, na ordem canônica.
func categoriesOf(c entity.Comparison) []entity.Category {
	var out []entity.Category
	for _, cat := range entity.Categories() {
		if c.Current.Has(cat) || c.Projected.Has(cat) {
			out = append(out, cat)
		}
	}
	return out
}

func ratioCell(r entity.Ratio) string {
	if !r.Defined {
		return "n/a"
	}
	return format.Percent(r.Value)
}

func firstWidth(s entity.MaintenanceSchedule) decimal.Decimal {
	if len(s.Intervals) == 0 {
		return decimal.Zero
	}
	return s.Intervals[0].Width
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}

// truncateTitle corta por runas para não partir caracteres multibyte.
func truncateTitle(title string, limit int) string {
	runes := []rune(title)
	if len(runes) <= limit {
		return title
	}
	return string(runes[:limit-3]) + "..."
}

package entity

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReferenceSelector chooses the spend the ROI is measured against.
type ReferenceSelector string

const (
	ReferenceFluid          ReferenceSelector = "fluid"
	ReferenceFluidAdditives ReferenceSelector = "fluid+additives"
	ReferenceProjectedFluid ReferenceSelector = "projected-fluid"
	ReferenceCurrentTotal   ReferenceSelector = "current-total"
	ReferenceCustom         ReferenceSelector = "custom"
)

// ReferenceSelectors lists the accepted selectors.
func ReferenceSelectors() []ReferenceSelector {
	return []ReferenceSelector{
		ReferenceFluid, ReferenceFluidAdditives, ReferenceProjectedFluid,
		ReferenceCurrentTotal, ReferenceCustom,
	}
}

// Reference is a validated selector plus the amount used by ReferenceCustom.
type Reference struct {
	Selector ReferenceSelector
	Amount   decimal.Decimal
}

// NewReference validates a selector name; empty means fluid+additives.
func NewReference(selector string, amount float64) (Reference, error) {
	sel := ReferenceSelector(strings.ToLower(strings.TrimSpace(selector)))
	if sel == "" {
		sel = ReferenceFluidAdditives
	}
	valid := false
	for _, s := range ReferenceSelectors() {
		if s == sel {
			valid = true
			break
		}
	}
	if !valid {
		return Reference{}, invalidInput("reference", "unknown reference selector %q", selector)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return Reference{}, invalidInput("reference_amount", "must be a finite, non-negative number (got %v)", amount)
	}
	ref := Reference{Selector: sel, Amount: decimal.Zero}
	if sel == ReferenceCustom {
		ref.Amount = decimal.NewFromFloat(amount)
	}
	return ref, nil
}

// ReferenceSpend is the resolved denominator of the ROI.
type ReferenceSpend struct {
	Selector ReferenceSelector `json:"selector"`
	Amount   decimal.Decimal   `json:"amount"`
}

// NewRetention validates a maintenance retention factor in [0, 1].
func NewRetention(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > 1 {
		return decimal.Zero, invalidInput("retention", "retention factor must lie in [0, 1] (got %v)", f)
	}
	return decimal.NewFromFloat(f), nil
}

// CumulativeProjection is the straight-line monthly accumulation of both totals.
type CumulativeProjection struct {
	Months           []string          `json:"months"`
	CurrentMonthly   decimal.Decimal   `json:"current_monthly"`
	ProjectedMonthly decimal.Decimal   `json:"projected_monthly"`
	Current          []decimal.Decimal `json:"current"`
	Projected        []decimal.Decimal `json:"projected"`
}

// ComparisonMode tells how the projected state was obtained.
type ComparisonMode string

const (
	// ModeRates applies a savings rate table to the current state.
	ModeRates ComparisonMode = "rates"
	// ModeScenario computes the projected state from its own configuration.
	ModeScenario ComparisonMode = "scenario"
)

// Comparison is the full output of one engine run.
type Comparison struct {
	Mode        ComparisonMode       `json:"mode"`
	ProcessType ProcessType          `json:"process_type"`
	ScrapPolicy ScrapPolicy          `json:"scrap_policy"`
	Rates       SavingsRates         `json:"rates,omitempty"`
	Current     CostBreakdown        `json:"current"`
	Projected   CostBreakdown        `json:"projected"`
	Savings     SavingsBreakdown     `json:"savings"`
	Waterfall   []WaterfallStep      `json:"waterfall"`
	Reference   ReferenceSpend       `json:"reference"`
	ROI         Ratio                `json:"roi"`
	Reductions  map[Category]Ratio   `json:"reductions"`
	Projection  CumulativeProjection `json:"projection"`
	Schedules   []EventSchedule      `json:"schedules"`
}

// Report wraps a comparison with the metadata of the run that produced it.
type Report struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	GeneratedAt time.Time  `json:"generated_at"`
	Comparison  Comparison `json:"comparison"`
}

// NewReport stamps a comparison with a fresh run id.
func NewReport(title string, c Comparison, now time.Time) Report {
	if strings.TrimSpace(title) == "" {
		title = "Process Cost of Ownership Comparison"
	}
	return Report{
		ID:          uuid.New(),
		Title:       title,
		GeneratedAt: now.UTC(),
		Comparison:  c,
	}
}

// Package attribution derives the projected cost state and splits the
// difference into per-category savings.
package attribution

import (
	"errors"
	"fmt"

	"github.com/diillson/tco-compare-go/internal/domain/costmodel"
	"github.com/diillson/tco-compare-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var decimalOne = decimal.NewFromInt(1)

// ErrConservation means the savings do not bridge the two totals. It can only
// come from a programming error, never from user input.
var ErrConservation = errors.New("savings do not reconcile current and projected totals")

// Result is the outcome of applying a rate table.
type Result struct {
	Projected entity.CostBreakdown
	Savings   entity.SavingsBreakdown
	Waterfall []entity.WaterfallStep
}

// Apply reduces each category of current by its rate. With the burden scrap
// policy the projected scrap is recomputed from the projected base:
//
//	projected_scrap = Σ projected base × scrap fraction × (1 − rate[scrap])
//
// so scrap stays a surcharge on the running cost base in both states.
func Apply(cfg entity.ProcessConfiguration, current entity.CostBreakdown, rates entity.SavingsRates) (Result, error) {
	if err := rates.Validate(); err != nil {
		return Result{}, err
	}

	projected := make(map[entity.Category]decimal.Decimal, len(current.Amounts))
	baseSum := decimal.Zero
	for _, c := range current.Categories() {
		if !c.IsBase() {
			continue
		}
		p := current.Amount(c).Mul(decimalOne.Sub(rates.Rate(c)))
		projected[c] = p
		baseSum = baseSum.Add(p)
	}

	if current.Has(entity.CategoryScrap) {
		keep := decimalOne.Sub(rates.Rate(entity.CategoryScrap))
		switch cfg.Scrap.Policy {
		case entity.ScrapBurden:
			projected[entity.CategoryScrap] = costmodel.Burden(baseSum, cfg.Scrap.Fraction).Mul(keep)
		default:
			projected[entity.CategoryScrap] = current.Amount(entity.CategoryScrap).Mul(keep)
		}
	}

	projectedBreakdown := entity.NewCostBreakdown(projected)
	savings, waterfall, err := Diff(current, projectedBreakdown)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Projected: projectedBreakdown,
		Savings:   savings,
		Waterfall: waterfall,
	}, nil
}

// Diff attributes current.Total − projected.Total to categories and lays the
// contributions out as a waterfall (canonical order, scrap last). Categories
// present on one side only count as zero on the other.
func Diff(current, projected entity.CostBreakdown) (entity.SavingsBreakdown, []entity.WaterfallStep, error) {
	seen := make(map[entity.Category]bool)
	for _, c := range current.Categories() {
		seen[c] = true
	}
	for _, c := range projected.Categories() {
		seen[c] = true
	}

	savings := entity.SavingsBreakdown{
		Amounts: make(map[entity.Category]decimal.Decimal, len(seen)),
		Total:   decimal.Zero,
	}
	var waterfall []entity.WaterfallStep
	running := current.Total

	for _, c := range entity.Categories() {
		if !seen[c] {
			continue
		}
		saved := current.Amount(c).Sub(projected.Amount(c))
		savings.Amounts[c] = saved
		savings.Total = savings.Total.Add(saved)

		running = running.Sub(saved)
		waterfall = append(waterfall, entity.WaterfallStep{
			Category:     c,
			Label:        c.Label(),
			Change:       saved.Neg(),
			RunningTotal: running,
		})
	}

	if !current.Total.Sub(savings.Total).Equal(projected.Total) || !running.Equal(projected.Total) {
		return entity.SavingsBreakdown{}, nil, fmt.Errorf("%w: current %s, savings %s, projected %s",
			ErrConservation, current.Total, savings.Total, projected.Total)
	}

	return savings, waterfall, nil
}

// ResolveReference picks the ROI denominator out of the two breakdowns.
func ResolveReference(ref entity.Reference, current, projected entity.CostBreakdown) (entity.ReferenceSpend, error) {
	spend := entity.ReferenceSpend{Selector: ref.Selector}
	switch ref.Selector {
	case entity.ReferenceFluid:
		spend.Amount = current.Amount(entity.CategoryFluid)
	case entity.ReferenceFluidAdditives, "":
		spend.Selector = entity.ReferenceFluidAdditives
		spend.Amount = current.Amount(entity.CategoryFluid).Add(current.Amount(entity.CategoryAdditives))
	case entity.ReferenceProjectedFluid:
		spend.Amount = projected.Amount(entity.CategoryFluid)
	case entity.ReferenceCurrentTotal:
		spend.Amount = current.Total
	case entity.ReferenceCustom:
		if ref.Amount.IsNegative() {
			return entity.ReferenceSpend{}, entity.InvalidInput("reference_amount", "must not be negative")
		}
		spend.Amount = ref.Amount
	default:
		return entity.ReferenceSpend{}, entity.InvalidInput("reference", "unknown reference selector %q", string(ref.Selector))
	}
	return spend, nil
}

// ROI is total savings over the reference spend; undefined for a zero reference.
func ROI(savings entity.SavingsBreakdown, spend entity.ReferenceSpend) entity.Ratio {
	return entity.NewRatio(savings.Total, spend.Amount)
}

// Reductions gives savings[c] / current[c] for every category with savings.
func Reductions(current entity.CostBreakdown, savings entity.SavingsBreakdown) map[entity.Category]entity.Ratio {
	out := make(map[entity.Category]entity.Ratio, len(savings.Amounts))
	for _, c := range savings.Categories() {
		r := entity.NewRatio(savings.Amount(c), current.Amount(c))
		if !r.Defined {
			r.Reason = fmt.Sprintf("current %s cost is zero", c)
		}
		out[c] = r
	}
	return out
}

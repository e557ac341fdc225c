// Package costmodel turns a validated process configuration into an annual
// cost breakdown.
package costmodel

import (
	"fmt"

	"github.com/diillson/tco-compare-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// ScrapStrategy computes the scrap category once every base category is known.
type ScrapStrategy interface {
	Policy() entity.ScrapPolicy
	Scrap(cfg entity.ProcessConfiguration, base map[entity.Category]decimal.Decimal) decimal.Decimal
}

// UnitCostStrategy prices rejected units, or takes the flat annual figure.
type UnitCostStrategy struct{}

// Policy implements ScrapStrategy.
func (UnitCostStrategy) Policy() entity.ScrapPolicy { return entity.ScrapUnitCost }

// Scrap implements ScrapStrategy.
func (UnitCostStrategy) Scrap(cfg entity.ProcessConfiguration, _ map[entity.Category]decimal.Decimal) decimal.Decimal {
	s := cfg.Scrap
	if s.Flat {
		return s.AnnualCost
	}
	return s.UnitsProduced.Mul(s.Fraction).Mul(s.CostPerUnit)
}

// BurdenStrategy charges the scrap fraction on top of every other category.
type BurdenStrategy struct{}

// Policy implements ScrapStrategy.
func (BurdenStrategy) Policy() entity.ScrapPolicy { return entity.ScrapBurden }

// Scrap implements ScrapStrategy.
func (BurdenStrategy) Scrap(cfg entity.ProcessConfiguration, base map[entity.Category]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for c, a := range base {
		if c.IsBase() {
			sum = sum.Add(a)
		}
	}
	return Burden(sum, cfg.Scrap.Fraction)
}

// Burden is the scrap surcharge on a cost base.
func Burden(base, fraction decimal.Decimal) decimal.Decimal {
	return base.Mul(fraction)
}

var strategies = map[entity.ScrapPolicy]ScrapStrategy{
	entity.ScrapUnitCost: UnitCostStrategy{},
	entity.ScrapBurden:   BurdenStrategy{},
}

// StrategyFor looks up the named scrap strategy.
func StrategyFor(p entity.ScrapPolicy) (ScrapStrategy, error) {
	s, ok := strategies[p]
	if !ok {
		return nil, entity.InvalidInput("scrap.policy", "no strategy for scrap policy %q", string(p))
	}
	return s, nil
}

// BaseAmounts computes every tracked category except scrap.
func BaseAmounts(cfg entity.ProcessConfiguration) map[entity.Category]decimal.Decimal {
	out := make(map[entity.Category]decimal.Decimal)

	if cfg.Fluid.Tracked {
		if cfg.Fluid.Flat {
			out[entity.CategoryFluid] = cfg.Fluid.AnnualSpend
		} else {
			out[entity.CategoryFluid] = cfg.Fluid.PricePerUnit.Mul(cfg.Fluid.AnnualVolume)
		}
	}

	if cfg.Disposal.Tracked {
		if cfg.Disposal.Flat {
			out[entity.CategoryDisposal] = cfg.Disposal.AnnualCost
		} else {
			out[entity.CategoryDisposal] = cfg.Disposal.Volume.Mul(cfg.Disposal.RatePerUnit)
		}
	}

	if cfg.Maintenance.Tracked {
		total := cfg.Maintenance.AnnualAddon
		for _, ev := range cfg.Maintenance.Events {
			total = total.Add(ev.EventCost.Mul(decimal.NewFromInt(int64(ev.Frequency))))
		}
		out[entity.CategoryMaintenance] = total
	}

	if cfg.Tooling.Tracked {
		if cfg.Tooling.Flat {
			out[entity.CategoryTooling] = cfg.Tooling.AnnualCost
		} else {
			out[entity.CategoryTooling] = cfg.Tooling.CostPerChangeover.Mul(decimal.NewFromInt(int64(cfg.Tooling.Changeovers)))
		}
	}

	if cfg.Additives.Tracked {
		out[entity.CategoryAdditives] = cfg.Additives.MonthlyCost.Mul(monthsPerYear)
	}

	if cfg.Labor.Tracked {
		out[entity.CategoryLabor] = cfg.Labor.AnnualCost
	}

	return out
}

// Compute builds the cost breakdown of cfg. Scrap is computed last, with the
// strategy named by the configuration's scrap policy.
func Compute(cfg entity.ProcessConfiguration) (entity.CostBreakdown, error) {
	if !cfg.Validated() {
		return entity.CostBreakdown{}, entity.ErrUnvalidatedConfiguration
	}

	amounts := BaseAmounts(cfg)

	if cfg.Scrap.Tracked {
		strategy, err := StrategyFor(cfg.Scrap.Policy)
		if err != nil {
			return entity.CostBreakdown{}, fmt.Errorf("computing scrap: %w", err)
		}
		amounts[entity.CategoryScrap] = strategy.Scrap(cfg, amounts)
	}

	return entity.NewCostBreakdown(amounts), nil
}

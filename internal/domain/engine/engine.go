// Package engine runs a full cost of ownership comparison: cost model,
// savings attribution and projection, in that order.
//
// Every function here is pure. Concurrent calls share nothing but the
// read-only default rate tables, which are copied before use.
package engine

import (
	"fmt"

	"github.com/diillson/tco-compare-go/internal/domain/attribution"
	"github.com/diillson/tco-compare-go/internal/domain/costmodel"
	"github.com/diillson/tco-compare-go/internal/domain/entity"
	"github.com/diillson/tco-compare-go/internal/domain/projection"
	"github.com/shopspring/decimal"
)

var decimalOne = decimal.NewFromInt(1)

// Request carries the per-call options of a comparison.
type Request struct {
	// Rates overrides the process variant's default table when non-nil.
	Rates entity.SavingsRates
	// ScrapPolicy overrides the configuration's policy when non-empty.
	ScrapPolicy entity.ScrapPolicy
	// Reference selects the ROI denominator.
	Reference entity.Reference
	// Retention scales maintenance frequencies in rate mode. Nil means
	// 1 − rate[maintenance].
	Retention *decimal.Decimal
}

// Compute projects cfg under the request's savings rates.
func Compute(cfg entity.ProcessConfiguration, req Request) (entity.Comparison, error) {
	cfg, err := prepare(cfg, req.ScrapPolicy)
	if err != nil {
		return entity.Comparison{}, err
	}

	rates := req.Rates
	if rates == nil {
		rates = cfg.Variant.DefaultRates()
	} else {
		rates = rates.Clone()
	}
	if err := rates.Validate(); err != nil {
		return entity.Comparison{}, err
	}

	retention := decimalOne.Sub(rates.Rate(entity.CategoryMaintenance))
	if req.Retention != nil {
		retention = *req.Retention
		if retention.IsNegative() || retention.GreaterThan(decimalOne) {
			return entity.Comparison{}, entity.InvalidInput("retention", "retention factor must lie in [0, 1] (got %s)", retention)
		}
	}

	current, err := costmodel.Compute(cfg)
	if err != nil {
		return entity.Comparison{}, fmt.Errorf("computing current costs: %w", err)
	}

	attr, err := attribution.Apply(cfg, current, rates)
	if err != nil {
		return entity.Comparison{}, fmt.Errorf("attributing savings: %w", err)
	}

	var schedules []entity.EventSchedule
	for _, ev := range cfg.Events() {
		if ev.Frequency == 0 {
			continue
		}
		pair, err := projection.Pair(ev.Label, ev.EventCost, ev.Frequency,
			projection.ReducedFrequency(ev.Frequency, retention), ev.EventCost)
		if err != nil {
			return entity.Comparison{}, fmt.Errorf("building schedule: %w", err)
		}
		schedules = append(schedules, pair)
	}

	c := entity.Comparison{
		Mode:        entity.ModeRates,
		ProcessType: cfg.Type(),
		ScrapPolicy: cfg.Scrap.Policy,
		Rates:       rates,
		Current:     current,
		Projected:   attr.Projected,
		Savings:     attr.Savings,
		Waterfall:   attr.Waterfall,
		Schedules:   schedules,
	}
	return finish(c, req.Reference)
}

// CompareScenarios compares two explicit configurations of the same process
// type. Savings are signed: the alternative may cost more in a category.
func CompareScenarios(current, projected entity.ProcessConfiguration, req Request) (entity.Comparison, error) {
	cur, err := prepare(current, req.ScrapPolicy)
	if err != nil {
		return entity.Comparison{}, fmt.Errorf("current scenario: %w", err)
	}
	proj, err := prepare(projected, req.ScrapPolicy)
	if err != nil {
		return entity.Comparison{}, fmt.Errorf("projected scenario: %w", err)
	}
	if cur.Type() != proj.Type() {
		return entity.Comparison{}, entity.Mismatch("process_type",
			"scenarios must share a process type (current %s, projected %s)", cur.Type(), proj.Type())
	}
	if cur.Scrap.Tracked && proj.Scrap.Tracked && cur.Scrap.Policy != proj.Scrap.Policy {
		return entity.Comparison{}, entity.Mismatch("scrap.policy",
			"scenarios must share a scrap policy (current %s, projected %s)", cur.Scrap.Policy, proj.Scrap.Policy)
	}

	curCosts, err := costmodel.Compute(cur)
	if err != nil {
		return entity.Comparison{}, fmt.Errorf("computing current costs: %w", err)
	}
	projCosts, err := costmodel.Compute(proj)
	if err != nil {
		return entity.Comparison{}, fmt.Errorf("computing projected costs: %w", err)
	}

	savings, waterfall, err := attribution.Diff(curCosts, projCosts)
	if err != nil {
		return entity.Comparison{}, fmt.Errorf("attributing savings: %w", err)
	}

	projectedEvents := make(map[string]entity.MaintenanceEvent)
	for _, ev := range proj.Events() {
		projectedEvents[ev.Label] = ev
	}
	var schedules []entity.EventSchedule
	for _, ev := range cur.Events() {
		if ev.Frequency == 0 {
			continue
		}
		after, ok := projectedEvents[ev.Label]
		if !ok {
			after = entity.MaintenanceEvent{Label: ev.Label, EventCost: ev.EventCost}
		}
		pair, err := projection.Pair(ev.Label, ev.EventCost, ev.Frequency, after.Frequency, after.EventCost)
		if err != nil {
			return entity.Comparison{}, fmt.Errorf("building schedule: %w", err)
		}
		schedules = append(schedules, pair)
	}

	// eventos que só existem no cenário projetado entram com o lado atual vazio
	known := make(map[string]bool, len(cur.Events()))
	for _, ev := range cur.Events() {
		known[ev.Label] = true
	}
	for _, ev := range proj.Events() {
		if known[ev.Label] || ev.Frequency == 0 {
			continue
		}
		added, err := projection.Intervals(ev.Label, ev.Frequency, ev.EventCost)
		if err != nil {
			return entity.Comparison{}, fmt.Errorf("building schedule: %w", err)
		}
		schedules = append(schedules, entity.EventSchedule{
			Label:     ev.Label,
			Current:   entity.MaintenanceSchedule{Label: ev.Label, EventCost: decimal.Zero},
			Projected: added,
		})
	}

	policy := cur.Scrap.Policy
	if !cur.Scrap.Tracked && proj.Scrap.Tracked {
		policy = proj.Scrap.Policy
	}

	c := entity.Comparison{
		Mode:        entity.ModeScenario,
		ProcessType: cur.Type(),
		ScrapPolicy: policy,
		Current:     curCosts,
		Projected:   projCosts,
		Savings:     savings,
		Waterfall:   waterfall,
		Schedules:   schedules,
	}
	return finish(c, req.Reference)
}

func prepare(cfg entity.ProcessConfiguration, policy entity.ScrapPolicy) (entity.ProcessConfiguration, error) {
	if !cfg.Validated() {
		return entity.ProcessConfiguration{}, entity.ErrUnvalidatedConfiguration
	}
	if policy == "" || policy == cfg.Scrap.Policy {
		return cfg, nil
	}
	return cfg.WithScrapPolicy(policy)
}

// finish adds the derived metrics shared by both modes.
func finish(c entity.Comparison, ref entity.Reference) (entity.Comparison, error) {
	spend, err := attribution.ResolveReference(ref, c.Current, c.Projected)
	if err != nil {
		return entity.Comparison{}, err
	}
	c.Reference = spend
	c.ROI = attribution.ROI(c.Savings, spend)
	c.Reductions = attribution.Reductions(c.Current, c.Savings)
	c.Projection = projection.CumulativePair(c.Current.Total, c.Projected.Total)
	return c, nil
}

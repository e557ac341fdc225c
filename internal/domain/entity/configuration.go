package entity

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FluidCost is the validated fluid section.
type FluidCost struct {
	Tracked      bool
	Flat         bool
	PricePerUnit decimal.Decimal
	AnnualVolume decimal.Decimal
	AnnualSpend  decimal.Decimal
}

// DisposalCost is the validated disposal section; Volume is already resolved.
type DisposalCost struct {
	Tracked     bool
	Flat        bool
	RatePerUnit decimal.Decimal
	Volume      decimal.Decimal
	AnnualCost  decimal.Decimal
}

// ScrapCost is the validated scrap section. Fraction lies in [0, 1].
type ScrapCost struct {
	Tracked       bool
	Flat          bool
	Policy        ScrapPolicy
	Fraction      decimal.Decimal
	UnitsProduced decimal.Decimal
	CostPerUnit   decimal.Decimal
	AnnualCost    decimal.Decimal
}

// MaintenanceEvent is one validated (cost, frequency) pair.
type MaintenanceEvent struct {
	Label     string
	EventCost decimal.Decimal
	Frequency int
}

// MaintenanceCost is the validated maintenance section.
type MaintenanceCost struct {
	Tracked     bool
	Events      []MaintenanceEvent
	AnnualAddon decimal.Decimal
}

// ToolingCost is the validated tooling section.
type ToolingCost struct {
	Tracked           bool
	Flat              bool
	Changeovers       int
	CostPerChangeover decimal.Decimal
	AnnualCost        decimal.Decimal
}

// AdditivesCost is the validated additives section.
type AdditivesCost struct {
	Tracked     bool
	MonthlyCost decimal.Decimal
}

// LaborCost is the validated labor section.
type LaborCost struct {
	Tracked    bool
	AnnualCost decimal.Decimal
}

// ProcessConfiguration is the immutable, validated input of a comparison.
// Build it with NewProcessConfiguration; the cost model refuses any other value.
type ProcessConfiguration struct {
	Variant     ProcessVariant
	Fluid       FluidCost
	Disposal    DisposalCost
	Scrap       ScrapCost
	Maintenance MaintenanceCost
	Tooling     ToolingCost
	Additives   AdditivesCost
	Labor       LaborCost

	validated bool
}

// Validated reports whether the value came out of NewProcessConfiguration.
func (c ProcessConfiguration) Validated() bool {
	return c.validated
}

// Type is a shortcut for c.Variant.Type.
func (c ProcessConfiguration) Type() ProcessType {
	return c.Variant.Type
}

// Tracked lists the categories this configuration carries, in canonical order.
func (c ProcessConfiguration) Tracked() []Category {
	flags := map[Category]bool{
		CategoryFluid:       c.Fluid.Tracked,
		CategoryDisposal:    c.Disposal.Tracked,
		CategoryMaintenance: c.Maintenance.Tracked,
		CategoryTooling:     c.Tooling.Tracked,
		CategoryAdditives:   c.Additives.Tracked,
		CategoryLabor:       c.Labor.Tracked,
		CategoryScrap:       c.Scrap.Tracked,
	}
	var out []Category
	for _, cat := range categoryOrder {
		if flags[cat] {
			out = append(out, cat)
		}
	}
	return out
}

// Events returns a copy of the maintenance events.
func (c ProcessConfiguration) Events() []MaintenanceEvent {
	out := make([]MaintenanceEvent, len(c.Maintenance.Events))
	copy(out, c.Maintenance.Events)
	return out
}

// WithScrapPolicy returns a copy computed under another scrap policy,
// revalidating the data that policy needs.
func (c ProcessConfiguration) WithScrapPolicy(p ScrapPolicy) (ProcessConfiguration, error) {
	if !c.validated {
		return ProcessConfiguration{}, ErrUnvalidatedConfiguration
	}
	if _, err := ParseScrapPolicy(string(p)); err != nil {
		return ProcessConfiguration{}, err
	}
	out := c
	out.Maintenance.Events = c.Events()
	out.Scrap.Policy = p
	if err := checkScrapPolicy(out); err != nil {
		return ProcessConfiguration{}, err
	}
	return out, nil
}

// ErrUnvalidatedConfiguration is returned for a ProcessConfiguration built by hand.
var ErrUnvalidatedConfiguration = &Error{
	Kind:    KindConfigurationMismatch,
	Message: "process configuration was not built with NewProcessConfiguration",
}

// NewProcessConfiguration validates in and converts it to the internal
// representation. Percentages become fractions here and nowhere else.
func NewProcessConfiguration(in ProcessInput) (ProcessConfiguration, error) {
	variant, err := LookupProcessVariant(ProcessType(strings.TrimSpace(in.ProcessType)))
	if err != nil {
		return ProcessConfiguration{}, err
	}

	v := &fieldValidator{}
	cfg := ProcessConfiguration{Variant: variant}

	// Fluido
	cfg.Fluid = FluidCost{
		PricePerUnit: v.money("fluid.price_per_unit", in.Fluid.PricePerUnit),
		AnnualVolume: v.money("fluid.annual_volume", in.Fluid.AnnualVolume),
		AnnualSpend:  v.money("fluid.annual_spend", in.Fluid.AnnualSpend),
	}
	cfg.Fluid.Flat = !cfg.Fluid.AnnualSpend.IsZero()
	cfg.Fluid.Tracked = cfg.Fluid.Flat || !cfg.Fluid.PricePerUnit.IsZero() || !cfg.Fluid.AnnualVolume.IsZero()
	if cfg.Fluid.Flat && (!cfg.Fluid.PricePerUnit.IsZero() || !cfg.Fluid.AnnualVolume.IsZero()) {
		v.fail(mismatch("fluid", "give either annual_spend or price_per_unit × annual_volume, not both"))
	}
	if !cfg.Fluid.Flat && cfg.Fluid.Tracked && (cfg.Fluid.PricePerUnit.IsZero() || cfg.Fluid.AnnualVolume.IsZero()) {
		v.fail(mismatch("fluid", "price_per_unit and annual_volume must both be set"))
	}

	// Descarte
	cfg.Disposal = DisposalCost{
		RatePerUnit: v.money("disposal.rate_per_unit", in.Disposal.RatePerUnit),
		Volume:      v.money("disposal.volume", in.Disposal.Volume),
		AnnualCost:  v.money("disposal.annual_cost", in.Disposal.AnnualCost),
	}
	cfg.Disposal.Flat = !cfg.Disposal.AnnualCost.IsZero()
	cfg.Disposal.Tracked = cfg.Disposal.Flat || !cfg.Disposal.RatePerUnit.IsZero()
	if cfg.Disposal.Flat && !cfg.Disposal.RatePerUnit.IsZero() {
		v.fail(mismatch("disposal", "give either annual_cost or rate_per_unit, not both"))
	}
	if !cfg.Disposal.Flat && cfg.Disposal.Tracked {
		if cfg.Disposal.Volume.IsZero() {
			cfg.Disposal.Volume = cfg.Fluid.AnnualVolume
		}
		if cfg.Disposal.Volume.IsZero() {
			v.fail(mismatch("disposal.volume", "per-unit disposal needs a volume (disposal.volume or fluid.annual_volume)"))
		}
	}

	// Manutenção
	cfg.Maintenance.AnnualAddon = v.money("maintenance.annual_addon", in.Maintenance.AnnualAddon)
	for i, ev := range in.Maintenance.Events {
		label := strings.TrimSpace(ev.Label)
		if label == "" {
			label = fmt.Sprintf("service event %d", i+1)
		}
		field := fmt.Sprintf("maintenance.events[%d]", i)
		cfg.Maintenance.Events = append(cfg.Maintenance.Events, MaintenanceEvent{
			Label:     label,
			EventCost: v.money(field+".event_cost", ev.EventCost),
			Frequency: v.frequency(field+".frequency", ev.Frequency),
		})
	}
	cfg.Maintenance.Tracked = len(cfg.Maintenance.Events) > 0 || !cfg.Maintenance.AnnualAddon.IsZero()

	// Ferramental
	cfg.Tooling = ToolingCost{
		Changeovers:       v.frequency("tooling.changeovers", in.Tooling.Changeovers),
		CostPerChangeover: v.money("tooling.cost_per_changeover", in.Tooling.CostPerChangeover),
		AnnualCost:        v.money("tooling.annual_cost", in.Tooling.AnnualCost),
	}
	cfg.Tooling.Flat = !cfg.Tooling.AnnualCost.IsZero()
	cfg.Tooling.Tracked = cfg.Tooling.Flat || cfg.Tooling.Changeovers > 0 || !cfg.Tooling.CostPerChangeover.IsZero()
	if cfg.Tooling.Flat && (cfg.Tooling.Changeovers > 0 || !cfg.Tooling.CostPerChangeover.IsZero()) {
		v.fail(mismatch("tooling", "give either annual_cost or changeovers × cost_per_changeover, not both"))
	}
	if !cfg.Tooling.Flat && cfg.Tooling.Tracked && (cfg.Tooling.Changeovers == 0 || cfg.Tooling.CostPerChangeover.IsZero()) {
		v.fail(mismatch("tooling", "changeovers and cost_per_changeover must both be set"))
	}

	// Aditivos e mão de obra
	cfg.Additives.MonthlyCost = v.money("additives.monthly_cost", in.Additives.MonthlyCost)
	cfg.Additives.Tracked = !cfg.Additives.MonthlyCost.IsZero()
	cfg.Labor.AnnualCost = v.money("labor.annual_cost", in.Labor.AnnualCost)
	cfg.Labor.Tracked = !cfg.Labor.AnnualCost.IsZero()

	// Refugo
	policy := variant.ScrapPolicy
	if strings.TrimSpace(in.Scrap.Policy) != "" {
		p, err := ParseScrapPolicy(in.Scrap.Policy)
		if err != nil {
			v.fail(err)
		}
		policy = p
	}
	if in.Scrap.UnitsProduced < 0 {
		v.fail(invalidInput("scrap.units_produced", "must not be negative (got %d)", in.Scrap.UnitsProduced))
	}
	cfg.Scrap = ScrapCost{
		Policy:        policy,
		Fraction:      v.percent("scrap.rate_percent", in.Scrap.RatePercent),
		UnitsProduced: decimal.NewFromInt(in.Scrap.UnitsProduced),
		CostPerUnit:   v.money("scrap.cost_per_unit", in.Scrap.CostPerUnit),
		AnnualCost:    v.money("scrap.annual_cost", in.Scrap.AnnualCost),
	}
	cfg.Scrap.Flat = !cfg.Scrap.AnnualCost.IsZero()
	cfg.Scrap.Tracked = cfg.Scrap.Flat || !cfg.Scrap.Fraction.IsZero() ||
		in.Scrap.UnitsProduced > 0 || !cfg.Scrap.CostPerUnit.IsZero()

	if v.err != nil {
		return ProcessConfiguration{}, v.err
	}

	for _, cat := range cfg.Tracked() {
		if !variant.Allows(cat) {
			return ProcessConfiguration{}, mismatch(string(cat),
				"category %q is not part of the %s process schema", cat, variant.Type)
		}
	}
	if err := checkScrapPolicy(cfg); err != nil {
		return ProcessConfiguration{}, err
	}

	cfg.validated = true
	return cfg, nil
}

// checkScrapPolicy makes sure the selected policy has the data it needs.
func checkScrapPolicy(cfg ProcessConfiguration) error {
	s := cfg.Scrap
	if !s.Tracked {
		return nil
	}
	switch s.Policy {
	case ScrapBurden:
		if s.Flat {
			return mismatch("scrap.annual_cost", "a flat scrap figure only applies to the unit_cost policy")
		}
		hasBase := false
		for _, c := range cfg.Tracked() {
			if c.IsBase() {
				hasBase = true
				break
			}
		}
		if !hasBase {
			return mismatch("scrap.policy", "burden policy needs at least one other cost category")
		}
	case ScrapUnitCost:
		if s.Flat {
			if s.UnitsProduced.IsPositive() || s.CostPerUnit.IsPositive() {
				return mismatch("scrap", "give either annual_cost or units_produced × cost_per_unit, not both")
			}
			return nil
		}
		if !s.UnitsProduced.IsPositive() || !s.CostPerUnit.IsPositive() {
			return mismatch("scrap", "unit_cost policy needs units_produced and cost_per_unit (or annual_cost)")
		}
	default:
		return invalidInput("scrap.policy", "unknown scrap policy %q", string(s.Policy))
	}
	return nil
}

// fieldValidator keeps the first error so the constructor reads top to bottom.
type fieldValidator struct {
	err error
}

func (v *fieldValidator) fail(err error) {
	if v.err == nil {
		v.err = err
	}
}

func (v *fieldValidator) money(field string, x float64) decimal.Decimal {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		v.fail(invalidInput(field, "must be a finite number"))
		return decimal.Zero
	}
	if x < 0 {
		v.fail(invalidInput(field, "must not be negative (got %v)", x))
		return decimal.Zero
	}
	return decimal.NewFromFloat(x)
}

func (v *fieldValidator) percent(field string, x float64) decimal.Decimal {
	d := v.money(field, x)
	if x > 100 {
		v.fail(invalidInput(field, "percentage must lie in [0, 100] (got %v)", x))
		return decimal.Zero
	}
	return d.Div(decimalHundred)
}

func (v *fieldValidator) frequency(field string, n int) int {
	if n < 0 {
		v.fail(invalidInput(field, "must not be negative (got %d)", n))
		return 0
	}
	return n
}

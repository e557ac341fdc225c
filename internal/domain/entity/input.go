package entity

// ProcessInput is the user facing description of a process, as read from a
// configuration file. Percentages are expressed 0–100.
type ProcessInput struct {
	ProcessType string           `json:"process_type" yaml:"process_type" toml:"process_type"`
	Fluid       FluidInput       `json:"fluid" yaml:"fluid" toml:"fluid"`
	Disposal    DisposalInput    `json:"disposal" yaml:"disposal" toml:"disposal"`
	Scrap       ScrapInput       `json:"scrap" yaml:"scrap" toml:"scrap"`
	Maintenance MaintenanceInput `json:"maintenance" yaml:"maintenance" toml:"maintenance"`
	Tooling     ToolingInput     `json:"tooling" yaml:"tooling" toml:"tooling"`
	Additives   AdditivesInput   `json:"additives" yaml:"additives" toml:"additives"`
	Labor       LaborInput       `json:"labor" yaml:"labor" toml:"labor"`
}

// FluidInput is either price × volume or a flat annual spend.
type FluidInput struct {
	PricePerUnit float64 `json:"price_per_unit,omitempty" yaml:"price_per_unit,omitempty" toml:"price_per_unit,omitempty"`
	AnnualVolume float64 `json:"annual_volume,omitempty" yaml:"annual_volume,omitempty" toml:"annual_volume,omitempty"`
	AnnualSpend  float64 `json:"annual_spend,omitempty" yaml:"annual_spend,omitempty" toml:"annual_spend,omitempty"`
}

// DisposalInput is a per-unit fee or a flat figure. Volume falls back to the
// fluid annual volume.
type DisposalInput struct {
	RatePerUnit float64 `json:"rate_per_unit,omitempty" yaml:"rate_per_unit,omitempty" toml:"rate_per_unit,omitempty"`
	Volume      float64 `json:"volume,omitempty" yaml:"volume,omitempty" toml:"volume,omitempty"`
	AnnualCost  float64 `json:"annual_cost,omitempty" yaml:"annual_cost,omitempty" toml:"annual_cost,omitempty"`
}

// ScrapInput carries the scrap rate and the data either policy needs.
type ScrapInput struct {
	Policy        string  `json:"policy,omitempty" yaml:"policy,omitempty" toml:"policy,omitempty"`
	RatePercent   float64 `json:"rate_percent,omitempty" yaml:"rate_percent,omitempty" toml:"rate_percent,omitempty"`
	UnitsProduced int64   `json:"units_produced,omitempty" yaml:"units_produced,omitempty" toml:"units_produced,omitempty"`
	CostPerUnit   float64 `json:"cost_per_unit,omitempty" yaml:"cost_per_unit,omitempty" toml:"cost_per_unit,omitempty"`
	AnnualCost    float64 `json:"annual_cost,omitempty" yaml:"annual_cost,omitempty" toml:"annual_cost,omitempty"`
}

// MaintenanceInput lists recurring events plus a flat yearly add-on such as die coating.
type MaintenanceInput struct {
	AnnualAddon float64                 `json:"annual_addon,omitempty" yaml:"annual_addon,omitempty" toml:"annual_addon,omitempty"`
	Events      []MaintenanceEventInput `json:"events,omitempty" yaml:"events,omitempty" toml:"events,omitempty"`
}

// MaintenanceEventInput is one (cost, frequency) pair.
type MaintenanceEventInput struct {
	Label     string  `json:"label" yaml:"label" toml:"label"`
	EventCost float64 `json:"event_cost" yaml:"event_cost" toml:"event_cost"`
	Frequency int     `json:"frequency" yaml:"frequency" toml:"frequency"`
}

// ToolingInput is changeovers × cost per changeover, or a flat figure.
type ToolingInput struct {
	Changeovers       int     `json:"changeovers,omitempty" yaml:"changeovers,omitempty" toml:"changeovers,omitempty"`
	CostPerChangeover float64 `json:"cost_per_changeover,omitempty" yaml:"cost_per_changeover,omitempty" toml:"cost_per_changeover,omitempty"`
	AnnualCost        float64 `json:"annual_cost,omitempty" yaml:"annual_cost,omitempty" toml:"annual_cost,omitempty"`
}

// AdditivesInput is a recurring monthly cost.
type AdditivesInput struct {
	MonthlyCost float64 `json:"monthly_cost,omitempty" yaml:"monthly_cost,omitempty" toml:"monthly_cost,omitempty"`
}

// LaborInput is a flat annual labor spend.
type LaborInput struct {
	AnnualCost float64 `json:"annual_cost,omitempty" yaml:"annual_cost,omitempty" toml:"annual_cost,omitempty"`
}

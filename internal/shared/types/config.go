package types

import "github.com/diillson/tco-compare-go/internal/domain/entity"

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Title           string   `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	ScrapPolicy     string   `json:"scrap_policy,omitempty" yaml:"scrap_policy,omitempty" toml:"scrap_policy,omitempty"`
	Reference       string   `json:"reference,omitempty" yaml:"reference,omitempty" toml:"reference,omitempty"`
	ReferenceAmount float64  `json:"reference_amount,omitempty" yaml:"reference_amount,omitempty" toml:"reference_amount,omitempty"`
	Retention       *float64 `json:"retention,omitempty" yaml:"retention,omitempty" toml:"retention,omitempty"`
	ReportName      string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType      []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir             string   `json:"dir" yaml:"dir" toml:"dir"`

	// Tabelas depois dos escalares: o encoder TOML preserva a ordem dos campos.
	Process   entity.ProcessInput  `json:"process" yaml:"process" toml:"process"`
	Projected *entity.ProcessInput `json:"projected,omitempty" yaml:"projected,omitempty" toml:"projected,omitempty"`
	Rates     map[string]float64   `json:"rates,omitempty" yaml:"rates,omitempty" toml:"rates,omitempty"`
}

// ExampleConfig é a configuração gerada pelo subcomando init: uma linha de
// estampagem com os valores de referência da planilha legada.
func ExampleConfig() *Config {
	return &Config{
		Title: "Stamping line fluid changeover",
		Process: entity.ProcessInput{
			ProcessType: string(entity.ProcessForming),
			Fluid: entity.FluidInput{
				PricePerUnit: 18,
				AnnualVolume: 5000,
			},
			Disposal: entity.DisposalInput{
				RatePerUnit: 1.5,
			},
			Scrap: entity.ScrapInput{
				Policy:        string(entity.ScrapUnitCost),
				RatePercent:   2.5,
				UnitsProduced: 1250000,
				CostPerUnit:   3.25,
			},
			Maintenance: entity.MaintenanceInput{
				Events: []entity.MaintenanceEventInput{
					{Label: "die clean-out", EventCost: 1200, Frequency: 12},
				},
				AnnualAddon: 2500,
			},
		},
		Rates: map[string]float64{
			"fluid":       50,
			"disposal":    30,
			"maintenance": 30,
			"scrap":       30,
		},
		Reference:  string(entity.ReferenceFluidAdditives),
		ReportName: "tco_comparison",
		ReportType: []string{"csv"},
		Dir:        ".",
	}
}

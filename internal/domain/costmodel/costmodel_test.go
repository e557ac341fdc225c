package costmodel

import (
	"errors"
	"testing"

	"github.com/diillson/tco-compare-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func mustConfig(t *testing.T, in entity.ProcessInput) entity.ProcessConfiguration {
	t.Helper()
	cfg, err := entity.NewProcessConfiguration(in)
	if err != nil {
		t.Fatalf("NewProcessConfiguration: %v", err)
	}
	return cfg
}

func assertAmount(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	w := decimal.RequireFromString(want)
	if !got.Equal(w) {
		t.Errorf("%s = %s, want %s", name, got, w)
	}
}

func TestCompute_LegacyForming(t *testing.T) {
	cfg := mustConfig(t, entity.ProcessInput{
		ProcessType: "forming",
		Fluid:       entity.FluidInput{PricePerUnit: 18, AnnualVolume: 5000},
		Disposal:    entity.DisposalInput{RatePerUnit: 1.5},
		Scrap:       entity.ScrapInput{RatePercent: 2.5, UnitsProduced: 1250000, CostPerUnit: 3.25},
		Maintenance: entity.MaintenanceInput{
			Events:      []entity.MaintenanceEventInput{{Label: "die service", EventCost: 1200, Frequency: 12}},
			AnnualAddon: 2500,
		},
	})

	got, err := Compute(cfg)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	assertAmount(t, "fluid", got.Amount(entity.CategoryFluid), "90000")
	assertAmount(t, "disposal", got.Amount(entity.CategoryDisposal), "7500")
	assertAmount(t, "maintenance", got.Amount(entity.CategoryMaintenance), "16900")
	assertAmount(t, "scrap", got.Amount(entity.CategoryScrap), "101562.5")
	assertAmount(t, "total", got.Total, "215962.5")

	if got.Has(entity.CategoryTooling) {
		t.Error("untracked tooling must not appear in the breakdown")
	}
}

func TestCompute_ScrapPolicies(t *testing.T) {
	testCases := []struct {
		name      string
		in        entity.ProcessInput
		wantScrap string
		wantTotal string
	}{
		{
			name: "burden on fluid only",
			in: entity.ProcessInput{
				ProcessType: "subtractive",
				Fluid:       entity.FluidInput{AnnualSpend: 90000},
				Scrap:       entity.ScrapInput{RatePercent: 5},
			},
			wantScrap: "4500",
			wantTotal: "94500",
		},
		{
			name: "burden over several categories",
			in: entity.ProcessInput{
				ProcessType: "subtractive",
				Fluid:       entity.FluidInput{AnnualSpend: 40000},
				Tooling:     entity.ToolingInput{Changeovers: 20, CostPerChangeover: 500},
				Additives:   entity.AdditivesInput{MonthlyCost: 250},
				Scrap:       entity.ScrapInput{RatePercent: 10},
			},
			wantScrap: "5300",
			wantTotal: "58300",
		},
		{
			name: "flat unit cost figure",
			in: entity.ProcessInput{
				ProcessType: "generic",
				Labor:       entity.LaborInput{AnnualCost: 60000},
				Scrap:       entity.ScrapInput{AnnualCost: 12000},
			},
			wantScrap: "12000",
			wantTotal: "72000",
		},
		{
			name: "zero scrap rate",
			in: entity.ProcessInput{
				ProcessType: "forming",
				Fluid:       entity.FluidInput{AnnualSpend: 1000},
				Scrap:       entity.ScrapInput{UnitsProduced: 1000, CostPerUnit: 2},
			},
			wantScrap: "0",
			wantTotal: "1000",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Compute(mustConfig(t, tc.in))
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			assertAmount(t, "scrap", got.Amount(entity.CategoryScrap), tc.wantScrap)
			assertAmount(t, "total", got.Total, tc.wantTotal)
		})
	}
}

func TestCompute_TotalIsSumOfCategories(t *testing.T) {
	cfg := mustConfig(t, entity.ProcessInput{
		ProcessType: "generic",
		Fluid:       entity.FluidInput{PricePerUnit: 7.35, AnnualVolume: 1234},
		Disposal:    entity.DisposalInput{AnnualCost: 999.99},
		Tooling:     entity.ToolingInput{AnnualCost: 321.01},
		Additives:   entity.AdditivesInput{MonthlyCost: 17.17},
		Labor:       entity.LaborInput{AnnualCost: 45000},
		Scrap:       entity.ScrapInput{RatePercent: 1.3, UnitsProduced: 77777, CostPerUnit: 0.91},
	})
	got, err := Compute(cfg)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	sum := decimal.Zero
	for _, c := range got.Categories() {
		sum = sum.Add(got.Amount(c))
	}
	if !sum.Equal(got.Total) {
		t.Errorf("sum of categories %s != total %s", sum, got.Total)
	}
}

func TestCompute_RejectsHandBuiltConfiguration(t *testing.T) {
	_, err := Compute(entity.ProcessConfiguration{})
	if !errors.Is(err, entity.ErrConfigurationMismatch) {
		t.Fatalf("got %v, want configuration mismatch", err)
	}
}

func TestStrategyFor(t *testing.T) {
	for _, p := range []entity.ScrapPolicy{entity.ScrapUnitCost, entity.ScrapBurden} {
		s, err := StrategyFor(p)
		if err != nil {
			t.Fatalf("StrategyFor(%s): %v", p, err)
		}
		if s.Policy() != p {
			t.Errorf("strategy policy = %s, want %s", s.Policy(), p)
		}
	}
	if _, err := StrategyFor("weighted"); !errors.Is(err, entity.ErrInvalidInput) {
		t.Errorf("unknown policy: %v", err)
	}
}

package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/diillson/tco-compare-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func legacyInput() entity.ProcessInput {
	return entity.ProcessInput{
		ProcessType: "forming",
		Fluid:       entity.FluidInput{PricePerUnit: 18, AnnualVolume: 5000},
		Disposal:    entity.DisposalInput{RatePerUnit: 1.5},
		Scrap:       entity.ScrapInput{RatePercent: 2.5, UnitsProduced: 1250000, CostPerUnit: 3.25},
		Maintenance: entity.MaintenanceInput{
			Events:      []entity.MaintenanceEventInput{{Label: "die service", EventCost: 1200, Frequency: 12}},
			AnnualAddon: 2500,
		},
	}
}

func mustConfig(t *testing.T, in entity.ProcessInput) entity.ProcessConfiguration {
	t.Helper()
	cfg, err := entity.NewProcessConfiguration(in)
	if err != nil {
		t.Fatalf("NewProcessConfiguration: %v", err)
	}
	return cfg
}

func eq(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if w := decimal.RequireFromString(want); !got.Equal(w) {
		t.Errorf("%s = %s, want %s", name, got, w)
	}
}

func TestCompute_DefaultRates(t *testing.T) {
	c, err := Compute(mustConfig(t, legacyInput()), Request{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if c.Mode != entity.ModeRates || c.ProcessType != entity.ProcessForming {
		t.Errorf("mode %s, process %s", c.Mode, c.ProcessType)
	}
	eq(t, "current total", c.Current.Total, "215962.5")
	eq(t, "projected fluid", c.Projected.Amount(entity.CategoryFluid), "45000")
	eq(t, "projected scrap", c.Projected.Amount(entity.CategoryScrap), "71093.75")
	eq(t, "projected total", c.Projected.Total, "133173.75")
	eq(t, "savings", c.Savings.Total, "82788.75")

	if c.Reference.Selector != entity.ReferenceFluidAdditives {
		t.Errorf("reference = %s", c.Reference.Selector)
	}
	eq(t, "reference", c.Reference.Amount, "90000")
	if !c.ROI.Defined {
		t.Fatal("ROI should be defined")
	}
	eq(t, "roi", c.ROI.Value, "0.919875")

	if len(c.Schedules) != 1 {
		t.Fatalf("got %d schedules, want 1", len(c.Schedules))
	}
	if got := c.Schedules[0].Projected.Frequency; got != 8 {
		t.Errorf("projected frequency = %d, want floor(12 × 0.7) = 8", got)
	}

	eq(t, "month 12 current", c.Projection.Current[11], "215962.5")
	eq(t, "month 12 projected", c.Projection.Projected[11], "133173.75")
}

func TestCompute_Overrides(t *testing.T) {
	rates, err := entity.NewSavingsRates(map[string]float64{"maintenance": 30})
	if err != nil {
		t.Fatalf("NewSavingsRates: %v", err)
	}
	retention := decimal.RequireFromString("0.25")
	ref, err := entity.NewReference("custom", 0)
	if err != nil {
		t.Fatalf("NewReference: %v", err)
	}

	c, err := Compute(mustConfig(t, legacyInput()), Request{
		Rates:     rates,
		Reference: ref,
		Retention: &retention,
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	eq(t, "projected total", c.Projected.Total, "210892.5")
	eq(t, "savings", c.Savings.Total, "5070")
	if c.ROI.Defined {
		t.Error("ROI over a zero custom reference must be undefined")
	}
	if got := c.Schedules[0].Projected.Frequency; got != 3 {
		t.Errorf("projected frequency = %d, want 3", got)
	}
}

func TestCompute_ScrapPolicyOverride(t *testing.T) {
	in := legacyInput()
	c, err := Compute(mustConfig(t, in), Request{ScrapPolicy: entity.ScrapBurden})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if c.ScrapPolicy != entity.ScrapBurden {
		t.Errorf("policy = %s", c.ScrapPolicy)
	}
	// 2.5% of 90000 + 7500 + 16900
	eq(t, "burden scrap", c.Current.Amount(entity.CategoryScrap), "2860")
}

func TestCompute_Errors(t *testing.T) {
	cfg := mustConfig(t, legacyInput())
	badRetention := decimal.RequireFromString("1.5")

	testCases := []struct {
		name string
		cfg  entity.ProcessConfiguration
		req  Request
		want error
	}{
		{"hand-built configuration", entity.ProcessConfiguration{}, Request{}, entity.ErrConfigurationMismatch},
		{"retention above one", cfg, Request{Retention: &badRetention}, entity.ErrInvalidInput},
		{"rate above one", cfg, Request{Rates: entity.SavingsRates{entity.CategoryFluid: decimal.NewFromInt(2)}}, entity.ErrConfigurationMismatch},
		{"unknown policy", cfg, Request{ScrapPolicy: "weighted"}, entity.ErrInvalidInput},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(tc.cfg, tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCompute_Concurrent(t *testing.T) {
	cfg := mustConfig(t, legacyInput())
	want, err := Compute(cfg, Request{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Compute(cfg, Request{})
			if err != nil {
				errs <- err
				return
			}
			if !got.Projected.Total.Equal(want.Projected.Total) {
				errs <- errors.New("projected total differs between concurrent runs")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestCompareScenarios(t *testing.T) {
	current := mustConfig(t, legacyInput())

	alt := legacyInput()
	alt.Fluid.PricePerUnit = 22
	alt.Disposal.RatePerUnit = 0.5
	alt.Maintenance.Events[0].Frequency = 6
	projected := mustConfig(t, alt)

	c, err := CompareScenarios(current, projected, Request{})
	if err != nil {
		t.Fatalf("CompareScenarios: %v", err)
	}
	if c.Mode != entity.ModeScenario {
		t.Errorf("mode = %s", c.Mode)
	}
	eq(t, "fluid savings", c.Savings.Amount(entity.CategoryFluid), "-20000")
	eq(t, "disposal savings", c.Savings.Amount(entity.CategoryDisposal), "5000")
	eq(t, "maintenance savings", c.Savings.Amount(entity.CategoryMaintenance), "7200")
	eq(t, "total savings", c.Savings.Total, "-7800")
	if !c.Current.Total.Sub(c.Savings.Total).Equal(c.Projected.Total) {
		t.Error("scenario savings do not reconcile the totals")
	}
	if got := c.Schedules[0].Projected.Frequency; got != 6 {
		t.Errorf("projected frequency = %d, want 6", got)
	}
}

func TestCompareScenarios_EventOnlyInProjected(t *testing.T) {
	current := mustConfig(t, legacyInput())

	alt := legacyInput()
	alt.Maintenance.Events = append(alt.Maintenance.Events,
		entity.MaintenanceEventInput{Label: "sump clean", EventCost: 300, Frequency: 4})
	projected := mustConfig(t, alt)

	c, err := CompareScenarios(current, projected, Request{})
	if err != nil {
		t.Fatalf("CompareScenarios: %v", err)
	}
	if len(c.Schedules) != 2 {
		t.Fatalf("schedules = %d, want 2", len(c.Schedules))
	}
	added := c.Schedules[1]
	if added.Label != "sump clean" {
		t.Fatalf("label = %q", added.Label)
	}
	if added.Current.Frequency != 0 || len(added.Current.Intervals) != 0 {
		t.Errorf("current side should be empty, got %+v", added.Current)
	}
	if added.Projected.Frequency != 4 || len(added.Projected.Intervals) != 4 {
		t.Errorf("projected side = %+v", added.Projected)
	}
	eq(t, "covered months", added.Projected.CoveredMonths(), "12")
	eq(t, "maintenance savings", c.Savings.Amount(entity.CategoryMaintenance), "-1200")
}

func TestCompareScenarios_Mismatch(t *testing.T) {
	current := mustConfig(t, legacyInput())

	other := legacyInput()
	other.ProcessType = "generic"
	if _, err := CompareScenarios(current, mustConfig(t, other), Request{}); !errors.Is(err, entity.ErrConfigurationMismatch) {
		t.Errorf("process type mismatch: got %v", err)
	}

	burden := legacyInput()
	burden.Scrap.Policy = "burden"
	if _, err := CompareScenarios(current, mustConfig(t, burden), Request{}); !errors.Is(err, entity.ErrConfigurationMismatch) {
		t.Errorf("scrap policy mismatch: got %v", err)
	}
}

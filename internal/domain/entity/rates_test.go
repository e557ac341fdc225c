package entity

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewSavingsRates(t *testing.T) {
	rates, err := NewSavingsRates(map[string]float64{"Maintenance": 30, "fluid": 0, "scrap": 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rates.Rate(CategoryMaintenance).String(); got != "0.3" {
		t.Errorf("maintenance = %s, want 0.3", got)
	}
	if got := rates.Rate(CategoryScrap).String(); got != "1" {
		t.Errorf("scrap = %s, want 1", got)
	}
	if !rates.Rate(CategoryTooling).IsZero() {
		t.Error("missing category must default to zero")
	}
}

func TestNewSavingsRates_Errors(t *testing.T) {
	testCases := []struct {
		name string
		in   map[string]float64
		kind *Error
	}{
		{"above 100", map[string]float64{"fluid": 150}, ErrConfigurationMismatch},
		{"negative", map[string]float64{"fluid": -5}, ErrInvalidInput},
		{"unknown category", map[string]float64{"coolant": 5}, ErrInvalidInput},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSavingsRates(tc.in)
			if !errors.Is(err, tc.kind) {
				t.Fatalf("got %v, want %v", err, tc.kind)
			}
		})
	}
}

func TestDefaultRatesAreCopies(t *testing.T) {
	v, err := LookupProcessVariant(ProcessForming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := v.DefaultRates()
	r[CategoryFluid] = decimal.NewFromInt(1)

	again := v.DefaultRates()
	if got := again.Rate(CategoryFluid).String(); got != "0.5" {
		t.Errorf("default fluid rate changed to %s", got)
	}
}

func TestValidateHandBuiltRates(t *testing.T) {
	r := SavingsRates{CategoryFluid: decimal.NewFromFloat(1.2)}
	if err := r.Validate(); !errors.Is(err, ErrConfigurationMismatch) {
		t.Errorf("got %v, want configuration mismatch", err)
	}
}

func TestRatioUndefined(t *testing.T) {
	r := NewRatio(decimal.NewFromInt(10), decimal.Zero)
	if r.Defined {
		t.Fatal("ratio over zero must be undefined")
	}
	if _, err := r.Float(); !errors.Is(err, ErrUndefinedRatio) {
		t.Errorf("Float() error = %v, want undefined ratio", err)
	}

	ok := NewRatio(decimal.NewFromInt(10), decimal.NewFromInt(4))
	f, err := ok.Float()
	if err != nil || f != 2.5 {
		t.Errorf("Float() = %v, %v; want 2.5", f, err)
	}
}

func TestNewReference(t *testing.T) {
	ref, err := NewReference("", 0)
	if err != nil || ref.Selector != ReferenceFluidAdditives {
		t.Errorf("default reference = %+v, %v", ref, err)
	}
	ref, err = NewReference("custom", 1000)
	if err != nil || ref.Amount.String() != "1000" {
		t.Errorf("custom reference = %+v, %v", ref, err)
	}
	if _, err := NewReference("payroll", 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown selector: %v", err)
	}
}

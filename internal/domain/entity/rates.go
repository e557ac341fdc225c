package entity

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// SavingsRates maps a category to its reduction fraction in [0, 1].
// A category without an entry is not reduced.
type SavingsRates map[Category]decimal.Decimal

func ratesFromFractions(in map[Category]float64) SavingsRates {
	out := make(SavingsRates, len(in))
	for c, f := range in {
		out[c] = decimal.NewFromFloat(f)
	}
	return out
}

// NewSavingsRates normalizes user facing percentages (30 means 30%) into fractions.
func NewSavingsRates(percent map[string]float64) (SavingsRates, error) {
	return SavingsRates{}.WithOverrides(percent)
}

// WithOverrides returns a copy of r with the given percentages applied on top.
func (r SavingsRates) WithOverrides(percent map[string]float64) (SavingsRates, error) {
	out := r.Clone()

	// ordem determinística para que o primeiro erro seja sempre o mesmo
	keys := make([]string, 0, len(percent))
	for k := range percent {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		c, err := ParseCategory(k)
		if err != nil {
			return nil, err
		}
		p := percent[k]
		field := "rates." + string(c)
		switch {
		case math.IsNaN(p) || math.IsInf(p, 0):
			return nil, invalidInput(field, "must be a finite number")
		case p < 0:
			return nil, invalidInput(field, "rate must not be negative (got %v%%)", p)
		case p > 100:
			return nil, mismatch(field, "rate %v%% exceeds 100%%", p)
		}
		out[c] = decimal.NewFromFloat(p).Div(decimalHundred)
	}
	return out, nil
}

// Clone copies the table so callers never share the defaults.
func (r SavingsRates) Clone() SavingsRates {
	out := make(SavingsRates, len(r))
	for c, v := range r {
		out[c] = v
	}
	return out
}

// Rate returns the reduction fraction of c, zero when absent.
func (r SavingsRates) Rate(c Category) decimal.Decimal {
	if v, ok := r[c]; ok {
		return v
	}
	return decimal.Zero
}

// Validate checks every fraction lies in [0, 1]. Tables built through
// NewSavingsRates are always valid; this guards hand-built maps.
func (r SavingsRates) Validate() error {
	for _, c := range r.Categories() {
		v := r[c]
		if v.IsNegative() {
			return invalidInput("rates."+string(c), "rate must not be negative (got %s)", v.String())
		}
		if v.GreaterThan(decimalOne) {
			return mismatch("rates."+string(c), "rate %s exceeds 1.0", v.String())
		}
	}
	return nil
}

// Categories lists the categories with an entry, in canonical order.
func (r SavingsRates) Categories() []Category {
	out := make([]Category, 0, len(r))
	for c := range r {
		out = append(out, c)
	}
	sortCategories(out)
	return out
}

func sortCategories(cs []Category) {
	sort.Slice(cs, func(i, j int) bool {
		ri, rj := cs[i].rank(), cs[j].rank()
		if ri != rj {
			return ri < rj
		}
		return cs[i] < cs[j]
	})
}

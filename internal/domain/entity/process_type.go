package entity

import (
	"sort"
	"strings"
)

// ProcessType tags the family of manufacturing process being compared.
type ProcessType string

const (
	ProcessForming     ProcessType = "forming"
	ProcessSubtractive ProcessType = "subtractive"
	ProcessGeneric     ProcessType = "generic"
)

// ScrapPolicy selects how the scrap category is computed.
type ScrapPolicy string

const (
	// ScrapUnitCost prices rejected units: units × scrap fraction × unit cost.
	ScrapUnitCost ScrapPolicy = "unit_cost"
	// ScrapBurden treats scrap as a surcharge on every other category.
	ScrapBurden ScrapPolicy = "burden"
)

// ParseScrapPolicy validates a policy name. Dashes are accepted for underscores.
func ParseScrapPolicy(s string) (ScrapPolicy, error) {
	p := ScrapPolicy(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch p {
	case ScrapUnitCost, ScrapBurden:
		return p, nil
	}
	return "", invalidInput("scrap.policy", "unknown scrap policy %q (expected unit_cost or burden)", s)
}

// ProcessVariant describes one process type: which categories it tracks and
// which defaults apply when the configuration is silent.
type ProcessVariant struct {
	Type        ProcessType `json:"type"`
	Label       string      `json:"label"`
	Categories  []Category  `json:"categories"`
	ScrapPolicy ScrapPolicy `json:"scrap_policy"`
	rates       map[Category]float64
}

// Allows reports whether the variant's schema contains the category.
func (v ProcessVariant) Allows(c Category) bool {
	for _, vc := range v.Categories {
		if vc == c {
			return true
		}
	}
	return false
}

// DefaultRates returns a fresh copy of the variant's default rate table.
func (v ProcessVariant) DefaultRates() SavingsRates {
	return ratesFromFractions(v.rates)
}

// Tabela legada de taxas de redução (valores fixos da primeira versão da calculadora).
var legacyRates = map[Category]float64{
	CategoryTooling:     0.30,
	CategoryFluid:       0.50,
	CategoryScrap:       0.30,
	CategoryMaintenance: 0.30,
	CategoryLabor:       0.30,
	CategoryDisposal:    0.30,
}

var processVariants = map[ProcessType]ProcessVariant{
	ProcessForming: {
		Type:  ProcessForming,
		Label: "Forming (stamping, drawing)",
		Categories: []Category{
			CategoryFluid, CategoryDisposal, CategoryMaintenance,
			CategoryTooling, CategoryLabor, CategoryScrap,
		},
		ScrapPolicy: ScrapUnitCost,
		rates:       legacyRates,
	},
	ProcessSubtractive: {
		Type:        ProcessSubtractive,
		Label:       "Subtractive (machining, grinding)",
		Categories:  Categories(),
		ScrapPolicy: ScrapBurden,
		rates:       legacyRates,
	},
	ProcessGeneric: {
		Type:        ProcessGeneric,
		Label:       "Generic process",
		Categories:  Categories(),
		ScrapPolicy: ScrapUnitCost,
		rates:       legacyRates,
	},
}

// LookupProcessVariant resolves a process type; an empty string means generic.
func LookupProcessVariant(t ProcessType) (ProcessVariant, error) {
	if t == "" {
		t = ProcessGeneric
	}
	v, ok := processVariants[ProcessType(strings.ToLower(string(t)))]
	if !ok {
		return ProcessVariant{}, invalidInput("process_type", "unknown process type %q", string(t))
	}
	return v.clone(), nil
}

// clone isola a lista de categorias do registro.
func (v ProcessVariant) clone() ProcessVariant {
	v.Categories = append([]Category(nil), v.Categories...)
	return v
}

// ProcessVariants lists the registry sorted by type name.
func ProcessVariants() []ProcessVariant {
	out := make([]ProcessVariant, 0, len(processVariants))
	for _, v := range processVariants {
		out = append(out, v.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

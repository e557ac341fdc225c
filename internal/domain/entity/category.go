package entity

import (
	"fmt"
	"strings"
)

// Category names one line of the cost of ownership.
type Category string

const (
	CategoryFluid       Category = "fluid"
	CategoryDisposal    Category = "disposal"
	CategoryMaintenance Category = "maintenance"
	CategoryTooling     Category = "tooling"
	CategoryAdditives   Category = "additives"
	CategoryLabor       Category = "labor"
	CategoryScrap       Category = "scrap"
)

// Scrap stays last: the burden policy needs every other total first.
var categoryOrder = []Category{
	CategoryFluid,
	CategoryDisposal,
	CategoryMaintenance,
	CategoryTooling,
	CategoryAdditives,
	CategoryLabor,
	CategoryScrap,
}

var categoryLabels = map[Category]string{
	CategoryFluid:       "Fluid Purchase",
	CategoryDisposal:    "Fluid Disposal",
	CategoryMaintenance: "Maintenance & Die Costs",
	CategoryTooling:     "Tooling & Changeovers",
	CategoryAdditives:   "Additives",
	CategoryLabor:       "Labor",
	CategoryScrap:       "Scrap & Waste",
}

// Categories returns every category in canonical order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := categoryLabels[c]; !ok {
		return "", invalidInput("category", "unknown category %q", s)
	}
	return c, nil
}

// Label is the human readable name used in tables and reports.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return fmt.Sprintf("Unknown (%s)", string(c))
}

// IsBase reports whether the category is part of the scrap burden base.
func (c Category) IsBase() bool {
	return c != CategoryScrap
}

// rank gives the canonical position, used for ordering map keys.
func (c Category) rank() int {
	for i, o := range categoryOrder {
		if o == c {
			return i
		}
	}
	return len(categoryOrder)
}

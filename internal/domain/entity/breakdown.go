package entity

import "github.com/shopspring/decimal"

// CostBreakdown is the annual cost per category plus the derived total.
type CostBreakdown struct {
	Amounts map[Category]decimal.Decimal `json:"amounts"`
	Total   decimal.Decimal              `json:"total"`
}

// NewCostBreakdown copies amounts and derives the total.
func NewCostBreakdown(amounts map[Category]decimal.Decimal) CostBreakdown {
	b := CostBreakdown{
		Amounts: make(map[Category]decimal.Decimal, len(amounts)),
		Total:   decimal.Zero,
	}
	for c, a := range amounts {
		b.Amounts[c] = a
		b.Total = b.Total.Add(a)
	}
	return b
}

// Has reports whether the category is present.
func (b CostBreakdown) Has(c Category) bool {
	_, ok := b.Amounts[c]
	return ok
}

// Amount returns the amount of c, zero when the category is absent.
func (b CostBreakdown) Amount(c Category) decimal.Decimal {
	if a, ok := b.Amounts[c]; ok {
		return a
	}
	return decimal.Zero
}

// Categories lists the present categories in canonical order.
func (b CostBreakdown) Categories() []Category {
	out := make([]Category, 0, len(b.Amounts))
	for c := range b.Amounts {
		out = append(out, c)
	}
	sortCategories(out)
	return out
}

// BaseTotal is the total without scrap, i.e. the burden base.
func (b CostBreakdown) BaseTotal() decimal.Decimal {
	sum := decimal.Zero
	for c, a := range b.Amounts {
		if c.IsBase() {
			sum = sum.Add(a)
		}
	}
	return sum
}

// SavingsBreakdown holds current − projected per category. Amounts are signed:
// an explicit projected scenario can cost more in a category.
type SavingsBreakdown struct {
	Amounts map[Category]decimal.Decimal `json:"amounts"`
	Total   decimal.Decimal              `json:"total_savings"`
}

// Amount returns the saving of c, zero when absent.
func (s SavingsBreakdown) Amount(c Category) decimal.Decimal {
	if a, ok := s.Amounts[c]; ok {
		return a
	}
	return decimal.Zero
}

// Categories lists the categories in canonical order.
func (s SavingsBreakdown) Categories() []Category {
	out := make([]Category, 0, len(s.Amounts))
	for c := range s.Amounts {
		out = append(out, c)
	}
	sortCategories(out)
	return out
}

// WaterfallStep is one signed contribution between the current and projected totals.
type WaterfallStep struct {
	Category     Category        `json:"category"`
	Label        string          `json:"label"`
	Change       decimal.Decimal `json:"change"`
	RunningTotal decimal.Decimal `json:"running_total"`
}

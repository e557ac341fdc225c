// Package format renders decimal amounts for terminals and reports.
package format

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money formats d as dollars with thousands separators and two decimals.
func Money(d decimal.Decimal) string {
	s := humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}

// SignedMoney is Money with an explicit sign, for waterfall steps.
func SignedMoney(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + Money(d)
	}
	return Money(d)
}

// Percent formats a fraction (0.25) as "25.0%".
func Percent(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).StringFixed(1) + "%"
}

// Months formats a month offset such as 1.5 or 2.4.
func Months(d decimal.Decimal) string {
	return d.Round(2).String()
}

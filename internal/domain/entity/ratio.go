package entity

import "github.com/shopspring/decimal"

// Ratio is a quotient that may be undefined (zero denominator). It is never
// computed against a substituted denominator.
type Ratio struct {
	Value   decimal.Decimal `json:"value"`
	Defined bool            `json:"defined"`
	Reason  string          `json:"reason,omitempty"`
}

// NewRatio divides num by den, or returns an undefined ratio when den is zero.
func NewRatio(num, den decimal.Decimal) Ratio {
	if den.IsZero() {
		return Ratio{Value: decimal.Zero, Reason: "reference amount is zero"}
	}
	return Ratio{Value: num.Div(den), Defined: true}
}

// Float returns the ratio as a float64, or an UndefinedRatio error.
func (r Ratio) Float() (float64, error) {
	if !r.Defined {
		msg := r.Reason
		if msg == "" {
			msg = "ratio is undefined"
		}
		return 0, &Error{Kind: KindUndefinedRatio, Message: msg}
	}
	return r.Value.InexactFloat64(), nil
}

package entity

import "github.com/shopspring/decimal"

// Interval is one event slot of a maintenance schedule, in months from the
// start of the year.
type Interval struct {
	Index      int             `json:"index"`
	Label      string          `json:"label"`
	StartMonth decimal.Decimal `json:"start_month"`
	EndMonth   decimal.Decimal `json:"end_month"`
	Width      decimal.Decimal `json:"width"`
	Cost       decimal.Decimal `json:"cost"`
}

// MaintenanceSchedule tiles the 12-month year with Frequency intervals.
// A zero Frequency means the event no longer happens and Intervals is empty.
type MaintenanceSchedule struct {
	Label     string          `json:"label"`
	Frequency int             `json:"frequency"`
	EventCost decimal.Decimal `json:"event_cost"`
	Intervals []Interval      `json:"intervals"`
}

// AnnualCost is event cost × frequency.
func (s MaintenanceSchedule) AnnualCost() decimal.Decimal {
	return s.EventCost.Mul(decimal.NewFromInt(int64(s.Frequency)))
}

// CoveredMonths sums the interval widths.
func (s MaintenanceSchedule) CoveredMonths() decimal.Decimal {
	sum := decimal.Zero
	for _, iv := range s.Intervals {
		sum = sum.Add(iv.Width)
	}
	return sum
}

// EventSchedule pairs the before and after timeline of one maintenance event.
type EventSchedule struct {
	Label     string              `json:"label"`
	Current   MaintenanceSchedule `json:"current"`
	Projected MaintenanceSchedule `json:"projected"`
}

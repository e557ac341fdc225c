// Package projection expands annual figures over the months of a year.
package projection

import (
	"fmt"

	"github.com/diillson/tco-compare-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MonthsPerYear is the horizon of every projection.
const MonthsPerYear = 12

var (
	decimalTwelve = decimal.NewFromInt(MonthsPerYear)
	monthNames    = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// ErrNonPositiveFrequency is returned when a schedule is requested for N ≤ 0.
// It matches entity.ErrInvalidInput.
var ErrNonPositiveFrequency = &entity.Error{
	Kind:    entity.KindInvalidInput,
	Field:   "frequency",
	Message: "non-positive frequency",
}

// Months returns the month labels of the projection.
func Months() []string {
	out := make([]string, len(monthNames))
	copy(out, monthNames)
	return out
}

// MonthlyRate is annual / 12.
func MonthlyRate(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(decimalTwelve)
}

// Cumulative returns 12 straight-line points, point[i] = annual/12 × i.
// Each point is computed as annual × i / 12 so the last equals annual exactly.
func Cumulative(annual decimal.Decimal) []decimal.Decimal {
	points := make([]decimal.Decimal, MonthsPerYear)
	for i := 1; i <= MonthsPerYear; i++ {
		points[i-1] = annual.Mul(decimal.NewFromInt(int64(i))).Div(decimalTwelve)
	}
	return points
}

// CumulativePair expands both totals with the same monthly basis.
func CumulativePair(current, projected decimal.Decimal) entity.CumulativeProjection {
	return entity.CumulativeProjection{
		Months:           Months(),
		CurrentMonthly:   MonthlyRate(current),
		ProjectedMonthly: MonthlyRate(projected),
		Current:          Cumulative(current),
		Projected:        Cumulative(projected),
	}
}

// Intervals tiles the year with frequency slots of width 12/frequency.
// Interval k spans [12k/N, 12(k+1)/N); the widths telescope to exactly 12.
func Intervals(label string, frequency int, eventCost decimal.Decimal) (entity.MaintenanceSchedule, error) {
	if frequency <= 0 {
		return entity.MaintenanceSchedule{}, fmt.Errorf("%w: %d events/year for %q", ErrNonPositiveFrequency, frequency, label)
	}

	n := decimal.NewFromInt(int64(frequency))
	boundary := func(k int) decimal.Decimal {
		return decimal.NewFromInt(int64(MonthsPerYear * k)).Div(n)
	}

	schedule := entity.MaintenanceSchedule{
		Label:     label,
		Frequency: frequency,
		EventCost: eventCost,
		Intervals: make([]entity.Interval, 0, frequency),
	}
	start := boundary(0)
	for k := 0; k < frequency; k++ {
		end := boundary(k + 1)
		schedule.Intervals = append(schedule.Intervals, entity.Interval{
			Index:      k + 1,
			Label:      label,
			StartMonth: start,
			EndMonth:   end,
			Width:      end.Sub(start),
			Cost:       eventCost,
		})
		start = end
	}
	return schedule, nil
}

// ReducedFrequency is max(1, floor(n × retention)).
func ReducedFrequency(n int, retention decimal.Decimal) int {
	reduced := decimal.NewFromInt(int64(n)).Mul(retention).Floor().IntPart()
	if reduced < 1 {
		return 1
	}
	return int(reduced)
}

// Pair builds the before/after schedules of one event. A projected frequency
// of zero yields an empty projected schedule instead of an error: the event
// simply no longer happens.
func Pair(label string, eventCost decimal.Decimal, currentFreq, projectedFreq int, projectedCost decimal.Decimal) (entity.EventSchedule, error) {
	cur, err := Intervals(label, currentFreq, eventCost)
	if err != nil {
		return entity.EventSchedule{}, err
	}

	pair := entity.EventSchedule{Label: label, Current: cur}
	if projectedFreq == 0 {
		pair.Projected = entity.MaintenanceSchedule{Label: label, EventCost: projectedCost}
		return pair, nil
	}

	pair.Projected, err = Intervals(label, projectedFreq, projectedCost)
	if err != nil {
		return entity.EventSchedule{}, err
	}
	return pair, nil
}

package queries

import (
	"errors"

	"dzdelivery/internal/pkg/guard"
)

var ErrPeakHoursQueryIsNotConstructed = errors.New(
	"PeakHoursQuery must be created via NewPeakHoursQuery constructor",
)

// peakHoursLimit caps the report at the busiest slots.
const peakHoursLimit = 10

// PeakHoursQuery finds the busiest hours of the past week, ranked by average
// demand ratio. Restaurants use it to staff up, couriers to pick shifts.
type PeakHoursQuery struct {
	guard guard.ConstructorGuard
}

// NewPeakHoursQuery creates a query for the weekly peak hours report.
func NewPeakHoursQuery() PeakHoursQuery {
	return PeakHoursQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q PeakHoursQuery) Validate() error {
	return q.guard.Validate(ErrPeakHoursQueryIsNotConstructed)
}

// PeakHour is one ranked slot of the report.
type PeakHour struct {
	Hour     int
	AvgRatio float64
	Samples  int
}

package queries

import (
	"dzdelivery/internal/pkg/errs"
	"dzdelivery/internal/pkg/guard"
	"errors"
)

var ErrDemandTrendsQueryIsNotConstructed = errors.New(
	"DemandTrendsQuery must be created via NewDemandTrendsQuery constructor",
)

const (
	// TrendWindowWeek and TrendWindowMonth are the supported lookback
	// windows for demand trend aggregation, in days.
	TrendWindowWeek  = 7
	TrendWindowMonth = 30
)

// DemandTrendsQuery aggregates stored demand samples into average ratios per
// hour of day and per day of week over a lookback window.
type DemandTrendsQuery struct {
	guard guard.ConstructorGuard
	days  int
}

// NewDemandTrendsQuery creates a trends query over the given window.
// Only the week and month windows are supported.
func NewDemandTrendsQuery(days int) (DemandTrendsQuery, error) {
	if days != TrendWindowWeek && days != TrendWindowMonth {
		return DemandTrendsQuery{}, errs.NewValueIsOutOfRangeError("days", days, TrendWindowWeek, TrendWindowMonth)
	}
	return DemandTrendsQuery{guard: guard.NewConstructorGuard(), days: days}, nil
}

// Days returns the lookback window in days.
func (q DemandTrendsQuery) Days() int {
	return q.days
}

// Validate ensures the query was created through the constructor.
func (q DemandTrendsQuery) Validate() error {
	return q.guard.Validate(ErrDemandTrendsQueryIsNotConstructed)
}

// HourlyTrend is the average demand ratio observed at one hour of the day.
type HourlyTrend struct {
	Hour     int
	AvgRatio float64
	Samples  int
}

// WeeklyTrend is the average demand ratio observed on one ISO day of week.
type WeeklyTrend struct {
	DayOfWeek int
	AvgRatio  float64
	Samples   int
}

// DemandTrendsQueryResponse carries both aggregations.
type DemandTrendsQueryResponse struct {
	Days   int
	Hourly []HourlyTrend
	Weekly []WeeklyTrend
}

package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DemandTrendsQueryHandler aggregates demand samples from the database.
type DemandTrendsQueryHandler struct {
	db *gorm.DB
}

// NewDemandTrendsQueryHandler creates a handler for demand trend queries.
func NewDemandTrendsQueryHandler(db *gorm.DB) DemandTrendsQueryHandler {
	return DemandTrendsQueryHandler{db: db}
}

// Handle executes both aggregations over the query's lookback window.
func (h DemandTrendsQueryHandler) Handle(
	ctx context.Context,
	query DemandTrendsQuery,
) (DemandTrendsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return DemandTrendsQueryResponse{}, err
	}

	since := time.Now().AddDate(0, 0, -query.Days())

	hourly, err := h.hourlyTrends(ctx, since)
	if err != nil {
		return DemandTrendsQueryResponse{}, err
	}

	weekly, err := h.weeklyTrends(ctx, since)
	if err != nil {
		return DemandTrendsQueryResponse{}, err
	}

	return DemandTrendsQueryResponse{
		Days:   query.Days(),
		Hourly: hourly,
		Weekly: weekly,
	}, nil
}

func (h DemandTrendsQueryHandler) hourlyTrends(ctx context.Context, since time.Time) ([]HourlyTrend, error) {
	trends := make([]HourlyTrend, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			hour_of_day,
			AVG(ratio),
			COUNT(*)
		FROM demand_snapshots
		WHERE at >= ?
		GROUP BY hour_of_day
		ORDER BY hour_of_day
	`, since).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var trend HourlyTrend
		if err = rows.Scan(&trend.Hour, &trend.AvgRatio, &trend.Samples); err != nil {
			return nil, err
		}
		trends = append(trends, trend)
	}

	return trends, rows.Err()
}

func (h DemandTrendsQueryHandler) weeklyTrends(ctx context.Context, since time.Time) ([]WeeklyTrend, error) {
	trends := make([]WeeklyTrend, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			day_of_week,
			AVG(ratio),
			COUNT(*)
		FROM demand_snapshots
		WHERE at >= ?
		GROUP BY day_of_week
		ORDER BY day_of_week
	`, since).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var trend WeeklyTrend
		if err = rows.Scan(&trend.DayOfWeek, &trend.AvgRatio, &trend.Samples); err != nil {
			return nil, err
		}
		trends = append(trends, trend)
	}

	return trends, rows.Err()
}

package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// PeakHoursQueryHandler ranks the past week's hours by average demand ratio.
type PeakHoursQueryHandler struct {
	db *gorm.DB
}

// NewPeakHoursQueryHandler creates a handler for the peak hours report.
func NewPeakHoursQueryHandler(db *gorm.DB) PeakHoursQueryHandler {
	return PeakHoursQueryHandler{db: db}
}

// Handle executes the report over the past seven days.
func (h PeakHoursQueryHandler) Handle(ctx context.Context, query PeakHoursQuery) ([]PeakHour, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -TrendWindowWeek)
	peaks := make([]PeakHour, 0, peakHoursLimit)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			hour_of_day,
			AVG(ratio),
			COUNT(*)
		FROM demand_snapshots
		WHERE at >= ?
		GROUP BY hour_of_day
		ORDER BY AVG(ratio) DESC
		LIMIT ?
	`, since, peakHoursLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var peak PeakHour
		if err = rows.Scan(&peak.Hour, &peak.AvgRatio, &peak.Samples); err != nil {
			return nil, err
		}
		peaks = append(peaks, peak)
	}

	return peaks, rows.Err()
}

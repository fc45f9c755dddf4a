package queries

import (
	"context"
	"database/sql"
	"time"

	"dzdelivery/internal/core/domain/model/demand"

	"gorm.io/gorm"
)

// defaultPredictedRatio is returned when no history covers the requested
// slot. A balanced marketplace is the safest assumption.
const defaultPredictedRatio = 1.0

// PredictDemandQueryHandler averages past samples taken in the same hour of
// day and day of week as the requested moment.
type PredictDemandQueryHandler struct {
	db *gorm.DB
}

// NewPredictDemandQueryHandler creates a handler for demand prediction.
func NewPredictDemandQueryHandler(db *gorm.DB) PredictDemandQueryHandler {
	return PredictDemandQueryHandler{db: db}
}

// Handle executes the prediction over the past month of samples.
func (h PredictDemandQueryHandler) Handle(
	ctx context.Context,
	query PredictDemandQuery,
) (PredictDemandQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return PredictDemandQueryResponse{}, err
	}

	since := time.Now().AddDate(0, 0, -TrendWindowMonth)

	var avgRatio sql.NullFloat64
	var samples int
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			AVG(ratio),
			COUNT(*)
		FROM demand_snapshots
		WHERE hour_of_day = ?
		  AND day_of_week = ?
		  AND at >= ?
	`, query.At().Hour(), isoDayOfWeek(query.At()), since).Row()

	if err := row.Scan(&avgRatio, &samples); err != nil {
		return PredictDemandQueryResponse{}, err
	}

	ratio := defaultPredictedRatio
	if avgRatio.Valid {
		ratio = avgRatio.Float64
	}

	return PredictDemandQueryResponse{
		At:             query.At(),
		PredictedRatio: ratio,
		Level:          demand.ClassifyRatio(ratio),
		Samples:        samples,
	}, nil
}

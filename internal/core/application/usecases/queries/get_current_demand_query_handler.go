package queries

import (
	"context"
	"log/slog"
	"time"

	"dzdelivery/internal/core/domain/model/demand"
	"dzdelivery/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetCurrentDemandQueryHandler counts the current marketplace load and
// records it as a demand sample. The sample write is best effort: a failed
// insert is logged and the measurement is still returned, so a read-only
// replica or a full disk never breaks the surge calculation.
type GetCurrentDemandQueryHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGetCurrentDemandQueryHandler creates a handler for demand measurement.
func NewGetCurrentDemandQueryHandler(db *gorm.DB, logger *slog.Logger) GetCurrentDemandQueryHandler {
	return GetCurrentDemandQueryHandler{db: db, logger: logger}
}

// Handle executes the measurement.
func (h GetCurrentDemandQueryHandler) Handle(
	ctx context.Context,
	query GetCurrentDemandQuery,
) (GetCurrentDemandQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCurrentDemandQueryResponse{}, err
	}

	var activeOrders int
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE status IN (?, ?)
	`, order.StatusPending, order.StatusConfirmed).Scan(&activeOrders).Error
	if err != nil {
		return GetCurrentDemandQueryResponse{}, err
	}

	var availableCouriers int
	err = h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM couriers
		WHERE is_online AND is_available
	`).Scan(&availableCouriers).Error
	if err != nil {
		return GetCurrentDemandQueryResponse{}, err
	}

	snapshot := demand.NewSnapshot(time.Now(), activeOrders, availableCouriers)
	h.recordSample(ctx, snapshot)

	return GetCurrentDemandQueryResponse{
		At:                snapshot.At,
		ActiveOrders:      snapshot.ActiveOrders,
		AvailableCouriers: snapshot.AvailableCouriers,
		Ratio:             snapshot.Ratio,
		Level:             snapshot.Level,
	}, nil
}

func (h GetCurrentDemandQueryHandler) recordSample(ctx context.Context, snapshot demand.Snapshot) {
	err := h.db.WithContext(ctx).Exec(`
		INSERT INTO demand_snapshots
			(at, active_orders, available_couriers, ratio, level, hour_of_day, day_of_week)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		snapshot.At,
		snapshot.ActiveOrders,
		snapshot.AvailableCouriers,
		snapshot.Ratio,
		string(snapshot.Level),
		snapshot.At.Hour(),
		isoDayOfWeek(snapshot.At),
	).Error
	if err != nil {
		h.logger.Warn("failed to record demand sample", "error", err)
	}
}

// isoDayOfWeek maps time.Weekday to ISO-8601 numbering, Monday 1 to Sunday 7.
func isoDayOfWeek(t time.Time) int {
	return int(t.Weekday()+6)%7 + 1
}

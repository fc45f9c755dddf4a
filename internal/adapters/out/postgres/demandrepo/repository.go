// Package demandrepo persists demand snapshots and counts live marketplace
// load for the demand multiplier.
package demandrepo

import (
	"context"
	"time"

	"dzdelivery/internal/core/domain/model/demand"
	"dzdelivery/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// SnapshotDTO is one stored demand sample. The hour and ISO day-of-week
// columns are denormalized at write time so the trend aggregations stay
// simple GROUP BYs.
type SnapshotDTO struct {
	ID                int64     `gorm:"primaryKey;autoIncrement"`
	At                time.Time `gorm:"index"`
	ActiveOrders      int
	AvailableCouriers int
	Ratio             float64
	Level             string `gorm:"size:16"`
	HourOfDay         int    `gorm:"index"`
	DayOfWeek         int    `gorm:"index"`
}

// TableName overrides GORM's default naming to use "demand_snapshots".
func (SnapshotDTO) TableName() string {
	return "demand_snapshots"
}

// GormDemandRepository implements ports.DemandRepository using GORM.
type GormDemandRepository struct {
	db *gorm.DB
}

// NewGormDemandRepository creates a new GORM demand repository.
func NewGormDemandRepository(db *gorm.DB) *GormDemandRepository {
	return &GormDemandRepository{db: db}
}

// CountActiveOrders counts orders in a non-terminal status.
func (r *GormDemandRepository) CountActiveOrders(ctx context.Context) (int, error) {
	var count int64

	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE status NOT IN (?, ?)
	`, order.StatusDelivered, order.StatusCancelled).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// CountAvailableCouriers counts couriers currently cleared for dispatch.
func (r *GormDemandRepository) CountAvailableCouriers(ctx context.Context) (int, error) {
	var count int64

	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM couriers
		WHERE is_online AND is_available AND is_verified AND is_active
	`).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// SaveSnapshot persists one sampled demand observation.
func (r *GormDemandRepository) SaveSnapshot(ctx context.Context, snapshot demand.Snapshot) error {
	dto := SnapshotDTO{
		At:                snapshot.At,
		ActiveOrders:      snapshot.ActiveOrders,
		AvailableCouriers: snapshot.AvailableCouriers,
		Ratio:             snapshot.Ratio,
		Level:             string(snapshot.Level),
		HourOfDay:         snapshot.At.Hour(),
		DayOfWeek:         int(snapshot.At.Weekday()+6)%7 + 1,
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

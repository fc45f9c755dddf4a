package courierrepo

import (
	"context"
	"errors"

	"dzdelivery/internal/core/domain/model/courier"
	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/ports"
	"dzdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker registers aggregates modified within the unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing courier to the database.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	dto := fromDomain(aggregate)

	// Select("*") forces zero values (cleared flags) to be written as well.
	result := r.db.WithContext(ctx).Model(&CourierDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	var dto CourierDTO

	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllDispatchable retrieves couriers currently cleared for dispatch.
func (r *GormCourierRepository) GetAllDispatchable(ctx context.Context) ([]*courier.Courier, error) {
	var dtos []CourierDTO

	err := r.db.WithContext(ctx).
		Where("is_online AND is_available AND is_verified AND is_active").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, restoreErr := toDomain(dto)
		if restoreErr != nil {
			return nil, restoreErr
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}

// Acquire reserves a courier with a guarded update: the availability flag is
// cleared only while the courier is still dispatchable. A zero row count
// means someone else reserved the courier first.
func (r *GormCourierRepository) Acquire(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Model(&CourierDTO{}).
		Where("id = ? AND is_online AND is_available AND is_verified AND is_active", id.Bytes()).
		Update("is_available", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrPreconditionFailed
	}

	return nil
}

// Release frees a previously acquired courier.
func (r *GormCourierRepository) Release(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Model(&CourierDTO{}).
		Where("id = ?", id.Bytes()).
		Update("is_available", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", id)
	}

	return nil
}

package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/order"
	"dzdelivery/internal/core/ports"
	"dzdelivery/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker registers aggregates modified within the unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its initial history entry. A unique
// violation on the insert can only come from the number column, the sole
// unique index on orders besides the random primary key, and is surfaced as
// ports.ErrDuplicateOrderNumber so placement can redraw the sequence.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %s", ports.ErrDuplicateOrderNumber, aggregate.Number())
		}
		return err
	}

	if change := aggregate.LastChange(); change != nil {
		if err := r.AppendHistory(ctx, *change); err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order without preconditions.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	dto := fromDomain(aggregate)

	// Select("*") forces zero values (cleared courier, false flags) to be
	// written as well.
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateGuarded saves the order only while the stored row still holds
// expectedStatus. When the update binds a courier, the stored courier must
// additionally still be null or already the same courier. A zero row count
// means a concurrent writer won and the caller must reload.
func (r *GormOrderRepository) UpdateGuarded(
	ctx context.Context,
	aggregate *order.Order,
	expectedStatus order.Status,
) error {
	dto := fromDomain(aggregate)

	query := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expectedStatus.String())
	if dto.CourierID != nil {
		query = query.Where("courier_id IS NULL OR courier_id = ?", *dto.CourierID)
	}

	result := query.Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrPreconditionFailed
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	var dto OrderDTO

	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its human-readable number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	var dto OrderDTO

	err := r.db.WithContext(ctx).First(&dto, "number = ?", number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInPendingStatus retrieves orders awaiting a courier, oldest first.
func (r *GormOrderRepository) GetAllInPendingStatus(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO

	err := r.db.WithContext(ctx).
		Where("status = ?", order.StatusPending.String()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, restoreErr := toDomain(dto)
		if restoreErr != nil {
			return nil, restoreErr
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}

// AppendHistory persists one status change audit record.
func (r *GormOrderRepository) AppendHistory(ctx context.Context, change order.StatusChange) error {
	dto := historyFromDomain(change)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetHistory retrieves the full audit trail of an order, oldest first.
func (r *GormOrderRepository) GetHistory(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	var dtos []StatusChangeDTO

	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	history := make([]order.StatusChange, 0, len(dtos))
	for _, dto := range dtos {
		change, convErr := historyToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		history = append(history, change)
	}

	return history, nil
}

// NextDailySequence returns the next order number sequence for the given
// day. It counts existing numbers with the day's prefix; the unique index on
// the number column catches the rare concurrent duplicate, which Add reports
// as ports.ErrDuplicateOrderNumber for the caller to redraw.
func (r *GormOrderRepository) NextDailySequence(ctx context.Context, day time.Time) (int, error) {
	prefix := fmt.Sprintf("DZ-%s-%%", day.Format("20060102"))

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("number LIKE ?", prefix).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count) + 1, nil
}

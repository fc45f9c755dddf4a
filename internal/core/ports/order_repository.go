package ports

import (
	"context"
	"errors"
	"time"

	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/order"
)

// ErrDuplicateOrderNumber is returned by Add when the order number is
// already taken by a concurrent checkout. The failed insert aborts the
// surrounding transaction, so the caller redraws the daily sequence and
// retries in a fresh unit of work.
var ErrDuplicateOrderNumber = errors.New("order number already taken")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its initial status
	// history entry. It returns ErrDuplicateOrderNumber when the number
	// unique index rejects the insert.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate without any
	// precondition. Used for fields outside the status machine.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateGuarded persists the aggregate only while the stored row still
	// holds expectedStatus, and, when the update binds a courier to a
	// previously unassigned order, only while the stored courier is still
	// null. It returns ErrPreconditionFailed when a concurrent writer got
	// there first; the caller reloads and re-runs the domain checks.
	UpdateGuarded(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-readable number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetAllInPendingStatus retrieves orders awaiting a courier, oldest
	// first. Used by the dispatch job.
	GetAllInPendingStatus(ctx context.Context) ([]*order.Order, error)

	// AppendHistory persists one status change audit record.
	AppendHistory(ctx context.Context, change order.StatusChange) error

	// GetHistory retrieves the full audit trail of an order, oldest first.
	GetHistory(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error)

	// NextDailySequence returns the next order number sequence value for
	// the given day, starting at 1.
	NextDailySequence(ctx context.Context, day time.Time) (int, error)
}

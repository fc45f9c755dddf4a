package ports

import (
	"context"

	"dzdelivery/internal/core/domain/model/courier"
	"dzdelivery/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllDispatchable retrieves couriers currently cleared for dispatch:
	// online, available, verified, and active.
	GetAllDispatchable(ctx context.Context) ([]*courier.Courier, error)

	// Acquire reserves a courier for an order with a guarded update: the
	// availability flag is cleared only while it is still set and the
	// courier is still dispatchable. It returns ErrPreconditionFailed when
	// the courier was reserved or withdrawn concurrently.
	Acquire(ctx context.Context, id kernel.UUID) error

	// Release frees a previously acquired courier.
	Release(ctx context.Context, id kernel.UUID) error
}

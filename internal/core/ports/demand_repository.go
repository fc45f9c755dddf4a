package ports

import (
	"context"

	"dzdelivery/internal/core/domain/model/demand"
)

// DemandRepository defines the persistence contract for demand sampling.
// Historical analytics (trends, peak hours, prediction) read the stored
// snapshots directly through query handlers.
type DemandRepository interface {
	// CountActiveOrders counts orders in a non-terminal status.
	CountActiveOrders(ctx context.Context) (int, error)

	// CountAvailableCouriers counts couriers currently cleared for dispatch.
	CountAvailableCouriers(ctx context.Context) (int, error)

	// SaveSnapshot persists one sampled demand observation.
	SaveSnapshot(ctx context.Context, snapshot demand.Snapshot) error
}

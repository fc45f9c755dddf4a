package ports

import (
	"context"

	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/order"
)

// Notifier pushes order events to the affected parties. Delivery is best
// effort: handlers invoke it after commit and log failures without failing
// the operation that triggered the notification.
type Notifier interface {
	// NotifyStatusChanged informs the order's parties of a status change.
	NotifyStatusChanged(ctx context.Context, aggregate *order.Order, change order.StatusChange) error

	// NotifyNewDelivery broadcasts a new unassigned order to couriers.
	// An empty courierIDs slice means broadcast to all online couriers.
	NotifyNewDelivery(ctx context.Context, aggregate *order.Order, courierIDs []kernel.UUID) error
}

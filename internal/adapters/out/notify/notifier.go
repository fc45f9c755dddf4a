// Package notify implements ports.Notifier as a structured-log dispatcher.
// Real push delivery (FCM, websockets) plugs in behind the same interface;
// until then the log stream is the notification channel, which is enough for
// operators tailing the service.
package notify

import (
	"context"
	"log/slog"

	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/order"
)

// LogNotifier writes order events to the service log. It never returns an
// error; callers already treat notification as best effort.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier writing to the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

// NotifyStatusChanged logs a status transition addressed to the order's
// parties.
func (n *LogNotifier) NotifyStatusChanged(ctx context.Context, aggregate *order.Order, change order.StatusChange) error {
	n.logger.InfoContext(ctx, "order status changed",
		"event", "status_changed",
		"orderID", aggregate.ID().String(),
		"number", aggregate.Number(),
		"status", string(change.Status),
		"changedBy", string(change.ChangedBy),
		"customerID", aggregate.CustomerID().String(),
		"restaurantID", aggregate.RestaurantID().String(),
	)
	return nil
}

// NotifyNewDelivery logs a new delivery offer. An empty courier list means
// the offer is broadcast to every online courier.
func (n *LogNotifier) NotifyNewDelivery(ctx context.Context, aggregate *order.Order, courierIDs []kernel.UUID) error {
	targets := make([]string, 0, len(courierIDs))
	for _, id := range courierIDs {
		targets = append(targets, id.String())
	}

	n.logger.InfoContext(ctx, "new delivery offer",
		"event", "new_order",
		"orderID", aggregate.ID().String(),
		"number", aggregate.Number(),
		"deliveryFee", aggregate.DeliveryFee(),
		"distanceKm", aggregate.DistanceKm(),
		"broadcast", len(targets) == 0,
		"couriers", targets,
	)
	return nil
}

package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dzdelivery/internal/core/domain/model/order"
	"dzdelivery/internal/core/domain/services"
	"dzdelivery/internal/core/ports"
	"dzdelivery/internal/pkg/errs"
)

var (
	ErrNoOrderFound        = errors.New("no order found")
	ErrNoFreeCouriersFound = errors.New("no free couriers found")
)

// AssignCourierCommandHandler orchestrates the periodic dispatch sweep.
// It takes the oldest pending order, picks the nearest dispatchable courier
// within the dispatch radius of the pickup point, and binds the two inside
// one transaction. When no courier is in range the order is re-broadcast to
// all online couriers instead.
type AssignCourierCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	selector   services.DispatchSelector
	logger     *slog.Logger
}

// NewAssignCourierCommandHandler creates a handler for courier assignment operations.
func NewAssignCourierCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		selector:   services.NewDispatchSelector(),
		logger:     logger,
	}
}

// Handle processes the courier assignment command. It returns
// ErrNoOrderFound when nothing is waiting and ErrNoFreeCouriersFound when no
// courier was in range (after re-broadcasting the order).
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	pendingOrders, err := ordersRepo.GetAllInPendingStatus(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrNoOrderFound
		}
		return err
	}
	if len(pendingOrders) == 0 {
		return ErrNoOrderFound
	}
	aggregate := pendingOrders[0]

	couriers, err := courierRepo.GetAllDispatchable(ctx)
	if err != nil {
		return err
	}

	selected, err := h.selector.Select(aggregate.Pickup(), couriers)
	if errors.Is(err, services.ErrNoCourierInRange) {
		h.broadcast(ctx, aggregate)
		return ErrNoFreeCouriersFound
	}
	if err != nil {
		return err
	}

	if err = courierRepo.Acquire(ctx, selected.ID()); err != nil {
		return err
	}

	expected := aggregate.Status()
	if err = aggregate.AssignCourier(selected.ID(), time.Now()); err != nil {
		return err
	}

	if err = ordersRepo.UpdateGuarded(ctx, aggregate, expected); err != nil {
		return err
	}
	if err = ordersRepo.AppendHistory(ctx, *aggregate.LastChange()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	change := *aggregate.LastChange()
	if notifyErr := h.notifier.NotifyStatusChanged(ctx, aggregate, change); notifyErr != nil {
		h.logger.Warn("assignment notification failed",
			"orderId", aggregate.ID().String(), "courierId", selected.ID().String(), "error", notifyErr)
	}

	return nil
}

// broadcast re-announces an order no courier was in range for.
func (h AssignCourierCommandHandler) broadcast(ctx context.Context, aggregate *order.Order) {
	if err := h.notifier.NotifyNewDelivery(ctx, aggregate, nil); err != nil {
		h.logger.Warn("broadcast failed", "orderId", aggregate.ID().String(), "error", err)
	}
}

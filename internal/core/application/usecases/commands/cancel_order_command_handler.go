package commands

import (
	"context"
	"log/slog"
	"time"

	"dzdelivery/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order under a guarded update and
// frees the assigned courier, if any, in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the cancellation command. Policy violations
// (order.ErrNonCancellable, order.ErrAlreadyCancelled, order.ErrForbidden)
// pass through for the transport layer to map.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	expected := aggregate.Status()
	if err = aggregate.Cancel(command.By(), command.Reason(), time.Now()); err != nil {
		return err
	}

	if err = ordersRepo.UpdateGuarded(ctx, aggregate, expected); err != nil {
		return err
	}
	if err = ordersRepo.AppendHistory(ctx, *aggregate.LastChange()); err != nil {
		return err
	}

	if aggregate.CourierID() != nil {
		if err = uow.CourierRepository().Release(ctx, *aggregate.CourierID()); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	change := *aggregate.LastChange()
	if notifyErr := h.notifier.NotifyStatusChanged(ctx, aggregate, change); notifyErr != nil {
		h.logger.Warn("cancellation notification failed",
			"orderId", aggregate.ID().String(), "error", notifyErr)
	}

	return nil
}

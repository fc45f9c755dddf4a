package commands

import (
	"context"
	"log/slog"
	"time"

	"dzdelivery/internal/core/domain/model/actor"
	"dzdelivery/internal/core/domain/model/order"
	"dzdelivery/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies one status transition under a
// guarded update.
//
// Concurrency is handled in two layers. The aggregate enforces the state
// machine against the loaded snapshot; the repository then only writes while
// the stored row still matches that snapshot's status (and, for a courier
// acceptance, while the stored courier is still null). A courier acceptance
// additionally reserves the courier row inside the same transaction, so two
// couriers racing for the last order resolve to exactly one winner and the
// loser's reservation rolls back with the transaction.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the status change command. Domain rule violations
// (order.ErrInvalidTransition, order.ErrForbidden, and friends) and the
// concurrency sentinel ports.ErrPreconditionFailed pass through for the
// transport layer to map.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) error {
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

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	expected := aggregate.Status()
	accepting := expected == order.StatusPending &&
		command.Next() == order.StatusConfirmed &&
		command.By().Role() == actor.RoleCourier

	if accepting {
		if err = courierRepo.Acquire(ctx, command.By().ID()); err != nil {
			return err
		}
	}

	if err = aggregate.ChangeStatus(
		command.By(), command.Next(), command.Note(), command.ConfirmationCode(), time.Now(),
	); err != nil {
		return err
	}

	if err = ordersRepo.UpdateGuarded(ctx, aggregate, expected); err != nil {
		return err
	}
	if err = ordersRepo.AppendHistory(ctx, *aggregate.LastChange()); err != nil {
		return err
	}

	if err = h.settleCourier(ctx, uow, aggregate, command.Next()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	change := *aggregate.LastChange()
	if notifyErr := h.notifier.NotifyStatusChanged(ctx, aggregate, change); notifyErr != nil {
		h.logger.Warn("status change notification failed",
			"orderId", aggregate.ID().String(), "status", change.Status.String(), "error", notifyErr)
	}

	return nil
}

// settleCourier updates the assigned courier's side of the transition:
// delivery completion absorbs the fee into the courier's stats and frees
// them, cancellation just frees them.
func (h ChangeOrderStatusCommandHandler) settleCourier(
	ctx context.Context,
	uow OrderUoW,
	aggregate *order.Order,
	next order.Status,
) error {
	if aggregate.CourierID() == nil {
		return nil
	}
	courierRepo := uow.CourierRepository()

	switch next {
	case order.StatusDelivered:
		assigned, err := courierRepo.Get(ctx, *aggregate.CourierID())
		if err != nil {
			return err
		}
		assigned.CompleteDelivery(aggregate.DeliveryFee())
		return courierRepo.Update(ctx, assigned)
	case order.StatusCancelled:
		return courierRepo.Release(ctx, *aggregate.CourierID())
	}

	return nil
}

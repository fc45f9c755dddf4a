package commands

import (
	"errors"

	"dzdelivery/internal/core/domain/model/actor"
	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/pkg/errs"
	"dzdelivery/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels an order with a reason on behalf of an
// authenticated party. Which parties may cancel depends on the order's
// status; the aggregate's cancellation policy decides.
type CancelOrderCommand struct {
	guard guard.ConstructorGuard

	orderID kernel.UUID
	by      actor.Actor
	reason  string
}

// NewCancelOrderCommand creates a validated cancellation command.
func NewCancelOrderCommand(orderID kernel.UUID, by actor.Actor, reason string) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	if err := by.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
		by:      by,
		reason:  reason,
	}, nil
}

// OrderID returns the target order's identifier.
func (c *CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// By returns the acting party.
func (c *CancelOrderCommand) By() actor.Actor {
	return c.by
}

// Reason returns the free-form cancellation reason.
func (c *CancelOrderCommand) Reason() string {
	return c.reason
}

// Validate ensures the command was created through the constructor.
func (c *CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

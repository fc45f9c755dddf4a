package commands

import (
	"errors"

	"dzdelivery/internal/core/domain/model/actor"
	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/order"
	"dzdelivery/internal/pkg/errs"
	"dzdelivery/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand moves an order through its lifecycle on behalf of
// an authenticated party. The same command carries courier acceptance,
// kitchen progress, pickup, and delivery confirmation; the aggregate decides
// what the acting party may do.
type ChangeOrderStatusCommand struct {
	guard guard.ConstructorGuard

	orderID          kernel.UUID
	by               actor.Actor
	next             order.Status
	note             string
	confirmationCode string
}

// NewChangeOrderStatusCommand creates a validated status change command.
// confirmationCode is only meaningful for the delivered transition and is
// ignored otherwise.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	by actor.Actor,
	next order.Status,
	note string,
	confirmationCode string,
) (ChangeOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	if err := by.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	if err := next.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		guard:            guard.NewConstructorGuard(),
		orderID:          orderID,
		by:               by,
		next:             next,
		note:             note,
		confirmationCode: confirmationCode,
	}, nil
}

// OrderID returns the target order's identifier.
func (c *ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// By returns the acting party.
func (c *ChangeOrderStatusCommand) By() actor.Actor {
	return c.by
}

// Next returns the requested status.
func (c *ChangeOrderStatusCommand) Next() order.Status {
	return c.next
}

// Note returns the free-form note recorded in the history.
func (c *ChangeOrderStatusCommand) Note() string {
	return c.note
}

// ConfirmationCode returns the code presented for delivery confirmation.
func (c *ChangeOrderStatusCommand) ConfirmationCode() string {
	return c.confirmationCode
}

// Validate ensures the command was created through the constructor.
func (c *ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

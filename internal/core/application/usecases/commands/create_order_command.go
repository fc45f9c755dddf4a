package commands

import (
	"errors"

	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/pkg/errs"
	"dzdelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order at checkout. The delivery fee is not
// part of the command: the handler prices the trip server side so clients
// cannot influence what they pay.
type CreateOrderCommand struct {
	guard guard.ConstructorGuard

	customerID   kernel.UUID
	restaurantID kernel.UUID
	pickup       kernel.GeoPoint
	destination  kernel.GeoPoint
	address      string
	subtotal     int64
}

// NewCreateOrderCommand creates a validated order placement command.
// pickup is the restaurant's location, destination the customer's.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	pickup kernel.GeoPoint,
	destination kernel.GeoPoint,
	address string,
	subtotal int64,
) (CreateOrderCommand, error) {
	if err := customerID.Validate(); err != nil {
		return CreateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("customerID", err)
	}
	if err := restaurantID.Validate(); err != nil {
		return CreateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("restaurantID", err)
	}
	if address == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("address")
	}
	if subtotal < 0 {
		return CreateOrderCommand{}, errs.NewValueIsInvalidError("subtotal must not be negative")
	}

	return CreateOrderCommand{
		guard:        guard.NewConstructorGuard(),
		customerID:   customerID,
		restaurantID: restaurantID,
		pickup:       pickup,
		destination:  destination,
		address:      address,
		subtotal:     subtotal,
	}, nil
}

// CustomerID returns the ordering customer's identifier.
func (c *CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the restaurant's identifier.
func (c *CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Pickup returns the restaurant's location.
func (c *CreateOrderCommand) Pickup() kernel.GeoPoint {
	return c.pickup
}

// Destination returns the delivery destination.
func (c *CreateOrderCommand) Destination() kernel.GeoPoint {
	return c.destination
}

// Address returns the free-form delivery address.
func (c *CreateOrderCommand) Address() string {
	return c.address
}

// Subtotal returns the item subtotal in dinars.
func (c *CreateOrderCommand) Subtotal() int64 {
	return c.subtotal
}

// Validate ensures the command was created through the constructor.
func (c *CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

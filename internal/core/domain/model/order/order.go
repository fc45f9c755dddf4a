package order

import (
	"fmt"
	"time"

	"dzdelivery/internal/core/domain/model/actor"
	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/pkg/errs"
	"dzdelivery/internal/pkg/guard"
)

// Order is the aggregate root for a marketplace order. It owns the status
// state machine and is the single authority on which transitions are legal,
// which roles may trigger them, and whether the acting party is bound to the
// order. All money amounts are integer Algerian dinars.
//
// Order enforces its invariants through the ChangeStatus, Cancel, and
// AssignCourier methods; persistence adapters must never mutate status
// outside of them. Every successful mutation appends a StatusChange record,
// retrievable via LastChange, which the application layer persists together
// with the order.
type Order struct {
	guard guard.ConstructorGuard

	id           kernel.UUID
	number       string
	customerID   kernel.UUID
	restaurantID kernel.UUID
	courierID    *kernel.UUID

	status Status

	subtotal    int64
	deliveryFee int64
	total       int64

	pickup      kernel.GeoPoint
	destination kernel.GeoPoint
	address     string
	distanceKm  float64

	confirmationCode string

	createdAt    time.Time
	confirmedAt  *time.Time
	preparingAt  *time.Time
	readyAt      *time.Time
	pickedUpAt   *time.Time
	deliveringAt *time.Time
	deliveredAt  *time.Time
	cancelledAt  *time.Time

	cancelledBy        actor.Role
	cancellationReason string

	history []StatusChange
}

// RestoreOrderParams carries the persisted state needed to rebuild an Order.
type RestoreOrderParams struct {
	ID           kernel.UUID
	Number       string
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	CourierID    *kernel.UUID

	Status Status

	Subtotal    int64
	DeliveryFee int64
	Total       int64

	Pickup      kernel.GeoPoint
	Destination kernel.GeoPoint
	Address     string
	DistanceKm  float64

	ConfirmationCode string

	CreatedAt    time.Time
	ConfirmedAt  *time.Time
	PreparingAt  *time.Time
	ReadyAt      *time.Time
	PickedUpAt   *time.Time
	DeliveringAt *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time

	CancelledBy        actor.Role
	CancellationReason string
}

// NewOrder creates a pending order at customer checkout. The identifier and
// confirmation code are generated here; the order number is supplied by the
// caller because the per-day sequence lives in storage.
//
// The initial pending entry is appended to the history as authored by the
// customer.
func NewOrder(
	number string,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	subtotal int64,
	deliveryFee int64,
	pickup kernel.GeoPoint,
	destination kernel.GeoPoint,
	address string,
	distanceKm float64,
	now time.Time,
) (*Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	if err := customerID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("customerID", err)
	}
	if err := restaurantID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("restaurantID", err)
	}
	if subtotal < 0 {
		return nil, errs.NewValueIsInvalidError("subtotal must not be negative")
	}
	if deliveryFee < 0 {
		return nil, errs.NewValueIsInvalidError("deliveryFee must not be negative")
	}
	if address == "" {
		return nil, errs.NewValueIsRequiredError("address")
	}
	if distanceKm < 0 {
		return nil, errs.NewValueIsInvalidError("distanceKm must not be negative")
	}

	o := &Order{
		guard:            guard.NewConstructorGuard(),
		id:               kernel.NewUUID(),
		number:           number,
		customerID:       customerID,
		restaurantID:     restaurantID,
		status:           StatusPending,
		subtotal:         subtotal,
		deliveryFee:      deliveryFee,
		total:            subtotal + deliveryFee,
		pickup:           pickup,
		destination:      destination,
		address:          address,
		distanceKm:       distanceKm,
		confirmationCode: GenerateConfirmationCode(),
		createdAt:        now,
	}
	o.appendChange(StatusPending, actor.RoleCustomer, "", now)

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. History records are
// not rehydrated; they live append-only in storage and are only read through
// query handlers.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	if err := params.ID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("ID", err)
	}
	if err := params.Status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		guard:              guard.NewConstructorGuard(),
		id:                 params.ID,
		number:             params.Number,
		customerID:         params.CustomerID,
		restaurantID:       params.RestaurantID,
		courierID:          params.CourierID,
		status:             params.Status,
		subtotal:           params.Subtotal,
		deliveryFee:        params.DeliveryFee,
		total:              params.Total,
		pickup:             params.Pickup,
		destination:        params.Destination,
		address:            params.Address,
		distanceKm:         params.DistanceKm,
		confirmationCode:   params.ConfirmationCode,
		createdAt:          params.CreatedAt,
		confirmedAt:        params.ConfirmedAt,
		preparingAt:        params.PreparingAt,
		readyAt:            params.ReadyAt,
		pickedUpAt:         params.PickedUpAt,
		deliveringAt:       params.DeliveringAt,
		deliveredAt:        params.DeliveredAt,
		cancelledAt:        params.CancelledAt,
		cancelledBy:        params.CancelledBy,
		cancellationReason: params.CancellationReason,
	}, nil
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number (DZ-YYYYMMDD-NNN).
func (o *Order) Number() string {
	return o.number
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the restaurant's identifier.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// CourierID returns the assigned courier's identifier, or nil while the
// order is unassigned.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Subtotal returns the item subtotal in dinars.
func (o *Order) Subtotal() int64 {
	return o.subtotal
}

// DeliveryFee returns the delivery fee in dinars.
func (o *Order) DeliveryFee() int64 {
	return o.deliveryFee
}

// Total returns the order total in dinars.
func (o *Order) Total() int64 {
	return o.total
}

// Pickup returns the restaurant's coordinates captured at checkout, used by
// the dispatch radius search.
func (o *Order) Pickup() kernel.GeoPoint {
	return o.pickup
}

// Destination returns the delivery destination coordinates.
func (o *Order) Destination() kernel.GeoPoint {
	return o.destination
}

// Address returns the free-form delivery address.
func (o *Order) Address() string {
	return o.address
}

// DistanceKm returns the restaurant-to-destination distance in kilometers.
func (o *Order) DistanceKm() float64 {
	return o.distanceKm
}

// ConfirmationCode returns the stored handoff code.
func (o *Order) ConfirmationCode() string {
	return o.confirmationCode
}

// CreatedAt returns the checkout timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ConfirmedAt returns when a courier accepted the order, or nil.
func (o *Order) ConfirmedAt() *time.Time {
	return o.confirmedAt
}

// PreparingAt returns when preparation started, or nil.
func (o *Order) PreparingAt() *time.Time {
	return o.preparingAt
}

// ReadyAt returns when the order became ready for pickup, or nil.
func (o *Order) ReadyAt() *time.Time {
	return o.readyAt
}

// PickedUpAt returns when the courier collected the order, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveringAt returns when the courier started the delivery leg, or nil.
func (o *Order) DeliveringAt() *time.Time {
	return o.deliveringAt
}

// DeliveredAt returns the delivery timestamp, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CancelledAt returns the cancellation timestamp, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// CancelledBy returns the role that cancelled the order, or the empty role.
func (o *Order) CancelledBy() actor.Role {
	return o.cancelledBy
}

// CancellationReason returns the free-form cancellation reason.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// History returns the status changes recorded during this in-memory lifetime.
// For restored orders this holds only the changes made since restoration.
func (o *Order) History() []StatusChange {
	return o.history
}

// LastChange returns the most recent status change recorded in memory, or
// nil when none happened.
func (o *Order) LastChange() *StatusChange {
	if len(o.history) == 0 {
		return nil
	}
	return &o.history[len(o.history)-1]
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return o.id.IsEqual(other.id)
}

// ChangeStatus moves the order to next on behalf of the acting party.
// It enforces, in this exact precedence:
//
//  1. the transition exists in the transition table (ErrInvalidTransition),
//  2. the actor's role is permitted for it (ErrForbidden),
//  3. the actor is the party bound to this order (ErrForbidden, or
//     ErrAlreadyAssigned when a second courier races to accept),
//  4. the delivered transition presents the correct confirmation code
//     (ErrInvalidConfirmationCode).
//
// On a courier accepting a pending order the courier becomes bound to it as
// part of the same transition. On any failure the order is left untouched.
func (o *Order) ChangeStatus(by actor.Actor, next Status, note string, confirmationCode string, now time.Time) error {
	if err := o.guard.Validate(errOrderIsNotConstructed); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	if !o.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.status, next)
	}
	if !roleAllowed(o.status.AllowedRoles(next), by.Role()) {
		return fmt.Errorf("%w: role %s may not move order from %s to %s", ErrForbidden, by.Role(), o.status, next)
	}

	accepting := o.status == StatusPending && next == StatusConfirmed
	if err := o.checkActorBinding(by, accepting); err != nil {
		return err
	}

	if next.RequiresConfirmationCode() {
		if NormalizeConfirmationCode(confirmationCode) != NormalizeConfirmationCode(o.confirmationCode) {
			return ErrInvalidConfirmationCode
		}
	}

	if accepting {
		courierID := by.ID()
		o.courierID = &courierID
	}
	if next == StatusCancelled {
		o.cancelledBy = by.Role()
		o.cancellationReason = note
	}

	o.status = next
	o.stampTimestamp(next, now)
	o.appendChange(next, by.Role(), note, now)

	return nil
}

// Cancel cancels the order with a reason, applying the cancellation policy:
// orders at picked_up or later are non-cancellable for everyone, and earlier
// statuses restrict which roles may cancel. Cancelling is equivalent to a
// ChangeStatus into cancelled but reports policy violations with dedicated
// errors so callers can distinguish "too late" from "not your order".
func (o *Order) Cancel(by actor.Actor, reason string, now time.Time) error {
	if err := o.guard.Validate(errOrderIsNotConstructed); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return err
	}

	if o.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if !o.status.IsCancellable() {
		return fmt.Errorf("%w: status is %s", ErrNonCancellable, o.status)
	}
	if !o.status.CancellableBy(by.Role()) {
		return fmt.Errorf("%w: role %s may not cancel an order in status %s", ErrForbidden, by.Role(), o.status)
	}
	if err := o.checkActorBinding(by, false); err != nil {
		return err
	}

	o.status = StatusCancelled
	o.cancelledAt = &now
	o.cancelledBy = by.Role()
	o.cancellationReason = reason
	o.appendChange(StatusCancelled, by.Role(), reason, now)

	return nil
}

// AssignCourier binds a courier to a pending order on behalf of the dispatch
// process and confirms it. Unlike a courier self-accepting through
// ChangeStatus, the change is attributed to the admin role in the history.
func (o *Order) AssignCourier(courierID kernel.UUID, now time.Time) error {
	if err := o.guard.Validate(errOrderIsNotConstructed); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return ErrAlreadyAssigned
	}
	if o.status != StatusPending {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.status, StatusConfirmed)
	}

	o.courierID = &courierID
	o.status = StatusConfirmed
	o.stampTimestamp(StatusConfirmed, now)
	o.appendChange(StatusConfirmed, actor.RoleAdmin, "assigned by dispatch", now)

	return nil
}

// checkActorBinding verifies the acting party is the one bound to this order.
// When accepting is true the actor is a courier taking an unassigned order,
// so a non-nil courierID means another courier got there first.
func (o *Order) checkActorBinding(by actor.Actor, accepting bool) error {
	switch by.Role() {
	case actor.RoleCustomer:
		if !by.ID().IsEqual(o.customerID) {
			return fmt.Errorf("%w: order belongs to a different customer", ErrForbidden)
		}
	case actor.RoleRestaurant:
		if !by.ID().IsEqual(o.restaurantID) {
			return fmt.Errorf("%w: order belongs to a different restaurant", ErrForbidden)
		}
	case actor.RoleCourier:
		if accepting {
			if o.courierID != nil {
				return ErrAlreadyAssigned
			}
			return nil
		}
		if o.courierID == nil || !by.ID().IsEqual(*o.courierID) {
			return fmt.Errorf("%w: order is assigned to a different courier", ErrForbidden)
		}
	case actor.RoleAdmin:
		return fmt.Errorf("%w: role admin may not act on orders directly", ErrForbidden)
	}

	return nil
}

// stampTimestamp records the milestone timestamp for the status just entered.
func (o *Order) stampTimestamp(status Status, now time.Time) {
	switch status {
	case StatusConfirmed:
		o.confirmedAt = &now
	case StatusPreparing:
		o.preparingAt = &now
	case StatusReady:
		o.readyAt = &now
	case StatusPickedUp:
		o.pickedUpAt = &now
	case StatusDelivering:
		o.deliveringAt = &now
	case StatusDelivered:
		o.deliveredAt = &now
	case StatusCancelled:
		o.cancelledAt = &now
	}
}

func (o *Order) appendChange(status Status, by actor.Role, note string, at time.Time) {
	o.history = append(o.history, StatusChange{
		OrderID:   o.id,
		Status:    status,
		ChangedBy: by,
		Note:      note,
		At:        at,
	})
}

var errOrderIsNotConstructed = errs.NewValueIsRequiredError(
	"order must be created via NewOrder or RestoreOrder constructor")

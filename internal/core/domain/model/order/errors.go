package order

import "errors"

// Domain rule violations raised by the Order aggregate. Handlers map these to
// transport errors (HTTP 409, 403, 400) at the boundary, so each rule gets its
// own sentinel rather than a generic validation error.
var (
	// ErrInvalidTransition indicates the requested status change is not in
	// the transition table for the order's current status.
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrForbidden indicates the acting party's role or identity does not
	// permit the requested operation on this order.
	ErrForbidden = errors.New("actor is not permitted to perform this operation")

	// ErrNonCancellable indicates the order has passed the point of no
	// return (picked up or later) and cannot be cancelled by anyone.
	ErrNonCancellable = errors.New("order can no longer be cancelled")

	// ErrAlreadyCancelled indicates a cancellation attempt on an order that
	// is already cancelled.
	ErrAlreadyCancelled = errors.New("order is already cancelled")

	// ErrInvalidConfirmationCode indicates the code presented for delivery
	// confirmation does not match the order's code.
	ErrInvalidConfirmationCode = errors.New("confirmation code does not match")

	// ErrAlreadyAssigned indicates an attempt to bind a courier to an order
	// that already has one.
	ErrAlreadyAssigned = errors.New("order is already assigned to a courier")
)

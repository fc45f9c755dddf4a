package order

import (
	"fmt"

	"dzdelivery/internal/core/domain/model/actor"
	"dzdelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with role-gated transitions that mirror the
// marketplace workflow between customer, restaurant, and courier.
//
// State transitions:
//
//	pending ──> confirmed ──> preparing ──> ready ──> picked_up ──> delivering ──> delivered
//	   │            │             │                       │
//	   │            │             │                       └──────────────────────> delivered
//	   └────────────┴─────────────┴──> cancelled
//
// delivered and cancelled are terminal; no transition leaves them.
//
// Status values are persisted as text, so the constants below are the
// canonical vocabulary (confirmed, not accepted).
type Status string

const (
	// StatusPending is the initial status set at customer checkout.
	// The order is visible to couriers waiting for one to accept it.
	StatusPending Status = "pending"

	// StatusConfirmed means a courier accepted the job. The accepting courier
	// is bound to the order atomically as part of this transition.
	StatusConfirmed Status = "confirmed"

	// StatusPreparing means the restaurant started preparing the order.
	StatusPreparing Status = "preparing"

	// StatusReady means the order is ready for pickup at the restaurant.
	StatusReady Status = "ready"

	// StatusPickedUp means the courier collected the order.
	// Cancellation is impossible from here on.
	StatusPickedUp Status = "picked_up"

	// StatusDelivering means the courier is en route to the customer.
	StatusDelivering Status = "delivering"

	// StatusDelivered is the successful terminal state. Reaching it requires
	// the customer's confirmation code.
	StatusDelivered Status = "delivered"

	// StatusCancelled is the failed terminal state.
	StatusCancelled Status = "cancelled"
)

// transitionTable is the authoritative map of legal status changes.
// Any move not listed here is rejected with ErrInvalidTransition.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusPreparing, StatusCancelled},
		StatusPreparing:  {StatusReady, StatusCancelled},
		StatusReady:      {StatusPickedUp},
		StatusPickedUp:   {StatusDelivering, StatusDelivered},
		StatusDelivering: {StatusDelivered},
	}
}

// rolePermissions maps each legal transition to the roles allowed to trigger it.
// The key format is "current->next".
func rolePermissions() map[string][]actor.Role {
	return map[string][]actor.Role{
		"pending->confirmed":    {actor.RoleCourier},
		"pending->cancelled":    {actor.RoleCustomer, actor.RoleRestaurant},
		"confirmed->preparing":  {actor.RoleRestaurant},
		"confirmed->cancelled":  {actor.RoleCustomer, actor.RoleRestaurant},
		"preparing->ready":      {actor.RoleRestaurant},
		"preparing->cancelled":  {actor.RoleRestaurant},
		"ready->picked_up":      {actor.RoleCourier},
		"picked_up->delivering": {actor.RoleCourier},
		"picked_up->delivered":  {actor.RoleCourier},
		"delivering->delivered": {actor.RoleCourier},
	}
}

// cancellationRules maps each status to the roles allowed to cancel from it.
// ready is listed with no roles: the order still sits at the restaurant, but
// a courier is already committed, so nobody may cancel anymore.
func cancellationRules() map[Status][]actor.Role {
	return map[Status][]actor.Role{
		StatusPending:   {actor.RoleCustomer, actor.RoleRestaurant},
		StatusConfirmed: {actor.RoleCustomer, actor.RoleRestaurant},
		StatusPreparing: {actor.RoleRestaurant},
		StatusReady:     {},
	}
}

// nonCancellableStatuses are the statuses from which cancellation is
// categorically impossible for every role. Once the courier holds the food
// the order must run to completion.
func nonCancellableStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		StatusPickedUp:   {},
		StatusDelivering: {},
		StatusDelivered:  {},
	}
}

// validStatuses supports Status validation.
func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		StatusPending:    {},
		StatusConfirmed:  {},
		StatusPreparing:  {},
		StatusReady:      {},
		StatusPickedUp:   {},
		StatusDelivering: {},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}
}

// transitionKey builds the lookup key for rolePermissions.
func transitionKey(from, to Status) string {
	return string(from) + "->" + string(to)
}

// Validate checks that the status is one of the eight defined values.
// Used when reconstructing orders from persistence or parsing API input.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the transition table allows moving from
// this status to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitionTable()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedRoles returns the roles permitted to trigger the transition from
// this status to next. The slice is empty when the transition is not legal.
func (s Status) AllowedRoles(next Status) []actor.Role {
	return rolePermissions()[transitionKey(s, next)]
}

// IsCancellable reports whether cancellation from this status is possible at
// all, regardless of role. Note that ready is cancellable by nobody yet not
// in the non-cancellable set; callers that need the role dimension should use
// CancellableBy.
func (s Status) IsCancellable() bool {
	if _, blocked := nonCancellableStatuses()[s]; blocked {
		return false
	}
	return s != StatusCancelled
}

// CancellableBy reports whether the given role may cancel an order in this status.
func (s Status) CancellableBy(role actor.Role) bool {
	return roleAllowed(cancellationRules()[s], role)
}

// RequiresConfirmationCode reports whether a transition into this status must
// present the order's confirmation code.
func (s Status) RequiresConfirmationCode() bool {
	return s == StatusDelivered
}

func roleAllowed(roles []actor.Role, role actor.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

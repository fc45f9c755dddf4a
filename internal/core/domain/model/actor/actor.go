// Package actor defines the authenticated party acting on an order.
//
// The surrounding platform authenticates customers, restaurant owners,
// couriers, and admins against separate tables sharing a phone+password
// schema. The core never sees any of that: identity resolution happens once
// at the boundary and produces a flat Actor value carrying only the role and
// the party identifier. All permission checks in the order state machine
// consume Actor values.
package actor

import (
	"fmt"

	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/pkg/errs"
)

// Role identifies which kind of party is acting.
type Role string

const (
	// RoleCustomer is the ordering customer.
	RoleCustomer Role = "customer"
	// RoleRestaurant is the restaurant owner preparing the order.
	RoleRestaurant Role = "restaurant"
	// RoleCourier is the delivery agent (livreur).
	RoleCourier Role = "courier"
	// RoleAdmin is a platform operator. Admins have no transition
	// permissions in the state machine; the role exists for identity
	// resolution completeness.
	RoleAdmin Role = "admin"
)

// validRoles supports Role validation.
func validRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleCustomer:   {},
		RoleRestaurant: {},
		RoleCourier:    {},
		RoleAdmin:      {},
	}
}

// Validate checks that the role is one of the defined values.
func (r Role) Validate() error {
	if _, ok := validRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// Actor is the resolved identity of the party performing an operation.
// It is a value object; construct it with NewActor.
type Actor struct {
	role Role
	id   kernel.UUID
}

// NewActor creates an Actor with a validated role and identifier.
func NewActor(role Role, id kernel.UUID) (Actor, error) {
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{role: role, id: id}, nil
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// ID returns the actor's party identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Validate checks the actor carries a valid role and identifier.
// The zero value fails validation.
func (a Actor) Validate() error {
	if err := a.role.Validate(); err != nil {
		return err
	}
	return a.id.Validate()
}

package order

import (
	"time"

	"dzdelivery/internal/core/domain/model/actor"
	"dzdelivery/internal/core/domain/model/kernel"
)

// StatusChange is an immutable audit record of a single status transition.
// One record is appended per successful transition, including the initial
// pending entry written at order creation. Records are append-only: nothing
// in the domain updates or deletes them.
type StatusChange struct {
	OrderID   kernel.UUID
	Status    Status
	ChangedBy actor.Role
	Note      string
	At        time.Time
}

package commands

import (
	"dzdelivery/internal/pkg/guard"
	"errors"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand triggers the assignment of an available courier to
// the oldest pending order. Orders usually find their courier through a
// courier accepting the broadcast; this command is the periodic sweep that
// pairs up whatever is still waiting.
type AssignCourierCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a new command to trigger courier assignment.
// This is a parameterless command that initiates the courier-order matching process.
func NewAssignCourierCommand() AssignCourierCommand {
	return AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignCourierCommandIsNotConstructed if validation fails.
func (c *AssignCourierCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignCourierCommandIsNotConstructed,
	)
}

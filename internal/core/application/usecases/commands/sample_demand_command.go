package commands

import (
	"dzdelivery/internal/pkg/guard"
	"errors"
)

var ErrSampleDemandCommandIsNotConstructed = errors.New(
	"SampleDemandCommand must be created via NewSampleDemandCommand constructor",
)

// SampleDemandCommand records one demand snapshot: active orders versus
// available couriers at this moment. Snapshots feed the surge multiplier and
// the demand analytics queries.
type SampleDemandCommand struct {
	guard guard.ConstructorGuard
}

// NewSampleDemandCommand creates a new command to record a demand snapshot.
func NewSampleDemandCommand() SampleDemandCommand {
	return SampleDemandCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *SampleDemandCommand) Validate() error {
	return c.guard.Validate(ErrSampleDemandCommandIsNotConstructed)
}

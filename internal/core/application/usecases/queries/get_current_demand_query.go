package queries

import (
	"errors"
	"time"

	"dzdelivery/internal/core/domain/model/demand"
	"dzdelivery/internal/pkg/guard"
)

var ErrGetCurrentDemandQueryIsNotConstructed = errors.New(
	"GetCurrentDemandQuery must be created via NewGetCurrentDemandQuery constructor",
)

// GetCurrentDemandQuery measures the marketplace load right now: orders
// waiting for a courier versus couriers able to take them.
type GetCurrentDemandQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCurrentDemandQuery creates a query to measure current demand.
func NewGetCurrentDemandQuery() GetCurrentDemandQuery {
	return GetCurrentDemandQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCurrentDemandQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentDemandQueryIsNotConstructed)
}

// GetCurrentDemandQueryResponse carries the measured load.
type GetCurrentDemandQueryResponse struct {
	At                time.Time
	ActiveOrders      int
	AvailableCouriers int
	Ratio             float64
	Level             demand.Level
}

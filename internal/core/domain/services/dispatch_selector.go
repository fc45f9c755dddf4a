package services

import (
	"errors"
	"math"

	"dzdelivery/internal/core/domain/model/courier"
	"dzdelivery/internal/core/domain/model/kernel"
)

// ErrNoCourierInRange is returned when no dispatchable courier is within the
// dispatch radius of the pickup point. Callers fall back to broadcasting the
// order to all online couriers.
var ErrNoCourierInRange = errors.New("no available courier within dispatch radius")

// DefaultDispatchRadiusKm is the radius around the pickup point searched for
// a courier before falling back to a broadcast.
const DefaultDispatchRadiusKm = 5.0

// DispatchSelector is a domain service that picks the courier for an order.
//
// Selection rules:
//   - only couriers currently cleared for dispatch are considered,
//   - the courier must be within the dispatch radius of the pickup point,
//   - of the qualifying couriers the nearest one wins, first on ties.
//
// The selector only decides; binding the courier to the order and flipping
// the courier's availability is the caller's job, under a guarded update so
// two dispatchers cannot reserve the same courier.
type DispatchSelector struct {
	radiusKm float64
}

// NewDispatchSelector creates a DispatchSelector with the default radius.
func NewDispatchSelector() DispatchSelector {
	return DispatchSelector{radiusKm: DefaultDispatchRadiusKm}
}

// NewDispatchSelectorWithRadius creates a DispatchSelector with a custom
// radius, used by operators in low-density areas.
func NewDispatchSelectorWithRadius(radiusKm float64) DispatchSelector {
	return DispatchSelector{radiusKm: radiusKm}
}

// RadiusKm returns the configured dispatch radius.
func (s DispatchSelector) RadiusKm() float64 {
	return s.radiusKm
}

// Select returns the nearest dispatchable courier within the radius of the
// pickup point. It returns ErrNoCourierInRange when none qualifies.
func (s DispatchSelector) Select(pickup kernel.GeoPoint, candidates []*courier.Courier) (*courier.Courier, error) {
	var (
		best         *courier.Courier
		bestDistance = math.MaxFloat64
	)

	for _, c := range candidates {
		if !c.CanTakeOrders() {
			continue
		}

		distance := pickup.DistanceKm(c.Location())
		if distance > s.radiusKm {
			continue
		}
		if distance < bestDistance {
			bestDistance = distance
			best = c
		}
	}

	if best == nil {
		return nil, ErrNoCourierInRange
	}

	return best, nil
}

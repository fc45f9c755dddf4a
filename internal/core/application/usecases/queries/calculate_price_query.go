package queries

import (
	"errors"

	"dzdelivery/internal/core/domain/model/courier"
	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/pricing"
	"dzdelivery/internal/pkg/guard"
)

var ErrCalculatePriceQueryIsNotConstructed = errors.New(
	"CalculatePriceQuery must be created via NewCalculatePriceQuery constructor",
)

// CalculatePriceQuery quotes a delivery fee without placing an order.
// Couriers use it to preview earnings, customers to see the fee before
// checkout.
//
// Example:
//
//	query, err := queries.NewCalculatePriceQuery(pickup, destination, courier.VehicleMoto, false, nil)
//	if err != nil {
//	    return err
//	}
//
//	response, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to quote price: %w", err)
//	}
//
//	fmt.Println(response.Breakdown)
type CalculatePriceQuery struct {
	guard           guard.ConstructorGuard
	pickup          kernel.GeoPoint
	destination     kernel.GeoPoint
	vehicle         courier.VehicleType
	rainGear        bool
	weatherOverride *pricing.Condition
}

// NewCalculatePriceQuery creates a price quote query. A non-nil
// weatherOverride skips the weather provider and prices for that condition.
func NewCalculatePriceQuery(
	pickup kernel.GeoPoint,
	destination kernel.GeoPoint,
	vehicle courier.VehicleType,
	rainGear bool,
	weatherOverride *pricing.Condition,
) (CalculatePriceQuery, error) {
	if err := vehicle.Validate(); err != nil {
		return CalculatePriceQuery{}, err
	}
	if weatherOverride != nil {
		if err := weatherOverride.Validate(); err != nil {
			return CalculatePriceQuery{}, err
		}
	}

	return CalculatePriceQuery{
		guard:           guard.NewConstructorGuard(),
		pickup:          pickup,
		destination:     destination,
		vehicle:         vehicle,
		rainGear:        rainGear,
		weatherOverride: weatherOverride,
	}, nil
}

// Pickup returns the pickup point.
func (q CalculatePriceQuery) Pickup() kernel.GeoPoint {
	return q.pickup
}

// Destination returns the drop-off point.
func (q CalculatePriceQuery) Destination() kernel.GeoPoint {
	return q.destination
}

// Vehicle returns the vehicle the quote is for.
func (q CalculatePriceQuery) Vehicle() courier.VehicleType {
	return q.vehicle
}

// RainGear reports whether the courier carries rain equipment.
func (q CalculatePriceQuery) RainGear() bool {
	return q.rainGear
}

// WeatherOverride returns the forced weather condition, nil when the current
// weather should be used.
func (q CalculatePriceQuery) WeatherOverride() *pricing.Condition {
	return q.weatherOverride
}

// Validate ensures the query was created through the constructor.
func (q CalculatePriceQuery) Validate() error {
	return q.guard.Validate(ErrCalculatePriceQueryIsNotConstructed)
}

// CalculatePriceQueryResponse carries the quote and its human-readable
// breakdown.
type CalculatePriceQueryResponse struct {
	Quote     pricing.Quote
	Breakdown string
}

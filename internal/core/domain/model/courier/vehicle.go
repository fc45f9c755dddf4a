package courier

import (
	"fmt"

	"dzdelivery/internal/pkg/errs"
)

// VehicleType identifies how a courier moves. It feeds the pricing engine's
// vehicle adjustments and the dispatch radius heuristics.
type VehicleType string

const (
	// VehicleMoto is a motorcycle or scooter, the default courier vehicle.
	VehicleMoto VehicleType = "moto"
	// VehicleBicycle is a bicycle.
	VehicleBicycle VehicleType = "bicycle"
	// VehicleCar is a car.
	VehicleCar VehicleType = "car"
)

// validVehicleTypes supports VehicleType validation.
func validVehicleTypes() map[VehicleType]struct{} {
	return map[VehicleType]struct{}{
		VehicleMoto:    {},
		VehicleBicycle: {},
		VehicleCar:     {},
	}
}

// Validate checks that the vehicle type is one of the defined values.
func (v VehicleType) Validate() error {
	if _, ok := validVehicleTypes()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%q is not a valid vehicle type", string(v)))
	}
	return nil
}

// String implements fmt.Stringer.
func (v VehicleType) String() string {
	return string(v)
}

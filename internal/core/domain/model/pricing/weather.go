package pricing

import (
	"fmt"

	"dzdelivery/internal/pkg/errs"
)

// Condition is the coarse weather classification consumed by the pricing
// engine. Providers map whatever their upstream reports onto these values.
type Condition string

const (
	ConditionClear     Condition = "clear"
	ConditionCloudy    Condition = "cloudy"
	ConditionLightRain Condition = "light_rain"
	ConditionHeavyRain Condition = "heavy_rain"
	ConditionStorm     Condition = "storm"
	ConditionFog       Condition = "fog"
	ConditionWind      Condition = "wind"
)

// validConditions supports Condition validation.
func validConditions() map[Condition]struct{} {
	return map[Condition]struct{}{
		ConditionClear:     {},
		ConditionCloudy:    {},
		ConditionLightRain: {},
		ConditionHeavyRain: {},
		ConditionStorm:     {},
		ConditionFog:       {},
		ConditionWind:      {},
	}
}

// Validate checks that the condition is one of the defined values.
func (c Condition) Validate() error {
	if _, ok := validConditions()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("condition", fmt.Errorf("%q is not a valid weather condition", string(c)))
	}
	return nil
}

// String implements fmt.Stringer.
func (c Condition) String() string {
	return string(c)
}

// IsRaining reports whether the condition involves precipitation. Rain gear
// bonuses and vehicle penalties key off this.
func (c Condition) IsRaining() bool {
	return c == ConditionLightRain || c == ConditionHeavyRain || c == ConditionStorm
}

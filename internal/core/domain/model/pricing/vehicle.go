package pricing

import "dzdelivery/internal/core/domain/model/courier"

// VehicleMultiplier returns the vehicle adjustment for the given weather.
// Bicycles and motorcycles get slower and riskier in bad weather; cars get a
// small permanent discount because they are weather-proof and cheap to fill
// a delivery slot with.
//
// Unlike category multipliers, the car discount applies even though it is
// below 1.0; it is a vehicle property, not a surcharge.
func VehicleMultiplier(vehicle courier.VehicleType, condition Condition) float64 {
	switch vehicle {
	case courier.VehicleMoto:
		if condition == ConditionHeavyRain || condition == ConditionStorm {
			return 1.3
		}
		return 1.0
	case courier.VehicleBicycle:
		switch condition {
		case ConditionLightRain:
			return 1.4
		case ConditionHeavyRain, ConditionStorm:
			return 1.8
		case ConditionWind:
			return 1.3
		}
		return 1.0
	case courier.VehicleCar:
		return 0.95
	}
	return 1.0
}

// Fixed bonus amounts in dinars added on top of the multiplied fee.
const (
	// NightBonusOutskirts is paid for night deliveries to the suburban belt
	// and villages.
	NightBonusOutskirts int64 = 50
	// NightBonusMountain is paid for night deliveries on mountain roads.
	NightBonusMountain int64 = 80
	// RainGearBonus is paid to couriers riding with rain equipment in rain.
	RainGearBonus int64 = 30

	// NightStartHour and NightEndHour bound the bonus window (20:00-06:00).
	NightStartHour = 20
	NightEndHour   = 6
)

// IsNightHour reports whether the hour falls in the night bonus window.
func IsNightHour(hour int) bool {
	return hour >= NightStartHour || hour < NightEndHour
}

// NightBonus returns the night delivery bonus for a zone kind, zero outside
// the night window or for central zones.
func NightBonus(kind ZoneKind, hour int) int64 {
	if !IsNightHour(hour) {
		return 0
	}
	switch kind {
	case ZonePeripherie, ZoneVillages:
		return NightBonusOutskirts
	case ZoneMontagne:
		return NightBonusMountain
	}
	return 0
}

// EquipmentBonus returns the rain gear bonus when it is raining and the
// courier carries the gear.
func EquipmentBonus(condition Condition, hasRainGear bool) int64 {
	if condition.IsRaining() && hasRainGear {
		return RainGearBonus
	}
	return 0
}

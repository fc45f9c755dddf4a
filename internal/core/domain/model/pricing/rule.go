package pricing

// TimeRule applies a multiplier during an hour window. Windows may wrap past
// midnight: StartHour 20, EndHour 6 covers the night.
type TimeRule struct {
	Name       string
	StartHour  int
	EndHour    int
	Multiplier float64
}

// Matches reports whether the given hour (0-23) falls in the rule's window.
func (r TimeRule) Matches(hour int) bool {
	if r.StartHour <= r.EndHour {
		return hour >= r.StartHour && hour < r.EndHour
	}
	return hour >= r.StartHour || hour < r.EndHour
}

// WeatherRule applies a multiplier under a weather condition.
type WeatherRule struct {
	Condition  Condition
	Multiplier float64
}

// DemandRule applies a multiplier when the demand ratio (active orders per
// available courier) reaches MinRatio. Rules are evaluated as thresholds, so
// of several matching rules the strongest wins.
type DemandRule struct {
	Name       string
	MinRatio   float64
	Multiplier float64
}

// Matches reports whether the demand ratio reaches the rule's threshold.
func (r DemandRule) Matches(ratio float64) bool {
	return ratio >= r.MinRatio
}

// DefaultTimeRules seeds the standard time multipliers: a lunch rush bump
// and a night tariff.
func DefaultTimeRules() []TimeRule {
	return []TimeRule{
		{Name: "lunch_rush", StartHour: 11, EndHour: 14, Multiplier: 1.15},
		{Name: "night", StartHour: 20, EndHour: 6, Multiplier: 1.25},
	}
}

// DefaultWeatherRules seeds the standard weather multipliers.
func DefaultWeatherRules() []WeatherRule {
	return []WeatherRule{
		{Condition: ConditionLightRain, Multiplier: 1.2},
		{Condition: ConditionHeavyRain, Multiplier: 1.5},
		{Condition: ConditionStorm, Multiplier: 1.8},
		{Condition: ConditionFog, Multiplier: 1.3},
		{Condition: ConditionWind, Multiplier: 1.15},
	}
}

// DefaultDemandRules seeds the standard surge thresholds.
func DefaultDemandRules() []DemandRule {
	return []DemandRule{
		{Name: "busy", MinRatio: 2, Multiplier: 1.3},
		{Name: "surge", MinRatio: 3, Multiplier: 1.5},
	}
}

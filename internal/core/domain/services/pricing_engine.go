package services

import (
	"fmt"
	"math"
	"time"

	"dzdelivery/internal/core/domain/model/courier"
	"dzdelivery/internal/core/domain/model/pricing"
	"dzdelivery/internal/pkg/errs"
)

// PriceRequest carries every input of a delivery fee calculation. The engine
// is pure: callers resolve zone, weather, and demand beforehand and pass the
// results in, which keeps the calculation deterministic and trivially
// testable.
type PriceRequest struct {
	Config     pricing.Config
	DistanceKm float64

	// Zone is the matched delivery zone, nil when the destination is not
	// covered by any configured zone.
	Zone *pricing.Zone

	// At is the moment the quote is for; only the hour matters.
	At time.Time

	Weather pricing.Condition

	// DemandRatio is active orders per available courier. HasDemandData is
	// false when the ratio could not be obtained, in which case no demand
	// multiplier applies and the quote carries a warning.
	DemandRatio   float64
	HasDemandData bool

	Vehicle     courier.VehicleType
	HasRainGear bool

	TimeRules    []pricing.TimeRule
	WeatherRules []pricing.WeatherRule
	DemandRules  []pricing.DemandRule
}

// PricingEngine is a domain service computing dynamic delivery fees.
//
// The calculation:
//
//  1. base fee plus per-kilometer fee,
//  2. one multiplier per category (zone, time, weather, demand, vehicle);
//     within a category the strongest matching rule wins, and surcharge
//     categories only apply when above 1.0 so stacked neutral rules never
//     discount a fee. The vehicle adjustment is exempt: the car discount
//     (0.95) applies as is.
//  3. fixed bonuses (night outskirts/mountain, rain gear),
//  4. clamp to the tariff's min/max, then round up to the rounding step.
//
// On the default tariff with nothing matching, a 5 km trip prices at
// 100 + 5*30 = 250 DA.
type PricingEngine struct{}

// NewPricingEngine creates a new PricingEngine instance.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// Calculate computes a full dynamic quote for the request.
func (e PricingEngine) Calculate(req PriceRequest) (pricing.Quote, error) {
	if req.DistanceKm < 0 {
		return pricing.Quote{}, errs.NewValueIsInvalidError("distanceKm must not be negative")
	}
	if err := req.Weather.Validate(); err != nil {
		return pricing.Quote{}, err
	}
	if err := req.Vehicle.Validate(); err != nil {
		return pricing.Quote{}, err
	}

	raw := float64(req.Config.BaseFee) + req.DistanceKm*float64(req.Config.PricePerKm)
	quote := pricing.Quote{
		BasePrice:        int64(math.Round(raw)),
		DistanceKm:       req.DistanceKm,
		EstimatedMinutes: pricing.EstimateMinutes(req.DistanceKm),
	}

	hour := req.At.Hour()
	total := raw

	if req.Zone != nil && req.Zone.Multiplier() > 1 {
		total *= req.Zone.Multiplier()
		quote.Multipliers = append(quote.Multipliers, pricing.AppliedMultiplier{
			Category: "zone", Name: req.Zone.Name(), Value: req.Zone.Multiplier(),
		})
	}

	if name, value := strongestTimeRule(req.TimeRules, hour); value > 1 {
		total *= value
		quote.Multipliers = append(quote.Multipliers, pricing.AppliedMultiplier{
			Category: "time", Name: name, Value: value,
		})
	}

	if value := strongestWeatherRule(req.WeatherRules, req.Weather); value > 1 {
		total *= value
		quote.Multipliers = append(quote.Multipliers, pricing.AppliedMultiplier{
			Category: "weather", Name: req.Weather.String(), Value: value,
		})
	}

	if req.HasDemandData {
		if name, value := strongestDemandRule(req.DemandRules, req.DemandRatio); value > 1 {
			total *= value
			quote.Multipliers = append(quote.Multipliers, pricing.AppliedMultiplier{
				Category: "demand", Name: name, Value: value,
			})
		}
	} else {
		quote.Warnings = append(quote.Warnings, "demand data unavailable, no demand multiplier applied")
	}

	if value := pricing.VehicleMultiplier(req.Vehicle, req.Weather); value != 1 {
		total *= value
		quote.Multipliers = append(quote.Multipliers, pricing.AppliedMultiplier{
			Category: "vehicle", Name: req.Vehicle.String(), Value: value,
		})
	}

	if req.Zone != nil {
		if bonus := pricing.NightBonus(req.Zone.Kind(), hour); bonus > 0 {
			total += float64(bonus)
			quote.Bonuses = append(quote.Bonuses, pricing.AppliedBonus{Name: "night", Amount: bonus})
		}
	}
	if bonus := pricing.EquipmentBonus(req.Weather, req.HasRainGear); bonus > 0 {
		total += float64(bonus)
		quote.Bonuses = append(quote.Bonuses, pricing.AppliedBonus{Name: "rain_gear", Amount: bonus})
	}

	quote.Total = finalizeFee(total, req.Config)

	return quote, nil
}

// CalculateBase computes the degraded fallback quote: base tariff only, no
// multipliers or bonuses. Used when a pricing input (weather, demand, rules)
// cannot be obtained; quoting must never fail outright.
func (e PricingEngine) CalculateBase(cfg pricing.Config, distanceKm float64) (pricing.Quote, error) {
	if distanceKm < 0 {
		return pricing.Quote{}, errs.NewValueIsInvalidError("distanceKm must not be negative")
	}

	raw := float64(cfg.BaseFee) + distanceKm*float64(cfg.PricePerKm)
	return pricing.Quote{
		BasePrice:        int64(math.Round(raw)),
		DistanceKm:       distanceKm,
		EstimatedMinutes: pricing.EstimateMinutes(distanceKm),
		Total:            finalizeFee(raw, cfg),
		Degraded:         true,
		Warnings:         []string{"dynamic pricing unavailable, base tariff applied"},
	}, nil
}

// finalizeFee clamps the fee to the tariff bounds and rounds it up to the
// tariff's rounding step.
func finalizeFee(total float64, cfg pricing.Config) int64 {
	fee := int64(math.Ceil(total))
	if fee < cfg.MinPrice {
		fee = cfg.MinPrice
	}
	if fee > cfg.MaxPrice {
		fee = cfg.MaxPrice
	}
	if cfg.RoundTo > 1 {
		if remainder := fee % cfg.RoundTo; remainder != 0 {
			fee += cfg.RoundTo - remainder
			if fee > cfg.MaxPrice {
				fee = cfg.MaxPrice
			}
		}
	}
	return fee
}

func strongestTimeRule(rules []pricing.TimeRule, hour int) (string, float64) {
	name, best := "", 0.0
	for _, r := range rules {
		if r.Matches(hour) && r.Multiplier > best {
			name, best = r.Name, r.Multiplier
		}
	}
	return name, best
}

func strongestWeatherRule(rules []pricing.WeatherRule, condition pricing.Condition) float64 {
	best := 0.0
	for _, r := range rules {
		if r.Condition == condition && r.Multiplier > best {
			best = r.Multiplier
		}
	}
	return best
}

func strongestDemandRule(rules []pricing.DemandRule, ratio float64) (string, float64) {
	name, best := "", 0.0
	for _, r := range rules {
		if r.Matches(ratio) && r.Multiplier > best {
			name, best = fmt.Sprintf("%s (ratio %.1f)", r.Name, ratio), r.Multiplier
		}
	}
	return name, best
}

package ports

import (
	"context"

	"dzdelivery/internal/core/domain/model/pricing"
)

// PricingRepository defines the persistence contract for the pricing
// configuration and the quote audit trail.
type PricingRepository interface {
	// GetConfig retrieves the active tariff. Implementations return the
	// default tariff when none is configured.
	GetConfig(ctx context.Context) (pricing.Config, error)

	// GetZones retrieves all configured delivery zones.
	GetZones(ctx context.Context) ([]pricing.Zone, error)

	// GetTimeRules retrieves the active time multiplier rules.
	GetTimeRules(ctx context.Context) ([]pricing.TimeRule, error)

	// GetWeatherRules retrieves the active weather multiplier rules.
	GetWeatherRules(ctx context.Context) ([]pricing.WeatherRule, error)

	// GetDemandRules retrieves the active demand threshold rules.
	GetDemandRules(ctx context.Context) ([]pricing.DemandRule, error)

	// SaveCalculation persists a quote audit record.
	SaveCalculation(ctx context.Context, calculation pricing.Calculation) error
}

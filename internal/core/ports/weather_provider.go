package ports

import (
	"context"

	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/pricing"
)

// WeatherProvider reports the current weather condition at a location.
// Implementations cache aggressively; pricing tolerates hour-old weather.
// A provider failure degrades the quote instead of failing it.
type WeatherProvider interface {
	Current(ctx context.Context, at kernel.GeoPoint) (pricing.Condition, error)
}

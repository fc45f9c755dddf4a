// Package weather implements ports.WeatherProvider. Conditions are simulated
// from time-of-day probability tables and cached in redis for an hour per
// rounded coordinate cell, so repeated quotes in the same area see the same
// weather. Any cache or simulation failure degrades to clear weather.
package weather

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/pricing"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = time.Hour

// CachedSimulatedProvider simulates the current weather condition and keeps
// it stable for an hour through a redis cache. Coordinates are rounded to two
// decimals (roughly a 1km cell) so nearby lookups share an entry.
type CachedSimulatedProvider struct {
	client redis.UniversalClient
	logger *slog.Logger
	roll   func() float64
	now    func() time.Time
}

// NewCachedSimulatedProvider creates a provider backed by the given redis
// client. A nil client disables caching and every call re-simulates. One
// provider instance serves concurrent quotes, so rolls come from the
// goroutine-safe top-level generator.
func NewCachedSimulatedProvider(client redis.UniversalClient, logger *slog.Logger) *CachedSimulatedProvider {
	return &CachedSimulatedProvider{
		client: client,
		logger: logger.With("component", "weather-provider"),
		roll:   rand.Float64,
		now:    time.Now,
	}
}

// Current returns the weather condition at the given location.
func (p *CachedSimulatedProvider) Current(ctx context.Context, at kernel.GeoPoint) (pricing.Condition, error) {
	key := cacheKey(at)

	if p.client != nil {
		cached, err := p.client.Get(ctx, key).Result()
		if err == nil {
			condition := pricing.Condition(cached)
			if condition.Validate() == nil {
				return condition, nil
			}
			p.logger.Warn("discarding invalid cached weather condition", "key", key, "value", cached)
		} else if err != redis.Nil {
			p.logger.Warn("weather cache read failed", "key", key, "error", err)
		}
	}

	condition := p.simulate(p.now())

	if p.client != nil {
		if err := p.client.Set(ctx, key, string(condition), cacheTTL).Err(); err != nil {
			p.logger.Warn("weather cache write failed", "key", key, "error", err)
		}
	}

	return condition, nil
}

// simulate draws a condition from hour-dependent probability tables. Daytime
// skews clear with occasional rain; nights add fog instead of heavy rain.
func (p *CachedSimulatedProvider) simulate(now time.Time) pricing.Condition {
	hour := now.Hour()
	roll := p.roll()

	if hour >= 6 && hour <= 18 {
		switch {
		case roll < 0.70:
			return pricing.ConditionClear
		case roll < 0.85:
			return pricing.ConditionCloudy
		case roll < 0.95:
			return pricing.ConditionLightRain
		default:
			return pricing.ConditionHeavyRain
		}
	}

	switch {
	case roll < 0.60:
		return pricing.ConditionClear
	case roll < 0.80:
		return pricing.ConditionCloudy
	case roll < 0.90:
		return pricing.ConditionFog
	default:
		return pricing.ConditionLightRain
	}
}

func cacheKey(at kernel.GeoPoint) string {
	return fmt.Sprintf("weather:%.2f:%.2f", at.Latitude(), at.Longitude())
}

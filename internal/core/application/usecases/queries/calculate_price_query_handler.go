package queries

import (
	"context"
	"log/slog"
	"time"

	"dzdelivery/internal/core/domain/model/demand"
	"dzdelivery/internal/core/domain/model/pricing"
	"dzdelivery/internal/core/domain/services"
	"dzdelivery/internal/core/ports"
)

// CalculatePriceQueryHandler quotes delivery fees. It resolves every pricing
// input (tariff, zone, rules, weather, demand), runs the pricing engine, and
// archives the calculation for audit.
//
// Quoting never fails on a missing input: unreachable rule tables fall back
// to the built-in defaults, an unreachable weather provider prices for clear
// sky, and the quote carries a warning for each degradation.
type CalculatePriceQueryHandler struct {
	pricingRepo ports.PricingRepository
	demandRepo  ports.DemandRepository
	weather     ports.WeatherProvider
	engine      services.PricingEngine
	logger      *slog.Logger
}

// NewCalculatePriceQueryHandler creates a handler for price quotes.
func NewCalculatePriceQueryHandler(
	pricingRepo ports.PricingRepository,
	demandRepo ports.DemandRepository,
	weather ports.WeatherProvider,
	logger *slog.Logger,
) CalculatePriceQueryHandler {
	return CalculatePriceQueryHandler{
		pricingRepo: pricingRepo,
		demandRepo:  demandRepo,
		weather:     weather,
		engine:      services.NewPricingEngine(),
		logger:      logger,
	}
}

// Handle executes the quote.
func (h CalculatePriceQueryHandler) Handle(
	ctx context.Context,
	query CalculatePriceQuery,
) (CalculatePriceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CalculatePriceQueryResponse{}, err
	}

	now := time.Now()

	cfg, err := h.pricingRepo.GetConfig(ctx)
	if err != nil {
		h.logger.Warn("pricing config unavailable, using default tariff", "error", err)
		cfg = pricing.DefaultConfig()
	}

	req := services.PriceRequest{
		Config:      cfg,
		DistanceKm:  query.Pickup().DistanceKm(query.Destination()),
		At:          now,
		Weather:     h.resolveWeather(ctx, query),
		Vehicle:     query.Vehicle(),
		HasRainGear: query.RainGear(),
	}

	if zones, zonesErr := h.pricingRepo.GetZones(ctx); zonesErr == nil {
		if zone, found := pricing.MatchZone(zones, query.Destination()); found {
			req.Zone = &zone
		}
	} else {
		h.logger.Warn("zones unavailable", "error", zonesErr)
	}

	if req.TimeRules, err = h.pricingRepo.GetTimeRules(ctx); err != nil {
		h.logger.Warn("time rules unavailable", "error", err)
		req.TimeRules = pricing.DefaultTimeRules()
	}
	if req.WeatherRules, err = h.pricingRepo.GetWeatherRules(ctx); err != nil {
		h.logger.Warn("weather rules unavailable", "error", err)
		req.WeatherRules = pricing.DefaultWeatherRules()
	}
	if req.DemandRules, err = h.pricingRepo.GetDemandRules(ctx); err != nil {
		h.logger.Warn("demand rules unavailable", "error", err)
		req.DemandRules = pricing.DefaultDemandRules()
	}

	activeOrders, ordersErr := h.demandRepo.CountActiveOrders(ctx)
	availableCouriers, couriersErr := h.demandRepo.CountAvailableCouriers(ctx)
	if ordersErr == nil && couriersErr == nil {
		req.HasDemandData = true
		req.DemandRatio = demand.Ratio(activeOrders, availableCouriers)
	}

	quote, err := h.engine.Calculate(req)
	if err != nil {
		h.logger.Warn("dynamic pricing failed, falling back to base tariff", "error", err)
		if quote, err = h.engine.CalculateBase(cfg, req.DistanceKm); err != nil {
			return CalculatePriceQueryResponse{}, err
		}
	}

	if saveErr := h.pricingRepo.SaveCalculation(ctx, pricing.NewCalculation(quote, nil, now)); saveErr != nil {
		h.logger.Warn("failed to persist price calculation", "error", saveErr)
	}

	return CalculatePriceQueryResponse{
		Quote:     quote,
		Breakdown: quote.Breakdown(),
	}, nil
}

func (h CalculatePriceQueryHandler) resolveWeather(ctx context.Context, query CalculatePriceQuery) pricing.Condition {
	if query.WeatherOverride() != nil {
		return *query.WeatherOverride()
	}

	condition, err := h.weather.Current(ctx, query.Destination())
	if err != nil {
		h.logger.Warn("weather unavailable, assuming clear", "error", err)
		return pricing.ConditionClear
	}
	return condition
}

package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dzdelivery/internal/core/domain/model/courier"
	"dzdelivery/internal/core/domain/model/demand"
	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/order"
	"dzdelivery/internal/core/domain/model/pricing"
	"dzdelivery/internal/core/domain/services"
	"dzdelivery/internal/core/ports"
)

// CreateOrderResult reports what the checkout produced. The confirmation
// code is returned once here; couriers never see it through the API.
type CreateOrderResult struct {
	OrderID          kernel.UUID
	Number           string
	ConfirmationCode string
	DeliveryFee      int64
	Total            int64
	EstimatedMinutes int
	PriceDegraded    bool
	PriceWarnings    []string
}

// maxNumberAttempts bounds how often placement redraws the daily sequence
// after an order number collision with a concurrent checkout.
const maxNumberAttempts = 3

// CreateOrderCommandHandler places orders: it prices the trip, draws the
// daily order number, persists the order with its initial history entry, and
// notifies nearby couriers after commit. A number taken by a concurrent
// checkout is retried with the next sequence value.
//
// Pricing is resilient by design. If the weather provider or the rule tables
// are unreachable the handler falls back to the base tariff and flags the
// quote as degraded; checkout never fails because an input was missing. The
// quote audit record is persisted best effort for the same reason.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	weather    ports.WeatherProvider
	notifier   ports.Notifier
	selector   services.DispatchSelector
	engine     services.PricingEngine
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	weather ports.WeatherProvider,
	notifier ports.Notifier,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		weather:    weather,
		notifier:   notifier,
		selector:   services.NewDispatchSelector(),
		engine:     services.NewPricingEngine(),
		logger:     logger,
	}
}

// Handle processes the order placement command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (CreateOrderResult, error) {
	if err := command.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	// A duplicate number aborts the whole transaction, so each retry
	// starts a fresh unit of work and redraws the sequence.
	var result CreateOrderResult
	var err error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		result, err = h.place(ctx, command)
		if !errors.Is(err, ports.ErrDuplicateOrderNumber) {
			return result, err
		}
		h.logger.Warn("order number collision, redrawing sequence",
			"attempt", attempt, "error", err)
	}
	return result, err
}

// place runs one placement attempt inside its own transaction.
func (h CreateOrderCommandHandler) place(ctx context.Context, command CreateOrderCommand) (CreateOrderResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	distanceKm := command.Pickup().DistanceKm(command.Destination())

	quote := h.price(ctx, uow, command, distanceKm, now)

	ordersRepo := uow.OrderRepository()
	sequence, err := ordersRepo.NextDailySequence(ctx, now)
	if err != nil {
		return CreateOrderResult{}, err
	}

	newOrder, err := order.NewOrder(
		order.GenerateNumber(now, sequence),
		command.CustomerID(),
		command.RestaurantID(),
		command.Subtotal(),
		quote.Total,
		command.Pickup(),
		command.Destination(),
		command.Address(),
		distanceKm,
		now,
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = ordersRepo.Add(ctx, newOrder); err != nil {
		return CreateOrderResult{}, err
	}

	orderID := newOrder.ID()
	if err = uow.PricingRepository().SaveCalculation(ctx, pricing.NewCalculation(quote, &orderID, now)); err != nil {
		h.logger.Warn("failed to persist price calculation", "orderId", orderID.String(), "error", err)
	}

	nearest := h.nearestCourier(ctx, uow, newOrder)

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	h.notifyCouriers(ctx, newOrder, nearest)

	return CreateOrderResult{
		OrderID:          newOrder.ID(),
		Number:           newOrder.Number(),
		ConfirmationCode: newOrder.ConfirmationCode(),
		DeliveryFee:      quote.Total,
		Total:            newOrder.Total(),
		EstimatedMinutes: quote.EstimatedMinutes,
		PriceDegraded:    quote.Degraded,
		PriceWarnings:    quote.Warnings,
	}, nil
}

// price computes the delivery fee, degrading to the base tariff when any
// pricing input is unavailable.
func (h CreateOrderCommandHandler) price(
	ctx context.Context,
	uow UoW,
	command CreateOrderCommand,
	distanceKm float64,
	now time.Time,
) pricing.Quote {
	pricingRepo := uow.PricingRepository()

	cfg, err := pricingRepo.GetConfig(ctx)
	if err != nil {
		h.logger.Warn("pricing config unavailable, using default tariff", "error", err)
		cfg = pricing.DefaultConfig()
	}

	req := services.PriceRequest{
		Config:     cfg,
		DistanceKm: distanceKm,
		At:         now,
		Weather:    pricing.ConditionClear,
		// Pricing at checkout does not know which courier will take the
		// order, so the neutral vehicle is assumed.
		Vehicle: courier.VehicleMoto,
	}

	zones, err := pricingRepo.GetZones(ctx)
	if err == nil {
		if zone, found := pricing.MatchZone(zones, command.Destination()); found {
			req.Zone = &zone
		}
	} else {
		h.logger.Warn("zones unavailable", "error", err)
	}

	if req.TimeRules, err = pricingRepo.GetTimeRules(ctx); err != nil {
		h.logger.Warn("time rules unavailable", "error", err)
		req.TimeRules = pricing.DefaultTimeRules()
	}
	if req.WeatherRules, err = pricingRepo.GetWeatherRules(ctx); err != nil {
		h.logger.Warn("weather rules unavailable", "error", err)
		req.WeatherRules = pricing.DefaultWeatherRules()
	}
	if req.DemandRules, err = pricingRepo.GetDemandRules(ctx); err != nil {
		h.logger.Warn("demand rules unavailable", "error", err)
		req.DemandRules = pricing.DefaultDemandRules()
	}

	if condition, weatherErr := h.weather.Current(ctx, command.Destination()); weatherErr == nil {
		req.Weather = condition
	} else {
		h.logger.Warn("weather unavailable, assuming clear", "error", weatherErr)
	}

	demandRepo := uow.DemandRepository()
	activeOrders, ordersErr := demandRepo.CountActiveOrders(ctx)
	availableCouriers, couriersErr := demandRepo.CountAvailableCouriers(ctx)
	if ordersErr == nil && couriersErr == nil {
		req.HasDemandData = true
		req.DemandRatio = demand.Ratio(activeOrders, availableCouriers)
	}

	quote, err := h.engine.Calculate(req)
	if err == nil {
		return quote
	}

	h.logger.Warn("dynamic pricing failed, falling back to base tariff", "error", err)
	quote, err = h.engine.CalculateBase(cfg, distanceKm)
	if err != nil {
		// Only a negative distance reaches here, which the command
		// construction already excludes.
		quote, _ = h.engine.CalculateBase(pricing.DefaultConfig(), 0)
		quote.DistanceKm = distanceKm
	}
	return quote
}

// nearestCourier picks the dispatch notification target while the
// transaction is still open. A nil result means broadcast.
func (h CreateOrderCommandHandler) nearestCourier(ctx context.Context, uow UoW, o *order.Order) *courier.Courier {
	couriers, err := uow.CourierRepository().GetAllDispatchable(ctx)
	if err != nil {
		h.logger.Warn("failed to load dispatchable couriers", "error", err)
		return nil
	}

	selected, err := h.selector.Select(o.Pickup(), couriers)
	if err != nil {
		return nil
	}
	return selected
}

func (h CreateOrderCommandHandler) notifyCouriers(ctx context.Context, o *order.Order, nearest *courier.Courier) {
	var targets []kernel.UUID
	if nearest != nil {
		targets = []kernel.UUID{nearest.ID()}
	}
	if err := h.notifier.NotifyNewDelivery(ctx, o, targets); err != nil {
		h.logger.Warn("new delivery notification failed", "orderId", o.ID().String(), "error", err)
	}
}

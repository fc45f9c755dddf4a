// Package http exposes the marketplace operations over a thin echo surface.
// Handlers translate JSON to commands and queries, delegate, and map domain
// errors onto HTTP status codes. No business rules live here.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dzdelivery/internal/core/application/usecases/commands"
	"dzdelivery/internal/core/application/usecases/queries"
	"dzdelivery/internal/core/domain/model/actor"
	"dzdelivery/internal/core/domain/model/courier"
	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/order"
	"dzdelivery/internal/core/domain/model/pricing"
	"dzdelivery/internal/core/ports"
	"dzdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires the application use cases to their routes.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler

	getOrderHandler         queries.GetOrderQueryHandler
	calculatePriceHandler   queries.CalculatePriceQueryHandler
	getCurrentDemandHandler queries.GetCurrentDemandQueryHandler
	demandTrendsHandler     queries.DemandTrendsQueryHandler
	peakHoursHandler        queries.PeakHoursQueryHandler
	predictDemandHandler    queries.PredictDemandQueryHandler
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	calculatePriceHandler queries.CalculatePriceQueryHandler,
	getCurrentDemandHandler queries.GetCurrentDemandQueryHandler,
	demandTrendsHandler queries.DemandTrendsQueryHandler,
	peakHoursHandler queries.PeakHoursQueryHandler,
	predictDemandHandler queries.PredictDemandQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		changeStatusHandler:     changeStatusHandler,
		cancelOrderHandler:      cancelOrderHandler,
		getOrderHandler:         getOrderHandler,
		calculatePriceHandler:   calculatePriceHandler,
		getCurrentDemandHandler: getCurrentDemandHandler,
		demandTrendsHandler:     demandTrendsHandler,
		peakHoursHandler:        peakHoursHandler,
		predictDemandHandler:    predictDemandHandler,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/number/:number", s.GetOrderByNumber)
	v1.GET("/orders/:id", s.GetOrder)
	v1.PUT("/orders/:id/status", s.ChangeOrderStatus)
	v1.PUT("/orders/:id/cancel", s.CancelOrder)

	v1.POST("/pricing/calculate", s.CalculatePrice)
	v1.GET("/pricing/demand/current", s.GetCurrentDemand)
	v1.GET("/pricing/demand/trends", s.GetDemandTrends)
	v1.GET("/pricing/demand/peak-hours", s.GetPeakHours)
	v1.GET("/pricing/demand/predict", s.PredictDemand)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customerId")
	}
	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(ctx, "invalid restaurantId")
	}
	pickup, err := kernel.NewGeoPoint(req.Pickup.Latitude, req.Pickup.Longitude)
	if err != nil {
		return badRequest(ctx, "invalid pickup: "+err.Error())
	}
	destination, err := kernel.NewGeoPoint(req.Destination.Latitude, req.Destination.Longitude)
	if err != nil {
		return badRequest(ctx, "invalid destination: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(customerID, restaurantID, pickup, destination, req.Address, req.Subtotal)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, newCreateOrderResponse(result))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQueryByID(id)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newOrderJSON(response))
}

// GetOrderByNumber handles GET /api/v1/orders/number/:number.
func (s *Server) GetOrderByNumber(ctx echo.Context) error {
	query, err := queries.NewGetOrderQueryByNumber(ctx.Param("number"))
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newOrderJSON(response))
}

// ChangeOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req changeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	by, err := parseActor(req.Actor)
	if err != nil {
		return writeError(ctx, err)
	}

	next := order.Status(req.Status)
	if err := next.Validate(); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, by, next, req.Note, req.ConfirmationCode)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles PUT /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req cancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	by, err := parseActor(req.Actor)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, by, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CalculatePrice handles POST /api/v1/pricing/calculate.
func (s *Server) CalculatePrice(ctx echo.Context) error {
	var req calculatePriceRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	pickup, err := kernel.NewGeoPoint(req.Pickup.Latitude, req.Pickup.Longitude)
	if err != nil {
		return badRequest(ctx, "invalid pickup: "+err.Error())
	}
	destination, err := kernel.NewGeoPoint(req.Destination.Latitude, req.Destination.Longitude)
	if err != nil {
		return badRequest(ctx, "invalid destination: "+err.Error())
	}

	var override *pricing.Condition
	if req.Weather != "" {
		condition := pricing.Condition(req.Weather)
		override = &condition
	}

	query, err := queries.NewCalculatePriceQuery(pickup, destination, courier.VehicleType(req.Vehicle), req.RainGear, override)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.calculatePriceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newQuoteJSON(response.Quote, response.Breakdown))
}

// GetCurrentDemand handles GET /api/v1/pricing/demand/current.
func (s *Server) GetCurrentDemand(ctx echo.Context) error {
	response, err := s.getCurrentDemandHandler.Handle(ctx.Request().Context(), queries.NewGetCurrentDemandQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, currentDemandJSON{
		At:                response.At,
		ActiveOrders:      response.ActiveOrders,
		AvailableCouriers: response.AvailableCouriers,
		Ratio:             response.Ratio,
		Level:             string(response.Level),
	})
}

// GetDemandTrends handles GET /api/v1/pricing/demand/trends?days=7|30.
func (s *Server) GetDemandTrends(ctx echo.Context) error {
	days := queries.TrendWindowWeek
	if raw := ctx.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "invalid days parameter")
		}
		days = parsed
	}

	query, err := queries.NewDemandTrendsQuery(days)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.demandTrendsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	out := demandTrendsJSON{
		Days:   response.Days,
		Hourly: make([]hourlyTrendJSON, 0, len(response.Hourly)),
		Weekly: make([]weeklyTrendJSON, 0, len(response.Weekly)),
	}
	for _, h := range response.Hourly {
		out.Hourly = append(out.Hourly, hourlyTrendJSON{Hour: h.Hour, AvgRatio: h.AvgRatio, Samples: h.Samples})
	}
	for _, w := range response.Weekly {
		out.Weekly = append(out.Weekly, weeklyTrendJSON{DayOfWeek: w.DayOfWeek, AvgRatio: w.AvgRatio, Samples: w.Samples})
	}

	return ctx.JSON(http.StatusOK, out)
}

// GetPeakHours handles GET /api/v1/pricing/demand/peak-hours.
func (s *Server) GetPeakHours(ctx echo.Context) error {
	peaks, err := s.peakHoursHandler.Handle(ctx.Request().Context(), queries.NewPeakHoursQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	out := make([]peakHourJSON, 0, len(peaks))
	for _, peak := range peaks {
		out = append(out, peakHourJSON{Hour: peak.Hour, AvgRatio: peak.AvgRatio, Samples: peak.Samples})
	}

	return ctx.JSON(http.StatusOK, out)
}

// PredictDemand handles GET /api/v1/pricing/demand/predict?at=RFC3339.
// Without an at parameter the prediction targets one hour from now.
func (s *Server) PredictDemand(ctx echo.Context) error {
	at := time.Now().Add(time.Hour)
	if raw := ctx.QueryParam("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(ctx, "invalid at parameter, expected RFC3339")
		}
		at = parsed
	}

	query, err := queries.NewPredictDemandQuery(at)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.predictDemandHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, demandPredictionJSON{
		At:             response.At,
		PredictedRatio: response.PredictedRatio,
		Level:          string(response.Level),
		Samples:        response.Samples,
	})
}

func parseActor(ref actorRef) (actor.Actor, error) {
	id, err := kernel.UUIDFromString(ref.ID)
	if err != nil {
		return actor.Actor{}, errs.NewValueIsInvalidErrorWithCause("actor.id", err)
	}
	return actor.NewActor(actor.Role(ref.Role), id)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, apiError{Code: http.StatusBadRequest, Message: message})
}

func writeError(ctx echo.Context, err error) error {
	code := statusForError(err)
	return ctx.JSON(code, apiError{Code: code, Message: err.Error()})
}

// statusForError maps domain and application errors onto HTTP status codes.
// Unknown errors become 500 without leaking internals past the message.
func statusForError(err error) int {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}

	switch {
	case errors.Is(err, order.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrNonCancellable),
		errors.Is(err, order.ErrAlreadyCancelled),
		errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, courier.ErrCourierNotAvailable),
		errors.Is(err, ports.ErrPreconditionFailed):
		return http.StatusConflict
	case errors.Is(err, order.ErrInvalidConfirmationCode):
		return http.StatusBadRequest
	}

	var invalid *errs.ValueIsInvalidError
	var required *errs.ValueIsRequiredError
	var outOfRange *errs.ValueIsOutOfRangeError
	if errors.As(err, &invalid) || errors.As(err, &required) || errors.As(err, &outOfRange) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

package http

import (
	"time"

	"dzdelivery/internal/core/application/usecases/commands"
	"dzdelivery/internal/core/application/usecases/queries"
	"dzdelivery/internal/core/domain/model/pricing"
)

// apiError is the uniform error envelope.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// actorRef identifies who performs a state-changing request. Authentication
// is out of scope here; upstream middleware is expected to have verified the
// identity before it reaches this service.
type actorRef struct {
	Role string `json:"role"`
	ID   string `json:"id"`
}

type geoPointJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type createOrderRequest struct {
	CustomerID   string       `json:"customerId"`
	RestaurantID string       `json:"restaurantId"`
	Pickup       geoPointJSON `json:"pickup"`
	Destination  geoPointJSON `json:"destination"`
	Address      string       `json:"address"`
	Subtotal     int64        `json:"subtotal"`
}

type createOrderResponse struct {
	OrderID          string   `json:"orderId"`
	Number           string   `json:"number"`
	ConfirmationCode string   `json:"confirmationCode"`
	DeliveryFee      int64    `json:"deliveryFee"`
	Total            int64    `json:"total"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
	PriceDegraded    bool     `json:"priceDegraded"`
	PriceWarnings    []string `json:"priceWarnings,omitempty"`
}

func newCreateOrderResponse(result commands.CreateOrderResult) createOrderResponse {
	return createOrderResponse{
		OrderID:          result.OrderID.String(),
		Number:           result.Number,
		ConfirmationCode: result.ConfirmationCode,
		DeliveryFee:      result.DeliveryFee,
		Total:            result.Total,
		EstimatedMinutes: result.EstimatedMinutes,
		PriceDegraded:    result.PriceDegraded,
		PriceWarnings:    result.PriceWarnings,
	}
}

type changeStatusRequest struct {
	Actor            actorRef `json:"actor"`
	Status           string   `json:"status"`
	Note             string   `json:"note"`
	ConfirmationCode string   `json:"confirmationCode"`
}

type cancelOrderRequest struct {
	Actor  actorRef `json:"actor"`
	Reason string   `json:"reason"`
}

type statusChangeJSON struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changedBy"`
	Note      string    `json:"note,omitempty"`
	At        time.Time `json:"at"`
}

type orderJSON struct {
	ID                 string             `json:"id"`
	Number             string             `json:"number"`
	CustomerID         string             `json:"customerId"`
	RestaurantID       string             `json:"restaurantId"`
	CourierID          *string            `json:"courierId,omitempty"`
	Status             string             `json:"status"`
	Subtotal           int64              `json:"subtotal"`
	DeliveryFee        int64              `json:"deliveryFee"`
	Total              int64              `json:"total"`
	Address            string             `json:"address"`
	DistanceKm         float64            `json:"distanceKm"`
	CreatedAt          time.Time          `json:"createdAt"`
	DeliveredAt        *time.Time         `json:"deliveredAt,omitempty"`
	CancelledAt        *time.Time         `json:"cancelledAt,omitempty"`
	CancelledBy        string             `json:"cancelledBy,omitempty"`
	CancellationReason string             `json:"cancellationReason,omitempty"`
	History            []statusChangeJSON `json:"history"`
}

func newOrderJSON(response queries.GetOrderQueryResponse) orderJSON {
	out := orderJSON{
		ID:                 response.ID.String(),
		Number:             response.Number,
		CustomerID:         response.CustomerID.String(),
		RestaurantID:       response.RestaurantID.String(),
		Status:             string(response.Status),
		Subtotal:           response.Subtotal,
		DeliveryFee:        response.DeliveryFee,
		Total:              response.Total,
		Address:            response.Address,
		DistanceKm:         response.DistanceKm,
		CreatedAt:          response.CreatedAt,
		DeliveredAt:        response.DeliveredAt,
		CancelledAt:        response.CancelledAt,
		CancelledBy:        response.CancelledBy,
		CancellationReason: response.CancellationReason,
		History:            make([]statusChangeJSON, 0, len(response.History)),
	}
	if response.CourierID != nil {
		courierID := response.CourierID.String()
		out.CourierID = &courierID
	}
	for _, change := range response.History {
		out.History = append(out.History, statusChangeJSON{
			Status:    string(change.Status),
			ChangedBy: string(change.ChangedBy),
			Note:      change.Note,
			At:        change.At,
		})
	}
	return out
}

type calculatePriceRequest struct {
	Pickup      geoPointJSON `json:"pickup"`
	Destination geoPointJSON `json:"destination"`
	Vehicle     string       `json:"vehicle"`
	RainGear    bool         `json:"rainGear"`
	Weather     string       `json:"weather,omitempty"`
}

type appliedMultiplierJSON struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
}

type appliedBonusJSON struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

type quoteJSON struct {
	BasePrice        int64                   `json:"basePrice"`
	DistanceKm       float64                 `json:"distanceKm"`
	Multipliers      []appliedMultiplierJSON `json:"multipliers"`
	Bonuses          []appliedBonusJSON      `json:"bonuses"`
	Total            int64                   `json:"total"`
	EstimatedMinutes int                     `json:"estimatedMinutes"`
	Warnings         []string                `json:"warnings,omitempty"`
	Degraded         bool                    `json:"degraded"`
	Breakdown        string                  `json:"breakdown"`
}

func newQuoteJSON(quote pricing.Quote, breakdown string) quoteJSON {
	multipliers := make([]appliedMultiplierJSON, 0, len(quote.Multipliers))
	for _, m := range quote.Multipliers {
		multipliers = append(multipliers, appliedMultiplierJSON{
			Category: m.Category,
			Name:     m.Name,
			Value:    m.Value,
		})
	}
	bonuses := make([]appliedBonusJSON, 0, len(quote.Bonuses))
	for _, b := range quote.Bonuses {
		bonuses = append(bonuses, appliedBonusJSON{Name: b.Name, Amount: b.Amount})
	}
	return quoteJSON{
		BasePrice:        quote.BasePrice,
		DistanceKm:       quote.DistanceKm,
		Multipliers:      multipliers,
		Bonuses:          bonuses,
		Total:            quote.Total,
		EstimatedMinutes: quote.EstimatedMinutes,
		Warnings:         quote.Warnings,
		Degraded:         quote.Degraded,
		Breakdown:        breakdown,
	}
}

type currentDemandJSON struct {
	At                time.Time `json:"at"`
	ActiveOrders      int       `json:"activeOrders"`
	AvailableCouriers int       `json:"availableCouriers"`
	Ratio             float64   `json:"ratio"`
	Level             string    `json:"level"`
}

type hourlyTrendJSON struct {
	Hour     int     `json:"hour"`
	AvgRatio float64 `json:"avgRatio"`
	Samples  int     `json:"samples"`
}

type weeklyTrendJSON struct {
	DayOfWeek int     `json:"dayOfWeek"`
	AvgRatio  float64 `json:"avgRatio"`
	Samples   int     `json:"samples"`
}

type demandTrendsJSON struct {
	Days   int               `json:"days"`
	Hourly []hourlyTrendJSON `json:"hourly"`
	Weekly []weeklyTrendJSON `json:"weekly"`
}

type peakHourJSON struct {
	Hour     int     `json:"hour"`
	AvgRatio float64 `json:"avgRatio"`
	Samples  int     `json:"samples"`
}

type demandPredictionJSON struct {
	At             time.Time `json:"at"`
	PredictedRatio float64   `json:"predictedRatio"`
	Level          string    `json:"level"`
	Samples        int       `json:"samples"`
}

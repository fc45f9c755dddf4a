package pricing

import (
	"time"

	"dzdelivery/internal/core/domain/model/kernel"
)

// Calculation is the audit record of one produced quote. Every quote served
// to a client is persisted best effort so support can answer "why did this
// delivery cost 380 DA"; a failure to persist never fails the quote.
type Calculation struct {
	ID         kernel.UUID
	OrderID    *kernel.UUID
	DistanceKm float64
	BasePrice  int64
	Total      int64
	Breakdown  string
	Warnings   []string
	Degraded   bool
	At         time.Time
}

// NewCalculation builds the audit record for a quote. orderID is nil for
// exploratory quotes that are not attached to an order yet.
func NewCalculation(quote Quote, orderID *kernel.UUID, at time.Time) Calculation {
	return Calculation{
		ID:         kernel.NewUUID(),
		OrderID:    orderID,
		DistanceKm: quote.DistanceKm,
		BasePrice:  quote.BasePrice,
		Total:      quote.Total,
		Breakdown:  quote.Breakdown(),
		Warnings:   quote.Warnings,
		Degraded:   quote.Degraded,
		At:         at,
	}
}

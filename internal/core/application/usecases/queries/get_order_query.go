package queries

import (
	"errors"
	"time"

	"dzdelivery/internal/core/domain/model/actor"
	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/order"
	"dzdelivery/internal/pkg/errs"
	"dzdelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via a NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its full status history, looked
// up either by ID or by the human-facing order number.
//
// Example:
//
//	query, err := queries.NewGetOrderQueryByNumber("DZ-20250615-042")
//	if err != nil {
//	    return err
//	}
//
//	response, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("%s is %s\n", response.Number, response.Status)
type GetOrderQuery struct {
	guard  guard.ConstructorGuard
	id     *kernel.UUID
	number string
}

// NewGetOrderQueryByID creates a query to fetch an order by its identifier.
func NewGetOrderQueryByID(id kernel.UUID) (GetOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	return GetOrderQuery{guard: guard.NewConstructorGuard(), id: &id}, nil
}

// NewGetOrderQueryByNumber creates a query to fetch an order by its number.
func NewGetOrderQueryByNumber(number string) (GetOrderQuery, error) {
	if number == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("number")
	}
	return GetOrderQuery{guard: guard.NewConstructorGuard(), number: number}, nil
}

// ID returns the order identifier filter, nil when querying by number.
func (q GetOrderQuery) ID() *kernel.UUID {
	return q.id
}

// Number returns the order number filter, empty when querying by ID.
func (q GetOrderQuery) Number() string {
	return q.number
}

// Validate ensures the query was created through a constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// StatusChangeItem is one entry of an order's status history.
type StatusChangeItem struct {
	Status    order.Status
	ChangedBy actor.Role
	Note      string
	At        time.Time
}

// GetOrderQueryResponse carries the order read model. The confirmation code
// is deliberately absent: it travels to the customer at checkout only.
type GetOrderQueryResponse struct {
	ID                 kernel.UUID
	Number             string
	CustomerID         kernel.UUID
	RestaurantID       kernel.UUID
	CourierID          *kernel.UUID
	Status             order.Status
	Subtotal           int64
	DeliveryFee        int64
	Total              int64
	Address            string
	DistanceKm         float64
	CreatedAt          time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	CancelledBy        string
	CancellationReason string
	History            []StatusChangeItem
}

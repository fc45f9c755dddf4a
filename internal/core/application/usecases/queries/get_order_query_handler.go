package queries

import (
	"context"
	"database/sql"
	"time"

	"dzdelivery/internal/core/domain/model/actor"
	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/order"
	"dzdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order and its status history straight from
// the database, bypassing the aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns ObjectNotFoundError when no order
// matches the filter.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	where := "number = ?"
	arg := any(query.Number())
	if query.ID() != nil {
		where = "id = ?"
		arg = query.ID().String()
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_id,
			restaurant_id,
			courier_id,
			status,
			subtotal,
			delivery_fee,
			total,
			address,
			distance_km,
			created_at,
			delivered_at,
			cancelled_at,
			cancelled_by,
			cancellation_reason
		FROM orders
		WHERE `+where, arg).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", arg)
	}

	var response GetOrderQueryResponse
	var id, customerID, restaurantID uuid.UUID
	var courierID uuid.NullUUID
	var status string
	var deliveredAt, cancelledAt sql.NullTime
	var cancelledBy, cancellationReason sql.NullString

	err = rows.Scan(
		&id,
		&response.Number,
		&customerID,
		&restaurantID,
		&courierID,
		&status,
		&response.Subtotal,
		&response.DeliveryFee,
		&response.Total,
		&response.Address,
		&response.DistanceKm,
		&response.CreatedAt,
		&deliveredAt,
		&cancelledAt,
		&cancelledBy,
		&cancellationReason,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if courierID.Valid {
		assigned, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		response.CourierID = &assigned
	}
	response.Status = order.Status(status)
	response.DeliveredAt = timePtr(deliveredAt)
	response.CancelledAt = timePtr(cancelledAt)
	response.CancelledBy = cancelledBy.String
	response.CancellationReason = cancellationReason.String

	history, err := h.loadHistory(ctx, response.ID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.History = history

	return response, nil
}

func (h GetOrderQueryHandler) loadHistory(ctx context.Context, orderID kernel.UUID) ([]StatusChangeItem, error) {
	history := make([]StatusChangeItem, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			changed_by,
			note,
			at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY at, id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item StatusChangeItem
		var status, changedBy string

		if err = rows.Scan(&status, &changedBy, &item.Note, &item.At); err != nil {
			return nil, err
		}

		item.Status = order.Status(status)
		item.ChangedBy = actor.Role(changedBy)
		history = append(history, item)
	}

	return history, rows.Err()
}

func timePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}

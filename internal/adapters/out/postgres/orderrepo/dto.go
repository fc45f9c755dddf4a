// Package orderrepo persists order aggregates and their status history.
// It maps between the order domain model and the relational representation,
// keeping the aggregate's private state out of the database layer's reach
// except through the restore parameters.
package orderrepo

import (
	"time"

	"dzdelivery/internal/core/domain/model/actor"
	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate. Indexed by
// status for dispatch scans and by courier for per-courier listings.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number       string     `gorm:"size:32;uniqueIndex"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`
	Status       string     `gorm:"size:16;index"`

	Subtotal    int64
	DeliveryFee int64
	Total       int64

	PickupLat  float64
	PickupLng  float64
	DestLat    float64
	DestLng    float64
	Address    string
	DistanceKm float64

	ConfirmationCode string `gorm:"size:8"`

	CreatedAt    time.Time
	ConfirmedAt  *time.Time
	PreparingAt  *time.Time
	ReadyAt      *time.Time
	PickedUpAt   *time.Time
	DeliveringAt *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time

	CancelledBy        string `gorm:"size:16"`
	CancellationReason string
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusChangeDTO is one row of the order audit trail.
type StatusChangeDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Status    string    `gorm:"size:16"`
	ChangedBy string    `gorm:"size:16"`
	Note      string
	At        time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "order_status_history".
func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		Number:             aggregate.Number(),
		CustomerID:         aggregate.CustomerID().Bytes(),
		RestaurantID:       aggregate.RestaurantID().Bytes(),
		CourierID:          courierID,
		Status:             aggregate.Status().String(),
		Subtotal:           aggregate.Subtotal(),
		DeliveryFee:        aggregate.DeliveryFee(),
		Total:              aggregate.Total(),
		PickupLat:          aggregate.Pickup().Latitude(),
		PickupLng:          aggregate.Pickup().Longitude(),
		DestLat:            aggregate.Destination().Latitude(),
		DestLng:            aggregate.Destination().Longitude(),
		Address:            aggregate.Address(),
		DistanceKm:         aggregate.DistanceKm(),
		ConfirmationCode:   aggregate.ConfirmationCode(),
		CreatedAt:          aggregate.CreatedAt(),
		ConfirmedAt:        aggregate.ConfirmedAt(),
		PreparingAt:        aggregate.PreparingAt(),
		ReadyAt:            aggregate.ReadyAt(),
		PickedUpAt:         aggregate.PickedUpAt(),
		DeliveringAt:       aggregate.DeliveringAt(),
		DeliveredAt:        aggregate.DeliveredAt(),
		CancelledAt:        aggregate.CancelledAt(),
		CancelledBy:        string(aggregate.CancelledBy()),
		CancellationReason: aggregate.CancellationReason(),
	}
}

// toDomain reconstructs the aggregate from its database representation.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		assigned, idErr := kernel.UUIDFromBytes(dto.CourierID[:])
		if idErr != nil {
			return nil, idErr
		}
		courierID = &assigned
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}
	destination, err := kernel.NewGeoPoint(dto.DestLat, dto.DestLng)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                 id,
		Number:             dto.Number,
		CustomerID:         customerID,
		RestaurantID:       restaurantID,
		CourierID:          courierID,
		Status:             order.Status(dto.Status),
		Subtotal:           dto.Subtotal,
		DeliveryFee:        dto.DeliveryFee,
		Total:              dto.Total,
		Pickup:             pickup,
		Destination:        destination,
		Address:            dto.Address,
		DistanceKm:         dto.DistanceKm,
		ConfirmationCode:   dto.ConfirmationCode,
		CreatedAt:          dto.CreatedAt,
		ConfirmedAt:        dto.ConfirmedAt,
		PreparingAt:        dto.PreparingAt,
		ReadyAt:            dto.ReadyAt,
		PickedUpAt:         dto.PickedUpAt,
		DeliveringAt:       dto.DeliveringAt,
		DeliveredAt:        dto.DeliveredAt,
		CancelledAt:        dto.CancelledAt,
		CancelledBy:        actor.Role(dto.CancelledBy),
		CancellationReason: dto.CancellationReason,
	})
}

func historyFromDomain(change order.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		OrderID:   change.OrderID.Bytes(),
		Status:    change.Status.String(),
		ChangedBy: string(change.ChangedBy),
		Note:      change.Note,
		At:        change.At,
	}
}

func historyToDomain(dto StatusChangeDTO) (order.StatusChange, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusChange{}, err
	}

	return order.StatusChange{
		OrderID:   orderID,
		Status:    order.Status(dto.Status),
		ChangedBy: actor.Role(dto.ChangedBy),
		Note:      dto.Note,
		At:        dto.At,
	}, nil
}

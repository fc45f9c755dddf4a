// Package courierrepo persists courier aggregates.
package courierrepo

import (
	"time"

	"dzdelivery/internal/core/domain/model/courier"
	"dzdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the database representation of a courier aggregate. The
// dispatch flags share an index because the dispatch scan filters on all
// four.
type CourierDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"size:128"`
	Vehicle  string    `gorm:"size:16"`
	RainGear bool

	Lat        float64
	Lng        float64
	LocationAt time.Time

	IsOnline    bool `gorm:"index:idx_couriers_dispatchable"`
	IsAvailable bool `gorm:"index:idx_couriers_dispatchable"`
	IsVerified  bool `gorm:"index:idx_couriers_dispatchable"`
	IsActive    bool `gorm:"index:idx_couriers_dispatchable"`

	Rating          float64
	RatingCount     int
	TotalDeliveries int
	TotalEarnings   int64
}

// TableName overrides GORM's default naming to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		Vehicle:         aggregate.Vehicle().String(),
		RainGear:        aggregate.HasRainGear(),
		Lat:             aggregate.Location().Latitude(),
		Lng:             aggregate.Location().Longitude(),
		LocationAt:      aggregate.LocationAt(),
		IsOnline:        aggregate.IsOnline(),
		IsAvailable:     aggregate.IsAvailable(),
		IsVerified:      aggregate.IsVerified(),
		IsActive:        aggregate.IsActive(),
		Rating:          aggregate.Rating(),
		RatingCount:     aggregate.RatingCount(),
		TotalDeliveries: aggregate.TotalDeliveries(),
		TotalEarnings:   aggregate.TotalEarnings(),
	}
}

// toDomain reconstructs the aggregate from its database representation.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(courier.RestoreCourierParams{
		ID:              id,
		Name:            dto.Name,
		Vehicle:         courier.VehicleType(dto.Vehicle),
		RainGear:        dto.RainGear,
		Location:        location,
		LocationAt:      dto.LocationAt,
		IsOnline:        dto.IsOnline,
		IsAvailable:     dto.IsAvailable,
		IsVerified:      dto.IsVerified,
		IsActive:        dto.IsActive,
		Rating:          dto.Rating,
		RatingCount:     dto.RatingCount,
		TotalDeliveries: dto.TotalDeliveries,
		TotalEarnings:   dto.TotalEarnings,
	})
}

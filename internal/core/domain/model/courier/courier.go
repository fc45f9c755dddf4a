package courier

import (
	"errors"
	"time"

	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/pkg/errs"
	"dzdelivery/internal/pkg/guard"
)

// RatingMin and RatingMax bound customer ratings.
const (
	RatingMin = 1.0
	RatingMax = 5.0
)

// ErrCourierNotAvailable indicates an attempt to reserve a courier who is
// offline, busy, or not cleared to work.
var ErrCourierNotAvailable = errors.New("courier is not available for dispatch")

// Courier is the aggregate root for a delivery agent (livreur). It tracks
// the courier's last reported position, availability for dispatch, vehicle,
// and lifetime delivery statistics.
//
// Availability is a reservation flag: accepting or being assigned an order
// marks the courier busy, and completing or losing the order releases them.
// The persistence layer serializes concurrent reservations with a guarded
// update; the aggregate only models the legal flag movements.
type Courier struct {
	guard guard.ConstructorGuard

	id       kernel.UUID
	name     string
	vehicle  VehicleType
	rainGear bool

	location   kernel.GeoPoint
	locationAt time.Time

	isOnline    bool
	isAvailable bool
	isVerified  bool
	isActive    bool

	rating          float64
	ratingCount     int
	totalDeliveries int
	totalEarnings   int64
}

// RestoreCourierParams carries the persisted state needed to rebuild a Courier.
type RestoreCourierParams struct {
	ID       kernel.UUID
	Name     string
	Vehicle  VehicleType
	RainGear bool

	Location   kernel.GeoPoint
	LocationAt time.Time

	IsOnline    bool
	IsAvailable bool
	IsVerified  bool
	IsActive    bool

	Rating          float64
	RatingCount     int
	TotalDeliveries int
	TotalEarnings   int64
}

// NewCourier registers a new courier. New couriers start offline, available,
// active, and unverified; verification is an operator action.
func NewCourier(name string, vehicle VehicleType, location kernel.GeoPoint, now time.Time) (*Courier, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if err := vehicle.Validate(); err != nil {
		return nil, err
	}

	return &Courier{
		guard:       guard.NewConstructorGuard(),
		id:          kernel.NewUUID(),
		name:        name,
		vehicle:     vehicle,
		location:    location,
		locationAt:  now,
		isAvailable: true,
		isActive:    true,
	}, nil
}

// RestoreCourier reconstructs a Courier from persistence.
func RestoreCourier(params RestoreCourierParams) (*Courier, error) {
	if err := params.ID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("ID", err)
	}
	if err := params.Vehicle.Validate(); err != nil {
		return nil, err
	}

	return &Courier{
		guard:           guard.NewConstructorGuard(),
		id:              params.ID,
		name:            params.Name,
		vehicle:         params.Vehicle,
		rainGear:        params.RainGear,
		location:        params.Location,
		locationAt:      params.LocationAt,
		isOnline:        params.IsOnline,
		isAvailable:     params.IsAvailable,
		isVerified:      params.IsVerified,
		isActive:        params.IsActive,
		rating:          params.Rating,
		ratingCount:     params.RatingCount,
		totalDeliveries: params.TotalDeliveries,
		totalEarnings:   params.TotalEarnings,
	}, nil
}

// ID returns the courier identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Vehicle returns the courier's vehicle type.
func (c *Courier) Vehicle() VehicleType {
	return c.vehicle
}

// HasRainGear reports whether the courier carries rain equipment.
func (c *Courier) HasRainGear() bool {
	return c.rainGear
}

// Location returns the last reported position.
func (c *Courier) Location() kernel.GeoPoint {
	return c.location
}

// LocationAt returns when the position was last reported.
func (c *Courier) LocationAt() time.Time {
	return c.locationAt
}

// IsOnline reports whether the courier is on shift.
func (c *Courier) IsOnline() bool {
	return c.isOnline
}

// IsAvailable reports whether the courier is free to take an order.
func (c *Courier) IsAvailable() bool {
	return c.isAvailable
}

// IsVerified reports whether an operator verified the courier's documents.
func (c *Courier) IsVerified() bool {
	return c.isVerified
}

// IsActive reports whether the courier account is enabled.
func (c *Courier) IsActive() bool {
	return c.isActive
}

// Rating returns the running average customer rating, 0 when unrated.
func (c *Courier) Rating() float64 {
	return c.rating
}

// RatingCount returns how many ratings the average is built from.
func (c *Courier) RatingCount() int {
	return c.ratingCount
}

// TotalDeliveries returns the lifetime completed delivery count.
func (c *Courier) TotalDeliveries() int {
	return c.totalDeliveries
}

// TotalEarnings returns lifetime delivery-fee earnings in dinars.
func (c *Courier) TotalEarnings() int64 {
	return c.totalEarnings
}

// CanTakeOrders reports whether the courier qualifies for dispatch right now.
func (c *Courier) CanTakeOrders() bool {
	return c.isOnline && c.isAvailable && c.isVerified && c.isActive
}

// SetRainGear records whether the courier carries rain equipment.
func (c *Courier) SetRainGear(has bool) {
	c.rainGear = has
}

// ReportLocation records a fresh position ping.
func (c *Courier) ReportLocation(location kernel.GeoPoint, now time.Time) {
	c.location = location
	c.locationAt = now
}

// GoOnline puts the courier on shift.
func (c *Courier) GoOnline() {
	c.isOnline = true
}

// GoOffline takes the courier off shift.
func (c *Courier) GoOffline() {
	c.isOnline = false
}

// MarkVerified records operator verification.
func (c *Courier) MarkVerified() {
	c.isVerified = true
}

// Deactivate disables the courier account.
func (c *Courier) Deactivate() {
	c.isActive = false
	c.isOnline = false
}

// MarkBusy reserves the courier for an order. It fails when the courier does
// not qualify for dispatch.
func (c *Courier) MarkBusy() error {
	if err := c.guard.Validate(errCourierIsNotConstructed); err != nil {
		return err
	}
	if !c.CanTakeOrders() {
		return ErrCourierNotAvailable
	}

	c.isAvailable = false
	return nil
}

// Release frees the courier after an order completes or is taken away.
func (c *Courier) Release() {
	c.isAvailable = true
}

// CompleteDelivery records a finished delivery: the courier is released and
// the lifetime counters absorb the delivery fee.
func (c *Courier) CompleteDelivery(earnings int64) {
	c.totalDeliveries++
	c.totalEarnings += earnings
	c.isAvailable = true
}

// AddRating folds a new customer rating into the running average.
func (c *Courier) AddRating(score float64) error {
	if score < RatingMin || score > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", score, RatingMin, RatingMax)
	}

	total := c.rating*float64(c.ratingCount) + score
	c.ratingCount++
	c.rating = total / float64(c.ratingCount)

	return nil
}

// IsEqual compares couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	return c.id.IsEqual(other.id)
}

var errCourierIsNotConstructed = errs.NewValueIsRequiredError(
	"courier must be created via NewCourier or RestoreCourier constructor")

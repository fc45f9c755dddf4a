package kernel

import (
	"math"

	"dzdelivery/internal/pkg/errs"
)

const (
	// LatitudeMin and LatitudeMax bound valid latitudes in degrees.
	LatitudeMin = -90.0
	LatitudeMax = 90.0
	// LongitudeMin and LongitudeMax bound valid longitudes in degrees.
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	// earthRadiusKm is Earth's mean radius used by the haversine formula.
	earthRadiusKm = 6371.0
)

// GeoPoint is a value object representing a GPS coordinate pair in degrees.
// It is immutable and validated at construction; the zero value (0, 0) is a
// legal coordinate, so GeoPoint carries no constructor guard.
//
// GeoPoint is used for delivery destinations, courier positions, and zone
// centers. Distances between points are great-circle distances computed with
// the haversine formula.
type GeoPoint struct {
	latitude  float64
	longitude float64
}

// NewGeoPoint creates a GeoPoint, validating that latitude is within
// [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	return GeoPoint{
		latitude:  latitude,
		longitude: longitude,
	}, nil
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// IsEqual compares two points for exact coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// DistanceKm returns the great-circle distance to another point in kilometers,
// computed with the haversine formula.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	dLat := degToRad(other.latitude - p.latitude)
	dLon := degToRad(other.longitude - p.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(p.latitude))*math.Cos(degToRad(other.latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// IsWithinRadiusKm reports whether another point lies within radiusKm of this one.
func (p GeoPoint) IsWithinRadiusKm(other GeoPoint, radiusKm float64) bool {
	return p.DistanceKm(other) <= radiusKm
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

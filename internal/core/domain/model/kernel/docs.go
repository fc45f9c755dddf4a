// Package kernel contains shared value objects used across the domain model.
//
// It provides:
//   - UUID: an immutable identifier value object wrapping github.com/google/uuid
//   - GeoPoint: a validated GPS coordinate pair with haversine distance math
//
// All value objects in this package are immutable, validated at construction,
// and safe for concurrent use.
package kernel

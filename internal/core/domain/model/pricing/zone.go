package pricing

import (
	"fmt"

	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/pkg/errs"
)

// ZoneKind classifies a delivery zone by terrain and density. It drives both
// the zone multiplier defaults and the night bonus table.
type ZoneKind string

const (
	// ZoneCentreVille is the dense town center.
	ZoneCentreVille ZoneKind = "centre_ville"
	// ZonePeripherie is the suburban belt around the center.
	ZonePeripherie ZoneKind = "peripherie"
	// ZoneVillages covers outlying villages.
	ZoneVillages ZoneKind = "villages"
	// ZoneMontagne covers mountain roads, the hardest terrain.
	ZoneMontagne ZoneKind = "montagne"
)

// validZoneKinds supports ZoneKind validation.
func validZoneKinds() map[ZoneKind]struct{} {
	return map[ZoneKind]struct{}{
		ZoneCentreVille: {},
		ZonePeripherie:  {},
		ZoneVillages:    {},
		ZoneMontagne:    {},
	}
}

// Validate checks that the zone kind is one of the defined values.
func (k ZoneKind) Validate() error {
	if _, ok := validZoneKinds()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("zoneKind", fmt.Errorf("%q is not a valid zone kind", string(k)))
	}
	return nil
}

// String implements fmt.Stringer.
func (k ZoneKind) String() string {
	return string(k)
}

// Zone is a circular delivery zone with a price multiplier. Zones are
// operator-configured; a destination not covered by any zone prices with a
// neutral multiplier.
type Zone struct {
	name       string
	kind       ZoneKind
	center     kernel.GeoPoint
	radiusKm   float64
	multiplier float64
}

// NewZone creates a Zone, validating the kind, radius, and multiplier.
func NewZone(name string, kind ZoneKind, center kernel.GeoPoint, radiusKm, multiplier float64) (Zone, error) {
	if name == "" {
		return Zone{}, errs.NewValueIsRequiredError("name")
	}
	if err := kind.Validate(); err != nil {
		return Zone{}, err
	}
	if radiusKm <= 0 {
		return Zone{}, errs.NewValueIsInvalidError("radiusKm must be positive")
	}
	if multiplier <= 0 {
		return Zone{}, errs.NewValueIsInvalidError("multiplier must be positive")
	}

	return Zone{
		name:       name,
		kind:       kind,
		center:     center,
		radiusKm:   radiusKm,
		multiplier: multiplier,
	}, nil
}

// Name returns the zone name.
func (z Zone) Name() string {
	return z.name
}

// Kind returns the zone classification.
func (z Zone) Kind() ZoneKind {
	return z.kind
}

// Center returns the zone's center point.
func (z Zone) Center() kernel.GeoPoint {
	return z.center
}

// RadiusKm returns the zone radius in kilometers.
func (z Zone) RadiusKm() float64 {
	return z.radiusKm
}

// Multiplier returns the zone price multiplier.
func (z Zone) Multiplier() float64 {
	return z.multiplier
}

// Contains reports whether a point lies inside the zone.
func (z Zone) Contains(point kernel.GeoPoint) bool {
	return z.center.IsWithinRadiusKm(point, z.radiusKm)
}

// MatchZone returns the zone containing point, preferring the smallest
// matching zone so a village zone nested inside a wide rural zone wins.
// The second return is false when no zone contains the point.
func MatchZone(zones []Zone, point kernel.GeoPoint) (Zone, bool) {
	var best Zone
	found := false
	for _, z := range zones {
		if !z.Contains(point) {
			continue
		}
		if !found || z.radiusKm < best.radiusKm {
			best = z
			found = true
		}
	}
	return best, found
}

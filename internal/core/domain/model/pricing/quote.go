package pricing

import (
	"fmt"
	"math"
	"strings"
)

// AppliedMultiplier records one multiplier that contributed to a quote.
type AppliedMultiplier struct {
	Category string
	Name     string
	Value    float64
}

// AppliedBonus records one fixed bonus that contributed to a quote.
type AppliedBonus struct {
	Name   string
	Amount int64
}

// Quote is the result of a delivery fee calculation. It is a plain record:
// the engine produces it and handlers persist or serve it as is.
type Quote struct {
	// BasePrice is the fee before multipliers and bonuses.
	BasePrice int64
	// DistanceKm is the distance the quote was computed for.
	DistanceKm float64
	// Multipliers are the applied multipliers, one per category at most.
	Multipliers []AppliedMultiplier
	// Bonuses are the applied fixed bonuses.
	Bonuses []AppliedBonus
	// Total is the final fee in dinars, clamped and rounded.
	Total int64
	// EstimatedMinutes is the projected delivery duration.
	EstimatedMinutes int
	// Warnings carries non-fatal calculation notes, such as missing demand
	// data or a degraded fallback.
	Warnings []string
	// Degraded is true when the quote fell back to the base tariff because
	// a pricing input could not be obtained.
	Degraded bool
}

// Breakdown renders a human-readable calculation trace for receipts and
// support tooling.
func (q Quote) Breakdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "base %d DA (%.1f km)", q.BasePrice, q.DistanceKm)
	for _, m := range q.Multipliers {
		fmt.Fprintf(&b, " x %.2f (%s", m.Value, m.Category)
		if m.Name != "" {
			fmt.Fprintf(&b, ": %s", m.Name)
		}
		b.WriteString(")")
	}
	for _, bonus := range q.Bonuses {
		fmt.Fprintf(&b, " + %d DA (%s)", bonus.Amount, bonus.Name)
	}
	fmt.Fprintf(&b, " = %d DA", q.Total)
	return b.String()
}

// averageSpeedKmh is the planning speed for delivery time estimates.
const averageSpeedKmh = 25.0

// handlingBufferMinutes is the fixed pickup and handoff overhead.
const handlingBufferMinutes = 10

// EstimateMinutes projects the delivery duration for a distance at the
// planning speed plus a fixed handling buffer.
func EstimateMinutes(distanceKm float64) int {
	travel := distanceKm / averageSpeedKmh * 60
	return int(math.Ceil(travel)) + handlingBufferMinutes
}

// Package demand models the supply/demand balance between active orders and
// available couriers. Snapshots are sampled periodically, persisted for
// analytics, and feed the demand multiplier of the pricing engine.
package demand

import "time"

// RatioNoSupply is the sentinel ratio recorded when no courier is available.
// It is deliberately absurd so every surge threshold matches and the
// situation is visible in stored samples.
const RatioNoSupply = 999.0

// Level is the coarse classification of a demand ratio.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Ratio computes active orders per available courier. Zero couriers always
// yields RatioNoSupply, even with zero orders: a marketplace with no supply
// cannot absorb the next order, so it stays classified as critical.
func Ratio(activeOrders, availableCouriers int) float64 {
	if availableCouriers == 0 {
		return RatioNoSupply
	}
	return float64(activeOrders) / float64(availableCouriers)
}

// ClassifyRatio maps a demand ratio to a Level.
func ClassifyRatio(ratio float64) Level {
	switch {
	case ratio < 1:
		return LevelLow
	case ratio < 2:
		return LevelModerate
	case ratio < 3:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// Snapshot is one sampled observation of marketplace load.
type Snapshot struct {
	At                time.Time
	ActiveOrders      int
	AvailableCouriers int
	Ratio             float64
	Level             Level
}

// NewSnapshot builds a Snapshot from raw counts, deriving ratio and level.
func NewSnapshot(at time.Time, activeOrders, availableCouriers int) Snapshot {
	ratio := Ratio(activeOrders, availableCouriers)
	return Snapshot{
		At:                at,
		ActiveOrders:      activeOrders,
		AvailableCouriers: availableCouriers,
		Ratio:             ratio,
		Level:             ClassifyRatio(ratio),
	}
}

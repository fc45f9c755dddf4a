package pricing_test

import (
	"testing"

	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZone(t *testing.T) {
	center, err := kernel.NewGeoPoint(36.8869, 4.1222)
	require.NoError(t, err)

	t.Run("creates_valid_zone", func(t *testing.T) {
		zone, zoneErr := pricing.NewZone("tigzirt_centre", pricing.ZoneCentreVille, center, 2, 1.0)

		require.NoError(t, zoneErr)
		assert.Equal(t, "tigzirt_centre", zone.Name())
		assert.Equal(t, pricing.ZoneCentreVille, zone.Kind())
	})

	t.Run("rejects_unknown_kind", func(t *testing.T) {
		_, zoneErr := pricing.NewZone("x", pricing.ZoneKind("desert"), center, 2, 1.0)
		require.Error(t, zoneErr)
	})

	t.Run("rejects_non_positive_radius", func(t *testing.T) {
		_, zoneErr := pricing.NewZone("x", pricing.ZoneVillages, center, 0, 1.0)
		require.Error(t, zoneErr)
	})

	t.Run("rejects_non_positive_multiplier", func(t *testing.T) {
		_, zoneErr := pricing.NewZone("x", pricing.ZoneVillages, center, 2, 0)
		require.Error(t, zoneErr)
	})
}

func TestMatchZone(t *testing.T) {
	center, err := kernel.NewGeoPoint(36.8869, 4.1222)
	require.NoError(t, err)

	wide, err := pricing.NewZone("rural_belt", pricing.ZoneVillages, center, 20, 1.2)
	require.NoError(t, err)
	tight, err := pricing.NewZone("centre", pricing.ZoneCentreVille, center, 2, 1.0)
	require.NoError(t, err)

	zones := []pricing.Zone{wide, tight}

	t.Run("smallest_containing_zone_wins", func(t *testing.T) {
		inside, pointErr := kernel.NewGeoPoint(36.8880, 4.1230)
		require.NoError(t, pointErr)

		matched, found := pricing.MatchZone(zones, inside)

		require.True(t, found)
		assert.Equal(t, "centre", matched.Name())
	})

	t.Run("falls_through_to_wider_zone", func(t *testing.T) {
		village, pointErr := kernel.NewGeoPoint(36.7600, 4.0800)
		require.NoError(t, pointErr)

		matched, found := pricing.MatchZone(zones, village)

		require.True(t, found)
		assert.Equal(t, "rural_belt", matched.Name())
	})

	t.Run("reports_unzoned_destination", func(t *testing.T) {
		algiers, pointErr := kernel.NewGeoPoint(36.7538, 3.0588)
		require.NoError(t, pointErr)

		_, found := pricing.MatchZone(zones, algiers)

		assert.False(t, found)
	})
}

func TestTimeRule_Matches(t *testing.T) {
	t.Run("plain_window", func(t *testing.T) {
		lunch := pricing.TimeRule{Name: "lunch", StartHour: 11, EndHour: 14, Multiplier: 1.15}

		assert.True(t, lunch.Matches(11))
		assert.True(t, lunch.Matches(13))
		assert.False(t, lunch.Matches(14))
		assert.False(t, lunch.Matches(9))
	})

	t.Run("window_wrapping_midnight", func(t *testing.T) {
		night := pricing.TimeRule{Name: "night", StartHour: 20, EndHour: 6, Multiplier: 1.25}

		assert.True(t, night.Matches(20))
		assert.True(t, night.Matches(23))
		assert.True(t, night.Matches(0))
		assert.True(t, night.Matches(5))
		assert.False(t, night.Matches(6))
		assert.False(t, night.Matches(12))
	})
}

package kernel_test

import (
	"testing"

	"dzdelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("creates_valid_point", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(36.8869, 4.1222) // Tigzirt

		require.NoError(t, err)
		assert.InDelta(t, 36.8869, point.Latitude(), 1e-9)
		assert.InDelta(t, 4.1222, point.Longitude(), 1e-9)
	})

	t.Run("accepts_boundary_coordinates", func(t *testing.T) {
		cases := []struct {
			lat, lon float64
		}{
			{-90, -180},
			{90, 180},
			{0, 0},
		}

		for _, tc := range cases {
			_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
			require.NoError(t, err)
		}
	})

	t.Run("rejects_latitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.01, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
	})

	t.Run("rejects_longitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance_to_self_is_zero", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(36.7, 4.05)
		require.NoError(t, err)

		assert.InDelta(t, 0, point.DistanceKm(point), 1e-9)
	})

	t.Run("distance_is_symmetric", func(t *testing.T) {
		tigzirt, err := kernel.NewGeoPoint(36.8869, 4.1222)
		require.NoError(t, err)
		tiziOuzou, err := kernel.NewGeoPoint(36.7169, 4.0497)
		require.NoError(t, err)

		assert.InDelta(t, tigzirt.DistanceKm(tiziOuzou), tiziOuzou.DistanceKm(tigzirt), 1e-9)
	})

	t.Run("known_distance_tigzirt_to_tizi_ouzou", func(t *testing.T) {
		tigzirt, err := kernel.NewGeoPoint(36.8869, 4.1222)
		require.NoError(t, err)
		tiziOuzou, err := kernel.NewGeoPoint(36.7169, 4.0497)
		require.NoError(t, err)

		// Roughly 20 km apart as the crow flies.
		distance := tigzirt.DistanceKm(tiziOuzou)
		assert.Greater(t, distance, 15.0)
		assert.Less(t, distance, 25.0)
	})
}

func TestGeoPoint_IsWithinRadiusKm(t *testing.T) {
	center, err := kernel.NewGeoPoint(36.8869, 4.1222)
	require.NoError(t, err)

	t.Run("point_inside_radius", func(t *testing.T) {
		near, pointErr := kernel.NewGeoPoint(36.8900, 4.1250)
		require.NoError(t, pointErr)

		assert.True(t, center.IsWithinRadiusKm(near, 5))
	})

	t.Run("point_outside_radius", func(t *testing.T) {
		far, pointErr := kernel.NewGeoPoint(36.7169, 4.0497)
		require.NoError(t, pointErr)

		assert.False(t, center.IsWithinRadiusKm(far, 5))
	})
}

func TestUUID(t *testing.T) {
	t.Run("new_uuid_is_valid_and_unique", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		require.NoError(t, first.Validate())
		require.NoError(t, second.Validate())
		assert.False(t, first.IsEqual(second))
	})

	t.Run("round_trip_through_string", func(t *testing.T) {
		id := kernel.NewUUID()

		parsed, err := kernel.UUIDFromString(id.String())
		require.NoError(t, err)
		assert.True(t, id.IsEqual(parsed))
	})

	t.Run("rejects_garbage_string", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.Error(t, err)
	})

	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var id kernel.UUID
		require.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	})
}

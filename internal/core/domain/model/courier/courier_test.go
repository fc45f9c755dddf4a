package courier_test

import (
	"testing"
	"time"

	"dzdelivery/internal/core/domain/model/courier"
	"dzdelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCourier(t *testing.T) *courier.Courier {
	t.Helper()

	location, err := kernel.NewGeoPoint(36.8869, 4.1222)
	require.NoError(t, err)

	c, err := courier.NewCourier("Arezki", courier.VehicleMoto, location, time.Now())
	require.NoError(t, err)

	return c
}

func TestNewCourier(t *testing.T) {
	t.Run("starts_offline_available_and_unverified", func(t *testing.T) {
		c := newTestCourier(t)

		assert.False(t, c.IsOnline())
		assert.True(t, c.IsAvailable())
		assert.False(t, c.IsVerified())
		assert.True(t, c.IsActive())
		assert.False(t, c.CanTakeOrders())
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		_, err := courier.NewCourier("", courier.VehicleMoto, kernel.GeoPoint{}, time.Now())

		require.Error(t, err)
	})

	t.Run("rejects_unknown_vehicle", func(t *testing.T) {
		_, err := courier.NewCourier("Arezki", courier.VehicleType("truck"), kernel.GeoPoint{}, time.Now())

		require.Error(t, err)
	})
}

func TestCourier_Dispatchability(t *testing.T) {
	t.Run("qualifies_when_online_available_verified_active", func(t *testing.T) {
		c := newTestCourier(t)
		c.MarkVerified()
		c.GoOnline()

		assert.True(t, c.CanTakeOrders())
	})

	t.Run("mark_busy_reserves_the_courier", func(t *testing.T) {
		c := newTestCourier(t)
		c.MarkVerified()
		c.GoOnline()

		require.NoError(t, c.MarkBusy())

		assert.False(t, c.IsAvailable())
		assert.False(t, c.CanTakeOrders())
	})

	t.Run("mark_busy_fails_when_already_reserved", func(t *testing.T) {
		c := newTestCourier(t)
		c.MarkVerified()
		c.GoOnline()
		require.NoError(t, c.MarkBusy())

		err := c.MarkBusy()

		require.ErrorIs(t, err, courier.ErrCourierNotAvailable)
	})

	t.Run("mark_busy_fails_when_offline", func(t *testing.T) {
		c := newTestCourier(t)
		c.MarkVerified()

		err := c.MarkBusy()

		require.ErrorIs(t, err, courier.ErrCourierNotAvailable)
	})

	t.Run("release_frees_the_courier", func(t *testing.T) {
		c := newTestCourier(t)
		c.MarkVerified()
		c.GoOnline()
		require.NoError(t, c.MarkBusy())

		c.Release()

		assert.True(t, c.CanTakeOrders())
	})

	t.Run("deactivate_takes_courier_off_shift", func(t *testing.T) {
		c := newTestCourier(t)
		c.MarkVerified()
		c.GoOnline()

		c.Deactivate()

		assert.False(t, c.IsOnline())
		assert.False(t, c.CanTakeOrders())
	})
}

func TestCourier_CompleteDelivery(t *testing.T) {
	c := newTestCourier(t)
	c.MarkVerified()
	c.GoOnline()
	require.NoError(t, c.MarkBusy())

	c.CompleteDelivery(250)
	c.CompleteDelivery(180)

	assert.Equal(t, 2, c.TotalDeliveries())
	assert.Equal(t, int64(430), c.TotalEarnings())
	assert.True(t, c.IsAvailable())
}

func TestCourier_AddRating(t *testing.T) {
	t.Run("keeps_running_average", func(t *testing.T) {
		c := newTestCourier(t)

		require.NoError(t, c.AddRating(5))
		require.NoError(t, c.AddRating(4))
		require.NoError(t, c.AddRating(3))

		assert.InDelta(t, 4.0, c.Rating(), 1e-9)
		assert.Equal(t, 3, c.RatingCount())
	})

	t.Run("rejects_score_out_of_range", func(t *testing.T) {
		c := newTestCourier(t)

		require.Error(t, c.AddRating(0.5))
		require.Error(t, c.AddRating(5.5))
		assert.Equal(t, 0, c.RatingCount())
	})
}

func TestCourier_ReportLocation(t *testing.T) {
	c := newTestCourier(t)
	newSpot, err := kernel.NewGeoPoint(36.7169, 4.0497)
	require.NoError(t, err)
	at := time.Now()

	c.ReportLocation(newSpot, at)

	assert.True(t, c.Location().IsEqual(newSpot))
	assert.Equal(t, at, c.LocationAt())
}

package weather

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"dzdelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvider(t *testing.T, seed uint64, now time.Time) *CachedSimulatedProvider {
	t.Helper()

	provider := NewCachedSimulatedProvider(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	provider.roll = rand.New(rand.NewPCG(seed, 0)).Float64
	provider.now = func() time.Time { return now }
	return provider
}

func Test_Current_WithoutCacheSimulates(t *testing.T) {
	point, err := kernel.NewGeoPoint(36.8920, 4.1250)
	require.NoError(t, err)

	noon := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	provider := testProvider(t, 1, noon)

	condition, err := provider.Current(context.Background(), point)

	require.NoError(t, err)
	assert.NoError(t, condition.Validate())
}

func Test_Current_SafeForConcurrentUse(t *testing.T) {
	point, err := kernel.NewGeoPoint(36.8920, 4.1250)
	require.NoError(t, err)

	// Default roll source, shared by all goroutines. Run with -race.
	provider := NewCachedSimulatedProvider(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				condition, currentErr := provider.Current(context.Background(), point)
				assert.NoError(t, currentErr)
				assert.NoError(t, condition.Validate())
			}
		}()
	}
	wg.Wait()
}

func Test_Simulate_DaytimeNeverFoggy(t *testing.T) {
	noon := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	provider := testProvider(t, 42, noon)

	for i := 0; i < 200; i++ {
		condition := provider.simulate(noon)
		assert.NotEqual(t, "fog", condition.String())
	}
}

func Test_Simulate_NightNeverHeavyRain(t *testing.T) {
	night := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	provider := testProvider(t, 42, night)

	for i := 0; i < 200; i++ {
		condition := provider.simulate(night)
		assert.NotEqual(t, "heavy_rain", condition.String())
	}
}

func Test_CacheKey_RoundsToCell(t *testing.T) {
	a, err := kernel.NewGeoPoint(36.8920, 4.1250)
	require.NoError(t, err)
	b, err := kernel.NewGeoPoint(36.8949, 4.1251)
	require.NoError(t, err)

	assert.Equal(t, cacheKey(a), cacheKey(b))
	assert.Equal(t, "weather:36.89:4.13", cacheKey(a))
}

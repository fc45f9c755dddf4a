package queries_test

import (
	"testing"
	"time"

	"dzdelivery/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDemandTrendsQuery(t *testing.T) {
	for _, days := range []int{queries.TrendWindowWeek, queries.TrendWindowMonth} {
		query, err := queries.NewDemandTrendsQuery(days)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, days, query.Days())
	}
}

func TestNewDemandTrendsQuery_UnsupportedWindow(t *testing.T) {
	for _, days := range []int{0, -7, 14, 365} {
		_, err := queries.NewDemandTrendsQuery(days)

		require.Error(t, err, "days=%d", days)
	}
}

func TestNewPredictDemandQuery(t *testing.T) {
	at := time.Date(2025, 6, 20, 19, 0, 0, 0, time.UTC)

	query, err := queries.NewPredictDemandQuery(at)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, at, query.At())
}

func TestNewPredictDemandQuery_ZeroTime(t *testing.T) {
	_, err := queries.NewPredictDemandQuery(time.Time{})

	require.Error(t, err)
}

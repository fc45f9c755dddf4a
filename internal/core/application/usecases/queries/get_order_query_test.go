package queries_test

import (
	"testing"

	"dzdelivery/internal/core/application/usecases/queries"
	"dzdelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQueryByID(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetOrderQueryByID(id)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	require.NotNil(t, query.ID())
	assert.True(t, query.ID().IsEqual(id))
	assert.Empty(t, query.Number())
}

func TestNewGetOrderQueryByNumber(t *testing.T) {
	query, err := queries.NewGetOrderQueryByNumber("DZ-20250615-042")

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Nil(t, query.ID())
	assert.Equal(t, "DZ-20250615-042", query.Number())
}

func TestNewGetOrderQueryByNumber_Empty(t *testing.T) {
	_, err := queries.NewGetOrderQueryByNumber("")

	require.Error(t, err)
}

func TestGetOrderQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetOrderQuery

	require.ErrorIs(t, query.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}

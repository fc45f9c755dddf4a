package guard_test

import (
	"errors"
	"testing"

	"dzdelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ConstructedGuard_Validates(t *testing.T) {
	g := guard.NewConstructorGuard()

	require.NoError(t, g.Validate(errors.New("order must be created via NewOrder")))
	require.NoError(t, g.Validate(nil))
}

func Test_ZeroValueGuard_ReturnsCustomError(t *testing.T) {
	var g guard.ConstructorGuard

	custom := errors.New("order must be created via NewOrder")
	err := g.Validate(custom)

	require.Error(t, err)
	assert.Equal(t, custom, err)
}

func Test_ZeroValueGuard_FallsBackToDefaultError(t *testing.T) {
	var g guard.ConstructorGuard

	err := g.Validate(nil)

	require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}

func Test_Guard_EmbeddedInDomainObject(t *testing.T) {
	type confirmationCode struct {
		value string
		guard guard.ConstructorGuard
	}

	errNotConstructed := errors.New("confirmationCode must be created via newConfirmationCode")

	newCode := func(value string) (confirmationCode, error) {
		if len(value) != 4 {
			return confirmationCode{}, errors.New("code must be 4 characters")
		}
		return confirmationCode{value: value, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed value passes", func(t *testing.T) {
		code, err := newCode("A7K2")
		require.NoError(t, err)
		require.NoError(t, code.guard.Validate(errNotConstructed))
		assert.Equal(t, "A7K2", code.value)
	})

	t.Run("zero value fails with the object's error", func(t *testing.T) {
		var code confirmationCode
		err := code.guard.Validate(errNotConstructed)
		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})
}

func Test_Guard_SafeToCopyByValue(t *testing.T) {
	g := guard.NewConstructorGuard()
	check := errors.New("not constructed")

	copied := g

	require.NoError(t, g.Validate(check))
	require.NoError(t, copied.Validate(check))
}

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPredicates(t *testing.T) {
	t.Run("not found family", func(t *testing.T) {
		assert.True(t, IsNotFoundError(ErrNotFound))
		assert.True(t, IsNotFoundError(ErrUserNotFound))
		assert.True(t, IsNotFoundError(ErrCarNotFound))
		assert.True(t, IsNotFoundError(ErrBookingNotFound))
		assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", ErrUserNotFound)))

		assert.False(t, IsNotFoundError(ErrDuplicate))
		assert.False(t, IsNotFoundError(errors.New("other")))
	})

	t.Run("duplicate family", func(t *testing.T) {
		assert.True(t, IsDuplicateError(ErrDuplicate))
		assert.True(t, IsDuplicateError(ErrEmailExists))
		assert.True(t, IsDuplicateError(ErrPhoneExists))

		assert.False(t, IsDuplicateError(ErrNotFound))
	})
}

func TestStoreError(t *testing.T) {
	underlying := errors.New("disk full")
	err := NewStoreError("car", "save", "failed to persist cars", underlying)

	assert.Contains(t, err.Error(), "save operation on car failed")
	assert.Contains(t, err.Error(), "disk full")
	assert.ErrorIs(t, err, underlying)

	bare := NewStoreError("user", "load", "no context", nil)
	assert.Equal(t, "load operation on user failed: no context", bare.Error())
}

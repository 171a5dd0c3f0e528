package localstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamcar/roamcar/internal/domain"
	"github.com/roamcar/roamcar/internal/store"
)

func TestCarStoreSave(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	s, err := NewCarStore(kv, testLogger())
	require.NoError(t, err)

	t.Run("create assigns id and stamps createdAt", func(t *testing.T) {
		stored, err := s.Save(ctx, &domain.Car{Title: "Toyota Corolla", Year: 2020, Seats: 5, PricePerDay: 1000})
		require.NoError(t, err)

		assert.NotEmpty(t, stored.ID)
		assert.False(t, stored.CreatedAt.IsZero())
		assert.Nil(t, stored.UpdatedAt)
	})

	t.Run("new cars are prepended", func(t *testing.T) {
		_, err := s.Save(ctx, &domain.Car{Title: "Honda Jazz", Year: 2022, Seats: 4, PricePerDay: 800})
		require.NoError(t, err)

		cars, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, cars, 2)
		assert.Equal(t, "Honda Jazz", cars[0].Title)
		assert.Equal(t, "Toyota Corolla", cars[1].Title)
	})

	t.Run("update preserves createdAt and stamps updatedAt", func(t *testing.T) {
		cars, err := s.List(ctx)
		require.NoError(t, err)
		original := cars[1]

		changed := original
		changed.Title = "Toyota Corolla Hybrid"
		stored, err := s.Save(ctx, &changed)
		require.NoError(t, err)

		assert.Equal(t, original.ID, stored.ID)
		assert.Equal(t, "Toyota Corolla Hybrid", stored.Title)
		assert.True(t, stored.CreatedAt.Equal(original.CreatedAt))
		require.NotNil(t, stored.UpdatedAt)
		assert.True(t, stored.UpdatedAt.After(original.CreatedAt) || stored.UpdatedAt.Equal(original.CreatedAt))

		// Position is unchanged on update
		cars, err = s.List(ctx)
		require.NoError(t, err)
		require.Len(t, cars, 2)
		assert.Equal(t, "Toyota Corolla Hybrid", cars[1].Title)
	})
}

func TestCarStoreDelete(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	s, err := NewCarStore(kv, testLogger())
	require.NoError(t, err)

	stored, err := s.Save(ctx, &domain.Car{Title: "Skoda Octavia", Year: 2019, Seats: 5, PricePerDay: 700})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, stored.ID))
	cars, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cars)

	// Deleting twice produces the same final state as once
	require.NoError(t, s.Delete(ctx, stored.ID))
	cars, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cars)
}

func TestCarStoreGetByID(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	s, err := NewCarStore(kv, testLogger())
	require.NoError(t, err)

	stored, err := s.Save(ctx, &domain.Car{Title: "Kia Sorento", Year: 2023, Seats: 7, PricePerDay: 1500})
	require.NoError(t, err)

	found, err := s.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kia Sorento", found.Title)

	_, err = s.GetByID(ctx, "car-unknown")
	assert.ErrorIs(t, err, store.ErrCarNotFound)
}

func TestCarStoreLoadLegacyRecord(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	// Older versions persisted owner fields as JSON null.
	legacy := `[{"id":"car-1","title":"Old Van","year":2015,"seats":7,"price_per_day":450,` +
		`"image":"","ownerId":null,"ownerName":null,"ownerPhone":null,` +
		`"createdAt":"2023-06-15T12:00:00.000Z"}]`
	require.NoError(t, kv.Set(KeyCars, []byte(legacy)))

	s, err := NewCarStore(kv, testLogger())
	require.NoError(t, err)

	cars, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "Old Van", cars[0].Title)
	assert.Equal(t, "", cars[0].OwnerID)
	assert.Equal(t, time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC), cars[0].CreatedAt.UTC())
}

func TestCarStoreCorruptRecord(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	require.NoError(t, kv.Set(KeyCars, []byte(`[{"id":`)))

	s, err := NewCarStore(kv, testLogger())
	require.NoError(t, err)

	cars, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cars)
}

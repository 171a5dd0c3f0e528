package store

import (
	"context"

	"github.com/roamcar/roamcar/internal/domain"
)

// CarStore defines the interface for car listing persistence.
type CarStore interface {
	// List returns all listings, newest first.
	List(ctx context.Context) ([]domain.Car, error)

	// GetByID retrieves a listing by its unique id.
	// Returns ErrCarNotFound if the listing does not exist.
	GetByID(ctx context.Context, id string) (*domain.Car, error)

	// Save upserts a listing. When car.ID matches an existing record the
	// new fields are merged over it, the original CreatedAt is preserved
	// and UpdatedAt is stamped to now. Otherwise the record is prepended
	// with a fresh CreatedAt (and a generated id when car.ID is blank).
	// The stored record is returned.
	Save(ctx context.Context, car *domain.Car) (*domain.Car, error)

	// Delete removes the listing with the given id. Deleting an absent
	// listing is a silent no-op, not an error.
	Delete(ctx context.Context, id string) error
}

// BookingStore defines the interface for booking persistence.
type BookingStore interface {
	// List returns all bookings in creation order.
	List(ctx context.Context) ([]domain.Booking, error)

	// Save upserts a booking. Updates preserve the original CreatedAt and
	// stamp UpdatedAt; creates stamp CreatedAt, append to the stored set,
	// and generate an id when booking.ID is blank. The stored record is
	// returned. Denormalized car fields are the caller's responsibility;
	// Save persists them as given.
	Save(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)

	// Delete removes the booking with the given id. Deleting an absent
	// booking is a silent no-op, not an error.
	Delete(ctx context.Context, id string) error
}

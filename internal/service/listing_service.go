package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roamcar/roamcar/internal/domain"
	"github.com/roamcar/roamcar/internal/events"
	"github.com/roamcar/roamcar/internal/store"
)

// ListingService provides car listing and booking operations.
//
// Returned slices are point-in-time snapshots; callers must treat them as
// immutable views. Denormalized car fields on a booking (carTitle,
// carOwnerId) are refreshed from the car's current state at save time and
// never rewritten retroactively when the car changes afterwards.
type ListingService interface {
	// Cars returns all listings, newest first.
	Cars(ctx context.Context) ([]domain.Car, error)

	// SaveCar upserts a listing and republishes the car stream before
	// returning. Updates preserve CreatedAt and stamp UpdatedAt.
	SaveCar(ctx context.Context, car domain.Car) (*domain.Car, error)

	// DeleteCar removes a listing; an absent id is a silent no-op.
	DeleteCar(ctx context.Context, id string) error

	// Bookings returns all bookings in creation order.
	Bookings(ctx context.Context) ([]domain.Booking, error)

	// SaveBooking refreshes the booking's denormalized car fields from the
	// referenced car, upserts it (creates append) and republishes the
	// booking stream before returning.
	SaveBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error)

	// DeleteBooking removes a booking; an absent id is a silent no-op.
	DeleteBooking(ctx context.Context, id string) error

	// BookingsByOwner returns the bookings whose car belonged to ownerID
	// at the time they were saved.
	BookingsByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error)

	// BookingsByUser returns the bookings made by the given renter.
	BookingsByUser(ctx context.Context, userID string) ([]domain.Booking, error)

	// CarChanges is the reactive stream of car snapshots.
	CarChanges() *events.Subject[[]domain.Car]

	// BookingChanges is the reactive stream of booking snapshots.
	BookingChanges() *events.Subject[[]domain.Booking]
}

// listingService implements ListingService.
type listingService struct {
	cars     store.CarStore
	bookings store.BookingStore
	logger   *slog.Logger

	carChanges     *events.Subject[[]domain.Car]
	bookingChanges *events.Subject[[]domain.Booking]
}

// NewListingService constructs the listing service and publishes the
// initial snapshots so early subscribers see loaded state immediately.
func NewListingService(
	cars store.CarStore,
	bookings store.BookingStore,
	logger *slog.Logger,
) (ListingService, error) {
	if cars == nil {
		return nil, errors.New("car store cannot be nil")
	}
	if bookings == nil {
		return nil, errors.New("booking store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "listing_service")

	s := &listingService{
		cars:           cars,
		bookings:       bookings,
		logger:         logger,
		carChanges:     events.NewSubject[[]domain.Car](logger),
		bookingChanges: events.NewSubject[[]domain.Booking](logger),
	}

	ctx := context.Background()
	if err := s.publishCars(ctx); err != nil {
		return nil, fmt.Errorf("failed to publish initial car snapshot: %w", err)
	}
	if err := s.publishBookings(ctx); err != nil {
		return nil, fmt.Errorf("failed to publish initial booking snapshot: %w", err)
	}

	return s, nil
}

// Cars implements ListingService.Cars
func (s *listingService) Cars(ctx context.Context) ([]domain.Car, error) {
	cars, err := s.cars.List(ctx)
	if err != nil {
		return nil, newServiceError("listing", "list_cars", err)
	}
	return cars, nil
}

// SaveCar implements ListingService.SaveCar
func (s *listingService) SaveCar(ctx context.Context, car domain.Car) (*domain.Car, error) {
	stored, err := s.cars.Save(ctx, &car)
	if err != nil {
		s.logger.Error("failed to save car", "error", err, "car_id", car.ID)
		return nil, newServiceError("listing", "save_car", err)
	}

	if err := s.publishCars(ctx); err != nil {
		return nil, newServiceError("listing", "save_car", err)
	}

	s.logger.Info("car saved", "car_id", stored.ID, "owner_id", stored.OwnerID)
	return stored, nil
}

// DeleteCar implements ListingService.DeleteCar
func (s *listingService) DeleteCar(ctx context.Context, id string) error {
	if err := s.cars.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete car", "error", err, "car_id", id)
		return newServiceError("listing", "delete_car", err)
	}

	if err := s.publishCars(ctx); err != nil {
		return newServiceError("listing", "delete_car", err)
	}

	s.logger.Info("car deleted", "car_id", id)
	return nil
}

// Bookings implements ListingService.Bookings
func (s *listingService) Bookings(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, newServiceError("listing", "list_bookings", err)
	}
	return bookings, nil
}

// SaveBooking implements ListingService.SaveBooking
func (s *listingService) SaveBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	// Refresh the denormalized car fields from the car's current state.
	// When the car is gone the supplied values are kept as-is.
	car, err := s.cars.GetByID(ctx, booking.CarID)
	switch {
	case err == nil:
		booking.CarTitle = car.Title
		booking.CarOwnerID = car.OwnerID
	case store.IsNotFoundError(err):
		s.logger.Debug("booking references missing car", "car_id", booking.CarID)
	default:
		return nil, newServiceError("listing", "save_booking", err)
	}

	stored, err := s.bookings.Save(ctx, &booking)
	if err != nil {
		s.logger.Error("failed to save booking", "error", err, "booking_id", booking.ID)
		return nil, newServiceError("listing", "save_booking", err)
	}

	if err := s.publishBookings(ctx); err != nil {
		return nil, newServiceError("listing", "save_booking", err)
	}

	s.logger.Info("booking saved",
		"booking_id", stored.ID,
		"car_id", stored.CarID,
		"user_id", stored.UserID)
	return stored, nil
}

// DeleteBooking implements ListingService.DeleteBooking
func (s *listingService) DeleteBooking(ctx context.Context, id string) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete booking", "error", err, "booking_id", id)
		return newServiceError("listing", "delete_booking", err)
	}

	if err := s.publishBookings(ctx); err != nil {
		return newServiceError("listing", "delete_booking", err)
	}

	s.logger.Info("booking deleted", "booking_id", id)
	return nil
}

// BookingsByOwner implements ListingService.BookingsByOwner
func (s *listingService) BookingsByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return nil, newServiceError("listing", "bookings_by_owner", err)
	}

	var out []domain.Booking
	for _, b := range all {
		if b.CarOwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

// BookingsByUser implements ListingService.BookingsByUser
func (s *listingService) BookingsByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return nil, newServiceError("listing", "bookings_by_user", err)
	}

	var out []domain.Booking
	for _, b := range all {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// CarChanges implements ListingService.CarChanges
func (s *listingService) CarChanges() *events.Subject[[]domain.Car] {
	return s.carChanges
}

// BookingChanges implements ListingService.BookingChanges
func (s *listingService) BookingChanges() *events.Subject[[]domain.Booking] {
	return s.bookingChanges
}

func (s *listingService) publishCars(ctx context.Context) error {
	cars, err := s.cars.List(ctx)
	if err != nil {
		return err
	}
	s.carChanges.Publish(cars)
	return nil
}

func (s *listingService) publishBookings(ctx context.Context) error {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return err
	}
	s.bookingChanges.Publish(bookings)
	return nil
}

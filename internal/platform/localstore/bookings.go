package localstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/roamcar/roamcar/internal/domain"
	"github.com/roamcar/roamcar/internal/store"
)

// bookingRecord is the persisted shape of a booking, including legacy
// field names used by early versions that stored the renter under
// "name"/"phone".
type bookingRecord struct {
	domain.Booking
	LegacyName  string `json:"name,omitempty"`
	LegacyPhone string `json:"phone,omitempty"`
}

// migrateBooking coerces a persisted record to the current schema,
// backfilling renter fields from their legacy names.
func migrateBooking(rec bookingRecord) domain.Booking {
	b := rec.Booking
	if b.UserName == "" {
		b.UserName = rec.LegacyName
	}
	if b.UserPhone == "" {
		b.UserPhone = rec.LegacyPhone
	}
	return b
}

// BookingStore implements store.BookingStore over a KV directory.
// Bookings are kept in creation order; new records are appended.
type BookingStore struct {
	kv     *KV
	logger *slog.Logger

	mu       sync.Mutex
	bookings []domain.Booking
}

// Ensure BookingStore implements store.BookingStore
var _ store.BookingStore = (*BookingStore)(nil)

// NewBookingStore loads the persisted bookings and returns a store over
// them. An unparsable document is cleared and treated as empty.
func NewBookingStore(kv *KV, logger *slog.Logger) (*BookingStore, error) {
	s := &BookingStore{
		kv:     kv,
		logger: logger.With("component", "booking_store"),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BookingStore) load() error {
	data, ok, err := s.kv.Get(KeyBookings)
	if err != nil {
		return store.NewStoreError("booking", "load", "failed to read bookings", err)
	}
	if !ok {
		s.bookings = nil
		return nil
	}

	var raw []bookingRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("clearing unparsable booking record", "error", err)
		if err := s.kv.Delete(KeyBookings); err != nil {
			return store.NewStoreError("booking", "load", "failed to clear corrupt record", err)
		}
		s.bookings = nil
		return nil
	}

	s.bookings = make([]domain.Booking, 0, len(raw))
	for _, rec := range raw {
		s.bookings = append(s.bookings, migrateBooking(rec))
	}
	return nil
}

// List implements store.BookingStore.List
func (s *BookingStore) List(ctx context.Context) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out, nil
}

// Save implements store.BookingStore.Save
func (s *BookingStore) Save(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	next := make([]domain.Booking, len(s.bookings))
	copy(next, s.bookings)

	stored := *booking
	updated := false
	for i, existing := range next {
		if existing.ID == stored.ID && stored.ID != "" {
			stored.CreatedAt = existing.CreatedAt
			stamp := now
			stored.UpdatedAt = &stamp
			next[i] = stored
			updated = true
			break
		}
	}

	if !updated {
		if stored.ID == "" {
			stored.ID = domain.NewID(domain.BookingIDPrefix)
		}
		stored.CreatedAt = now
		stored.UpdatedAt = nil
		next = append(next, stored)
	}

	if err := s.persist(next); err != nil {
		return nil, err
	}
	s.bookings = next
	return &stored, nil
}

// Delete implements store.BookingStore.Delete
func (s *BookingStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.bookings[:0:0]
	for _, booking := range s.bookings {
		if booking.ID != id {
			next = append(next, booking)
		}
	}
	if len(next) == len(s.bookings) {
		return nil
	}

	if err := s.persist(next); err != nil {
		return err
	}
	s.bookings = next
	return nil
}

func (s *BookingStore) persist(bookings []domain.Booking) error {
	data, err := json.Marshal(bookings)
	if err != nil {
		return store.NewStoreError("booking", "save", "failed to encode bookings", err)
	}
	if err := s.kv.Set(KeyBookings, data); err != nil {
		return store.NewStoreError("booking", "save", "failed to persist bookings", err)
	}
	return nil
}

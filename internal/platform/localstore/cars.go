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

// CarStore implements store.CarStore over a KV directory. Listings are
// kept newest-first; new records are prepended.
type CarStore struct {
	kv     *KV
	logger *slog.Logger

	mu   sync.Mutex
	cars []domain.Car
}

// Ensure CarStore implements store.CarStore
var _ store.CarStore = (*CarStore)(nil)

// NewCarStore loads the persisted listings and returns a store over them.
// An unparsable document is cleared and treated as empty.
func NewCarStore(kv *KV, logger *slog.Logger) (*CarStore, error) {
	s := &CarStore{
		kv:     kv,
		logger: logger.With("component", "car_store"),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CarStore) load() error {
	data, ok, err := s.kv.Get(KeyCars)
	if err != nil {
		return store.NewStoreError("car", "load", "failed to read cars", err)
	}
	if !ok {
		s.cars = nil
		return nil
	}

	var raw []domain.Car
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("clearing unparsable car record", "error", err)
		if err := s.kv.Delete(KeyCars); err != nil {
			return store.NewStoreError("car", "load", "failed to clear corrupt record", err)
		}
		s.cars = nil
		return nil
	}

	// Owner fields persisted as JSON null by older versions decode to "",
	// which is already the ownerless representation. Nothing else to
	// migrate for cars.
	s.cars = raw
	return nil
}

// List implements store.CarStore.List
func (s *CarStore) List(ctx context.Context) ([]domain.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Car, len(s.cars))
	copy(out, s.cars)
	return out, nil
}

// GetByID implements store.CarStore.GetByID
func (s *CarStore) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, car := range s.cars {
		if car.ID == id {
			found := car
			return &found, nil
		}
	}
	return nil, store.ErrCarNotFound
}

// Save implements store.CarStore.Save
func (s *CarStore) Save(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	next := make([]domain.Car, len(s.cars))
	copy(next, s.cars)

	stored := *car
	updated := false
	for i, existing := range next {
		if existing.ID == stored.ID && stored.ID != "" {
			// Merge over the existing record: every field the caller
			// supplied wins except the immutable CreatedAt.
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
			stored.ID = domain.NewID(domain.CarIDPrefix)
		}
		stored.CreatedAt = now
		stored.UpdatedAt = nil
		next = append([]domain.Car{stored}, next...)
	}

	if err := s.persist(next); err != nil {
		return nil, err
	}
	s.cars = next
	return &stored, nil
}

// Delete implements store.CarStore.Delete
func (s *CarStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cars[:0:0]
	for _, car := range s.cars {
		if car.ID != id {
			next = append(next, car)
		}
	}
	if len(next) == len(s.cars) {
		// Absent id: silent no-op.
		return nil
	}

	if err := s.persist(next); err != nil {
		return err
	}
	s.cars = next
	return nil
}

func (s *CarStore) persist(cars []domain.Car) error {
	data, err := json.Marshal(cars)
	if err != nil {
		return store.NewStoreError("car", "save", "failed to encode cars", err)
	}
	if err := s.kv.Set(KeyCars, data); err != nil {
		return store.NewStoreError("car", "save", "failed to persist cars", err)
	}
	return nil
}

package events

import (
	"log/slog"
	"sync"
)

// Subject is a replay-latest broadcast of values of type T.
//
// Publish delivers the value to every current subscriber synchronously, in
// subscription order, and caches it so later subscribers catch up
// immediately. A Subject is safe for concurrent use, although the stores
// that own one only ever publish from their own mutating calls.
type Subject[T any] struct {
	mu       sync.Mutex
	nextID   int
	order    []int
	handlers map[int]func(T)
	last     T
	hasValue bool
	logger   *slog.Logger
}

// NewSubject creates an empty Subject. The logger may be nil, in which case
// slog.Default is used.
func NewSubject[T any](logger *slog.Logger) *Subject[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subject[T]{
		handlers: make(map[int]func(T)),
		logger:   logger.With("component", "subject"),
	}
}

// Subscribe registers fn to receive the current value (when one has been
// published) and all future values. It returns an unsubscribe func; after
// it returns, fn is guaranteed to receive no further callbacks.
func (s *Subject[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.handlers[id] = fn
	s.order = append(s.order, id)
	replay, hasValue := s.last, s.hasValue
	count := len(s.order)
	s.mu.Unlock()

	s.logger.Debug("subscriber registered", "subscriber_count", count)

	if hasValue {
		fn(replay)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.handlers[id]; !ok {
			return
		}
		delete(s.handlers, id)
		for i, existing := range s.order {
			if existing == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Publish caches value as the latest and delivers it to every subscriber in
// subscription order before returning.
func (s *Subject[T]) Publish(value T) {
	s.mu.Lock()
	s.last = value
	s.hasValue = true
	fns := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.handlers[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}

// Value returns the most recently published value and whether one exists.
func (s *Subject[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasValue
}

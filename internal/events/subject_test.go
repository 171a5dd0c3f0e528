package events

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	// Create a minimal logger that discards output
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("publish with no subscribers", func(t *testing.T) {
		s := NewSubject[int](logger)

		// Should not panic and should cache the value
		s.Publish(42)

		v, ok := s.Value()
		require.True(t, ok)
		assert.Equal(t, 42, v)
	})

	t.Run("subscriber receives latest value immediately", func(t *testing.T) {
		s := NewSubject[string](logger)
		s.Publish("first")
		s.Publish("second")

		var got []string
		s.Subscribe(func(v string) { got = append(got, v) })

		assert.Equal(t, []string{"second"}, got)
	})

	t.Run("no replay before first publish", func(t *testing.T) {
		s := NewSubject[string](logger)

		calls := 0
		s.Subscribe(func(string) { calls++ })

		assert.Zero(t, calls)

		_, ok := s.Value()
		assert.False(t, ok)
	})

	t.Run("delivery in subscription order", func(t *testing.T) {
		s := NewSubject[int](logger)

		var order []string
		s.Subscribe(func(int) { order = append(order, "a") })
		s.Subscribe(func(int) { order = append(order, "b") })
		s.Subscribe(func(int) { order = append(order, "c") })

		s.Publish(1)

		assert.Equal(t, []string{"a", "b", "c"}, order)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		s := NewSubject[int](logger)

		calls := 0
		unsubscribe := s.Subscribe(func(int) { calls++ })

		s.Publish(1)
		require.Equal(t, 1, calls)

		unsubscribe()
		s.Publish(2)
		assert.Equal(t, 1, calls)

		// Unsubscribing twice is harmless
		unsubscribe()
		s.Publish(3)
		assert.Equal(t, 1, calls)
	})

	t.Run("remaining subscribers unaffected by unsubscribe", func(t *testing.T) {
		s := NewSubject[int](logger)

		var a, b int
		unsubA := s.Subscribe(func(v int) { a = v })
		s.Subscribe(func(v int) { b = v })

		unsubA()
		s.Publish(7)

		assert.Zero(t, a)
		assert.Equal(t, 7, b)
	})

	t.Run("publish is synchronous", func(t *testing.T) {
		s := NewSubject[int](logger)

		seen := -1
		s.Subscribe(func(v int) { seen = v })

		s.Publish(5)

		// The subscriber ran before Publish returned
		assert.Equal(t, 5, seen)
	})
}

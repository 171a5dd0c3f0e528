package domain

import "github.com/google/uuid"

// Entity id prefixes. Persisted ids are opaque strings; these prefixes make
// ids self-describing in storage dumps and logs. Legacy ids of any shape are
// accepted verbatim on load.
const (
	UserIDPrefix    = "user"
	CarIDPrefix     = "car"
	BookingIDPrefix = "booking"
)

// NewID generates a fresh unique entity id with the given prefix,
// e.g. "car-6ba7b810-9dad-11d1-80b4-00c04fd430c8".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

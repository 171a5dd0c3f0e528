package domain

import "time"

// ValidSeats lists the seat configurations the marketplace accepts.
var ValidSeats = []int{4, 5, 7}

// Car is a rental listing. Owner fields are a snapshot taken when the
// listing was created; ownerId is empty for ownerless legacy listings
// (persisted as JSON null by older versions, which loads as "").
type Car struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Year        int        `json:"year"`
	Seats       int        `json:"seats"`
	PricePerDay float64    `json:"price_per_day"`
	Image       string     `json:"image"`
	OwnerID     string     `json:"ownerId"`
	OwnerName   string     `json:"ownerName"`
	OwnerPhone  string     `json:"ownerPhone"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Validate checks the listing's required fields.
func (c *Car) Validate() error {
	if c.Title == "" {
		return ErrCarTitleRequired
	}
	if !validSeatCount(c.Seats) {
		return ErrInvalidSeats
	}
	return nil
}

func validSeatCount(seats int) bool {
	for _, s := range ValidSeats {
		if seats == s {
			return true
		}
	}
	return false
}

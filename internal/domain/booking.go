package domain

import (
	"math"
	"time"
)

// ISODate is the wire format of booking dates.
const ISODate = "2006-01-02"

// Booking records a rental of a car for a date range. carTitle and
// carOwnerId are denormalized from the car at save time; they reflect the
// car as it was then and are not rewritten retroactively when the car
// changes later.
type Booking struct {
	ID         string     `json:"id"`
	CarID      string     `json:"carId"`
	CarTitle   string     `json:"carTitle"`
	Start      string     `json:"start"`
	End        string     `json:"end"`
	UserID     string     `json:"userId"`
	UserName   string     `json:"userName"`
	UserPhone  string     `json:"userPhone"`
	CarOwnerID string     `json:"carOwnerId"`
	Days       int        `json:"days"`
	Total      float64    `json:"total"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// Validate checks the booking's required references and date shapes.
func (b *Booking) Validate() error {
	if b.CarID == "" {
		return ErrBookingCarRequired
	}
	if _, err := time.Parse(ISODate, b.Start); err != nil {
		return ErrInvalidDate
	}
	if _, err := time.Parse(ISODate, b.End); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Quote computes the derived charge for a date range at a given daily price.
// An n-day range is charged inclusively: start == end is one day. When end
// precedes start the floor still applies, yielding a minimum one-day charge
// rather than a negative value; that is a deliberate policy, not input
// repair.
func Quote(start, end string, pricePerDay float64) (days int, total float64, err error) {
	from, err := time.Parse(ISODate, start)
	if err != nil {
		return 0, 0, ErrInvalidDate
	}
	to, err := time.Parse(ISODate, end)
	if err != nil {
		return 0, 0, ErrInvalidDate
	}

	span := int(math.Round(to.Sub(from).Hours()/24)) + 1
	days = max(1, span)
	total = math.Round(float64(days) * pricePerDay)
	return days, total, nil
}

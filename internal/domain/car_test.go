package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCarValidate(t *testing.T) {
	car := Car{Title: "Toyota Corolla", Seats: 5}
	assert.NoError(t, car.Validate())

	for _, seats := range ValidSeats {
		car.Seats = seats
		assert.NoError(t, car.Validate(), "seats=%d", seats)
	}

	car.Seats = 2
	assert.ErrorIs(t, car.Validate(), ErrInvalidSeats)

	car.Seats = 5
	car.Title = ""
	assert.ErrorIs(t, car.Validate(), ErrCarTitleRequired)
}

package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Specific validation errors below wrap it so callers can match the
	// whole class with errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation failed")

	// ErrNameRequired is returned when an account name is blank.
	ErrNameRequired = fmt.Errorf("%w: name is required", ErrValidation)

	// ErrEmailRequired is returned when an email is blank after normalization.
	ErrEmailRequired = fmt.Errorf("%w: email is required", ErrValidation)

	// ErrPhoneRequired is returned when a phone number is blank after normalization.
	ErrPhoneRequired = fmt.Errorf("%w: phone is required", ErrValidation)

	// ErrPasswordRequired is returned when a password is blank.
	ErrPasswordRequired = fmt.Errorf("%w: password is required", ErrValidation)

	// ErrPasswordTooShort is returned when a password has fewer than
	// MinPasswordLength characters.
	ErrPasswordTooShort = fmt.Errorf(
		"%w: password must be at least 6 characters long",
		ErrValidation,
	)

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email format", ErrValidation)

	// ErrInvalidSeats is returned when a car's seat count is not one of
	// the supported configurations.
	ErrInvalidSeats = fmt.Errorf("%w: seats must be 4, 5 or 7", ErrValidation)

	// ErrCarTitleRequired is returned when a car listing has no title.
	ErrCarTitleRequired = fmt.Errorf("%w: title is required", ErrValidation)

	// ErrBookingCarRequired is returned when a booking references no car.
	ErrBookingCarRequired = fmt.Errorf("%w: booking must reference a car", ErrValidation)

	// ErrInvalidDate is returned when a booking date is not an ISO date.
	ErrInvalidDate = fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrValidation)
)

// IsValidationError reports whether err belongs to the validation error class.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

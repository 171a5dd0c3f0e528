package main

import (
	"errors"

	"github.com/roamcar/roamcar/internal/domain"
	"github.com/roamcar/roamcar/internal/service/auth"
	"github.com/roamcar/roamcar/internal/store"
)

// safeErrorMessage maps service errors to the user-facing form messages.
// Internal failure details stay in the logs, not on the console.
func safeErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrPhoneRequired),
		errors.Is(err, domain.ErrPasswordRequired):
		return "All fields are required."

	case errors.Is(err, domain.ErrPasswordTooShort):
		return "Password must be at least 6 characters long."

	case errors.Is(err, domain.ErrInvalidEmail):
		return "Please provide a valid email address."

	case errors.Is(err, store.ErrEmailExists):
		return "An account already exists with this email."

	case errors.Is(err, store.ErrPhoneExists):
		return "An account already exists with this phone number."

	case errors.Is(err, store.ErrUserNotFound):
		return "No account found with that email."

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Incorrect password. Please try again."

	case errors.Is(err, domain.ErrCarTitleRequired):
		return "Please provide a title."

	case errors.Is(err, domain.ErrInvalidSeats):
		return "Seats must be 4, 5 or 7."

	case errors.Is(err, domain.ErrInvalidDate):
		return "Dates must be in YYYY-MM-DD format."

	default:
		return "Something went wrong. Please try again."
	}
}

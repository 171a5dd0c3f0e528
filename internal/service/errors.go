package service

import (
	"errors"
	"fmt"

	"github.com/roamcar/roamcar/internal/domain"
	"github.com/roamcar/roamcar/internal/service/auth"
	"github.com/roamcar/roamcar/internal/store"
)

// The services surface three classes of failure to callers: validation
// (bad or duplicate registration input), auth (credential mismatch) and
// not-found (unknown account on login). Everything else is an internal
// storage failure wrapped in ServiceError.

// IsValidationError reports whether err is a validation failure: a domain
// validation sentinel or a uniqueness conflict.
func IsValidationError(err error) bool {
	return domain.IsValidationError(err) || store.IsDuplicateError(err)
}

// IsAuthError reports whether err is a credential verification failure.
func IsAuthError(err error) bool {
	return errors.Is(err, auth.ErrInvalidCredentials)
}

// IsNotFoundError reports whether err is a missing-entity failure.
func IsNotFoundError(err error) bool {
	return store.IsNotFoundError(err)
}

// ServiceError wraps internal failures from a service with context.
type ServiceError struct {
	// Service is the service that failed (e.g., "account", "listing")
	Service string
	// Operation is the operation that failed (e.g., "register", "save_car")
	Operation string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service %s failed: %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// newServiceError wraps err unless it is one of the caller-facing sentinel
// classes, which are returned directly so errors.Is matching stays simple.
func newServiceError(service, operation string, err error) error {
	if err == nil {
		return nil
	}
	if IsValidationError(err) || IsAuthError(err) || IsNotFoundError(err) {
		return err
	}
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Err:       err,
	}
}

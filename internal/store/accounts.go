package store

import (
	"context"

	"github.com/roamcar/roamcar/internal/domain"
)

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	// List returns all accounts, newest first.
	List(ctx context.Context) ([]domain.UserAccount, error)

	// GetByID retrieves an account by its unique id.
	// Returns ErrUserNotFound if the account does not exist.
	GetByID(ctx context.Context, id string) (*domain.UserAccount, error)

	// GetByEmail retrieves an account by its normalized email address.
	// The caller is expected to normalize with domain.NormalizeEmail first.
	// Returns ErrUserNotFound if the account does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error)

	// Create persists a new account, prepending it to the stored set.
	// Returns ErrEmailExists if the normalized email is already taken, and
	// ErrPhoneExists if the phone number is already taken.
	Create(ctx context.Context, account *domain.UserAccount) error
}

// SessionStore defines the interface for the persisted session record.
// At most one session exists per process lifetime.
type SessionStore interface {
	// Get retrieves the persisted session.
	// Returns ErrNotFound when no session is stored.
	Get(ctx context.Context) (*domain.SessionUser, error)

	// Put replaces the persisted session.
	Put(ctx context.Context, session *domain.SessionUser) error

	// Clear removes the persisted session. Clearing an absent session is
	// not an error.
	Clear(ctx context.Context) error
}

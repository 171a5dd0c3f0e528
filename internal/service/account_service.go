package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/roamcar/roamcar/internal/domain"
	"github.com/roamcar/roamcar/internal/events"
	"github.com/roamcar/roamcar/internal/service/auth"
	"github.com/roamcar/roamcar/internal/store"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     domain.Role
}

// AccountService provides account registration, login and session state.
type AccountService interface {
	// Register validates the input, creates the account and establishes it
	// as the current session. Validation failures satisfy
	// IsValidationError; duplicate email/phone return store.ErrEmailExists
	// / store.ErrPhoneExists.
	Register(ctx context.Context, in RegisterInput) (*domain.SessionUser, error)

	// Login authenticates by normalized email and password. Returns
	// store.ErrUserNotFound when no account matches the email and
	// auth.ErrInvalidCredentials when the credential does not verify.
	Login(ctx context.Context, email, password string) (*domain.SessionUser, error)

	// Logout clears the persisted session and the in-memory state.
	// Logging out while logged out is a no-op.
	Logout(ctx context.Context) error

	// CurrentUser returns the authenticated identity, or nil when logged
	// out. It is a synchronous read of in-memory state.
	CurrentUser() *domain.SessionUser

	// SessionChanges is the reactive stream of the current session.
	// Subscribers receive the latest value immediately and every change.
	SessionChanges() *events.Subject[*domain.SessionUser]
}

// accountService implements AccountService.
type accountService struct {
	accounts store.AccountStore
	sessions store.SessionStore
	codec    auth.CredentialCodec
	logger   *slog.Logger

	mu      sync.Mutex
	current *domain.SessionUser
	changes *events.Subject[*domain.SessionUser]
}

// NewAccountService constructs the account service and runs the session
// initialization protocol: the persisted session is re-resolved against the
// loaded account set by id, and a stale record (no matching account) is
// cleared so the process starts logged out.
func NewAccountService(
	accounts store.AccountStore,
	sessions store.SessionStore,
	codec auth.CredentialCodec,
	logger *slog.Logger,
) (AccountService, error) {
	if accounts == nil {
		return nil, errors.New("accounts store cannot be nil")
	}
	if sessions == nil {
		return nil, errors.New("sessions store cannot be nil")
	}
	if codec == nil {
		codec = auth.NewBase64Codec()
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "account_service")

	s := &accountService{
		accounts: accounts,
		sessions: sessions,
		codec:    codec,
		logger:   logger,
		changes:  events.NewSubject[*domain.SessionUser](logger),
	}

	if err := s.restoreSession(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	return s, nil
}

// restoreSession loads the persisted session and re-resolves it against the
// account set. The stream always gets an initial value, nil when logged out.
func (s *accountService) restoreSession(ctx context.Context) error {
	persisted, err := s.sessions.Get(ctx)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.changes.Publish(nil)
			return nil
		}
		return err
	}

	account, err := s.accounts.GetByID(ctx, persisted.ID)
	if err != nil {
		if store.IsNotFoundError(err) {
			// Stale session record: the account it points at is gone.
			s.logger.Warn("clearing stale session record", "user_id", persisted.ID)
			if err := s.sessions.Clear(ctx); err != nil {
				return err
			}
			s.changes.Publish(nil)
			return nil
		}
		return err
	}

	// Re-project from the account so edits made since the session was
	// persisted are reflected, and persist the refreshed projection.
	session := account.SessionView()
	if err := s.sessions.Put(ctx, session); err != nil {
		return err
	}
	s.current = session
	s.changes.Publish(session)

	s.logger.Debug("session restored", "user_id", session.ID, "role", session.Role)
	return nil
}

// Register implements AccountService.Register
func (s *accountService) Register(ctx context.Context, in RegisterInput) (*domain.SessionUser, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	phone := domain.NormalizePhone(in.Phone)
	password := strings.TrimSpace(in.Password)

	// Check order matches the original form: required fields, password
	// policy, email shape, then uniqueness.
	switch {
	case name == "":
		return nil, domain.ErrNameRequired
	case email == "":
		return nil, domain.ErrEmailRequired
	case phone == "":
		return nil, domain.ErrPhoneRequired
	case password == "":
		return nil, domain.ErrPasswordRequired
	}
	if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if !domain.ValidateEmailFormat(email) {
		return nil, domain.ErrInvalidEmail
	}

	account, err := domain.NewUserAccount(name, email, phone, in.Role, s.codec.Encode(in.Password))
	if err != nil {
		return nil, err
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("registration rejected", "error", err, "email", email)
		} else {
			s.logger.Error("failed to persist account", "error", err, "email", email)
		}
		return nil, newServiceError("account", "register", err)
	}

	session := account.SessionView()
	if err := s.establishSession(ctx, session); err != nil {
		return nil, newServiceError("account", "register", err)
	}

	s.logger.Info("account registered", "user_id", account.ID, "role", account.Role)
	return session, nil
}

// Login implements AccountService.Login
func (s *accountService) Login(ctx context.Context, email, password string) (*domain.SessionUser, error) {
	normalized := domain.NormalizeEmail(email)

	account, err := s.accounts.GetByEmail(ctx, normalized)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("login for unknown email", "email", normalized)
			return nil, store.ErrUserNotFound
		}
		return nil, newServiceError("account", "login", err)
	}

	if err := s.codec.Verify(password, account.PasswordHash); err != nil {
		s.logger.Debug("login with wrong credential", "user_id", account.ID)
		return nil, auth.ErrInvalidCredentials
	}

	session := account.SessionView()
	if err := s.establishSession(ctx, session); err != nil {
		return nil, newServiceError("account", "login", err)
	}

	s.logger.Info("login succeeded", "user_id", account.ID)
	return session, nil
}

// Logout implements AccountService.Logout
func (s *accountService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return newServiceError("account", "logout", err)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.changes.Publish(nil)

	return nil
}

// CurrentUser implements AccountService.CurrentUser
func (s *accountService) CurrentUser() *domain.SessionUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SessionChanges implements AccountService.SessionChanges
func (s *accountService) SessionChanges() *events.Subject[*domain.SessionUser] {
	return s.changes
}

func (s *accountService) establishSession(ctx context.Context, session *domain.SessionUser) error {
	if err := s.sessions.Put(ctx, session); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()
	s.changes.Publish(session)

	return nil
}

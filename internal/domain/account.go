package domain

import (
	"regexp"
	"strings"
	"time"
)

// Role determines which marketplace surfaces an account may use.
// Admins may list cars; regular users book them.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole coerces an arbitrary persisted role value to a valid Role.
// Anything that is not exactly "admin" degrades to RoleUser, so legacy or
// malformed records never escalate privileges on load.
func ParseRole(raw string) Role {
	if raw == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// emailPattern mirrors the original marketplace check: a local part, an "@",
// and a domain containing at least one dot, with no whitespace anywhere.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserAccount represents a registered account, including its credential.
// The credential is an opaque encoded form and is never exposed through
// SessionUser projections.
type UserAccount struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Role         Role       `json:"role"`
	PasswordHash string     `json:"passwordHash"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// SessionUser is the projection of a UserAccount handed to consumers once
// authenticated. It carries everything a view needs and nothing secret.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
}

// NormalizeEmail trims surrounding whitespace and lowercases an email
// address. Email uniqueness is case-insensitive, so every comparison and
// every stored value goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone trims surrounding whitespace. Phone uniqueness is
// case-sensitive beyond that.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// ValidateEmailFormat reports whether the (already normalized) email looks
// like local@domain.tld. Intentionally a shallow shape check, not RFC 5322.
func ValidateEmailFormat(email string) bool {
	return emailPattern.MatchString(email)
}

// NewUserAccount builds a registered account from normalized registration
// input. The caller supplies the already-encoded credential; this
// constructor validates the remaining fields and stamps CreatedAt.
func NewUserAccount(name, email, phone string, role Role, passwordHash string) (*UserAccount, error) {
	account := &UserAccount{
		ID:           NewID(UserIDPrefix),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		Phone:        NormalizePhone(phone),
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks the account's required fields and email shape.
func (a *UserAccount) Validate() error {
	if a.Name == "" {
		return ErrNameRequired
	}
	if a.Email == "" {
		return ErrEmailRequired
	}
	if a.Phone == "" {
		return ErrPhoneRequired
	}
	if !ValidateEmailFormat(a.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// SessionView returns the credential-free projection of the account.
func (a *UserAccount) SessionView() *SessionUser {
	return &SessionUser{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Phone: a.Phone,
		Role:  a.Role,
	}
}

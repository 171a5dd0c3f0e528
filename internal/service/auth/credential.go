// Package auth holds the credential encoding used by account
// registration and login.
//
// The marketplace stores credentials in a reversible textual encoding and
// verifies by encode-and-compare. This is explicitly not a security
// boundary; it only keeps plaintext out of casual storage dumps, matching
// the original product's behavior.
package auth

import (
	"encoding/base64"
	"errors"
)

// ErrInvalidCredentials is returned when a credential does not verify
// against the stored encoded form.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialCodec encodes passwords for storage and verifies them on login.
type CredentialCodec interface {
	// Encode returns the opaque stored form of a password.
	Encode(password string) string

	// Verify compares a password against its stored encoded form.
	// Returns nil on success, or ErrInvalidCredentials on mismatch.
	Verify(password, encoded string) error
}

// Base64Codec implements CredentialCodec with standard base64, the
// encoding the original product used.
type Base64Codec struct{}

// NewBase64Codec creates a new Base64Codec.
func NewBase64Codec() *Base64Codec {
	return &Base64Codec{}
}

// Encode implements the CredentialCodec interface.
func (c *Base64Codec) Encode(password string) string {
	return base64.StdEncoding.EncodeToString([]byte(password))
}

// Verify implements the CredentialCodec interface using encode-and-compare.
func (c *Base64Codec) Verify(password, encoded string) error {
	if c.Encode(password) != encoded {
		return ErrInvalidCredentials
	}
	return nil
}

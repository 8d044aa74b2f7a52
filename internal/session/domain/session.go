// Package domain defines the session models: opaque bearer tokens stored as
// SHA-256 hashes with an expiry timestamp.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session maps a token hash to a principal and an expiry. The plaintext token
// is handed to the client once at login and never stored; only its SHA-256
// hash lands in the database.
//
// Expiry is the sole lifetime policy: a session is valid until ExpiresAt
// passes or the principal logs out.
type Session struct {
	ID          uuid.UUID
	PrincipalID uuid.UUID
	Company     string
	TokenHash   string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Expired reports whether the session expiry has passed relative to now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

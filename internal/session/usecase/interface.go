// Package usecase implements the session lifecycle: login against encrypted
// principal records, token validation with delete-on-expiry, and logout.
package usecase

import (
	"context"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/trustcore/internal/identity/domain"
	sessionDomain "github.com/allisson/trustcore/internal/session/domain"
)

// SessionRepository defines persistence operations for sessions.
type SessionRepository interface {
	// Create inserts a new session.
	Create(ctx context.Context, session *sessionDomain.Session) error

	// GetByTokenHash retrieves a session by its token hash.
	// Returns sessionDomain.ErrTokenNotFound when no session matches.
	GetByTokenHash(ctx context.Context, tokenHash string) (*sessionDomain.Session, error)

	// Delete removes a session by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes all sessions past their expiry and returns the
	// number of rows removed. Used by the cleanup command.
	DeleteExpired(ctx context.Context) (int64, error)
}

// IdentityProvider is the identity lookup the session flow needs. Satisfied
// by the identity PrincipalUseCase; returned principals carry decrypted PII.
type IdentityProvider interface {
	GetByEmail(ctx context.Context, company, email string) (*identityDomain.Principal, error)
	GetByID(ctx context.Context, company string, id uuid.UUID) (*identityDomain.Principal, error)
}

// LoginOutput carries the result of a successful login. PlainToken is shown
// to the client exactly once and is never stored.
type LoginOutput struct {
	PlainToken string
	Principal  *identityDomain.Principal
}

// SessionUseCase defines the session operations.
type SessionUseCase interface {
	// Login authenticates an email/password pair and issues a session token.
	// Unknown emails, wrong passwords, and inactive principals all fail with
	// the same ErrInvalidCredentials.
	Login(ctx context.Context, company, email, password string) (*LoginOutput, error)

	// Validate resolves a plain token to its principal. An expired session is
	// deleted on detection, so a second attempt with the same token yields
	// ErrTokenNotFound.
	Validate(ctx context.Context, plainToken string) (*identityDomain.Principal, error)

	// Logout deletes the session for the given token. Unknown tokens are not
	// an error: logout is idempotent.
	Logout(ctx context.Context, plainToken string) error

	// CleanExpired removes all expired sessions and returns the count removed.
	CleanExpired(ctx context.Context) (int64, error)
}

package domain

import (
	"github.com/allisson/trustcore/internal/errors"
)

// Identity errors.
var (
	// ErrPrincipalNotFound indicates no principal matched the lookup.
	ErrPrincipalNotFound = errors.Wrap(errors.ErrNotFound, "principal not found")

	// ErrEmailTaken indicates another principal already registered the same
	// normalized email. Enforced by a unique constraint on mail_index, so two
	// concurrent registrations cannot both pass a check-then-insert race.
	ErrEmailTaken = errors.Wrap(errors.ErrConflict, "email already registered")

	// ErrInvalidCredentials indicates the email/password pair did not match.
	// Deliberately indistinguishable between unknown email and wrong password.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)

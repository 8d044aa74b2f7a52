package domain

import (
	"github.com/allisson/trustcore/internal/errors"
)

// Session errors. All of them wrap ErrUnauthorized: the HTTP layer maps them
// to a generic 401 so session internals never leak to the end user.
var (
	// ErrTokenNotFound indicates no session matches the presented token.
	ErrTokenNotFound = errors.Wrap(errors.ErrUnauthorized, "session token not found")

	// ErrTokenExpired indicates the session expiry has passed. The session
	// record is deleted on detection, so a retry yields ErrTokenNotFound.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "session token expired")

	// ErrTokenMalformed indicates the request carried no usable token.
	ErrTokenMalformed = errors.Wrap(errors.ErrUnauthorized, "session token malformed")
)

package domain

import (
	"fmt"

	"github.com/allisson/trustcore/internal/errors"
)

// Authorization errors.
var (
	// ErrRoleNotFound indicates a role with the specified name or ID was not found.
	// Non-fatal for hierarchy resolution: unknown roles resolve to the default level.
	ErrRoleNotFound = errors.Wrap(errors.ErrNotFound, "role not found")

	// ErrTenantNotFound indicates a tenant with the specified company key was not found.
	ErrTenantNotFound = errors.Wrap(errors.ErrNotFound, "tenant not found")

	// ErrRoleNameTaken indicates a role with the same name already exists in the tenant.
	ErrRoleNameTaken = errors.Wrap(errors.ErrConflict, "role name already taken")

	// ErrMaestroReserved indicates an attempt to create or rename a role to the
	// reserved superuser name without holding the maximum authority level.
	ErrMaestroReserved = errors.Wrap(errors.ErrForbidden, "role name is reserved for the maximum authority level")
)

// InsufficientAuthorityError is returned when a requester attempts to create
// or update a role above their own authority level. The violation is rejected,
// never silently clamped, and the error names both levels involved.
type InsufficientAuthorityError struct {
	RequesterLevel int
	RequestedLevel int
}

// Error implements the error interface.
func (e *InsufficientAuthorityError) Error() string {
	return fmt.Sprintf(
		"insufficient authority: requester level %d cannot assign level %d",
		e.RequesterLevel, e.RequestedLevel,
	)
}

// Unwrap maps the violation to the standard forbidden error for HTTP mapping.
func (e *InsufficientAuthorityError) Unwrap() error {
	return errors.ErrForbidden
}

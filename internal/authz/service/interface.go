// Package service implements the pure authorization logic of the trust core:
// role level resolution and the permission gate applied to role assignment
// and tenant suspension.
package service

import (
	"context"

	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
)

// RoleStore is the role lookup required by the hierarchy. Satisfied by the
// role repositories.
type RoleStore interface {
	// GetByName retrieves a role by case-insensitive name within a tenant.
	// Returns authzDomain.ErrRoleNotFound when no role matches.
	GetByName(ctx context.Context, company, name string) (*authzDomain.Role, error)
}

// RoleHierarchy resolves role names to numeric authority levels.
type RoleHierarchy interface {
	// Level resolves the authority level for a role name within a tenant.
	// Never fails: lookup errors degrade to the lowest level (fail closed).
	Level(ctx context.Context, company, roleName string) int
}

// PermissionGate computes authorization decisions as pure functions of the
// role, tenant state, and requester role. No hidden state: every decision is
// fully re-derivable per request, so permissions are never stale.
type PermissionGate interface {
	// CheckAssignment enforces the assignment ceiling for role creation and updates.
	CheckAssignment(requesterLevel int, targetName string, targetLevel int) error

	// EffectivePermissions derives the permission set actually enforced for a
	// role given its tenant's suspension state.
	EffectivePermissions(role *authzDomain.Role, tenant *authzDomain.Tenant) authzDomain.PermissionSet

	// FilterListing applies suspension narrowing and maestro visibility rules
	// to a role listing.
	FilterListing(
		roles []*authzDomain.Role,
		tenant *authzDomain.Tenant,
		requesterRole string,
	) []*authzDomain.Role
}

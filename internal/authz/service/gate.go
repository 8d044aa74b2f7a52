package service

import (
	"strings"

	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
)

// gate implements PermissionGate. Stateless: every decision is a pure
// function of its inputs.
type gate struct{}

// NewGate creates a PermissionGate.
func NewGate() PermissionGate {
	return &gate{}
}

// CheckAssignment enforces the assignment ceiling: the requester's own level
// must be greater than or equal to the level being assigned. Violations are
// rejected with InsufficientAuthorityError, never silently clamped.
// Assigning the reserved name "maestro" additionally requires the requester
// to hold exactly the maximum level.
func (g *gate) CheckAssignment(requesterLevel int, targetName string, targetLevel int) error {
	if strings.ToLower(strings.TrimSpace(targetName)) == authzDomain.RoleMaestro &&
		requesterLevel != authzDomain.LevelMaestro {
		return authzDomain.ErrMaestroReserved
	}

	if requesterLevel < targetLevel {
		return &authzDomain.InsufficientAuthorityError{
			RequesterLevel: requesterLevel,
			RequestedLevel: targetLevel,
		}
	}

	return nil
}

// EffectivePermissions derives the permission set actually enforced for a
// role. While the tenant is suspended the result is the intersection of the
// granted permissions with the fixed allow-list: suspension can only narrow
// access. Computed per call and never persisted, so un-suspending a tenant
// restores full permissions immediately.
func (g *gate) EffectivePermissions(
	role *authzDomain.Role,
	tenant *authzDomain.Tenant,
) authzDomain.PermissionSet {
	if tenant == nil || !tenant.Suspended {
		return role.Permissions
	}

	// The wildcard grants everything, so under suspension it narrows to the
	// whole allow-list rather than a literal string intersection.
	if _, ok := role.Permissions[authzDomain.PermissionAll]; ok {
		return authzDomain.SuspendedAllowList()
	}
	return role.Permissions.Intersect(authzDomain.SuspendedAllowList())
}

// FilterListing applies the listing state machine:
//
//	Unfiltered -> [tenant suspended?] -> Narrowed -> [requester is maestro?] -> Final
//
// Roles named "maestro" are hidden entirely unless the requester is maestro.
// Narrowed roles are copies; the input roles are never mutated.
func (g *gate) FilterListing(
	roles []*authzDomain.Role,
	tenant *authzDomain.Tenant,
	requesterRole string,
) []*authzDomain.Role {
	requesterIsMaestro := strings.ToLower(strings.TrimSpace(requesterRole)) == authzDomain.RoleMaestro

	result := make([]*authzDomain.Role, 0, len(roles))
	for _, role := range roles {
		if strings.ToLower(strings.TrimSpace(role.Name)) == authzDomain.RoleMaestro && !requesterIsMaestro {
			continue
		}

		effective := g.EffectivePermissions(role, tenant)
		if effective.Equal(role.Permissions) {
			result = append(result, role)
			continue
		}

		narrowed := *role
		narrowed.Permissions = effective
		result = append(result, &narrowed)
	}

	return result
}

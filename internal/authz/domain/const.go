// Package domain defines the authorization domain models: roles with numeric
// authority levels, permission sets, and tenant suspension state.
package domain

// Reserved role names. Matching is always done on the normalized
// (trimmed, lowercased) name.
const (
	// RoleMaestro is the reserved superuser tier. It always resolves to
	// LevelMaestro regardless of stored data, so the role store cannot be
	// tampered with to elevate privileges.
	RoleMaestro = "maestro"

	// RoleLegacyAdmin is the legacy administrator name that predates stored
	// levels. Used as a fallback when a role is missing from the store.
	RoleLegacyAdmin = "administrador"
)

// Authority levels. A principal may never create or elevate a role to a level
// above their own current level.
const (
	// LevelDefault is the lowest authority level, assigned to unknown roles
	// and used as the fail-closed fallback on store errors.
	LevelDefault = 10

	// LevelLegacyAdmin is the fallback level for the legacy administrator role.
	LevelLegacyAdmin = 90

	// LevelMaestro is the reserved maximum. Creating or renaming a role to
	// RoleMaestro requires the requester to hold exactly this level.
	LevelMaestro = 100
)

// PermissionAll is the reserved wildcard permission meaning every permission.
const PermissionAll = "all"

// SuspendedAllowList is the fixed set of permissions that survive tenant
// suspension. Effective permissions for a suspended tenant are the
// intersection of the role's granted permissions with this list: suspension
// can only narrow access, never widen it.
func SuspendedAllowList() PermissionSet {
	return NewPermissionSet("view_panel_admin", "view_comprobantes")
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

func TestGate_CheckAssignment(t *testing.T) {
	gate := NewGate()

	t.Run("requester at or above target level succeeds", func(t *testing.T) {
		assert.NoError(t, gate.CheckAssignment(50, "supervisor", 40))
		assert.NoError(t, gate.CheckAssignment(50, "supervisor", 50))
	})

	t.Run("requester below target level is rejected", func(t *testing.T) {
		err := gate.CheckAssignment(50, "gerente", 70)
		require.Error(t, err)

		var authorityErr *authzDomain.InsufficientAuthorityError
		require.ErrorAs(t, err, &authorityErr)
		assert.Equal(t, 50, authorityErr.RequesterLevel)
		assert.Equal(t, 70, authorityErr.RequestedLevel)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Contains(t, err.Error(), "50")
		assert.Contains(t, err.Error(), "70")
	})

	t.Run("maestro name reserved for maximum level", func(t *testing.T) {
		err := gate.CheckAssignment(90, "maestro", 90)
		assert.ErrorIs(t, err, authzDomain.ErrMaestroReserved)

		err = gate.CheckAssignment(90, " Maestro ", 50)
		assert.ErrorIs(t, err, authzDomain.ErrMaestroReserved)

		assert.NoError(t, gate.CheckAssignment(100, "maestro", 100))
	})
}

func TestGate_EffectivePermissions(t *testing.T) {
	gate := NewGate()
	role := &authzDomain.Role{
		Name:        "supervisor",
		Permissions: authzDomain.NewPermissionSet("view_panel_admin", "edit_forms"),
	}

	t.Run("active tenant keeps granted permissions", func(t *testing.T) {
		tenant := &authzDomain.Tenant{Company: "acme", Suspended: false}
		effective := gate.EffectivePermissions(role, tenant)
		assert.True(t, effective.Equal(role.Permissions))
	})

	t.Run("nil tenant keeps granted permissions", func(t *testing.T) {
		effective := gate.EffectivePermissions(role, nil)
		assert.True(t, effective.Equal(role.Permissions))
	})

	t.Run("suspended tenant narrows to the allow-list intersection", func(t *testing.T) {
		tenant := &authzDomain.Tenant{Company: "acme", Suspended: true}
		effective := gate.EffectivePermissions(role, tenant)

		// Only the overlap survives; allow-listed permissions the role never
		// had are not granted.
		assert.Equal(t, []string{"view_panel_admin"}, effective.List())
		assert.False(t, effective.Contains("edit_forms"))
		assert.False(t, effective.Contains("view_comprobantes"))
	})

	t.Run("suspension does not grant through the wildcard", func(t *testing.T) {
		admin := &authzDomain.Role{
			Name:        "administrador",
			Permissions: authzDomain.NewPermissionSet(authzDomain.PermissionAll),
		}
		tenant := &authzDomain.Tenant{Company: "acme", Suspended: true}
		effective := gate.EffectivePermissions(admin, tenant)
		assert.ElementsMatch(
			t,
			[]string{"view_comprobantes", "view_panel_admin"},
			effective.List(),
		)
	})

	t.Run("narrowing is never persisted on the role", func(t *testing.T) {
		tenant := &authzDomain.Tenant{Company: "acme", Suspended: true}
		_ = gate.EffectivePermissions(role, tenant)
		assert.ElementsMatch(t, []string{"edit_forms", "view_panel_admin"}, role.Permissions.List())
	})
}

func TestGate_FilterListing(t *testing.T) {
	gate := NewGate()
	roles := []*authzDomain.Role{
		{Name: "maestro", Permissions: authzDomain.NewPermissionSet(authzDomain.PermissionAll)},
		{Name: "supervisor", Permissions: authzDomain.NewPermissionSet("view_panel_admin", "edit_forms")},
		{Name: "agente", Permissions: authzDomain.NewPermissionSet("edit_forms")},
	}

	t.Run("maestro roles hidden from non-maestro requesters", func(t *testing.T) {
		result := gate.FilterListing(roles, nil, "supervisor")
		require.Len(t, result, 2)
		assert.Equal(t, "supervisor", result[0].Name)
		assert.Equal(t, "agente", result[1].Name)
	})

	t.Run("maestro requester sees everything", func(t *testing.T) {
		result := gate.FilterListing(roles, nil, "MAESTRO")
		require.Len(t, result, 3)
		assert.Equal(t, "maestro", result[0].Name)
	})

	t.Run("suspended tenant narrows listed permissions without mutating input", func(t *testing.T) {
		tenant := &authzDomain.Tenant{Company: "acme", Suspended: true}
		result := gate.FilterListing(roles, tenant, "supervisor")
		require.Len(t, result, 2)

		assert.Equal(t, []string{"view_panel_admin"}, result[0].Permissions.List())
		assert.Empty(t, result[1].Permissions.List())

		// The input roles keep their granted permissions.
		assert.ElementsMatch(t, []string{"edit_forms", "view_panel_admin"}, roles[1].Permissions.List())
		assert.Equal(t, []string{"edit_forms"}, roles[2].Permissions.List())
	})

	t.Run("empty listing", func(t *testing.T) {
		result := gate.FilterListing(nil, nil, "supervisor")
		assert.Empty(t, result)
	})
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
)

// hierarchy implements RoleHierarchy backed by a role store.
type hierarchy struct {
	roleStore RoleStore
	logger    *slog.Logger
}

// NewHierarchy creates a RoleHierarchy backed by the given role store.
func NewHierarchy(roleStore RoleStore, logger *slog.Logger) RoleHierarchy {
	return &hierarchy{roleStore: roleStore, logger: logger}
}

// Level resolves the authority level for a role name within a tenant.
//
// Resolution order:
//  1. The reserved name "maestro" returns LevelMaestro unconditionally. Stored
//     data can never override it, which closes the privilege-tampering path
//     through the role store.
//  2. A stored role with a positive level returns that level.
//  3. The legacy name "administrador" returns LevelLegacyAdmin when no stored
//     role exists.
//  4. Anything else returns LevelDefault.
//
// Store errors are logged and degrade to LevelDefault: resolution fails
// closed and never propagates an error to authorization call sites.
func (h *hierarchy) Level(ctx context.Context, company, roleName string) int {
	name := strings.ToLower(strings.TrimSpace(roleName))

	if name == authzDomain.RoleMaestro {
		return authzDomain.LevelMaestro
	}

	role, err := h.roleStore.GetByName(ctx, company, name)
	if err != nil {
		if !errors.Is(err, authzDomain.ErrRoleNotFound) {
			h.logger.Warn("role level lookup failed, using lowest level",
				slog.String("company", company),
				slog.String("role", name),
				slog.Any("error", err),
			)
			return authzDomain.LevelDefault
		}

		// Legacy fallback for roles that predate stored levels
		if name == authzDomain.RoleLegacyAdmin {
			return authzDomain.LevelLegacyAdmin
		}
		return authzDomain.LevelDefault
	}

	if role.Level > 0 {
		return role.Level
	}

	return authzDomain.LevelDefault
}

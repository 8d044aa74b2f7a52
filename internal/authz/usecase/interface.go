// Package usecase implements role and tenant management: authority-checked
// role creation and updates, suspension-aware listings, and per-request
// authorization checks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
)

// RoleRepository defines persistence operations for roles.
type RoleRepository interface {
	// Create inserts a new role. Returns authzDomain.ErrRoleNameTaken when a
	// role with the same normalized name exists in the tenant.
	Create(ctx context.Context, role *authzDomain.Role) error

	// Update replaces the mutable fields of a role.
	Update(ctx context.Context, role *authzDomain.Role) error

	// GetByID retrieves a role by ID within a tenant.
	GetByID(ctx context.Context, company string, id uuid.UUID) (*authzDomain.Role, error)

	// GetByName retrieves a role by case-insensitive name within a tenant.
	GetByName(ctx context.Context, company, name string) (*authzDomain.Role, error)

	// List retrieves roles for a tenant ordered by level descending.
	List(ctx context.Context, company string, offset, limit int) ([]*authzDomain.Role, error)
}

// TenantRepository defines persistence operations for tenants.
type TenantRepository interface {
	// Create inserts a new tenant.
	Create(ctx context.Context, tenant *authzDomain.Tenant) error

	// GetByCompany retrieves a tenant by its company key.
	// Returns authzDomain.ErrTenantNotFound when no tenant matches.
	GetByCompany(ctx context.Context, company string) (*authzDomain.Tenant, error)

	// SetSuspended flips the suspension flag for a tenant.
	SetSuspended(ctx context.Context, company string, suspended bool) error
}

// CreateRoleInput carries the parameters for creating a role.
type CreateRoleInput struct {
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Permissions []string `json:"permissions"`
	Color       string   `json:"color"`
}

// UpdateRoleInput carries the parameters for updating a role.
type UpdateRoleInput struct {
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Permissions []string `json:"permissions"`
	Color       string   `json:"color"`
}

// RoleUseCase defines the role management operations. Every mutation runs
// through the permission gate against the requester's resolved authority
// level before it touches the store.
type RoleUseCase interface {
	// Create creates a new role on behalf of the requester.
	Create(
		ctx context.Context,
		requester authzDomain.Requester,
		input CreateRoleInput,
	) (*authzDomain.Role, error)

	// Update updates an existing role on behalf of the requester. The ceiling
	// applies to both the role's current level and the requested one.
	Update(
		ctx context.Context,
		requester authzDomain.Requester,
		id uuid.UUID,
		input UpdateRoleInput,
	) (*authzDomain.Role, error)

	// List retrieves the roles visible to the requester, with suspension
	// narrowing and maestro visibility applied.
	List(
		ctx context.Context,
		requester authzDomain.Requester,
		offset, limit int,
	) ([]*authzDomain.Role, error)

	// Authorize reports whether the requester's effective permissions include
	// the given permission. Returns ErrForbidden when they do not.
	Authorize(ctx context.Context, requester authzDomain.Requester, permission string) error
}

// TenantUseCase defines the tenant lifecycle operations.
type TenantUseCase interface {
	// Create registers a new tenant namespace.
	Create(ctx context.Context, company string) (*authzDomain.Tenant, error)

	// GetByCompany retrieves a tenant by its company key.
	GetByCompany(ctx context.Context, company string) (*authzDomain.Tenant, error)

	// Suspend marks the tenant as suspended. Effective permissions narrow to
	// the allow-list on the next request; nothing is rewritten in the store.
	Suspend(ctx context.Context, requester authzDomain.Requester, company string) error

	// Reinstate clears the suspension flag, restoring full permissions
	// immediately.
	Reinstate(ctx context.Context, requester authzDomain.Requester, company string) error
}

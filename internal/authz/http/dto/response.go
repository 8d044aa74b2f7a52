package dto

import (
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
)

// RoleResponse is the API view of a role.
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Company     string    `json:"company"`
	Name        string    `json:"name"`
	Level       int       `json:"level"`
	Permissions []string  `json:"permissions"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewRoleResponse builds a RoleResponse from a domain role.
func NewRoleResponse(role *authzDomain.Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID,
		Company:     role.Company,
		Name:        role.Name,
		Level:       role.Level,
		Permissions: role.Permissions.List(),
		Color:       role.Color,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

// ListRolesResponse wraps a page of roles.
type ListRolesResponse struct {
	Roles  []RoleResponse `json:"roles"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// MapRolesToListResponse converts domain roles to the list response.
func MapRolesToListResponse(roles []*authzDomain.Role, offset, limit int) ListRolesResponse {
	mapped := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		mapped = append(mapped, NewRoleResponse(role))
	}

	return ListRolesResponse{
		Roles:  mapped,
		Offset: offset,
		Limit:  limit,
	}
}

// TenantResponse is the API view of a tenant.
type TenantResponse struct {
	ID        uuid.UUID `json:"id"`
	Company   string    `json:"company"`
	Suspended bool      `json:"suspended"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTenantResponse builds a TenantResponse from a domain tenant.
func NewTenantResponse(tenant *authzDomain.Tenant) TenantResponse {
	return TenantResponse{
		ID:        tenant.ID,
		Company:   tenant.Company,
		Suspended: tenant.Suspended,
		CreatedAt: tenant.CreatedAt,
		UpdatedAt: tenant.UpdatedAt,
	}
}

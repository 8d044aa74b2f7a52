// Package dto provides data transfer objects for authorization HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/trustcore/internal/validation"
)

// CreateRoleRequest contains the parameters for creating a role.
type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Permissions []string `json:"permissions"`
	Color       string   `json:"color"`
}

// Validate checks if the create role request is valid.
func (r *CreateRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.Level,
			validation.Required,
			customValidation.RoleLevel{},
		),
		validation.Field(&r.Permissions,
			validation.Each(customValidation.PermissionIdentifier{}),
		),
	)
}

// UpdateRoleRequest contains the parameters for updating a role.
type UpdateRoleRequest struct {
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Permissions []string `json:"permissions"`
	Color       string   `json:"color"`
}

// Validate checks if the update role request is valid.
func (r *UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.Level,
			validation.Required,
			customValidation.RoleLevel{},
		),
		validation.Field(&r.Permissions,
			validation.Each(customValidation.PermissionIdentifier{}),
		),
	)
}

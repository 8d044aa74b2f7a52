// Package dto provides data transfer objects for identity HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/trustcore/internal/validation"
)

// RegisterPrincipalRequest contains the parameters for registering a principal.
type RegisterPrincipalRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Cargo    string `json:"cargo"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Validate checks if the register request is valid.
func (r *RegisterPrincipalRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Surname,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email{},
		),
		validation.Field(&r.Role,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 128),
		),
	)
}

// UpdateEmailRequest contains the parameters for changing a principal's email.
type UpdateEmailRequest struct {
	Email string `json:"email"`
}

// Validate checks if the update email request is valid.
func (r *UpdateEmailRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email{},
		),
	)
}

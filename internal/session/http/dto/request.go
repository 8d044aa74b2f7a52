// Package dto provides data transfer objects for session HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/trustcore/internal/validation"
)

// LoginRequest contains the credentials for opening a session.
type LoginRequest struct {
	Company  string `json:"company"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Company,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email{},
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/trustcore/internal/errors"
)

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// permissionRegex matches flat permission identifiers like "view_reports"
	permissionRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string contains non-whitespace content.
var NotBlank = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_not_blank", "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "cannot be blank")
	}
	return nil
})

// Email validates that the value is a well-formed email address.
// Normalization (trim, lowercase) happens before blind index derivation,
// so the rule tolerates surrounding whitespace and mixed case.
type Email struct{}

// Validate checks if the value is a valid email address.
func (e Email) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_email", "email must be a string")
	}

	if !emailRegex.MatchString(strings.ToLower(strings.TrimSpace(s))) {
		return validation.NewError("validation_email", "must be a valid email address")
	}

	return nil
}

// RoleLevel validates that a role authority level is within the accepted range.
// Convention: 10 (default/custom) up to 100 (reserved superuser tier).
type RoleLevel struct{}

// Validate checks if the value is an integer between 1 and 100.
func (r RoleLevel) Validate(value interface{}) error {
	level, ok := value.(int)
	if !ok {
		return validation.NewError("validation_role_level", "role level must be an integer")
	}

	if level < 1 || level > 100 {
		return validation.NewError("validation_role_level", "role level must be between 1 and 100")
	}

	return nil
}

// PermissionIdentifier validates flat permission identifiers (e.g. "view_reports").
// The reserved wildcard "all" is accepted.
type PermissionIdentifier struct{}

// Validate checks if the value is a well-formed permission identifier.
func (p PermissionIdentifier) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_permission", "permission must be a string")
	}

	if !permissionRegex.MatchString(s) {
		return validation.NewError(
			"validation_permission",
			"permission must be lowercase letters, digits and underscores",
		)
	}

	return nil
}

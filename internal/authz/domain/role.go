package domain

import (
	"time"

	validation "github.com/jellydator/validation"
	"github.com/google/uuid"

	apprules "github.com/allisson/trustcore/internal/validation"
)

// Role is a named authority tier within a tenant: a numeric level used for
// assignment ceilings, an explicit permission set, and a display color for
// the admin panel.
type Role struct {
	ID          uuid.UUID
	Company     string
	Name        string
	Level       int
	Permissions PermissionSet
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the role fields against the domain rules.
func (r *Role) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Company, validation.Required),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Level, apprules.RoleLevel{}),
	)
	if err != nil {
		return apprules.WrapValidationError(err)
	}

	for _, permission := range r.Permissions.List() {
		if err := (apprules.PermissionIdentifier{}).Validate(permission); err != nil {
			return apprules.WrapValidationError(err)
		}
	}

	return nil
}

// Requester identifies the acting principal for authorization decisions.
// Carries only what the gate and hierarchy need: the role name resolves to an
// authority level, and the company scopes the lookup to the tenant.
type Requester struct {
	PrincipalID uuid.UUID
	Role        string
	Company     string
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is an isolated company namespace. Suspension is a reversible flag:
// effective permissions are narrowed per request while it is set, so
// un-suspending restores full access immediately without a migration step.
type Tenant struct {
	ID        uuid.UUID
	Company   string
	Suspended bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Package usecase implements the identity business logic: principal
// registration with field encryption and blind indexing, email lookup, and
// the actor snapshot resolution used by the audit trail.
package usecase

import (
	"context"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/trustcore/internal/identity/domain"
)

// PrincipalRepository defines persistence operations for principals.
// PII columns hold ciphertext; the repository never sees plaintext.
type PrincipalRepository interface {
	// Create inserts a new principal. Returns identityDomain.ErrEmailTaken when
	// the mail_index unique constraint is violated.
	Create(ctx context.Context, principal *identityDomain.Principal) error

	// GetByID retrieves a principal by ID within a tenant.
	GetByID(ctx context.Context, company string, id uuid.UUID) (*identityDomain.Principal, error)

	// GetByMailIndex retrieves a principal by its blind index within a tenant.
	GetByMailIndex(ctx context.Context, company, mailIndex string) (*identityDomain.Principal, error)

	// UpdateEmail replaces the email ciphertext and blind index in a single
	// statement so they can never diverge. Returns identityDomain.ErrEmailTaken
	// on a mail_index collision.
	UpdateEmail(ctx context.Context, id uuid.UUID, encryptedEmail, mailIndex string) error

	// UpdateStatus sets the principal status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// List retrieves principals for a tenant ordered by creation with pagination.
	List(ctx context.Context, company string, offset, limit int) ([]*identityDomain.Principal, error)
}

// RegisterInput contains the input data for principal registration.
type RegisterInput struct {
	Company  string `json:"company"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Cargo    string `json:"cargo"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// PrincipalUseCase defines the identity operations.
type PrincipalUseCase interface {
	// Register creates a principal with PII encrypted and the mail blind index
	// computed, and records the creation in the audit trail within the same
	// transaction. The acting principal may be uuid.Nil for self-registration.
	Register(ctx context.Context, actorID uuid.UUID, input RegisterInput) (*identityDomain.Principal, error)

	// GetByEmail retrieves a principal by email via the blind index, with PII
	// fields decrypted.
	GetByEmail(ctx context.Context, company, email string) (*identityDomain.Principal, error)

	// GetByID retrieves a principal by ID with PII fields decrypted.
	GetByID(ctx context.Context, company string, id uuid.UUID) (*identityDomain.Principal, error)

	// UpdateEmail changes a principal's email, recomputing ciphertext and blind
	// index together, and audits the change in the same transaction.
	UpdateEmail(ctx context.Context, actorID uuid.UUID, company string, id uuid.UUID, newEmail string) error

	// Deactivate marks a principal inactive and audits the change.
	Deactivate(ctx context.Context, actorID uuid.UUID, company string, id uuid.UUID) error

	// List retrieves principals for a tenant with PII fields decrypted.
	List(ctx context.Context, company string, offset, limit int) ([]*identityDomain.Principal, error)
}

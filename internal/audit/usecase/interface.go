// Package usecase implements the audit trail orchestration: resolving actor
// snapshots, encrypting sensitive content, and persisting append-only events.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/trustcore/internal/audit/domain"
)

// AuditEventRepository defines persistence operations for audit events.
// Create must only return nil after the store reported a generated identifier
// for the new record.
type AuditEventRepository interface {
	// Create inserts an append-only audit event.
	Create(ctx context.Context, event *auditDomain.AuditEvent) error

	// List retrieves events for a tenant ordered by created_at descending with
	// pagination and optional inclusive time filters (nil means no bound).
	List(
		ctx context.Context,
		company string,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*auditDomain.AuditEvent, error)

	// DeleteOlderThan removes events created before the cutoff and returns the
	// number of rows removed. Used by the retention command only.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ActorResolver resolves the acting principal into a display snapshot with
// PII fields already decrypted. Satisfied by the identity module.
type ActorResolver interface {
	Resolve(ctx context.Context, company string, principalID uuid.UUID) (*auditDomain.ActorSnapshot, error)
}

// RegisterInput carries everything needed to record one audit event.
type RegisterInput struct {
	Company     string
	ActorID     uuid.UUID
	Event       auditDomain.EventCode
	Target      auditDomain.Target
	Description string
	// Sensitive marks the description as containing free-form sensitive
	// content that must be encrypted at rest.
	Sensitive bool
	Metadata  map[string]any
}

// AuditUseCase defines the audit trail operations.
type AuditUseCase interface {
	// Register records an audit event. A persistence failure is returned as
	// ErrAuditWriteFailed, never swallowed.
	Register(ctx context.Context, input RegisterInput) (*auditDomain.AuditEvent, error)

	// List retrieves events for a tenant. When reveal is set, encrypted
	// descriptions and metadata are decrypted before returning.
	List(
		ctx context.Context,
		company string,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
		reveal bool,
	) ([]*auditDomain.AuditEvent, error)

	// CleanUp removes events older than the retention period and returns the
	// number of events removed.
	CleanUp(ctx context.Context, retention time.Duration) (int64, error)
}

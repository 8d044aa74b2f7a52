package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActorSnapshot captures the acting principal's display fields at write time.
// The snapshot is denormalized on purpose: the event must remain readable even
// after the principal is renamed or deleted.
type ActorSnapshot struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Role    string `json:"role"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Status  string `json:"status"`
}

// Target describes what an audit event acted on. The ID is optional: some
// events (e.g. session start) have no specific target record.
type Target struct {
	Type TargetType `json:"type"`
	ID   string     `json:"id,omitempty"`
}

// AuditEvent is an append-only record of who did what. Once written it is
// never mutated or deleted by normal application flow.
//
// Description and Metadata may hold ciphertext: when Sensitive is set the
// description is encrypted at rest, and non-empty metadata is always
// encrypted field by field.
type AuditEvent struct {
	ID          uuid.UUID
	Company     string
	ActorID     uuid.UUID
	Actor       ActorSnapshot
	Event       EventCode
	Target      Target
	Description string
	Sensitive   bool
	Metadata    map[string]any
	CreatedAt   time.Time
}

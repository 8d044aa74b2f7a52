package domain

import (
	"github.com/allisson/trustcore/internal/errors"
)

// Audit errors.
var (
	// ErrAuditWriteFailed indicates the audit record was not durably persisted.
	// Always propagated: the trail is only trustworthy if a failed write is
	// visible to the caller, who decides whether to abort the operation.
	ErrAuditWriteFailed = errors.New("audit event write failed")

	// ErrUnknownEventCode indicates an event code outside the known taxonomy.
	ErrUnknownEventCode = errors.Wrap(errors.ErrInvalidInput, "unknown audit event code")

	// ErrUnknownTargetType indicates a target type outside the known taxonomy.
	ErrUnknownTargetType = errors.Wrap(errors.ErrInvalidInput, "unknown audit target type")
)

// Package dto provides data transfer objects for audit HTTP handling.
package dto

import (
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/trustcore/internal/audit/domain"
)

// AuditEventResponse is the API view of a single audit event.
type AuditEventResponse struct {
	ID          uuid.UUID                 `json:"id"`
	Company     string                    `json:"company"`
	ActorID     uuid.UUID                 `json:"actor_id"`
	Actor       auditDomain.ActorSnapshot `json:"actor"`
	Event       string                    `json:"event"`
	TargetType  string                    `json:"target_type"`
	TargetID    string                    `json:"target_id"`
	Description string                    `json:"description"`
	Sensitive   bool                      `json:"sensitive"`
	Metadata    map[string]any            `json:"metadata,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
}

// ListAuditEventsResponse wraps a page of audit events.
type ListAuditEventsResponse struct {
	Events []AuditEventResponse `json:"events"`
	Offset int                  `json:"offset"`
	Limit  int                  `json:"limit"`
}

// MapAuditEventsToListResponse converts domain events to the list response.
func MapAuditEventsToListResponse(
	events []*auditDomain.AuditEvent,
	offset, limit int,
) ListAuditEventsResponse {
	mapped := make([]AuditEventResponse, 0, len(events))
	for _, event := range events {
		mapped = append(mapped, AuditEventResponse{
			ID:          event.ID,
			Company:     event.Company,
			ActorID:     event.ActorID,
			Actor:       event.Actor,
			Event:       string(event.Event),
			TargetType:  string(event.Target.Type),
			TargetID:    event.Target.ID,
			Description: event.Description,
			Sensitive:   event.Sensitive,
			Metadata:    event.Metadata,
			CreatedAt:   event.CreatedAt,
		})
	}

	return ListAuditEventsResponse{
		Events: mapped,
		Offset: offset,
		Limit:  limit,
	}
}

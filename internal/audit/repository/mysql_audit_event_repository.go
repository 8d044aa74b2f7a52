package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	auditDomain "github.com/allisson/trustcore/internal/audit/domain"
	"github.com/allisson/trustcore/internal/database"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

// MySQLAuditEventRepository implements AuditEvent persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLAuditEventRepository struct {
	db *sql.DB
}

// Create inserts a new audit event. MySQL has no RETURNING clause, so the
// write is confirmed through RowsAffected: zero affected rows means the event
// was not recorded and the call fails.
func (m *MySQLAuditEventRepository) Create(
	ctx context.Context,
	event *auditDomain.AuditEvent,
) error {
	querier := database.GetTx(ctx, m.db)

	actorJSON, err := json.Marshal(event.Actor)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit event actor")
	}

	var metadataJSON []byte
	if event.Metadata != nil {
		metadataJSON, err = json.Marshal(event.Metadata)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit event metadata")
		}
	}

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit event id")
	}

	actorID, err := event.ActorID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit event actor_id")
	}

	query := `INSERT INTO audit_events (id, company, actor_id, actor, event, target_type, target_id, description, sensitive, metadata, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		id,
		event.Company,
		actorID,
		actorJSON,
		string(event.Event),
		string(event.Target.Type),
		event.Target.ID,
		event.Description,
		event.Sensitive,
		metadataJSON,
		event.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit event")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to confirm audit event write")
	}
	if affected != 1 {
		return apperrors.New("audit event write affected no rows")
	}

	return nil
}

// List retrieves audit events for a tenant ordered by created_at descending
// (newest first) with pagination and optional inclusive time filters (nil
// means no bound). Returns empty slice if no events found.
func (m *MySQLAuditEventRepository) List(
	ctx context.Context,
	company string,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.AuditEvent, error) {
	querier := database.GetTx(ctx, m.db)

	conditions := []string{"company = ?"}
	args := []any{company}

	if createdAtFrom != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *createdAtFrom)
	}

	if createdAtTo != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *createdAtTo)
	}

	query := `SELECT id, company, actor_id, actor, event, target_type, target_id, description, sensitive, metadata, created_at
			  FROM audit_events
			  WHERE ` + strings.Join(conditions, " AND ") +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"

	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	defer func() {
		_ = rows.Close()
	}()

	events := make([]*auditDomain.AuditEvent, 0)
	for rows.Next() {
		var event auditDomain.AuditEvent
		var idBinary, actorIDBinary []byte
		var actorJSON, metadataJSON []byte
		var eventCode, targetType string

		err := rows.Scan(
			&idBinary,
			&event.Company,
			&actorIDBinary,
			&actorJSON,
			&eventCode,
			&targetType,
			&event.Target.ID,
			&event.Description,
			&event.Sensitive,
			&metadataJSON,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit event")
		}

		if err := event.ID.UnmarshalBinary(idBinary); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit event id")
		}

		if err := event.ActorID.UnmarshalBinary(actorIDBinary); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit event actor_id")
		}

		event.Event = auditDomain.EventCode(eventCode)
		event.Target.Type = auditDomain.TargetType(targetType)

		if err := json.Unmarshal(actorJSON, &event.Actor); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit event actor")
		}

		if metadataJSON != nil {
			if err := json.Unmarshal(metadataJSON, &event.Metadata); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal audit event metadata")
			}
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit events")
	}

	return events, nil
}

// DeleteOlderThan removes audit events created before the cutoff and returns
// the number of rows removed. Retention command use only.
func (m *MySQLAuditEventRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM audit_events WHERE created_at < ?`

	result, err := querier.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit events")
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted audit events")
	}

	return removed, nil
}

// NewMySQLAuditEventRepository creates a new MySQL AuditEvent repository.
func NewMySQLAuditEventRepository(db *sql.DB) *MySQLAuditEventRepository {
	return &MySQLAuditEventRepository{db: db}
}

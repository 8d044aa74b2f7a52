// Package repository implements audit event persistence for PostgreSQL and
// MySQL. Audit events are append-only: the only delete path is the retention
// command.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/trustcore/internal/audit/domain"
	"github.com/allisson/trustcore/internal/database"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

// PostgreSQLAuditEventRepository implements AuditEvent persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLAuditEventRepository struct {
	db *sql.DB
}

// Create inserts a new audit event. The insert uses RETURNING so the database
// confirms the generated row: a write that does not report an identifier fails
// instead of passing silently.
func (p *PostgreSQLAuditEventRepository) Create(
	ctx context.Context,
	event *auditDomain.AuditEvent,
) error {
	querier := database.GetTx(ctx, p.db)

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

	query := `INSERT INTO audit_events (id, company, actor_id, actor, event, target_type, target_id, description, sensitive, metadata, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id`

	var insertedID uuid.UUID
	err = querier.QueryRowContext(
		ctx,
		query,
		event.ID,
		event.Company,
		event.ActorID,
		actorJSON,
		string(event.Event),
		string(event.Target.Type),
		event.Target.ID,
		event.Description,
		event.Sensitive,
		metadataJSON,
		event.CreatedAt,
	).Scan(&insertedID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit event")
	}

	return nil
}

// List retrieves audit events for a tenant ordered by created_at descending
// (newest first) with pagination and optional inclusive time filters (nil
// means no bound). Returns empty slice if no events found.
func (p *PostgreSQLAuditEventRepository) List(
	ctx context.Context,
	company string,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*auditDomain.AuditEvent, error) {
	querier := database.GetTx(ctx, p.db)

	conditions := []string{"company = $1"}
	args := []any{company}

	if createdAtFrom != nil {
		args = append(args, *createdAtFrom)
		conditions = append(conditions, "created_at >= $"+strconv.Itoa(len(args)))
	}

	if createdAtTo != nil {
		args = append(args, *createdAtTo)
		conditions = append(conditions, "created_at <= $"+strconv.Itoa(len(args)))
	}

	query := `SELECT id, company, actor_id, actor, event, target_type, target_id, description, sensitive, metadata, created_at
			  FROM audit_events
			  WHERE ` + strings.Join(conditions, " AND ")

	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

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
		var actorJSON, metadataJSON []byte
		var eventCode, targetType string

		err := rows.Scan(
			&event.ID,
			&event.Company,
			&event.ActorID,
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
func (p *PostgreSQLAuditEventRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM audit_events WHERE created_at < $1`

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

// NewPostgreSQLAuditEventRepository creates a new PostgreSQL AuditEvent repository.
func NewPostgreSQLAuditEventRepository(db *sql.DB) *PostgreSQLAuditEventRepository {
	return &PostgreSQLAuditEventRepository{db: db}
}

// Package repository implements principal persistence for PostgreSQL and
// MySQL. PII columns hold ciphertext produced by the field cipher; the
// mail_index column carries a unique constraint so duplicate registrations
// fail at the store instead of racing a check-then-insert.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/trustcore/internal/database"
	apperrors "github.com/allisson/trustcore/internal/errors"
	identityDomain "github.com/allisson/trustcore/internal/identity/domain"
)

// PostgreSQLPrincipalRepository implements Principal persistence for PostgreSQL.
type PostgreSQLPrincipalRepository struct {
	db *sql.DB
}

const principalColumns = `id, company, name, surname, email, cargo, mail_index, role, status, password_hash, created_at, updated_at`

// Create inserts a new principal.
func (p *PostgreSQLPrincipalRepository) Create(
	ctx context.Context,
	principal *identityDomain.Principal,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO principals (` + principalColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		principal.ID,
		principal.Company,
		principal.Name,
		principal.Surname,
		principal.Email,
		principal.Cargo,
		principal.MailIndex,
		principal.Role,
		principal.Status,
		principal.PasswordHash,
		principal.CreatedAt,
		principal.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return identityDomain.ErrEmailTaken
		}
		return apperrors.Wrap(err, "failed to create principal")
	}

	return nil
}

// GetByID retrieves a principal by ID within a tenant.
func (p *PostgreSQLPrincipalRepository) GetByID(
	ctx context.Context,
	company string,
	id uuid.UUID,
) (*identityDomain.Principal, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + principalColumns + ` FROM principals WHERE company = $1 AND id = $2`

	return scanPrincipal(querier.QueryRowContext(ctx, query, company, id))
}

// GetByMailIndex retrieves a principal by its blind index within a tenant.
// This is the only email lookup path: the email ciphertext is never compared.
func (p *PostgreSQLPrincipalRepository) GetByMailIndex(
	ctx context.Context,
	company, mailIndex string,
) (*identityDomain.Principal, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + principalColumns + ` FROM principals WHERE company = $1 AND mail_index = $2`

	return scanPrincipal(querier.QueryRowContext(ctx, query, company, mailIndex))
}

// UpdateEmail replaces the email ciphertext and blind index in one statement.
func (p *PostgreSQLPrincipalRepository) UpdateEmail(
	ctx context.Context,
	id uuid.UUID,
	encryptedEmail, mailIndex string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE principals SET email = $1, mail_index = $2, updated_at = NOW() WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, encryptedEmail, mailIndex, id)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return identityDomain.ErrEmailTaken
		}
		return apperrors.Wrap(err, "failed to update principal email")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to confirm principal email update")
	}
	if affected == 0 {
		return identityDomain.ErrPrincipalNotFound
	}

	return nil
}

// UpdateStatus sets the principal status.
func (p *PostgreSQLPrincipalRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE principals SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, status, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update principal status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to confirm principal status update")
	}
	if affected == 0 {
		return identityDomain.ErrPrincipalNotFound
	}

	return nil
}

// List retrieves principals for a tenant ordered by creation with pagination.
func (p *PostgreSQLPrincipalRepository) List(
	ctx context.Context,
	company string,
	offset, limit int,
) ([]*identityDomain.Principal, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + principalColumns + ` FROM principals
			  WHERE company = $1
			  ORDER BY created_at ASC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, company, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list principals")
	}
	defer func() {
		_ = rows.Close()
	}()

	principals := make([]*identityDomain.Principal, 0)
	for rows.Next() {
		var principal identityDomain.Principal
		err := rows.Scan(
			&principal.ID,
			&principal.Company,
			&principal.Name,
			&principal.Surname,
			&principal.Email,
			&principal.Cargo,
			&principal.MailIndex,
			&principal.Role,
			&principal.Status,
			&principal.PasswordHash,
			&principal.CreatedAt,
			&principal.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan principal")
		}
		principals = append(principals, &principal)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate principals")
	}

	return principals, nil
}

// scanPrincipal scans a single principal row.
func scanPrincipal(row *sql.Row) (*identityDomain.Principal, error) {
	var principal identityDomain.Principal
	err := row.Scan(
		&principal.ID,
		&principal.Company,
		&principal.Name,
		&principal.Surname,
		&principal.Email,
		&principal.Cargo,
		&principal.MailIndex,
		&principal.Role,
		&principal.Status,
		&principal.PasswordHash,
		&principal.CreatedAt,
		&principal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrPrincipalNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get principal")
	}
	return &principal, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// NewPostgreSQLPrincipalRepository creates a new PostgreSQL Principal repository.
func NewPostgreSQLPrincipalRepository(db *sql.DB) *PostgreSQLPrincipalRepository {
	return &PostgreSQLPrincipalRepository{db: db}
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/trustcore/internal/database"
	apperrors "github.com/allisson/trustcore/internal/errors"
	identityDomain "github.com/allisson/trustcore/internal/identity/domain"
)

// MySQLPrincipalRepository implements Principal persistence for MySQL.
// Uses BINARY(16) for UUID storage.
type MySQLPrincipalRepository struct {
	db *sql.DB
}

// Create inserts a new principal.
func (m *MySQLPrincipalRepository) Create(
	ctx context.Context,
	principal *identityDomain.Principal,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := principal.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal principal id")
	}

	query := `INSERT INTO principals (` + principalColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
		if isMySQLDuplicateEntry(err) {
			return identityDomain.ErrEmailTaken
		}
		return apperrors.Wrap(err, "failed to create principal")
	}

	return nil
}

// GetByID retrieves a principal by ID within a tenant.
func (m *MySQLPrincipalRepository) GetByID(
	ctx context.Context,
	company string,
	id uuid.UUID,
) (*identityDomain.Principal, error) {
	querier := database.GetTx(ctx, m.db)

	idBinary, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal principal id")
	}

	query := `SELECT ` + principalColumns + ` FROM principals WHERE company = ? AND id = ?`

	return scanMySQLPrincipal(querier.QueryRowContext(ctx, query, company, idBinary))
}

// GetByMailIndex retrieves a principal by its blind index within a tenant.
func (m *MySQLPrincipalRepository) GetByMailIndex(
	ctx context.Context,
	company, mailIndex string,
) (*identityDomain.Principal, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + principalColumns + ` FROM principals WHERE company = ? AND mail_index = ?`

	return scanMySQLPrincipal(querier.QueryRowContext(ctx, query, company, mailIndex))
}

// UpdateEmail replaces the email ciphertext and blind index in one statement.
func (m *MySQLPrincipalRepository) UpdateEmail(
	ctx context.Context,
	id uuid.UUID,
	encryptedEmail, mailIndex string,
) error {
	querier := database.GetTx(ctx, m.db)

	idBinary, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal principal id")
	}

	query := `UPDATE principals SET email = ?, mail_index = ?, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, encryptedEmail, mailIndex, idBinary)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
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
func (m *MySQLPrincipalRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status string,
) error {
	querier := database.GetTx(ctx, m.db)

	idBinary, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal principal id")
	}

	query := `UPDATE principals SET status = ?, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, status, idBinary)
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
func (m *MySQLPrincipalRepository) List(
	ctx context.Context,
	company string,
	offset, limit int,
) ([]*identityDomain.Principal, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + principalColumns + ` FROM principals
			  WHERE company = ?
			  ORDER BY created_at ASC
			  LIMIT ? OFFSET ?`

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
		var idBinary []byte

		err := rows.Scan(
			&idBinary,
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

		if err := principal.ID.UnmarshalBinary(idBinary); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal principal id")
		}

		principals = append(principals, &principal)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate principals")
	}

	return principals, nil
}

// scanMySQLPrincipal scans a single principal row with a BINARY(16) id.
func scanMySQLPrincipal(row *sql.Row) (*identityDomain.Principal, error) {
	var principal identityDomain.Principal
	var idBinary []byte

	err := row.Scan(
		&idBinary,
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

	if err := principal.ID.UnmarshalBinary(idBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal principal id")
	}

	return &principal, nil
}

// isMySQLDuplicateEntry checks for a MySQL duplicate entry error (number 1062).
func isMySQLDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// NewMySQLPrincipalRepository creates a new MySQL Principal repository.
func NewMySQLPrincipalRepository(db *sql.DB) *MySQLPrincipalRepository {
	return &MySQLPrincipalRepository{db: db}
}

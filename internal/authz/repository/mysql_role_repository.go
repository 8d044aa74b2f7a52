package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
	"github.com/allisson/trustcore/internal/database"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

// MySQLRoleRepository implements Role persistence for MySQL.
// Uses BINARY(16) for UUID storage.
type MySQLRoleRepository struct {
	db *sql.DB
}

// Create inserts a new role.
func (m *MySQLRoleRepository) Create(ctx context.Context, role *authzDomain.Role) error {
	querier := database.GetTx(ctx, m.db)

	id, err := role.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role id")
	}

	permissions, err := json.Marshal(role.Permissions)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role permissions")
	}

	query := `INSERT INTO roles (` + roleColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		role.Company,
		role.Name,
		role.Level,
		permissions,
		role.Color,
		role.CreatedAt,
		role.UpdatedAt,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return authzDomain.ErrRoleNameTaken
		}
		return apperrors.Wrap(err, "failed to create role")
	}

	return nil
}

// Update replaces the mutable fields of a role.
func (m *MySQLRoleRepository) Update(ctx context.Context, role *authzDomain.Role) error {
	querier := database.GetTx(ctx, m.db)

	idBinary, err := role.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role id")
	}

	permissions, err := json.Marshal(role.Permissions)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role permissions")
	}

	query := `UPDATE roles SET name = ?, level = ?, permissions = ?, color = ?, updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, role.Name, role.Level, permissions, role.Color, idBinary)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return authzDomain.ErrRoleNameTaken
		}
		return apperrors.Wrap(err, "failed to update role")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to confirm role update")
	}
	if affected == 0 {
		return authzDomain.ErrRoleNotFound
	}

	return nil
}

// GetByID retrieves a role by ID within a tenant.
func (m *MySQLRoleRepository) GetByID(
	ctx context.Context,
	company string,
	id uuid.UUID,
) (*authzDomain.Role, error) {
	querier := database.GetTx(ctx, m.db)

	idBinary, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal role id")
	}

	query := `SELECT ` + roleColumns + ` FROM roles WHERE company = ? AND id = ?`

	return scanMySQLRole(querier.QueryRowContext(ctx, query, company, idBinary))
}

// GetByName retrieves a role by case-insensitive name within a tenant.
func (m *MySQLRoleRepository) GetByName(
	ctx context.Context,
	company, name string,
) (*authzDomain.Role, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + roleColumns + ` FROM roles WHERE company = ? AND LOWER(name) = LOWER(?)`

	return scanMySQLRole(querier.QueryRowContext(ctx, query, company, strings.TrimSpace(name)))
}

// List retrieves roles for a tenant ordered by level descending.
func (m *MySQLRoleRepository) List(
	ctx context.Context,
	company string,
	offset, limit int,
) ([]*authzDomain.Role, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + roleColumns + ` FROM roles
			  WHERE company = ?
			  ORDER BY level DESC, name ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, company, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer func() {
		_ = rows.Close()
	}()

	roles := make([]*authzDomain.Role, 0)
	for rows.Next() {
		var role authzDomain.Role
		var idBinary, permissions []byte

		err := rows.Scan(
			&idBinary,
			&role.Company,
			&role.Name,
			&role.Level,
			&permissions,
			&role.Color,
			&role.CreatedAt,
			&role.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}

		if err := role.ID.UnmarshalBinary(idBinary); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal role id")
		}
		if err := json.Unmarshal(permissions, &role.Permissions); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal role permissions")
		}

		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}

	return roles, nil
}

// scanMySQLRole scans a single role row with a BINARY(16) id.
func scanMySQLRole(row *sql.Row) (*authzDomain.Role, error) {
	var role authzDomain.Role
	var idBinary, permissions []byte

	err := row.Scan(
		&idBinary,
		&role.Company,
		&role.Name,
		&role.Level,
		&permissions,
		&role.Color,
		&role.CreatedAt,
		&role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authzDomain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role")
	}

	if err := role.ID.UnmarshalBinary(idBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal role id")
	}
	if err := json.Unmarshal(permissions, &role.Permissions); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal role permissions")
	}

	return &role, nil
}

// isMySQLDuplicateEntry checks for a MySQL duplicate entry error (number 1062).
func isMySQLDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// NewMySQLRoleRepository creates a new MySQL Role repository.
func NewMySQLRoleRepository(db *sql.DB) *MySQLRoleRepository {
	return &MySQLRoleRepository{db: db}
}

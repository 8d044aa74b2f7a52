// Package repository implements role and tenant persistence for PostgreSQL
// and MySQL. Permission sets are stored as JSON arrays; role names carry a
// case-insensitive unique constraint per tenant.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
	"github.com/allisson/trustcore/internal/database"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

// PostgreSQLRoleRepository implements Role persistence for PostgreSQL.
type PostgreSQLRoleRepository struct {
	db *sql.DB
}

const roleColumns = `id, company, name, level, permissions, color, created_at, updated_at`

// Create inserts a new role.
func (p *PostgreSQLRoleRepository) Create(ctx context.Context, role *authzDomain.Role) error {
	querier := database.GetTx(ctx, p.db)

	permissions, err := json.Marshal(role.Permissions)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role permissions")
	}

	query := `INSERT INTO roles (` + roleColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = querier.ExecContext(
		ctx,
		query,
		role.ID,
		role.Company,
		role.Name,
		role.Level,
		permissions,
		role.Color,
		role.CreatedAt,
		role.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return authzDomain.ErrRoleNameTaken
		}
		return apperrors.Wrap(err, "failed to create role")
	}

	return nil
}

// Update replaces the mutable fields of a role.
func (p *PostgreSQLRoleRepository) Update(ctx context.Context, role *authzDomain.Role) error {
	querier := database.GetTx(ctx, p.db)

	permissions, err := json.Marshal(role.Permissions)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role permissions")
	}

	query := `UPDATE roles SET name = $1, level = $2, permissions = $3, color = $4, updated_at = NOW()
			  WHERE id = $5`

	result, err := querier.ExecContext(ctx, query, role.Name, role.Level, permissions, role.Color, role.ID)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
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
func (p *PostgreSQLRoleRepository) GetByID(
	ctx context.Context,
	company string,
	id uuid.UUID,
) (*authzDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + roleColumns + ` FROM roles WHERE company = $1 AND id = $2`

	return scanRole(querier.QueryRowContext(ctx, query, company, id))
}

// GetByName retrieves a role by case-insensitive name within a tenant.
func (p *PostgreSQLRoleRepository) GetByName(
	ctx context.Context,
	company, name string,
) (*authzDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + roleColumns + ` FROM roles WHERE company = $1 AND LOWER(name) = LOWER($2)`

	return scanRole(querier.QueryRowContext(ctx, query, company, strings.TrimSpace(name)))
}

// List retrieves roles for a tenant ordered by level descending.
func (p *PostgreSQLRoleRepository) List(
	ctx context.Context,
	company string,
	offset, limit int,
) ([]*authzDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + roleColumns + ` FROM roles
			  WHERE company = $1
			  ORDER BY level DESC, name ASC
			  LIMIT $2 OFFSET $3`

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
		var permissions []byte

		err := rows.Scan(
			&role.ID,
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

// scanRole scans a single role row.
func scanRole(row *sql.Row) (*authzDomain.Role, error) {
	var role authzDomain.Role
	var permissions []byte

	err := row.Scan(
		&role.ID,
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

	if err := json.Unmarshal(permissions, &role.Permissions); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal role permissions")
	}

	return &role, nil
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

// NewPostgreSQLRoleRepository creates a new PostgreSQL Role repository.
func NewPostgreSQLRoleRepository(db *sql.DB) *PostgreSQLRoleRepository {
	return &PostgreSQLRoleRepository{db: db}
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
	"github.com/allisson/trustcore/internal/database"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

// PostgreSQLTenantRepository implements Tenant persistence for PostgreSQL.
type PostgreSQLTenantRepository struct {
	db *sql.DB
}

const tenantColumns = `id, company, suspended, created_at, updated_at`

// Create inserts a new tenant.
func (p *PostgreSQLTenantRepository) Create(ctx context.Context, tenant *authzDomain.Tenant) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO tenants (` + tenantColumns + `)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		tenant.ID,
		tenant.Company,
		tenant.Suspended,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create tenant")
	}

	return nil
}

// GetByCompany retrieves a tenant by its company key.
func (p *PostgreSQLTenantRepository) GetByCompany(
	ctx context.Context,
	company string,
) (*authzDomain.Tenant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE company = $1`

	var tenant authzDomain.Tenant
	err := querier.QueryRowContext(ctx, query, company).Scan(
		&tenant.ID,
		&tenant.Company,
		&tenant.Suspended,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authzDomain.ErrTenantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get tenant")
	}

	return &tenant, nil
}

// SetSuspended flips the suspension flag for a tenant.
func (p *PostgreSQLTenantRepository) SetSuspended(
	ctx context.Context,
	company string,
	suspended bool,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tenants SET suspended = $1, updated_at = NOW() WHERE company = $2`

	result, err := querier.ExecContext(ctx, query, suspended, company)
	if err != nil {
		return apperrors.Wrap(err, "failed to update tenant suspension")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to confirm tenant suspension update")
	}
	if affected == 0 {
		return authzDomain.ErrTenantNotFound
	}

	return nil
}

// NewPostgreSQLTenantRepository creates a new PostgreSQL Tenant repository.
func NewPostgreSQLTenantRepository(db *sql.DB) *PostgreSQLTenantRepository {
	return &PostgreSQLTenantRepository{db: db}
}

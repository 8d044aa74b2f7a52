package repository

import (
	"context"
	"database/sql"
	"errors"

	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
	"github.com/allisson/trustcore/internal/database"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

// MySQLTenantRepository implements Tenant persistence for MySQL.
// Uses BINARY(16) for UUID storage.
type MySQLTenantRepository struct {
	db *sql.DB
}

// Create inserts a new tenant.
func (m *MySQLTenantRepository) Create(ctx context.Context, tenant *authzDomain.Tenant) error {
	querier := database.GetTx(ctx, m.db)

	id, err := tenant.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal tenant id")
	}

	query := `INSERT INTO tenants (` + tenantColumns + `)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLTenantRepository) GetByCompany(
	ctx context.Context,
	company string,
) (*authzDomain.Tenant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE company = ?`

	var tenant authzDomain.Tenant
	var idBinary []byte

	err := querier.QueryRowContext(ctx, query, company).Scan(
		&idBinary,
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

	if err := tenant.ID.UnmarshalBinary(idBinary); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal tenant id")
	}

	return &tenant, nil
}

// SetSuspended flips the suspension flag for a tenant.
func (m *MySQLTenantRepository) SetSuspended(
	ctx context.Context,
	company string,
	suspended bool,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE tenants SET suspended = ?, updated_at = NOW() WHERE company = ?`

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

// NewMySQLTenantRepository creates a new MySQL Tenant repository.
func NewMySQLTenantRepository(db *sql.DB) *MySQLTenantRepository {
	return &MySQLTenantRepository{db: db}
}

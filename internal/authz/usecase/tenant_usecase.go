package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/trustcore/internal/audit/domain"
	auditUseCase "github.com/allisson/trustcore/internal/audit/usecase"
	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
	authzService "github.com/allisson/trustcore/internal/authz/service"
	"github.com/allisson/trustcore/internal/database"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

// tenantUseCase implements TenantUseCase.
type tenantUseCase struct {
	txManager    database.TxManager
	tenantRepo   TenantRepository
	hierarchy    authzService.RoleHierarchy
	auditUseCase auditUseCase.AuditUseCase
}

// Create registers a new tenant namespace.
func (t *tenantUseCase) Create(ctx context.Context, company string) (*authzDomain.Tenant, error) {
	now := time.Now().UTC()
	tenant := &authzDomain.Tenant{
		ID:        uuid.Must(uuid.NewV7()),
		Company:   company,
		Suspended: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := t.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	return tenant, nil
}

// GetByCompany retrieves a tenant by its company key.
func (t *tenantUseCase) GetByCompany(
	ctx context.Context,
	company string,
) (*authzDomain.Tenant, error) {
	return t.tenantRepo.GetByCompany(ctx, company)
}

// Suspend marks the tenant as suspended. Only the maximum authority level may
// flip the flag. Permissions are narrowed per request from this point on;
// nothing stored about the tenant's roles changes.
func (t *tenantUseCase) Suspend(
	ctx context.Context,
	requester authzDomain.Requester,
	company string,
) error {
	return t.setSuspended(ctx, requester, company, true, auditDomain.EventTenantSuspended)
}

// Reinstate clears the suspension flag. Full permissions apply again on the
// next request because narrowing was never persisted.
func (t *tenantUseCase) Reinstate(
	ctx context.Context,
	requester authzDomain.Requester,
	company string,
) error {
	return t.setSuspended(ctx, requester, company, false, auditDomain.EventTenantReinstated)
}

func (t *tenantUseCase) setSuspended(
	ctx context.Context,
	requester authzDomain.Requester,
	company string,
	suspended bool,
	event auditDomain.EventCode,
) error {
	if t.hierarchy.Level(ctx, requester.Company, requester.Role) != authzDomain.LevelMaestro {
		return apperrors.ErrForbidden
	}

	tenant, err := t.tenantRepo.GetByCompany(ctx, company)
	if err != nil {
		return err
	}

	return t.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := t.tenantRepo.SetSuspended(txCtx, company, suspended); err != nil {
			return err
		}

		_, err := t.auditUseCase.Register(txCtx, auditUseCase.RegisterInput{
			Company: requester.Company,
			ActorID: requester.PrincipalID,
			Event:   event,
			Target: auditDomain.Target{
				Type: auditDomain.TargetTenant,
				ID:   tenant.ID.String(),
			},
			Metadata: map[string]any{
				"company": company,
			},
		})
		return err
	})
}

// NewTenantUseCase creates a new TenantUseCase with the provided dependencies.
func NewTenantUseCase(
	txManager database.TxManager,
	tenantRepo TenantRepository,
	hierarchy authzService.RoleHierarchy,
	audit auditUseCase.AuditUseCase,
) TenantUseCase {
	return &tenantUseCase{
		txManager:    txManager,
		tenantRepo:   tenantRepo,
		hierarchy:    hierarchy,
		auditUseCase: audit,
	}
}

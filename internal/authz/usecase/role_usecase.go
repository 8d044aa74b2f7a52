package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/trustcore/internal/audit/domain"
	auditUseCase "github.com/allisson/trustcore/internal/audit/usecase"
	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
	authzService "github.com/allisson/trustcore/internal/authz/service"
	"github.com/allisson/trustcore/internal/database"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

// roleUseCase implements RoleUseCase.
type roleUseCase struct {
	txManager    database.TxManager
	roleRepo     RoleRepository
	tenantRepo   TenantRepository
	hierarchy    authzService.RoleHierarchy
	gate         authzService.PermissionGate
	auditUseCase auditUseCase.AuditUseCase
}

// Create creates a new role on behalf of the requester.
//
// The requester's authority level is resolved per call and the assignment
// ceiling is enforced before validation: a requester can never create a role
// above their own level, and the reserved superuser name requires the maximum
// level. The role insert and its audit event run in one transaction.
func (r *roleUseCase) Create(
	ctx context.Context,
	requester authzDomain.Requester,
	input CreateRoleInput,
) (*authzDomain.Role, error) {
	requesterLevel := r.hierarchy.Level(ctx, requester.Company, requester.Role)

	if err := r.gate.CheckAssignment(requesterLevel, input.Name, input.Level); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	role := &authzDomain.Role{
		ID:          uuid.Must(uuid.NewV7()),
		Company:     requester.Company,
		Name:        input.Name,
		Level:       input.Level,
		Permissions: authzDomain.NewPermissionSet(input.Permissions...),
		Color:       input.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := role.Validate(); err != nil {
		return nil, err
	}

	err := r.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := r.roleRepo.Create(txCtx, role); err != nil {
			return err
		}

		_, err := r.auditUseCase.Register(txCtx, auditUseCase.RegisterInput{
			Company: requester.Company,
			ActorID: requester.PrincipalID,
			Event:   auditDomain.EventRoleCreated,
			Target: auditDomain.Target{
				Type: auditDomain.TargetRole,
				ID:   role.ID.String(),
			},
			Metadata: map[string]any{
				"name":  role.Name,
				"level": role.Level,
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return role, nil
}

// Update updates an existing role on behalf of the requester.
//
// The ceiling applies twice: the requester must outrank the role as it stands
// and the level being assigned. Without the first check a low-level requester
// could capture a higher role by lowering it.
func (r *roleUseCase) Update(
	ctx context.Context,
	requester authzDomain.Requester,
	id uuid.UUID,
	input UpdateRoleInput,
) (*authzDomain.Role, error) {
	role, err := r.roleRepo.GetByID(ctx, requester.Company, id)
	if err != nil {
		return nil, err
	}

	requesterLevel := r.hierarchy.Level(ctx, requester.Company, requester.Role)

	if err := r.gate.CheckAssignment(requesterLevel, role.Name, role.Level); err != nil {
		return nil, err
	}
	if err := r.gate.CheckAssignment(requesterLevel, input.Name, input.Level); err != nil {
		return nil, err
	}

	role.Name = input.Name
	role.Level = input.Level
	role.Permissions = authzDomain.NewPermissionSet(input.Permissions...)
	role.Color = input.Color
	role.UpdatedAt = time.Now().UTC()

	if err := role.Validate(); err != nil {
		return nil, err
	}

	err = r.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := r.roleRepo.Update(txCtx, role); err != nil {
			return err
		}

		_, err := r.auditUseCase.Register(txCtx, auditUseCase.RegisterInput{
			Company: requester.Company,
			ActorID: requester.PrincipalID,
			Event:   auditDomain.EventRoleUpdated,
			Target: auditDomain.Target{
				Type: auditDomain.TargetRole,
				ID:   role.ID.String(),
			},
			Metadata: map[string]any{
				"name":  role.Name,
				"level": role.Level,
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return role, nil
}

// List retrieves the roles visible to the requester. Suspension narrowing and
// maestro visibility are applied to the listing, never written back.
func (r *roleUseCase) List(
	ctx context.Context,
	requester authzDomain.Requester,
	offset, limit int,
) ([]*authzDomain.Role, error) {
	roles, err := r.roleRepo.List(ctx, requester.Company, offset, limit)
	if err != nil {
		return nil, err
	}

	tenant, err := r.tenantRepo.GetByCompany(ctx, requester.Company)
	if err != nil {
		if !errors.Is(err, authzDomain.ErrTenantNotFound) {
			return nil, err
		}
		tenant = nil
	}

	return r.gate.FilterListing(roles, tenant, requester.Role), nil
}

// Authorize reports whether the requester's effective permissions include the
// given permission. The maestro role short-circuits to allowed; for everyone
// else the stored role's permission set is narrowed by the tenant's
// suspension state before the check.
func (r *roleUseCase) Authorize(
	ctx context.Context,
	requester authzDomain.Requester,
	permission string,
) error {
	if r.hierarchy.Level(ctx, requester.Company, requester.Role) == authzDomain.LevelMaestro {
		return nil
	}

	role, err := r.roleRepo.GetByName(ctx, requester.Company, requester.Role)
	if err != nil {
		if errors.Is(err, authzDomain.ErrRoleNotFound) {
			return apperrors.ErrForbidden
		}
		return err
	}

	tenant, err := r.tenantRepo.GetByCompany(ctx, requester.Company)
	if err != nil {
		if !errors.Is(err, authzDomain.ErrTenantNotFound) {
			return err
		}
		tenant = nil
	}

	if !r.gate.EffectivePermissions(role, tenant).Contains(permission) {
		return apperrors.ErrForbidden
	}

	return nil
}

// NewRoleUseCase creates a new RoleUseCase with the provided dependencies.
func NewRoleUseCase(
	txManager database.TxManager,
	roleRepo RoleRepository,
	tenantRepo TenantRepository,
	hierarchy authzService.RoleHierarchy,
	gate authzService.PermissionGate,
	audit auditUseCase.AuditUseCase,
) RoleUseCase {
	return &roleUseCase{
		txManager:    txManager,
		roleRepo:     roleRepo,
		tenantRepo:   tenantRepo,
		hierarchy:    hierarchy,
		gate:         gate,
		auditUseCase: audit,
	}
}

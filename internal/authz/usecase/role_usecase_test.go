package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/trustcore/internal/audit/domain"
	auditUseCase "github.com/allisson/trustcore/internal/audit/usecase"
	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
	authzService "github.com/allisson/trustcore/internal/authz/service"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

// fakeRoleRepo is an in-memory RoleRepository keyed by normalized name.
type fakeRoleRepo struct {
	roles map[string]*authzDomain.Role // company + "/" + lowercase name
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[string]*authzDomain.Role)}
}

func roleKey(company, name string) string {
	return company + "/" + strings.ToLower(strings.TrimSpace(name))
}

func (f *fakeRoleRepo) Create(_ context.Context, role *authzDomain.Role) error {
	key := roleKey(role.Company, role.Name)
	if _, ok := f.roles[key]; ok {
		return authzDomain.ErrRoleNameTaken
	}
	clone := *role
	f.roles[key] = &clone
	return nil
}

func (f *fakeRoleRepo) Update(_ context.Context, role *authzDomain.Role) error {
	for key, existing := range f.roles {
		if existing.ID == role.ID {
			delete(f.roles, key)
			clone := *role
			f.roles[roleKey(role.Company, role.Name)] = &clone
			return nil
		}
	}
	return authzDomain.ErrRoleNotFound
}

func (f *fakeRoleRepo) GetByID(
	_ context.Context,
	company string,
	id uuid.UUID,
) (*authzDomain.Role, error) {
	for _, role := range f.roles {
		if role.Company == company && role.ID == id {
			clone := *role
			return &clone, nil
		}
	}
	return nil, authzDomain.ErrRoleNotFound
}

func (f *fakeRoleRepo) GetByName(
	_ context.Context,
	company, name string,
) (*authzDomain.Role, error) {
	if role, ok := f.roles[roleKey(company, name)]; ok {
		clone := *role
		return &clone, nil
	}
	return nil, authzDomain.ErrRoleNotFound
}

func (f *fakeRoleRepo) List(
	_ context.Context,
	company string,
	_, _ int,
) ([]*authzDomain.Role, error) {
	result := make([]*authzDomain.Role, 0)
	for _, role := range f.roles {
		if role.Company == company {
			clone := *role
			result = append(result, &clone)
		}
	}
	return result, nil
}

// fakeTenantRepo is an in-memory TenantRepository.
type fakeTenantRepo struct {
	tenants map[string]*authzDomain.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[string]*authzDomain.Tenant)}
}

func (f *fakeTenantRepo) Create(_ context.Context, tenant *authzDomain.Tenant) error {
	clone := *tenant
	f.tenants[tenant.Company] = &clone
	return nil
}

func (f *fakeTenantRepo) GetByCompany(
	_ context.Context,
	company string,
) (*authzDomain.Tenant, error) {
	if tenant, ok := f.tenants[company]; ok {
		clone := *tenant
		return &clone, nil
	}
	return nil, authzDomain.ErrTenantNotFound
}

func (f *fakeTenantRepo) SetSuspended(_ context.Context, company string, suspended bool) error {
	tenant, ok := f.tenants[company]
	if !ok {
		return authzDomain.ErrTenantNotFound
	}
	tenant.Suspended = suspended
	tenant.UpdatedAt = time.Now().UTC()
	return nil
}

// fakeAudit records registrations.
type fakeAudit struct {
	inputs []auditUseCase.RegisterInput
}

func (f *fakeAudit) Register(
	_ context.Context,
	input auditUseCase.RegisterInput,
) (*auditDomain.AuditEvent, error) {
	f.inputs = append(f.inputs, input)
	return &auditDomain.AuditEvent{ID: uuid.Must(uuid.NewV7())}, nil
}

func (f *fakeAudit) List(
	_ context.Context,
	_ string,
	_, _ int,
	_, _ *time.Time,
	_ bool,
) ([]*auditDomain.AuditEvent, error) {
	return nil, nil
}

func (f *fakeAudit) CleanUp(_ context.Context, _ time.Duration) (int64, error) {
	return 0, nil
}

// passthroughTxManager runs the function without a real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type authzHarness struct {
	roles   RoleUseCase
	tenants TenantUseCase
	repo    *fakeRoleRepo
	tenant  *fakeTenantRepo
	audit   *fakeAudit
}

func newAuthzHarness() *authzHarness {
	repo := newFakeRoleRepo()
	tenantRepo := newFakeTenantRepo()
	audit := &fakeAudit{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hierarchy := authzService.NewHierarchy(repo, logger)
	gate := authzService.NewGate()

	return &authzHarness{
		roles:   NewRoleUseCase(passthroughTxManager{}, repo, tenantRepo, hierarchy, gate, audit),
		tenants: NewTenantUseCase(passthroughTxManager{}, tenantRepo, hierarchy, audit),
		repo:    repo,
		tenant:  tenantRepo,
		audit:   audit,
	}
}

func maestroRequester(company string) authzDomain.Requester {
	return authzDomain.Requester{
		PrincipalID: uuid.Must(uuid.NewV7()),
		Role:        "maestro",
		Company:     company,
	}
}

func seedRole(t *testing.T, h *authzHarness, name string, level int, permissions ...string) *authzDomain.Role {
	t.Helper()
	role, err := h.roles.Create(context.Background(), maestroRequester("acme"), CreateRoleInput{
		Name:        name,
		Level:       level,
		Permissions: permissions,
	})
	require.NoError(t, err)
	return role
}

func TestRoleUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("maestro can create any level", func(t *testing.T) {
		h := newAuthzHarness()

		role, err := h.roles.Create(ctx, maestroRequester("acme"), CreateRoleInput{
			Name:        "supervisor",
			Level:       50,
			Permissions: []string{"view_reports", "edit_tickets"},
			Color:       "#336699",
		})
		require.NoError(t, err)

		assert.Equal(t, "supervisor", role.Name)
		assert.Equal(t, 50, role.Level)
		assert.True(t, role.Permissions.Contains("view_reports"))

		require.Len(t, h.audit.inputs, 1)
		assert.Equal(t, auditDomain.EventRoleCreated, h.audit.inputs[0].Event)
		assert.Equal(t, auditDomain.TargetRole, h.audit.inputs[0].Target.Type)
	})

	t.Run("requester cannot create above own level", func(t *testing.T) {
		h := newAuthzHarness()
		seedRole(t, h, "supervisor", 50, "view_reports")
		h.audit.inputs = nil

		requester := authzDomain.Requester{
			PrincipalID: uuid.Must(uuid.NewV7()),
			Role:        "supervisor",
			Company:     "acme",
		}

		_, err := h.roles.Create(ctx, requester, CreateRoleInput{Name: "jefe", Level: 70})

		var authorityErr *authzDomain.InsufficientAuthorityError
		require.ErrorAs(t, err, &authorityErr)
		assert.Equal(t, 50, authorityErr.RequesterLevel)
		assert.Equal(t, 70, authorityErr.RequestedLevel)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Empty(t, h.audit.inputs)
	})

	t.Run("maestro name reserved for the maximum level", func(t *testing.T) {
		h := newAuthzHarness()
		seedRole(t, h, "administrador", 90, "all")

		requester := authzDomain.Requester{
			PrincipalID: uuid.Must(uuid.NewV7()),
			Role:        "administrador",
			Company:     "acme",
		}

		_, err := h.roles.Create(ctx, requester, CreateRoleInput{Name: "Maestro", Level: 90})
		assert.ErrorIs(t, err, authzDomain.ErrMaestroReserved)
	})

	t.Run("duplicate name within tenant rejected", func(t *testing.T) {
		h := newAuthzHarness()
		seedRole(t, h, "supervisor", 50)

		_, err := h.roles.Create(ctx, maestroRequester("acme"), CreateRoleInput{
			Name:  "Supervisor",
			Level: 40,
		})
		assert.ErrorIs(t, err, authzDomain.ErrRoleNameTaken)
	})

	t.Run("invalid permissions rejected before write", func(t *testing.T) {
		h := newAuthzHarness()

		_, err := h.roles.Create(ctx, maestroRequester("acme"), CreateRoleInput{
			Name:        "supervisor",
			Level:       50,
			Permissions: []string{"Not A Permission"},
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Empty(t, h.repo.roles)
	})
}

func TestRoleUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("ceiling applies to the current level too", func(t *testing.T) {
		h := newAuthzHarness()
		high := seedRole(t, h, "jefe", 80, "all")
		seedRole(t, h, "supervisor", 50, "view_reports")

		requester := authzDomain.Requester{
			PrincipalID: uuid.Must(uuid.NewV7()),
			Role:        "supervisor",
			Company:     "acme",
		}

		// Lowering a higher role would capture it, so the existing level blocks.
		_, err := h.roles.Update(ctx, requester, high.ID, UpdateRoleInput{
			Name:  "jefe",
			Level: 40,
		})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("maestro updates and audits", func(t *testing.T) {
		h := newAuthzHarness()
		role := seedRole(t, h, "supervisor", 50, "view_reports")
		h.audit.inputs = nil

		updated, err := h.roles.Update(ctx, maestroRequester("acme"), role.ID, UpdateRoleInput{
			Name:        "supervisor",
			Level:       60,
			Permissions: []string{"view_reports", "edit_tickets"},
		})
		require.NoError(t, err)
		assert.Equal(t, 60, updated.Level)

		require.Len(t, h.audit.inputs, 1)
		assert.Equal(t, auditDomain.EventRoleUpdated, h.audit.inputs[0].Event)
	})

	t.Run("unknown role id", func(t *testing.T) {
		h := newAuthzHarness()

		_, err := h.roles.Update(ctx, maestroRequester("acme"), uuid.Must(uuid.NewV7()), UpdateRoleInput{
			Name:  "ghost",
			Level: 10,
		})
		assert.ErrorIs(t, err, authzDomain.ErrRoleNotFound)
	})
}

func TestRoleUseCase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("maestro hidden from other roles", func(t *testing.T) {
		h := newAuthzHarness()
		seedRole(t, h, "maestro", 100, "all")
		seedRole(t, h, "supervisor", 50, "view_reports")

		requester := authzDomain.Requester{Role: "supervisor", Company: "acme"}
		roles, err := h.roles.List(ctx, requester, 0, 50)
		require.NoError(t, err)

		require.Len(t, roles, 1)
		assert.Equal(t, "supervisor", roles[0].Name)

		maestroRoles, err := h.roles.List(ctx, maestroRequester("acme"), 0, 50)
		require.NoError(t, err)
		assert.Len(t, maestroRoles, 2)
	})

	t.Run("suspended tenant narrows the listing", func(t *testing.T) {
		h := newAuthzHarness()
		seedRole(t, h, "supervisor", 50, "view_reports", "view_panel_admin")
		require.NoError(t, h.tenant.Create(ctx, &authzDomain.Tenant{
			ID:        uuid.Must(uuid.NewV7()),
			Company:   "acme",
			Suspended: true,
		}))

		roles, err := h.roles.List(ctx, authzDomain.Requester{Role: "supervisor", Company: "acme"}, 0, 50)
		require.NoError(t, err)

		require.Len(t, roles, 1)
		assert.Equal(t, []string{"view_panel_admin"}, roles[0].Permissions.List())

		// The stored role is untouched.
		stored, err := h.repo.GetByName(ctx, "acme", "supervisor")
		require.NoError(t, err)
		assert.True(t, stored.Permissions.Contains("view_reports"))
	})

	t.Run("missing tenant treated as active", func(t *testing.T) {
		h := newAuthzHarness()
		seedRole(t, h, "supervisor", 50, "view_reports")

		roles, err := h.roles.List(ctx, authzDomain.Requester{Role: "supervisor", Company: "acme"}, 0, 50)
		require.NoError(t, err)
		require.Len(t, roles, 1)
		assert.True(t, roles[0].Permissions.Contains("view_reports"))
	})
}

func TestRoleUseCase_Authorize(t *testing.T) {
	ctx := context.Background()

	t.Run("maestro always allowed", func(t *testing.T) {
		h := newAuthzHarness()
		assert.NoError(t, h.roles.Authorize(ctx, maestroRequester("acme"), "anything_at_all"))
	})

	t.Run("wildcard grants every permission", func(t *testing.T) {
		h := newAuthzHarness()
		seedRole(t, h, "administrador", 90, "all")

		requester := authzDomain.Requester{Role: "administrador", Company: "acme"}
		assert.NoError(t, h.roles.Authorize(ctx, requester, "view_reports"))
	})

	t.Run("missing permission forbidden", func(t *testing.T) {
		h := newAuthzHarness()
		seedRole(t, h, "supervisor", 50, "view_reports")

		requester := authzDomain.Requester{Role: "supervisor", Company: "acme"}
		assert.NoError(t, h.roles.Authorize(ctx, requester, "view_reports"))
		assert.ErrorIs(t, h.roles.Authorize(ctx, requester, "edit_tickets"), apperrors.ErrForbidden)
	})

	t.Run("unknown role forbidden", func(t *testing.T) {
		h := newAuthzHarness()

		requester := authzDomain.Requester{Role: "ghost", Company: "acme"}
		assert.ErrorIs(t, h.roles.Authorize(ctx, requester, "view_reports"), apperrors.ErrForbidden)
	})

	t.Run("suspension narrows checks immediately and reversibly", func(t *testing.T) {
		h := newAuthzHarness()
		seedRole(t, h, "supervisor", 50, "view_reports", "view_panel_admin")
		require.NoError(t, h.tenant.Create(ctx, &authzDomain.Tenant{
			ID:      uuid.Must(uuid.NewV7()),
			Company: "acme",
		}))

		requester := authzDomain.Requester{Role: "supervisor", Company: "acme"}
		require.NoError(t, h.roles.Authorize(ctx, requester, "view_reports"))

		require.NoError(t, h.tenants.Suspend(ctx, maestroRequester("acme"), "acme"))
		assert.ErrorIs(t, h.roles.Authorize(ctx, requester, "view_reports"), apperrors.ErrForbidden)
		assert.NoError(t, h.roles.Authorize(ctx, requester, "view_panel_admin"))

		require.NoError(t, h.tenants.Reinstate(ctx, maestroRequester("acme"), "acme"))
		assert.NoError(t, h.roles.Authorize(ctx, requester, "view_reports"))
	})
}

func TestTenantUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("suspend requires the maximum level", func(t *testing.T) {
		h := newAuthzHarness()
		seedRole(t, h, "administrador", 90, "all")
		require.NoError(t, h.tenant.Create(ctx, &authzDomain.Tenant{
			ID:      uuid.Must(uuid.NewV7()),
			Company: "acme",
		}))

		requester := authzDomain.Requester{Role: "administrador", Company: "acme"}
		assert.ErrorIs(t, h.tenants.Suspend(ctx, requester, "acme"), apperrors.ErrForbidden)
	})

	t.Run("suspend and reinstate audited", func(t *testing.T) {
		h := newAuthzHarness()
		require.NoError(t, h.tenant.Create(ctx, &authzDomain.Tenant{
			ID:      uuid.Must(uuid.NewV7()),
			Company: "acme",
		}))

		require.NoError(t, h.tenants.Suspend(ctx, maestroRequester("acme"), "acme"))
		tenant, err := h.tenants.GetByCompany(ctx, "acme")
		require.NoError(t, err)
		assert.True(t, tenant.Suspended)

		require.NoError(t, h.tenants.Reinstate(ctx, maestroRequester("acme"), "acme"))
		tenant, err = h.tenants.GetByCompany(ctx, "acme")
		require.NoError(t, err)
		assert.False(t, tenant.Suspended)

		require.Len(t, h.audit.inputs, 2)
		assert.Equal(t, auditDomain.EventTenantSuspended, h.audit.inputs[0].Event)
		assert.Equal(t, auditDomain.EventTenantReinstated, h.audit.inputs[1].Event)
	})

	t.Run("suspend unknown tenant", func(t *testing.T) {
		h := newAuthzHarness()
		err := h.tenants.Suspend(ctx, maestroRequester("acme"), "ghost")
		assert.ErrorIs(t, err, authzDomain.ErrTenantNotFound)
	})
}

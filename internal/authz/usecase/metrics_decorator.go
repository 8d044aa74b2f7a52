package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
	"github.com/allisson/trustcore/internal/metrics"
)

// roleUseCaseWithMetrics decorates RoleUseCase with metrics instrumentation.
type roleUseCaseWithMetrics struct {
	next    RoleUseCase
	metrics metrics.BusinessMetrics
}

// NewRoleUseCaseWithMetrics wraps a RoleUseCase with metrics recording.
func NewRoleUseCaseWithMetrics(useCase RoleUseCase, m metrics.BusinessMetrics) RoleUseCase {
	return &roleUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for role creation operations.
func (r *roleUseCaseWithMetrics) Create(
	ctx context.Context,
	requester authzDomain.Requester,
	input CreateRoleInput,
) (*authzDomain.Role, error) {
	start := time.Now()
	role, err := r.next.Create(ctx, requester, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "authz", "create_role", status)
	r.metrics.RecordDuration(ctx, "authz", "create_role", time.Since(start), status)

	return role, err
}

// Update records metrics for role update operations.
func (r *roleUseCaseWithMetrics) Update(
	ctx context.Context,
	requester authzDomain.Requester,
	id uuid.UUID,
	input UpdateRoleInput,
) (*authzDomain.Role, error) {
	start := time.Now()
	role, err := r.next.Update(ctx, requester, id, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "authz", "update_role", status)
	r.metrics.RecordDuration(ctx, "authz", "update_role", time.Since(start), status)

	return role, err
}

// List records metrics for role listing operations.
func (r *roleUseCaseWithMetrics) List(
	ctx context.Context,
	requester authzDomain.Requester,
	offset, limit int,
) ([]*authzDomain.Role, error) {
	start := time.Now()
	roles, err := r.next.List(ctx, requester, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "authz", "list_roles", status)
	r.metrics.RecordDuration(ctx, "authz", "list_roles", time.Since(start), status)

	return roles, err
}

// Authorize records metrics for permission checks.
func (r *roleUseCaseWithMetrics) Authorize(
	ctx context.Context,
	requester authzDomain.Requester,
	permission string,
) error {
	start := time.Now()
	err := r.next.Authorize(ctx, requester, permission)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "authz", "authorize", status)
	r.metrics.RecordDuration(ctx, "authz", "authorize", time.Since(start), status)

	return err
}

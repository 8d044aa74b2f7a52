package usecase

import (
	"context"
	"time"

	identityDomain "github.com/allisson/trustcore/internal/identity/domain"
	"github.com/allisson/trustcore/internal/metrics"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login operations.
func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	company, email, password string,
) (*LoginOutput, error) {
	start := time.Now()
	output, err := s.next.Login(ctx, company, email, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "session", "login", status)
	s.metrics.RecordDuration(ctx, "session", "login", time.Since(start), status)

	return output, err
}

// Validate records metrics for token validation operations.
func (s *sessionUseCaseWithMetrics) Validate(
	ctx context.Context,
	plainToken string,
) (*identityDomain.Principal, error) {
	start := time.Now()
	principal, err := s.next.Validate(ctx, plainToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "session", "validate", status)
	s.metrics.RecordDuration(ctx, "session", "validate", time.Since(start), status)

	return principal, err
}

// Logout records metrics for logout operations.
func (s *sessionUseCaseWithMetrics) Logout(ctx context.Context, plainToken string) error {
	start := time.Now()
	err := s.next.Logout(ctx, plainToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "session", "logout", status)
	s.metrics.RecordDuration(ctx, "session", "logout", time.Since(start), status)

	return err
}

// CleanExpired records metrics for expired session cleanup operations.
func (s *sessionUseCaseWithMetrics) CleanExpired(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := s.next.CleanExpired(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "session", "clean_expired", status)
	s.metrics.RecordDuration(ctx, "session", "clean_expired", time.Since(start), status)

	return count, err
}

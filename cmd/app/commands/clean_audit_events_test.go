package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/trustcore/internal/audit/domain"
	auditUseCase "github.com/allisson/trustcore/internal/audit/usecase"
)

type fakeAuditUseCase struct {
	cleanCount    int64
	cleanErr      error
	gotRetentions []time.Duration
}

func (f *fakeAuditUseCase) Register(ctx context.Context, input auditUseCase.RegisterInput) (*auditDomain.AuditEvent, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuditUseCase) List(
	ctx context.Context,
	company string,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
	reveal bool,
) ([]*auditDomain.AuditEvent, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuditUseCase) CleanUp(ctx context.Context, retention time.Duration) (int64, error) {
	f.gotRetentions = append(f.gotRetentions, retention)
	return f.cleanCount, f.cleanErr
}

func TestCleanAuditEvents(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("text-output", func(t *testing.T) {
		fake := &fakeAuditUseCase{cleanCount: 100}

		var out bytes.Buffer
		err := cleanAuditEvents(ctx, fake, logger, &out, 30, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Successfully deleted 100 audit event(s)")
		require.Equal(t, []time.Duration{30 * 24 * time.Hour}, fake.gotRetentions)
	})

	t.Run("json-output", func(t *testing.T) {
		var out bytes.Buffer
		err := cleanAuditEvents(ctx, &fakeAuditUseCase{cleanCount: 50}, logger, &out, 90, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"count": 50`)
		require.Contains(t, out.String(), `"days": 90`)
	})

	t.Run("invalid-days", func(t *testing.T) {
		err := cleanAuditEvents(ctx, &fakeAuditUseCase{}, logger, &bytes.Buffer{}, -1, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "days must be a positive number")
	})

	t.Run("use-case-error", func(t *testing.T) {
		err := cleanAuditEvents(
			ctx,
			&fakeAuditUseCase{cleanErr: errors.New("db down")},
			logger,
			&bytes.Buffer{},
			30,
			"text",
		)

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to clean audit events")
	})
}

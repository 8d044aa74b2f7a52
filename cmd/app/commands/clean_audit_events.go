package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/allisson/trustcore/internal/app"
	auditUseCase "github.com/allisson/trustcore/internal/audit/usecase"
	"github.com/allisson/trustcore/internal/config"
)

// RunCleanAuditEvents deletes audit events older than the specified number of days.
// Supports text and JSON output formats. The audit trail is append-only; this
// retention command is the only delete path.
//
// Requirements: Database must be migrated and accessible.
func RunCleanAuditEvents(ctx context.Context, days int, format string) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get audit use case from container
	audit, err := container.AuditUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize audit use case: %w", err)
	}

	return cleanAuditEvents(ctx, audit, logger, os.Stdout, days, format)
}

// cleanAuditEvents performs the retention deletion and writes the result to out.
func cleanAuditEvents(
	ctx context.Context,
	audit auditUseCase.AuditUseCase,
	logger *slog.Logger,
	out io.Writer,
	days int,
	format string,
) error {
	// Validate days parameter
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning audit events", slog.Int("days", days))

	retention := time.Duration(days) * 24 * time.Hour
	count, err := audit.CleanUp(ctx, retention)
	if err != nil {
		return fmt.Errorf("failed to clean audit events: %w", err)
	}

	if format == "json" {
		result := map[string]interface{}{
			"count": count,
			"days":  days,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(jsonBytes))
	} else {
		fmt.Fprintf(out, "Successfully deleted %d audit event(s) older than %d day(s)\n", count, days)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
	)

	return nil
}

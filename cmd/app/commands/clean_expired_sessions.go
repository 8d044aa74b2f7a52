package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/allisson/trustcore/internal/app"
	"github.com/allisson/trustcore/internal/config"
	sessionUseCase "github.com/allisson/trustcore/internal/session/usecase"
)

// RunCleanExpiredSessions deletes all sessions past their expiration.
// Supports text and JSON output formats. Intended to run on a schedule;
// expired sessions are also deleted lazily when a stale token is validated.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredSessions(ctx context.Context, format string) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get session use case from container
	sessions, err := container.SessionUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize session use case: %w", err)
	}

	return cleanExpiredSessions(ctx, sessions, logger, os.Stdout, format)
}

// cleanExpiredSessions performs the deletion and writes the result to out.
func cleanExpiredSessions(
	ctx context.Context,
	sessions sessionUseCase.SessionUseCase,
	logger *slog.Logger,
	out io.Writer,
	format string,
) error {
	logger.Info("cleaning expired sessions")

	count, err := sessions.CleanExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to clean expired sessions: %w", err)
	}

	if format == "json" {
		result := map[string]interface{}{
			"count": count,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(jsonBytes))
	} else {
		fmt.Fprintf(out, "Successfully deleted %d expired session(s)\n", count)
	}

	logger.Info("cleanup completed", slog.Int64("count", count))

	return nil
}

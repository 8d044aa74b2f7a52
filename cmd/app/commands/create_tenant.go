package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/trustcore/internal/app"
	"github.com/allisson/trustcore/internal/config"
)

// RunCreateTenant registers a new tenant in the active (non-suspended) state.
//
// Requirements: Database must be migrated and accessible.
func RunCreateTenant(ctx context.Context, company string) error {
	if company == "" {
		return fmt.Errorf("company must not be empty")
	}

	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("creating tenant", slog.String("company", company))

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get tenant use case from container
	tenantUseCase, err := container.TenantUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize tenant use case: %w", err)
	}

	tenant, err := tenantUseCase.Create(ctx, company)
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	fmt.Printf("Tenant created successfully\n")
	fmt.Printf("  ID:      %s\n", tenant.ID)
	fmt.Printf("  Company: %s\n", tenant.Company)

	return nil
}

package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/allisson/trustcore/internal/app"
	"github.com/allisson/trustcore/internal/config"
	identityUseCase "github.com/allisson/trustcore/internal/identity/usecase"
)

// CreatePrincipalInput holds the flags for the create-principal command.
type CreatePrincipalInput struct {
	Company string
	Name    string
	Surname string
	Email   string
	Cargo   string
	Role    string
}

// RunCreatePrincipal creates a principal directly against the use case,
// bypassing the HTTP permission checks. Intended for bootstrapping the first
// Maestro of a tenant, after which principals are managed through the API.
//
// A random password is generated and printed exactly once; only its hash is
// stored. The creation is recorded in the audit trail with no acting
// principal.
//
// Requirements: Database must be migrated and accessible, and the tenant must exist.
func RunCreatePrincipal(ctx context.Context, input CreatePrincipalInput) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("creating principal", slog.String("company", input.Company))

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get principal use case from container
	principalUseCase, err := container.PrincipalUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize principal use case: %w", err)
	}

	password, err := generatePassword()
	if err != nil {
		return fmt.Errorf("failed to generate password: %w", err)
	}

	principal, err := principalUseCase.Register(ctx, uuid.Nil, identityUseCase.RegisterInput{
		Company:  input.Company,
		Name:     input.Name,
		Surname:  input.Surname,
		Email:    input.Email,
		Cargo:    input.Cargo,
		Role:     input.Role,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create principal: %w", err)
	}

	fmt.Printf("Principal created successfully\n")
	fmt.Printf("  ID:      %s\n", principal.ID)
	fmt.Printf("  Company: %s\n", principal.Company)
	fmt.Printf("  Role:    %s\n", principal.Role)
	fmt.Println()
	fmt.Printf("Generated password (shown only once, store it securely):\n")
	fmt.Printf("  %s\n", password)

	return nil
}

// generatePassword returns a random URL-safe password with 144 bits of entropy.
func generatePassword() (string, error) {
	raw := make([]byte, 18)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/trustcore/cmd/app/commands"
	cryptoService "github.com/allisson/trustcore/internal/crypto/service"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "trustcore",
		Usage:   "Trust core service: encrypted identities, role authority and audit trail",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "create-encryption-key",
				Usage: "Generate a new 32-byte field encryption key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kms-provider",
						Usage: "KMS provider for key wrapping (gcpkms, awskms, azurekeyvault, hashivault, localsecrets)",
					},
					&cli.StringFlag{
						Name:  "kms-key-uri",
						Usage: "URI of the key-wrapping key in the KMS",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateEncryptionKey(
						ctx,
						cryptoService.NewKMSService(),
						os.Stdout,
						cmd.String("kms-provider"),
						cmd.String("kms-key-uri"),
					)
				},
			},
			{
				Name:  "create-tenant",
				Usage: "Register a new tenant",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "company",
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "Tenant company identifier",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateTenant(ctx, cmd.String("company"))
				},
			},
			{
				Name:  "create-principal",
				Usage: "Create a principal directly, bypassing the HTTP permission checks",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "company",
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "Tenant company identifier",
					},
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Given name",
					},
					&cli.StringFlag{
						Name:     "surname",
						Aliases:  []string{"s"},
						Required: true,
						Usage:    "Family name",
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Required: true,
						Usage:    "Email address (unique per tenant)",
					},
					&cli.StringFlag{
						Name:  "cargo",
						Usage: "Job title",
					},
					&cli.StringFlag{
						Name:    "role",
						Aliases: []string{"r"},
						Value:   "Maestro",
						Usage:   "Role name to assign",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreatePrincipal(ctx, commands.CreatePrincipalInput{
						Company: cmd.String("company"),
						Name:    cmd.String("name"),
						Surname: cmd.String("surname"),
						Email:   cmd.String("email"),
						Cargo:   cmd.String("cargo"),
						Role:    cmd.String("role"),
					})
				},
			},
			{
				Name:  "clean-expired-sessions",
				Usage: "Delete sessions past their expiration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCleanExpiredSessions(ctx, cmd.String("format"))
				},
			},
			{
				Name:  "clean-audit-events",
				Usage: "Delete audit events older than specified days",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "days",
						Aliases:  []string{"d"},
						Required: true,
						Usage:    "Delete audit events older than this many days",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCleanAuditEvents(ctx, int(cmd.Int("days")), cmd.String("format"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

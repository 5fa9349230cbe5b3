// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/journal/cmd/app/commands"
	"github.com/allisson/journal/internal/app"
	"github.com/allisson/journal/internal/config"
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Journal publishing platform",
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
					cfg := config.Load()
					container := app.NewContainer(cfg)
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				},
			},
			{
				Name:  "create-user",
				Usage: "Create a new user account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "Unique username for the new account",
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Required: true,
						Usage:    "Plain text password (hashed before storage)",
					},
					&cli.StringFlag{
						Name:    "role",
						Aliases: []string{"r"},
						Value:   "admin",
						Usage:   "Role for the new account (admin or author)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer commands.CloseContainer(container, logger)

					userUseCase, err := container.UserUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize user use case: %w", err)
					}

					return commands.RunCreateUser(
						ctx,
						userUseCase,
						logger,
						os.Stdout,
						cmd.String("username"),
						cmd.String("password"),
						cmd.String("role"),
						cmd.String("format"),
					)
				},
			},
			{
				Name:  "revoke-user-sessions",
				Usage: "Revoke every active session and refresh token of a user",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "user-id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "ID of the user whose sessions should be revoked",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer commands.CloseContainer(container, logger)

					sessionUseCase, err := container.SessionUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize session use case: %w", err)
					}

					return commands.RunRevokeUserSessions(
						ctx,
						sessionUseCase,
						logger,
						os.Stdout,
						int64(cmd.Int("user-id")),
						cmd.String("format"),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

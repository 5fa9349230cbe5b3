package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	userDomain "github.com/allisson/journal/internal/user/domain"
	userUseCase "github.com/allisson/journal/internal/user/usecase"
)

// RunCreateUser creates a new user account with the given role.
// Intended for bootstrapping the first admin account and for operator-driven
// account creation. Outputs the created user in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	useCase userUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	username string,
	password string,
	role string,
	format string,
) error {
	logger.Info("creating new user",
		slog.String("username", username),
		slog.String("role", role),
	)

	user, err := useCase.Register(ctx, userUseCase.RegisterUserInput{
		Username: username,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCreateUserJSON(user, writer)
	} else {
		outputCreateUserText(user, writer)
	}

	logger.Info("user created successfully",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", user.Role.String()),
	)

	return nil
}

// outputCreateUserText outputs the result in human-readable text format.
func outputCreateUserText(user *userDomain.User, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "User created successfully!")
	_, _ = fmt.Fprintf(writer, "ID:       %d\n", user.ID)
	_, _ = fmt.Fprintf(writer, "Username: %s\n", user.Username)
	_, _ = fmt.Fprintf(writer, "Role:     %s\n", user.Role.String())
}

// outputCreateUserJSON outputs the result in JSON format for machine consumption.
func outputCreateUserJSON(user *userDomain.User, writer io.Writer) {
	result := map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role.String(),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	authUseCase "github.com/allisson/journal/internal/auth/usecase"
)

// RunRevokeUserSessions revokes every active session and refresh token of a user.
// Bumps the user's minimum token generation so that previously issued access
// tokens stop verifying as well. Used when an account is compromised or an
// operator needs to force a user to log in again.
//
// Requirements: Database must be migrated and accessible.
func RunRevokeUserSessions(
	ctx context.Context,
	useCase authUseCase.SessionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	userID int64,
	format string,
) error {
	// Validate user ID parameter
	if userID < 1 {
		return fmt.Errorf("user-id must be a positive number, got: %d", userID)
	}

	logger.Info("revoking all user sessions", slog.Int64("user_id", userID))

	if err := useCase.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke user sessions: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputRevokeSessionsJSON(userID, writer)
	} else {
		outputRevokeSessionsText(userID, writer)
	}

	logger.Info("user sessions revoked", slog.Int64("user_id", userID))

	return nil
}

// outputRevokeSessionsText outputs the result in human-readable text format.
func outputRevokeSessionsText(userID int64, writer io.Writer) {
	_, _ = fmt.Fprintf(writer, "Revoked all sessions for user %d\n", userID)
}

// outputRevokeSessionsJSON outputs the result in JSON format for machine consumption.
func outputRevokeSessionsJSON(userID int64, writer io.Writer) {
	result := map[string]interface{}{
		"user_id": userID,
		"revoked": true,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}

package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	authMocks "github.com/allisson/journal/internal/auth/http/mocks"
	"github.com/allisson/journal/internal/errors"
)

func TestRunRevokeUserSessions(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &authMocks.MockSessionUseCase{}
		mockUseCase.On("RevokeAllForUser", ctx, int64(7)).Return(nil)

		var out bytes.Buffer
		err := RunRevokeUserSessions(ctx, mockUseCase, logger, &out, 7, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Revoked all sessions for user 7")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &authMocks.MockSessionUseCase{}
		mockUseCase.On("RevokeAllForUser", ctx, int64(7)).Return(nil)

		var out bytes.Buffer
		err := RunRevokeUserSessions(ctx, mockUseCase, logger, &out, 7, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"user_id": 7`)
		require.Contains(t, out.String(), `"revoked": true`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-user-id", func(t *testing.T) {
		mockUseCase := &authMocks.MockSessionUseCase{}
		err := RunRevokeUserSessions(ctx, mockUseCase, logger, &bytes.Buffer{}, 0, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "user-id must be a positive number")
	})

	t.Run("store-unavailable", func(t *testing.T) {
		mockUseCase := &authMocks.MockSessionUseCase{}
		mockUseCase.On("RevokeAllForUser", ctx, int64(7)).Return(errors.ErrUnavailable)

		err := RunRevokeUserSessions(ctx, mockUseCase, logger, &bytes.Buffer{}, 7, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to revoke user sessions")
		mockUseCase.AssertExpectations(t)
	})
}

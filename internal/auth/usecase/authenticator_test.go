package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/journal/internal/auth/domain"
	"github.com/allisson/journal/internal/auth/store"
)

func TestAuthenticator_Authenticate(t *testing.T) {
	ctx := context.Background()
	codec := newTestCodec(t)

	issueToken := func(t *testing.T, sessionID string, generation int64) string {
		t.Helper()
		accessToken, err := codec.Issue(authDomain.TokenSubject{
			UserID:       1,
			Username:     "alice",
			Role:         authDomain.AuthorRole,
			Capabilities: authDomain.AuthorRole.DefaultCapabilities(),
			SessionID:    sessionID,
			Generation:   generation,
		})
		require.NoError(t, err)
		return accessToken.Token
	}

	t.Run("Success_ValidToken", func(t *testing.T) {
		revocationStore := store.NewMemoryStore()
		auth := NewAuthenticator(codec, revocationStore)

		principal, err := auth.Authenticate(ctx, issueToken(t, "sid-1", 0))
		require.NoError(t, err)
		require.NotNil(t, principal)
		assert.Equal(t, int64(1), principal.UserID)
		assert.Equal(t, "sid-1", principal.SessionID)
		assert.True(t, principal.HasCapability("articles", "create"))
	})

	t.Run("Error_MalformedToken", func(t *testing.T) {
		auth := NewAuthenticator(codec, store.NewMemoryStore())

		principal, err := auth.Authenticate(ctx, "garbage")
		assert.ErrorIs(t, err, authDomain.ErrTokenMalformed)
		assert.Nil(t, principal)
	})

	t.Run("Error_RevokedSession", func(t *testing.T) {
		revocationStore := store.NewMemoryStore()
		require.NoError(t, revocationStore.Revoke(ctx, "sid-1"))

		auth := NewAuthenticator(codec, revocationStore)
		principal, err := auth.Authenticate(ctx, issueToken(t, "sid-1", 0))

		assert.ErrorIs(t, err, authDomain.ErrSessionRevoked)
		assert.Nil(t, principal)
	})

	t.Run("Error_GenerationBelowFloor", func(t *testing.T) {
		revocationStore := store.NewMemoryStore()
		require.NoError(t, revocationStore.SetMinGeneration(ctx, 1, 2))

		auth := NewAuthenticator(codec, revocationStore)
		principal, err := auth.Authenticate(ctx, issueToken(t, "sid-1", 1))

		assert.ErrorIs(t, err, authDomain.ErrGenerationRevoked)
		assert.Nil(t, principal)
	})

	t.Run("Success_GenerationAtFloor", func(t *testing.T) {
		revocationStore := store.NewMemoryStore()
		require.NoError(t, revocationStore.SetMinGeneration(ctx, 1, 2))

		auth := NewAuthenticator(codec, revocationStore)
		principal, err := auth.Authenticate(ctx, issueToken(t, "sid-1", 2))

		require.NoError(t, err)
		assert.NotNil(t, principal)
	})
}

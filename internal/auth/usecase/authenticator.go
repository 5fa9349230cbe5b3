package usecase

import (
	"context"

	authDomain "github.com/allisson/journal/internal/auth/domain"
	"github.com/allisson/journal/internal/auth/service"
	"github.com/allisson/journal/internal/auth/store"
)

// authenticator verifies access tokens and checks revocation state.
type authenticator struct {
	codec service.TokenCodec
	store store.RevocationStore
}

// NewAuthenticator creates a new Authenticator.
func NewAuthenticator(codec service.TokenCodec, revocationStore store.RevocationStore) Authenticator {
	return &authenticator{codec: codec, store: revocationStore}
}

// Authenticate verifies the token signature and claims, then rejects tokens
// bound to a revoked session or issued below the user's generation floor.
func (a *authenticator) Authenticate(ctx context.Context, token string) (*authDomain.Principal, error) {
	principal, err := a.codec.Verify(token)
	if err != nil {
		return nil, err
	}

	if principal.SessionID != "" {
		revoked, err := a.store.IsRevoked(ctx, principal.SessionID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, authDomain.ErrSessionRevoked
		}
	}

	minGeneration, err := a.store.GetMinGeneration(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if principal.Generation < minGeneration {
		return nil, authDomain.ErrGenerationRevoked
	}

	return principal, nil
}

package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/journal/internal/auth/domain"
	"github.com/allisson/journal/internal/auth/service"
	"github.com/allisson/journal/internal/auth/store"
	apperrors "github.com/allisson/journal/internal/errors"
	userDomain "github.com/allisson/journal/internal/user/domain"
)

// sessionUseCase implements SessionUseCase over a revocation store.
type sessionUseCase struct {
	users    UserReader
	password PasswordVerifier
	codec    service.TokenCodec
	store    store.RevocationStore
	logger   *slog.Logger
}

// NewSessionUseCase creates a new SessionUseCase.
func NewSessionUseCase(
	users UserReader,
	password PasswordVerifier,
	codec service.TokenCodec,
	revocationStore store.RevocationStore,
	logger *slog.Logger,
) SessionUseCase {
	return &sessionUseCase{
		users:    users,
		password: password,
		codec:    codec,
		store:    revocationStore,
		logger:   logger,
	}
}

// Login verifies credentials and opens a new session.
func (s *sessionUseCase) Login(ctx context.Context, input *LoginInput) (*authDomain.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			// Same error as a wrong password, no username probing
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, authDomain.ErrInvalidCredentials
	}
	if !s.password.Compare(input.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	nonce := uuid.NewString()

	if err := s.store.SetRefreshNonce(ctx, sessionID, nonce); err != nil {
		return nil, err
	}
	err = s.store.SetSessionMetadata(ctx, authDomain.SessionMetadata{
		SessionID: sessionID,
		UserID:    user.ID,
		UserAgent: input.UserAgent,
		IP:        input.IP,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("session_id", sessionID),
	)

	return s.issueTokenPair(ctx, user, sessionID, nonce)
}

// Refresh rotates the refresh credential. Exactly one concurrent caller wins.
func (s *sessionUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	token, err := authDomain.DecodeRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	revoked, err := s.store.IsRevoked(ctx, token.SessionID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, authDomain.ErrSessionRevoked
	}

	minGeneration, err := s.store.GetMinGeneration(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	if token.Generation < minGeneration {
		return nil, authDomain.ErrGenerationRevoked
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, authDomain.ErrInvalidCredentials
	}

	newNonce := uuid.NewString()
	swapped, err := s.store.CompareAndSwapRefreshNonce(ctx, token.SessionID, token.Nonce, newNonce)
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, s.classifyLostSwap(ctx, token)
	}

	return s.issueTokenPair(ctx, user, token.SessionID, newNonce)
}

// classifyLostSwap decides what a failed swap means. Only sessions that
// exist and belong to the token's user are classified at all; a fabricated
// session or a mismatched owner reads as a malformed credential and leaves
// the store untouched. For a real session, a used nonce is a replay and
// revokes every session of the user; anything else lost a concurrent
// rotation.
func (s *sessionUseCase) classifyLostSwap(ctx context.Context, token *authDomain.RefreshToken) error {
	current, err := s.store.GetRefreshNonce(ctx, token.SessionID)
	if err != nil {
		return err
	}
	state, err := s.store.GetSessionMetadata(ctx, token.SessionID)
	if err != nil {
		return err
	}
	if current == "" || state == nil || state.UserID != token.UserID {
		return authDomain.ErrTokenMalformed
	}

	used, err := s.store.IsNonceUsed(ctx, token.SessionID, token.Nonce)
	if err != nil {
		return err
	}
	if used {
		s.logger.Warn("refresh token replay detected, revoking all user sessions",
			slog.Int64("user_id", token.UserID),
			slog.String("session_id", token.SessionID),
		)
		if err := s.RevokeAllForUser(ctx, token.UserID); err != nil {
			return err
		}
		return authDomain.ErrReplayDetected
	}

	// The winning swap already recorded the rotated-away nonce as used, so
	// there is nothing to mark here. A nonce that is neither current nor
	// used belongs to an expired rotation window at worst.
	return authDomain.ErrRotatedConcurrently
}

// Logout revokes the principal's session.
func (s *sessionUseCase) Logout(ctx context.Context, principal *authDomain.Principal) error {
	if principal.SessionID == "" {
		return authDomain.ErrIncompleteClaims
	}

	if err := s.store.Revoke(ctx, principal.SessionID); err != nil {
		return err
	}

	s.logger.Info("user logged out",
		slog.Int64("user_id", principal.UserID),
		slog.String("session_id", principal.SessionID),
	)
	return nil
}

// RevokeSession revokes a single session for its owner or an operator.
func (s *sessionUseCase) RevokeSession(
	ctx context.Context,
	principal *authDomain.Principal,
	sessionID string,
) error {
	state, err := s.store.GetSessionMetadata(ctx, sessionID)
	if err != nil {
		return err
	}
	if state == nil {
		return authDomain.ErrSessionNotFound
	}

	owner := state.UserID == principal.UserID
	if !owner && !principal.HasCapability("users", "update") {
		return apperrors.Wrap(apperrors.ErrForbidden, "cannot revoke another user's session")
	}

	if err := s.store.Revoke(ctx, sessionID); err != nil {
		return err
	}
	if err := s.store.RemoveSessionForUser(ctx, state.UserID, sessionID); err != nil {
		return err
	}
	if err := s.store.DeleteSessionMetadata(ctx, sessionID); err != nil {
		return err
	}

	s.logger.Info("session revoked",
		slog.Int64("user_id", state.UserID),
		slog.String("session_id", sessionID),
		slog.Int64("revoked_by", principal.UserID),
	)
	return nil
}

// ListSessions returns the principal's sessions with metadata.
func (s *sessionUseCase) ListSessions(
	ctx context.Context,
	principal *authDomain.Principal,
) ([]store.SessionState, error) {
	return s.store.ListSessionsWithState(ctx, principal.UserID)
}

// RevokeAllForUser bumps the generation floor and sweeps every session.
func (s *sessionUseCase) RevokeAllForUser(ctx context.Context, userID int64) error {
	generation, err := s.store.BumpMinGeneration(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.store.RevokeAllForUser(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("all sessions revoked for user",
		slog.Int64("user_id", userID),
		slog.Int64("min_generation", generation),
	)
	return nil
}

// issueTokenPair builds the access token and the matching refresh credential
// stamped with the user's current generation.
func (s *sessionUseCase) issueTokenPair(
	ctx context.Context,
	user *userDomain.User,
	sessionID, nonce string,
) (*authDomain.TokenPair, error) {
	generation, err := s.store.GetMinGeneration(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.codec.Issue(authDomain.TokenSubject{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		Capabilities: user.Role.DefaultCapabilities(),
		SessionID:    sessionID,
		Generation:   generation,
	})
	if err != nil {
		return nil, err
	}

	refreshToken := authDomain.RefreshToken{
		UserID:     user.ID,
		SessionID:  sessionID,
		Nonce:      nonce,
		Generation: generation,
	}

	return &authDomain.TokenPair{
		AccessToken:  accessToken.Token,
		RefreshToken: refreshToken.Encode(),
		ExpiresAt:    accessToken.ExpiresAt,
	}, nil
}

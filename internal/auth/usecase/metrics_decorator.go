package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/journal/internal/auth/domain"
	"github.com/allisson/journal/internal/auth/store"
	"github.com/allisson/journal/internal/metrics"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login operations.
func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	input *LoginInput,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := s.next.Login(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "login", status)
	s.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return pair, err
}

// Refresh records metrics for refresh-token rotation operations.
func (s *sessionUseCaseWithMetrics) Refresh(
	ctx context.Context,
	refreshToken string,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := s.next.Refresh(ctx, refreshToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "refresh", status)
	s.metrics.RecordDuration(ctx, "auth", "refresh", time.Since(start), status)

	return pair, err
}

// Logout records metrics for logout operations.
func (s *sessionUseCaseWithMetrics) Logout(ctx context.Context, principal *authDomain.Principal) error {
	start := time.Now()
	err := s.next.Logout(ctx, principal)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "logout", status)
	s.metrics.RecordDuration(ctx, "auth", "logout", time.Since(start), status)

	return err
}

// RevokeSession records metrics for single-session revocation operations.
func (s *sessionUseCaseWithMetrics) RevokeSession(
	ctx context.Context,
	principal *authDomain.Principal,
	sessionID string,
) error {
	start := time.Now()
	err := s.next.RevokeSession(ctx, principal, sessionID)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "session_revoke", status)
	s.metrics.RecordDuration(ctx, "auth", "session_revoke", time.Since(start), status)

	return err
}

// ListSessions records metrics for session list operations.
func (s *sessionUseCaseWithMetrics) ListSessions(
	ctx context.Context,
	principal *authDomain.Principal,
) ([]store.SessionState, error) {
	start := time.Now()
	states, err := s.next.ListSessions(ctx, principal)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "session_list", status)
	s.metrics.RecordDuration(ctx, "auth", "session_list", time.Since(start), status)

	return states, err
}

// RevokeAllForUser records metrics for bulk session revocation operations.
func (s *sessionUseCaseWithMetrics) RevokeAllForUser(ctx context.Context, userID int64) error {
	start := time.Now()
	err := s.next.RevokeAllForUser(ctx, userID)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "revoke_all_sessions", status)
	s.metrics.RecordDuration(ctx, "auth", "revoke_all_sessions", time.Since(start), status)

	return err
}

// authenticatorWithMetrics decorates Authenticator with metrics instrumentation.
type authenticatorWithMetrics struct {
	next    Authenticator
	metrics metrics.BusinessMetrics
}

// NewAuthenticatorWithMetrics wraps an Authenticator with metrics recording.
func NewAuthenticatorWithMetrics(auth Authenticator, m metrics.BusinessMetrics) Authenticator {
	return &authenticatorWithMetrics{
		next:    auth,
		metrics: m,
	}
}

// Authenticate records metrics for token authentication operations.
func (a *authenticatorWithMetrics) Authenticate(
	ctx context.Context,
	token string,
) (*authDomain.Principal, error) {
	start := time.Now()
	principal, err := a.next.Authenticate(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "authenticate", status)
	a.metrics.RecordDuration(ctx, "auth", "authenticate", time.Since(start), status)

	return principal, err
}

// Package usecase defines business logic for login, refresh-token rotation,
// session revocation and request authentication.
package usecase

import (
	"context"

	authDomain "github.com/allisson/journal/internal/auth/domain"
	"github.com/allisson/journal/internal/auth/store"
	userDomain "github.com/allisson/journal/internal/user/domain"
)

// UserReader is the slice of the user repository the session use case needs.
type UserReader interface {
	// GetByID retrieves a user by id. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, id int64) (*userDomain.User, error)

	// GetByUsername retrieves a user by username. Returns ErrUserNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
}

// PasswordVerifier checks a plain password against its stored hash.
type PasswordVerifier interface {
	Compare(plainPassword, passwordHash string) bool
}

// LoginInput carries a login request with client metadata for the session record.
type LoginInput struct {
	Username  string
	Password  string
	UserAgent string
	IP        string
}

// SessionUseCase drives the session lifecycle: login, refresh-token rotation,
// logout and revocation.
type SessionUseCase interface {
	// Login verifies credentials, creates a session seeded with a fresh
	// rotation nonce, and issues an access/refresh token pair.
	//
	// Returns ErrInvalidCredentials on a failed username/password check.
	Login(ctx context.Context, input *LoginInput) (*authDomain.TokenPair, error)

	// Refresh rotates the refresh credential and issues a new token pair.
	// For any number of concurrent calls with the same credential exactly one
	// wins. Presenting an already-consumed credential is a replay, which
	// revokes all of the user's sessions and returns ErrReplayDetected; a
	// failed rotation whose nonce was never consumed for the session gets
	// ErrRotatedConcurrently. Credentials naming a session that does not
	// exist or is owned by another user fail with ErrTokenMalformed.
	Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error)

	// Logout revokes the principal's session.
	Logout(ctx context.Context, principal *authDomain.Principal) error

	// RevokeSession revokes a single session. Allowed for the session owner
	// or principals holding the users:update capability.
	RevokeSession(ctx context.Context, principal *authDomain.Principal, sessionID string) error

	// ListSessions returns the principal's sessions with metadata.
	ListSessions(ctx context.Context, principal *authDomain.Principal) ([]store.SessionState, error)

	// RevokeAllForUser bumps the user's minimum token generation and revokes
	// every indexed session, invalidating all outstanding credentials at once.
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// Authenticator verifies access tokens against the revocation state.
type Authenticator interface {
	// Authenticate verifies the token and checks its session and generation
	// against the revocation store.
	//
	// Returns codec errors (ErrTokenMalformed, ErrTokenExpired,
	// ErrIncompleteClaims), ErrSessionRevoked or ErrGenerationRevoked.
	Authenticate(ctx context.Context, token string) (*authDomain.Principal, error)
}

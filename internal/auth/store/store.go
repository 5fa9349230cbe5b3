// Package store provides the session revocation store: revocation flags,
// minimum generation counters, rotating refresh nonces with atomic
// compare-and-swap, and session metadata.
//
// Two implementations exist: MemoryStore for single-instance deployments and
// RedisStore for shared deployments.
package store

import (
	"context"

	"github.com/allisson/journal/internal/auth/domain"
)

// SessionState couples session metadata with its revocation flag.
type SessionState struct {
	domain.SessionMetadata
	Revoked bool
}

// RevocationStore tracks session revocation and refresh-nonce rotation state.
//
// All methods surface infrastructure failures as errors wrapping
// domain.ErrStoreUnavailable, never as a false result.
type RevocationStore interface {
	// IsRevoked reports whether the session has been revoked.
	IsRevoked(ctx context.Context, sessionID string) (bool, error)

	// Revoke marks the session revoked.
	Revoke(ctx context.Context, sessionID string) error

	// GetMinGeneration returns the user's minimum accepted token generation.
	// A user with no recorded minimum is at generation 0.
	GetMinGeneration(ctx context.Context, userID int64) (int64, error)

	// SetMinGeneration records the user's minimum accepted token generation.
	SetMinGeneration(ctx context.Context, userID int64, generation int64) error

	// BumpMinGeneration atomically increments the user's minimum accepted
	// token generation and returns the new value. Concurrent bumps never
	// lower the counter.
	BumpMinGeneration(ctx context.Context, userID int64) (int64, error)

	// GetRefreshNonce returns the session's current refresh nonce, or "" when
	// the session has none.
	GetRefreshNonce(ctx context.Context, sessionID string) (string, error)

	// SetRefreshNonce unconditionally sets the session's refresh nonce.
	// Used to seed a new session at login.
	SetRefreshNonce(ctx context.Context, sessionID, nonce string) error

	// CompareAndSwapRefreshNonce atomically replaces the session's nonce with
	// newNonce if the current value equals expected, marking expected as used
	// in the same atomic step. Returns true when the swap happened.
	CompareAndSwapRefreshNonce(ctx context.Context, sessionID, expected, newNonce string) (bool, error)

	// MarkNonceUsed records that a nonce has been consumed for the session.
	MarkNonceUsed(ctx context.Context, sessionID, nonce string) error

	// IsNonceUsed reports whether the nonce was already consumed for the session.
	IsNonceUsed(ctx context.Context, sessionID, nonce string) (bool, error)

	// AddSessionForUser indexes a session under its user.
	AddSessionForUser(ctx context.Context, userID int64, sessionID string) error

	// RemoveSessionForUser removes a session from the user's index.
	RemoveSessionForUser(ctx context.Context, userID int64, sessionID string) error

	// ListSessionsForUser returns the ids of the user's indexed sessions.
	ListSessionsForUser(ctx context.Context, userID int64) ([]string, error)

	// ListSessionsWithState returns the user's indexed sessions with their
	// metadata and revocation flags.
	ListSessionsWithState(ctx context.Context, userID int64) ([]SessionState, error)

	// SetSessionMetadata records session metadata and indexes the session
	// under its user.
	SetSessionMetadata(ctx context.Context, meta domain.SessionMetadata) error

	// GetSessionMetadata returns the session's state, or nil when unknown.
	GetSessionMetadata(ctx context.Context, sessionID string) (*SessionState, error)

	// DeleteSessionMetadata removes the session's metadata.
	DeleteSessionMetadata(ctx context.Context, sessionID string) error

	// RevokeAllForUser marks every indexed session of the user revoked and
	// clears the index. The operation is atomic over the indexed set.
	RevokeAllForUser(ctx context.Context, userID int64) error
}

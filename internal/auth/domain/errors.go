package domain

import (
	"github.com/allisson/journal/internal/errors"
)

// Authentication and session errors.
var (
	// ErrTokenMalformed indicates a credential that could not be decoded or
	// whose signature did not verify.
	ErrTokenMalformed = errors.Wrap(errors.ErrUnauthorized, "token malformed")

	// ErrTokenExpired indicates a credential outside its validity window.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrIncompleteClaims indicates a verified token missing required claims.
	ErrIncompleteClaims = errors.Wrap(errors.ErrUnauthorized, "token claims incomplete")

	// ErrSessionRevoked indicates the credential's session has been revoked.
	ErrSessionRevoked = errors.Wrap(errors.ErrUnauthorized, "session revoked")

	// ErrGenerationRevoked indicates the credential belongs to a generation
	// below the user's minimum, revoked in bulk.
	ErrGenerationRevoked = errors.Wrap(errors.ErrUnauthorized, "token generation revoked")

	// ErrReplayDetected indicates a refresh credential was presented after it
	// had already been consumed. All of the user's sessions are revoked.
	ErrReplayDetected = errors.Wrap(errors.ErrForbidden, "refresh token reused")

	// ErrRotatedConcurrently indicates the refresh lost the rotation without
	// the presented nonce appearing in the session's used set.
	ErrRotatedConcurrently = errors.Wrap(errors.ErrConflict, "refresh token rotated concurrently")

	// ErrStoreUnavailable indicates the session store could not be reached.
	ErrStoreUnavailable = errors.Wrap(errors.ErrUnavailable, "session store unavailable")

	// ErrUnknownRole indicates a role name outside the known set.
	ErrUnknownRole = errors.Wrap(errors.ErrInvalidInput, "unknown role")

	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrSessionNotFound indicates a session id with no metadata.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")
)

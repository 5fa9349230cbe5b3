// Package service provides technical services for the authentication subsystem.
//
// This package implements the signed access-token codec (issue and verify) and
// signing-key loading, including KMS-wrapped keys.
package service

import (
	"github.com/allisson/journal/internal/auth/domain"
)

// TokenCodec issues and verifies signed access tokens.
// Implementations must embed the subject's identity, role, capabilities,
// session id and generation, and enforce the validity window on verify.
type TokenCodec interface {
	// Issue creates a signed access token for the subject.
	// Fails only on signing-key errors.
	Issue(subject domain.TokenSubject) (*domain.AccessToken, error)

	// Verify checks the token's signature and validity window and extracts the
	// principal. The principal's capability set is the resolved union of role
	// defaults and grants embedded in the token.
	//
	// Returns domain.ErrTokenMalformed, domain.ErrTokenExpired or
	// domain.ErrIncompleteClaims on failure.
	Verify(token string) (*domain.Principal, error)

	// JWKS returns the JSON Web Key Set document describing the verification
	// key, for publication to token consumers.
	JWKS() ([]byte, error)
}

// Package service provides password hashing for user credentials using Argon2id.
package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/journal/internal/errors"
)

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// Hash hashes a plain text password using Argon2id.
	Hash(plainPassword string) (string, error)

	// Compare performs a constant-time comparison between a plain password and its hash.
	Compare(plainPassword, passwordHash string) bool
}

// passwordService implements PasswordService using Argon2id.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a new PasswordService instance.
// Uses the Interactive policy, tuned for login-path latency.
func NewPasswordService() PasswordService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyInteractive),
	)
	if err != nil {
		// This should never happen with a valid policy
		panic(err)
	}

	return &passwordService{
		hasher: hasher,
	}
}

// Hash hashes a plain text password using Argon2id.
func (p *passwordService) Hash(plainPassword string) (string, error) {
	passwordHash, err := p.hasher.Hash([]byte(plainPassword))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return passwordHash, nil
}

// Compare performs a constant-time comparison between a plain password and its hash.
func (p *passwordService) Compare(plainPassword, passwordHash string) bool {
	ok, err := p.hasher.Verify([]byte(plainPassword), passwordHash)
	if err != nil {
		return false
	}
	return ok
}

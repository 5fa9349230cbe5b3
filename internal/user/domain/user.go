// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	authDomain "github.com/allisson/journal/internal/auth/domain"
	"github.com/allisson/journal/internal/errors"
)

// User represents a user in the system
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         authDomain.Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same username already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrUserInactive indicates the user account has been deactivated.
	ErrUserInactive = errors.Wrap(errors.ErrUnauthorized, "user is inactive")

	// ErrUsernameRequired indicates the username field is required.
	ErrUsernameRequired = errors.Wrap(errors.ErrInvalidInput, "username is required")

	// ErrPasswordRequired indicates the password field is required.
	ErrPasswordRequired = errors.Wrap(errors.ErrInvalidInput, "password is required")

	// ErrWrongPassword indicates the current password check failed.
	ErrWrongPassword = errors.Wrap(errors.ErrUnauthorized, "wrong password")
)

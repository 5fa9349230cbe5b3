// Package dto provides data transfer objects for user HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/journal/internal/validation"
)

// RegisterUserRequest contains the fields to register a new user.
// The use case applies the full username and password policy; this only
// rejects obviously malformed requests early.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks if the register request is valid.
func (r *RegisterUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
		),
		validation.Field(&r.Role,
			validation.Required,
			validation.In("admin", "author"),
		),
	)
}

// UpdateUserRequest contains the mutable fields of a user. Nil fields are
// left unchanged.
type UpdateUserRequest struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// Validate checks if the update request is valid.
func (r *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Role,
			validation.NilOrNotEmpty,
			validation.In("admin", "author"),
		),
	)
}

// ChangePasswordRequest contains the credentials for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate checks if the change password request is valid.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CurrentPassword,
			validation.Required,
		),
		validation.Field(&r.NewPassword,
			validation.Required,
		),
	)
}

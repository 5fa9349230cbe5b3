// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"log/slog"

	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/journal/internal/auth/domain"
	"github.com/allisson/journal/internal/database"
	apperrors "github.com/allisson/journal/internal/errors"
	"github.com/allisson/journal/internal/user/domain"
	"github.com/allisson/journal/internal/user/service"
	appValidation "github.com/allisson/journal/internal/validation"
)

// RegisterUserInput contains the input data for user registration
type RegisterUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserInput contains the mutable user fields for an update
type UpdateUserInput struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// ChangePasswordInput contains the input data for a password change
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ListUsersOutput carries one page of users plus the cursor for the next page
type ListUsersOutput struct {
	Users      []*domain.User
	NextCursor string
}

// UseCase defines the interface for user business logic operations
type UseCase interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, encodedCursor string, limit int) (*ListUsersOutput, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, input ChangePasswordInput) error
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, cursor *domain.ListCursor, limit int) ([]*domain.User, error)
}

// SessionRevoker invalidates every outstanding credential of a user.
type SessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// UserUseCase handles user-related business logic
type UserUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	passwordService service.PasswordService
	sessionRevoker  SessionRevoker
	logger          *slog.Logger
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	passwordService service.PasswordService,
	sessionRevoker SessionRevoker,
	logger *slog.Logger,
) *UserUseCase {
	return &UserUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		passwordService: passwordService,
		sessionRevoker:  sessionRevoker,
		logger:          logger,
	}
}

// validateRegisterUserInput validates the registration input
func (uc *UserUseCase) validateRegisterUserInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			appValidation.Username,
			validation.Length(3, 50).Error("username must be between 3 and 50 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
		validation.Field(&input.Role,
			validation.Required.Error("role is required"),
			validation.In(string(authDomain.AdminRole), string(authDomain.AuthorRole)).
				Error("role must be admin or author"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a new active user with a hashed password
func (uc *UserUseCase) Register(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	if err := uc.validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	role, err := authDomain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	passwordHash, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// Get retrieves a user by ID
func (uc *UserUseCase) Get(ctx context.Context, id int64) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// List returns one page of users. An empty cursor starts from the beginning;
// the returned NextCursor is empty on the last page.
func (uc *UserUseCase) List(ctx context.Context, encodedCursor string, limit int) (*ListUsersOutput, error) {
	var cursor *domain.ListCursor
	if encodedCursor != "" {
		decoded, err := domain.DecodeListCursor(encodedCursor)
		if err != nil {
			return nil, err
		}
		cursor = decoded
	}

	users, err := uc.userRepo.List(ctx, cursor, limit)
	if err != nil {
		return nil, err
	}

	output := &ListUsersOutput{Users: users}
	if len(users) == limit {
		last := users[len(users)-1]
		output.NextCursor = domain.ListCursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
	}
	return output, nil
}

// Update applies role and activation changes. Deactivating a user also
// revokes every session they hold.
func (uc *UserUseCase) Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	if input.Role != nil {
		if _, err := authDomain.ParseRole(*input.Role); err != nil {
			return nil, err
		}
	}

	var user *domain.User
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Role != nil {
			current.Role = authDomain.Role(*input.Role)
		}
		if input.IsActive != nil {
			current.IsActive = *input.IsActive
		}

		if err := uc.userRepo.Update(ctx, current); err != nil {
			return err
		}
		user = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.IsActive != nil && !*input.IsActive {
		if err := uc.sessionRevoker.RevokeAllForUser(ctx, id); err != nil {
			return nil, apperrors.Wrap(err, "user deactivated but session revocation failed")
		}
	}

	return user, nil
}

// validateChangePasswordInput validates the password change input
func (uc *UserUseCase) validateChangePasswordInput(input ChangePasswordInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.CurrentPassword,
			validation.Required.Error("current_password is required"),
		),
		validation.Field(&input.NewPassword,
			validation.Required.Error("new_password is required"),
			validation.Length(8, 128).Error("new_password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// ChangePassword replaces the user's password and revokes all their sessions
// so credentials stolen before the change die immediately.
func (uc *UserUseCase) ChangePassword(ctx context.Context, userID int64, input ChangePasswordInput) error {
	if err := uc.validateChangePasswordInput(input); err != nil {
		return err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !uc.passwordService.Compare(input.CurrentPassword, user.PasswordHash) {
		return domain.ErrWrongPassword
	}

	passwordHash, err := uc.passwordService.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	if err := uc.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	if err := uc.sessionRevoker.RevokeAllForUser(ctx, userID); err != nil {
		return apperrors.Wrap(err, "password changed but session revocation failed")
	}

	uc.logger.Info("user password changed", slog.Int64("user_id", userID))
	return nil
}

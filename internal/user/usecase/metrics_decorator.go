package usecase

import (
	"context"
	"time"

	"github.com/allisson/journal/internal/metrics"
	"github.com/allisson/journal/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Register records metrics for user registration operations.
func (u *userUseCaseWithMetrics) Register(
	ctx context.Context,
	input RegisterUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "users", "user_register", status)
	u.metrics.RecordDuration(ctx, "users", "user_register", time.Since(start), status)

	return user, err
}

// Get records metrics for user retrieval operations.
func (u *userUseCaseWithMetrics) Get(ctx context.Context, id int64) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "users", "user_get", status)
	u.metrics.RecordDuration(ctx, "users", "user_get", time.Since(start), status)

	return user, err
}

// List records metrics for user list operations.
func (u *userUseCaseWithMetrics) List(
	ctx context.Context,
	encodedCursor string,
	limit int,
) (*ListUsersOutput, error) {
	start := time.Now()
	output, err := u.next.List(ctx, encodedCursor, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "users", "user_list", status)
	u.metrics.RecordDuration(ctx, "users", "user_list", time.Since(start), status)

	return output, err
}

// Update records metrics for user update operations.
func (u *userUseCaseWithMetrics) Update(
	ctx context.Context,
	id int64,
	input UpdateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Update(ctx, id, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "users", "user_update", status)
	u.metrics.RecordDuration(ctx, "users", "user_update", time.Since(start), status)

	return user, err
}

// ChangePassword records metrics for password change operations.
func (u *userUseCaseWithMetrics) ChangePassword(
	ctx context.Context,
	userID int64,
	input ChangePasswordInput,
) error {
	start := time.Now()
	err := u.next.ChangePassword(ctx, userID, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "users", "password_change", status)
	u.metrics.RecordDuration(ctx, "users", "password_change", time.Since(start), status)

	return err
}

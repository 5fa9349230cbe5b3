// Package http provides HTTP handlers for user management operations.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/journal/internal/auth/http"
	apperrors "github.com/allisson/journal/internal/errors"
	"github.com/allisson/journal/internal/httputil"
	"github.com/allisson/journal/internal/user/http/dto"
	"github.com/allisson/journal/internal/user/usecase"
	customValidation "github.com/allisson/journal/internal/validation"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterHandler registers a new user.
// POST /api/v1/users - Requires the users:create capability.
// Returns 201 Created with the user, 409 on a duplicate username.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterUserRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Register(c.Request.Context(), usecase.RegisterUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// GetMeHandler returns the authenticated user's own record.
// GET /api/v1/users/me - Requires authentication.
func (h *UserHandler) GetMeHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok || principal == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	user, err := h.userUseCase.Get(c.Request.Context(), principal.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// ChangePasswordHandler changes the authenticated user's password.
// POST /api/v1/users/me/password - Requires authentication.
// Every session of the user is revoked on success, the client must log in again.
// Returns 204 No Content, 401 on a wrong current password.
func (h *UserHandler) ChangePasswordHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok || principal == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.ChangePasswordRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	err := h.userUseCase.ChangePassword(c.Request.Context(), principal.UserID, usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListHandler lists users with cursor pagination.
// GET /api/v1/users?cursor=&limit= - Requires the users:read capability.
// Returns 200 OK with the page and the cursor for the next one.
func (h *UserHandler) ListHandler(c *gin.Context) {
	limit, err := httputil.ParseLimit(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	output, err := h.userUseCase.List(c.Request.Context(), c.Query("cursor"), limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserListResponse(output.Users, output.NextCursor))
}

// GetHandler returns a user by id.
// GET /api/v1/users/:id - Requires the users:read capability.
func (h *UserHandler) GetHandler(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateHandler updates a user's role or active flag.
// PATCH /api/v1/users/:id - Requires the users:update capability.
// Deactivating a user revokes all of their sessions.
func (h *UserHandler) UpdateHandler(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateUserRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Update(c.Request.Context(), id, usecase.UpdateUserInput{
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func parseUserID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid user id: must be a positive integer")
	}
	return id, nil
}

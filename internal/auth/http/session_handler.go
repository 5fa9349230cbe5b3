package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/journal/internal/auth/http/dto"
	"github.com/allisson/journal/internal/auth/service"
	authUseCase "github.com/allisson/journal/internal/auth/usecase"
	apperrors "github.com/allisson/journal/internal/errors"
	"github.com/allisson/journal/internal/httputil"
	customValidation "github.com/allisson/journal/internal/validation"
)

// SessionHandler handles HTTP requests for the session lifecycle.
// It coordinates login, refresh rotation and revocation with the SessionUseCase.
type SessionHandler struct {
	sessionUseCase authUseCase.SessionUseCase
	codec          service.TokenCodec
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(
	sessionUseCase authUseCase.SessionUseCase,
	codec service.TokenCodec,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		codec:          codec,
		logger:         logger,
	}
}

// LoginHandler verifies credentials and opens a new session.
// POST /api/v1/auth/login - No authentication required (this is the authentication endpoint).
// Returns 200 OK with an access/refresh token pair.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

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

	input := &authUseCase.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	}

	pair, err := h.sessionUseCase.Login(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewTokenPairResponse(pair))
}

// RefreshHandler rotates a refresh credential into a new token pair.
// POST /api/v1/auth/refresh - No authentication required (the refresh token is the credential).
// Returns 200 OK with the new pair, 401 on an invalid or revoked credential,
// 409 when a concurrent rotation won the race.
func (h *SessionHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest

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

	pair, err := h.sessionUseCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewTokenPairResponse(pair))
}

// LogoutHandler revokes the caller's own session.
// POST /api/v1/auth/logout - Requires authentication.
// Returns 204 No Content.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok || principal == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.sessionUseCase.Logout(c.Request.Context(), principal); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSessionsHandler lists the caller's sessions with client metadata.
// GET /api/v1/auth/sessions - Requires authentication.
// Returns 200 OK with the session list.
func (h *SessionHandler) ListSessionsHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok || principal == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	sessions, err := h.sessionUseCase.ListSessions(c.Request.Context(), principal)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionListResponse(sessions))
}

// RevokeSessionHandler revokes a single session by id.
// DELETE /api/v1/auth/sessions/:id - Requires authentication. Allowed for the
// session owner or principals holding the users:update capability.
// Returns 204 No Content, 403 for another user's session, 404 when unknown.
func (h *SessionHandler) RevokeSessionHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok || principal == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	sessionID := c.Param("id")
	if sessionID == "" {
		httputil.HandleBadRequestGin(c, errors.New("session id is required"), h.logger)
		return
	}

	if err := h.sessionUseCase.RevokeSession(c.Request.Context(), principal, sessionID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// KeysHandler publishes the JSON Web Key Set used to verify access tokens.
// GET /api/v1/auth/keys - No authentication required.
// Returns 200 OK with the JWKS document.
func (h *SessionHandler) KeysHandler(c *gin.Context) {
	jwks, err := h.codec.JWKS()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusOK, "application/json", jwks)
}

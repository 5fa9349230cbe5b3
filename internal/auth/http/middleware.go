package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/journal/internal/auth/usecase"
	apperrors "github.com/allisson/journal/internal/errors"
	"github.com/allisson/journal/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via a Bearer access token
// in the Authorization header.
//
// The middleware:
//  1. Extracts the Bearer token from the Authorization header (case-insensitive)
//  2. Verifies it with Authenticator.Authenticate, which also checks the
//     session and generation revocation state
//  3. Stores the authenticated principal in the request context for
//     downstream handlers via GetPrincipal()
//
// Error handling:
//   - Missing or malformed Authorization header -> 401 Unauthorized
//   - Malformed/expired token, revoked session or generation -> 401 Unauthorized
//   - Session store unreachable -> 503 Service Unavailable
func AuthenticationMiddleware(
	authenticator authUseCase.Authenticator,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := authHeader[len(bearerPrefix):]
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		principal, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalAuthenticationMiddleware authenticates the request when a Bearer
// token is present but lets anonymous requests through. Used on public read
// endpoints where an authenticated principal unlocks extra visibility.
func OptionalAuthenticationMiddleware(
	authenticator authUseCase.Authenticator,
	logger *slog.Logger,
) gin.HandlerFunc {
	authenticate := AuthenticationMiddleware(authenticator, logger)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		authenticate(c)
	}
}

// RequireCapability authorizes the authenticated principal for a single
// capability. MUST be used after AuthenticationMiddleware.
//
// Error handling:
//   - No principal in context -> 401 Unauthorized
//   - Principal lacks the capability -> 403 Forbidden
func RequireCapability(resource, action string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || principal == nil {
			logger.Debug("authorization failed: no authenticated principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !principal.HasCapability(resource, action) {
			logger.Debug("authorization failed: insufficient capabilities",
				slog.Int64("user_id", principal.UserID),
				slog.String("resource", resource),
				slog.String("action", action))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

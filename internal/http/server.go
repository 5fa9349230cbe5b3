// Package http provides the API HTTP server, routing and shared middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	articleHTTP "github.com/allisson/journal/internal/article/http"
	authHTTP "github.com/allisson/journal/internal/auth/http"
	authUseCase "github.com/allisson/journal/internal/auth/usecase"
	"github.com/allisson/journal/internal/config"
	"github.com/allisson/journal/internal/metrics"
	userHTTP "github.com/allisson/journal/internal/user/http"
)

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates the API server and mounts every route.
// meterProvider may be nil when metrics are disabled.
func NewServer(
	cfg *config.Config,
	sessionHandler *authHTTP.SessionHandler,
	userHandler *userHTTP.UserHandler,
	articleHandler *articleHTTP.ArticleHandler,
	authenticator authUseCase.Authenticator,
	meterProvider metric.MeterProvider,
	logger *slog.Logger,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", healthHandler)
	router.GET("/ready", readinessHandler)

	authenticate := authHTTP.AuthenticationMiddleware(authenticator, logger)
	optionalAuthenticate := authHTTP.OptionalAuthenticationMiddleware(authenticator, logger)

	// Per-user limiter for authenticated endpoints, per-IP for credential endpoints
	rateLimit := noopMiddleware()
	if cfg.RateLimitEnabled {
		rateLimit = authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger)
	}
	loginRateLimit := noopMiddleware()
	if cfg.RateLimitLoginEnabled {
		loginRateLimit = authHTTP.LoginRateLimitMiddleware(
			cfg.RateLimitLoginRequestsPerSec,
			cfg.RateLimitLoginBurst,
			logger,
		)
	}

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/login", loginRateLimit, sessionHandler.LoginHandler)
		auth.POST("/refresh", loginRateLimit, sessionHandler.RefreshHandler)
		auth.GET("/keys", sessionHandler.KeysHandler)

		auth.POST("/logout", authenticate, rateLimit, sessionHandler.LogoutHandler)
		auth.GET("/sessions", authenticate, rateLimit, sessionHandler.ListSessionsHandler)
		auth.DELETE("/sessions/:id", authenticate, rateLimit, sessionHandler.RevokeSessionHandler)
	}

	users := api.Group("/users", authenticate, rateLimit)
	{
		users.POST("", authHTTP.RequireCapability("users", "create", logger), userHandler.RegisterHandler)
		users.GET("", authHTTP.RequireCapability("users", "read", logger), userHandler.ListHandler)
		users.GET("/me", userHandler.GetMeHandler)
		users.POST("/me/password", userHandler.ChangePasswordHandler)
		users.GET("/:id", authHTTP.RequireCapability("users", "read", logger), userHandler.GetHandler)
		users.PATCH("/:id", authHTTP.RequireCapability("users", "update", logger), userHandler.UpdateHandler)
	}

	articles := api.Group("/articles")
	{
		// Reads are public, draft visibility depends on the optional principal
		articles.GET("", optionalAuthenticate, articleHandler.ListHandler)
		articles.GET("/:id", optionalAuthenticate, articleHandler.GetHandler)
		articles.GET("/slug/:slug", optionalAuthenticate, articleHandler.GetBySlugHandler)

		articles.POST("", authenticate, rateLimit,
			authHTTP.RequireCapability("articles", "create", logger), articleHandler.CreateHandler)
		articles.PATCH("/:id", authenticate, rateLimit, articleHandler.UpdateHandler)
		articles.DELETE("/:id", authenticate, rateLimit, articleHandler.DeleteHandler)
		articles.POST("/:id/publish", authenticate, rateLimit,
			authHTTP.RequireCapability("articles", "publish", logger), articleHandler.PublishHandler)
	}

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router: router,
		logger: logger,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func readinessHandler(c *gin.Context) {
	select {
	case <-c.Request.Context().Done():
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

func noopMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

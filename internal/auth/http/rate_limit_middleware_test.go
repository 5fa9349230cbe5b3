package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authDomain "github.com/allisson/journal/internal/auth/domain"
)

func setupRateLimitRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.GET("/limited",
		func(c *gin.Context) {
			userID := int64(1)
			if c.GetHeader("X-Test-User") == "other" {
				userID = 2
			}
			withTestPrincipal(c, testPrincipal(userID, authDomain.AuthorRole))
			c.Next()
		},
		RateLimitMiddleware(rps, burst, logger),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		},
	)

	return router
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("Success_WithinLimit", func(t *testing.T) {
		router := setupRateLimitRouter(t, 10, 5)

		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("Error_BurstExceeded", func(t *testing.T) {
		router := setupRateLimitRouter(t, 0.001, 2)

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("Success_UsersLimitedIndependently", func(t *testing.T) {
		router := setupRateLimitRouter(t, 0.001, 1)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		// A different user has its own bucket
		w = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.Header.Set("X-Test-User", "other")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_NoPrincipal", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		router := gin.New()
		router.GET("/limited", RateLimitMiddleware(10, 5, logger), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLoginRateLimitMiddleware(t *testing.T) {
	t.Run("Error_PerIPBurstExceeded", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		router := gin.New()
		router.POST("/login", LoginRateLimitMiddleware(0.001, 1, logger), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.10:1234"

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("Success_DistinctIPsIndependent", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		router := gin.New()
		router.POST("/login", LoginRateLimitMiddleware(0.001, 1, logger), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		first := httptest.NewRequest(http.MethodPost, "/login", nil)
		first.RemoteAddr = "192.0.2.10:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, first)
		assert.Equal(t, http.StatusOK, w.Code)

		second := httptest.NewRequest(http.MethodPost, "/login", nil)
		second.RemoteAddr = "192.0.2.20:1234"
		w = httptest.NewRecorder()
		router.ServeHTTP(w, second)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Success_BucketRefills", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		router := gin.New()
		router.POST("/login", LoginRateLimitMiddleware(100, 1, logger), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.30:1234"

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		time.Sleep(20 * time.Millisecond)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

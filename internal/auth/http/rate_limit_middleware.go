package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/journal/internal/errors"
	"github.com/allisson/journal/internal/httputil"
)

// rateLimiterStore holds per-key rate limiters with automatic cleanup.
type rateLimiterStore struct {
	limiters sync.Map // map[any]*rateLimiterEntry
	rps      float64
	burst    int
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

func newRateLimiterStore(rps float64, burst int) *rateLimiterStore {
	store := &rateLimiterStore{
		rps:   rps,
		burst: burst,
	}

	// Start cleanup goroutine for stale limiters (every 5 minutes)
	go store.cleanupStale(context.Background(), 5*time.Minute)

	return store
}

// RateLimitMiddleware enforces per-user rate limiting on authenticated requests.
//
// MUST be used after AuthenticationMiddleware (requires principal in context).
// Uses token bucket algorithm via golang.org/x/time/rate. Each user gets an
// independent limiter keyed by user ID.
//
// Returns:
//   - 429 Too Many Requests: Rate limit exceeded (includes Retry-After header)
//   - Continues: Request allowed within rate limit
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newRateLimiterStore(rps, burst)

	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || principal == nil {
			// Should never happen, authentication middleware runs first
			logger.Error("rate limit middleware: no authenticated principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !store.allow(c, principal.UserID, logger) {
			return
		}

		c.Next()
	}
}

// LoginRateLimitMiddleware enforces per-IP rate limiting on unauthenticated
// credential endpoints (login and refresh), slowing down brute-force and
// token-guessing attempts.
func LoginRateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newRateLimiterStore(rps, burst)

	return func(c *gin.Context) {
		if !store.allow(c, c.ClientIP(), logger) {
			return
		}

		c.Next()
	}
}

// allow checks the limiter for the key and writes the 429 response when the
// request is over the limit. Returns false when the request was rejected.
func (s *rateLimiterStore) allow(c *gin.Context, key any, logger *slog.Logger) bool {
	limiter := s.getLimiter(key)

	if !limiter.Allow() {
		reservation := limiter.Reserve()
		retryAfter := int(reservation.Delay().Seconds())
		reservation.Cancel()

		logger.Debug("rate limit exceeded",
			slog.Any("key", key),
			slog.Int("retry_after", retryAfter))

		c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":   "rate_limit_exceeded",
			"message": "Too many requests. Please retry after the specified delay.",
		})
		c.Abort()
		return false
	}

	return true
}

// getLimiter retrieves or creates a rate limiter for a key.
func (s *rateLimiterStore) getLimiter(key any) *rate.Limiter {
	if val, ok := s.limiters.Load(key); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(s.rps), s.burst)
	entry := &rateLimiterEntry{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	s.limiters.Store(key, entry)
	return limiter
}

// cleanupStale removes rate limiters that haven't been accessed recently.
// Runs periodically to prevent unbounded memory growth.
func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			threshold := time.Now().Add(-1 * time.Hour)
			s.limiters.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimiterEntry)
				entry.mu.Lock()
				shouldDelete := entry.lastAccess.Before(threshold)
				entry.mu.Unlock()

				if shouldDelete {
					s.limiters.Delete(key)
				}
				return true
			})
		}
	}
}

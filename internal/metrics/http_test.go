package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(t *testing.T) (*gin.Engine, *Provider) {
		t.Helper()

		provider, err := NewProvider("journal")
		require.NoError(t, err)
		t.Cleanup(func() {
			assert.NoError(t, provider.Shutdown(context.Background()))
		})

		router := gin.New()
		router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "journal"))
		return router, provider
	}

	t.Run("Success_RecordsRequest", func(t *testing.T) {
		router, _ := newRouter(t)
		router.GET("/articles", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"articles": []string{}})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/articles", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Success_RecordsMixedStatuses", func(t *testing.T) {
		router, _ := newRouter(t)
		router.POST("/articles", func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"id": 1})
		})
		router.GET("/broken", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
		})

		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/articles", nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusCreated, w.Code)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/broken", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Success_PathParamsUseRoutePattern", func(t *testing.T) {
		router, _ := newRouter(t)
		router.GET("/articles/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
		})

		// Different IDs collapse into one route label
		for _, id := range []string{"1", "2", "999"} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/articles/"+id, nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "RoutePattern", input: "/api/v1/articles/:id", expected: "/api/v1/articles/:id"},
		{name: "EmptyPath", input: "", expected: "unknown"},
		{name: "RootPath", input: "/", expected: "/"},
		{name: "WildcardPath", input: "/api/v1/files/*path", expected: "/api/v1/files/*path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizePath(tt.input))
		})
	}
}

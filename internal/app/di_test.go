package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/journal/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:            "127.0.0.1",
		ServerPort:            8080,
		DBDriver:              "postgres",
		LogLevel:              "info",
		SessionStoreBackend:   "memory",
		UsedNonceTTL:          7 * 24 * time.Hour,
		TokenSigningKeyHex:    strings.Repeat("ab", 32),
		TokenIssuer:           "journal",
		AccessTokenExpiration: 15 * time.Minute,
		MetricsEnabled:        false,
	}
}

func TestContainer_Config(t *testing.T) {
	cfg := testConfig()
	container := NewContainer(cfg)

	assert.Same(t, cfg, container.Config())
}

func TestContainer_Logger(t *testing.T) {
	container := NewContainer(testConfig())

	logger := container.Logger()
	require.NotNil(t, logger)

	// Same instance on every call
	assert.Same(t, logger, container.Logger())
}

func TestContainer_PasswordService(t *testing.T) {
	container := NewContainer(testConfig())

	service := container.PasswordService()
	require.NotNil(t, service)
	assert.Same(t, service, container.PasswordService())
}

func TestContainer_TokenCodec(t *testing.T) {
	t.Run("Success_HexSeed", func(t *testing.T) {
		container := NewContainer(testConfig())

		codec, err := container.TokenCodec()
		require.NoError(t, err)
		require.NotNil(t, codec)

		// Same instance on every call
		again, err := container.TokenCodec()
		require.NoError(t, err)
		assert.Same(t, codec, again)
	})

	t.Run("Error_MissingKey", func(t *testing.T) {
		cfg := testConfig()
		cfg.TokenSigningKeyHex = ""
		container := NewContainer(cfg)

		_, err := container.TokenCodec()
		assert.Error(t, err)

		// Error sticks on subsequent calls
		_, err = container.TokenCodec()
		assert.Error(t, err)
	})
}

func TestContainer_RevocationStore(t *testing.T) {
	t.Run("Success_MemoryBackend", func(t *testing.T) {
		container := NewContainer(testConfig())

		revocationStore, err := container.RevocationStore()
		require.NoError(t, err)
		assert.NotNil(t, revocationStore)
	})

	t.Run("Error_UnknownBackend", func(t *testing.T) {
		cfg := testConfig()
		cfg.SessionStoreBackend = "memcached"
		container := NewContainer(cfg)

		_, err := container.RevocationStore()
		assert.ErrorContains(t, err, "unsupported session store backend")
	})
}

func TestContainer_BusinessMetrics(t *testing.T) {
	t.Run("NoOpWhenDisabled", func(t *testing.T) {
		container := NewContainer(testConfig())

		businessMetrics, err := container.BusinessMetrics()
		require.NoError(t, err)
		assert.NotNil(t, businessMetrics)

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		assert.Nil(t, provider)
	})

	t.Run("RealWhenEnabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.MetricsEnabled = true
		cfg.MetricsNamespace = "journal"
		container := NewContainer(cfg)

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		assert.NotNil(t, provider)

		businessMetrics, err := container.BusinessMetrics()
		require.NoError(t, err)
		assert.NotNil(t, businessMetrics)
	})
}

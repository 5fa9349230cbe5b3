package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("Success_WithNamespace", func(t *testing.T) {
		provider, err := NewProvider("journal")

		require.NoError(t, err)
		require.NotNil(t, provider)
		assert.NotNil(t, provider.meterProvider)
		assert.NotNil(t, provider.exporter)
		assert.NotNil(t, provider.registry)
	})

	t.Run("Success_EmptyNamespace", func(t *testing.T) {
		provider, err := NewProvider("")

		require.NoError(t, err)
		assert.NotNil(t, provider)
	})
}

func TestProvider_MeterProvider(t *testing.T) {
	provider, err := NewProvider("journal")
	require.NoError(t, err)

	meterProvider := provider.MeterProvider()
	require.NotNil(t, meterProvider)

	// The provider hands out working meters
	meter := meterProvider.Meter("journal_test")
	counter, err := meter.Int64Counter("logins_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)
}

func TestProvider_Handler(t *testing.T) {
	provider, err := NewProvider("journal")
	require.NoError(t, err)

	assert.NotNil(t, provider.Handler())
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("Success_InitializedProvider", func(t *testing.T) {
		provider, err := NewProvider("journal")
		require.NoError(t, err)

		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	t.Run("Success_NilMeterProvider", func(t *testing.T) {
		provider := &Provider{meterProvider: nil}

		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}

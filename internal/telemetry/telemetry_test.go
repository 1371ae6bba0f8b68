package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enerflux/gridcast/internal/config"
)

func TestInit(t *testing.T) {
	t.Run("disabled returns nil provider", func(t *testing.T) {
		provider, err := Init(context.Background(), &config.TelemetryConfig{Enabled: false})
		require.NoError(t, err)
		assert.Nil(t, provider)
	})

	t.Run("stdout exporter without endpoint", func(t *testing.T) {
		provider, err := Init(context.Background(), &config.TelemetryConfig{Enabled: true})
		require.NoError(t, err)
		require.NotNil(t, provider)
		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}

func TestProviderShutdownNilSafe(t *testing.T) {
	var provider *Provider
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestTracer(t *testing.T) {
	assert.NotNil(t, Tracer())
}

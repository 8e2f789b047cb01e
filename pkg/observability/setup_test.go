package observability

import (
	"testing"

	"github.com/raywall/fast-lambda-toolkit/pkg/config"
	"github.com/raywall/fast-lambda-toolkit/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMetrics(t *testing.T) {
	t.Run("Disabled returns Noop", func(t *testing.T) {
		cfg := config.MetricsConf{
			Datadog: config.DatadogConf{Enabled: false},
		}

		provider, err := SetupMetrics(cfg)
		require.NoError(t, err)
		assert.IsType(t, &NoopProvider{}, provider)
	})

	t.Run("Enabled returns Datadog", func(t *testing.T) {
		cfg := config.MetricsConf{
			Datadog: config.DatadogConf{
				Enabled:   true,
				Addr:      "localhost:8125",
				Namespace: "lambda.",
			},
		}

		provider, err := SetupMetrics(cfg)
		require.NoError(t, err)
		require.IsType(t, &DatadogProvider{}, provider)
		assert.NoError(t, provider.Count(metrics.FunctionSucceeded, 1, nil))
		assert.NoError(t, provider.(*DatadogProvider).Close())
	})
}

func TestMemoryProvider(t *testing.T) {
	m := &MemoryProvider{}
	tags := []string{metrics.Tag("handler_name", "h")}

	require.NoError(t, m.Count(metrics.FunctionFailed, 1, tags))
	require.NoError(t, m.Count(metrics.FunctionFailed, 1, tags))
	require.NoError(t, m.Histogram(metrics.FunctionDuration, 12.5, nil))

	assert.Equal(t, 2.0, m.Total(metrics.FunctionFailed))
	assert.Equal(t, 0.0, m.Total(metrics.FunctionSucceeded))
	require.Len(t, m.Points, 3)
	assert.Equal(t, "histogram", m.Points[2].Kind)
	assert.Equal(t, tags, m.Points[0].Tags)
}

package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{Enabled: false}, zap.NewNop())

	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(context.Background()))
	assert.NoError(t, mp.ForceFlush(context.Background()))
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())

	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(context.Background()))
	assert.NoError(t, tp.ForceFlush(context.Background()))
}

func TestMetricHelpers(t *testing.T) {
	meter := otel.GetMeterProvider().Meter("test")
	ctx := context.Background()

	t.Run("counter", func(t *testing.T) {
		counter, err := NewCounter(meter, "test_total", "test counter", "{item}")
		require.NoError(t, err)

		counter.Inc(ctx)
		counter.Add(ctx, 5, AttrMatchMode.String("exact"))
	})

	t.Run("histogram with boundaries", func(t *testing.T) {
		histogram, err := NewHistogram(meter, HistogramOpts{
			Name:        "test_duration_seconds",
			Description: "test histogram",
			Unit:        "s",
			Boundaries:  DBDurationBuckets,
		})
		require.NoError(t, err)

		histogram.Record(ctx, 0.042)
		histogram.RecordDuration(ctx, 15*time.Millisecond)
	})

	t.Run("gauge", func(t *testing.T) {
		gauge, err := NewGauge(meter, "test_open", "test gauge", "{package}")
		require.NoError(t, err)

		gauge.Record(ctx, 3)
	})

	t.Run("float gauge", func(t *testing.T) {
		gauge, err := NewFloatGauge(meter, "test_value", "test float gauge", "USD")
		require.NoError(t, err)

		gauge.Record(ctx, 123.45)
	})
}

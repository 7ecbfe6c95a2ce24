package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

type fakePoolProvider struct {
	openPackages int64
	observations int64
	err          error
}

func (p *fakePoolProvider) CountOpenPackages(ctx context.Context) (int64, error) {
	return p.openPackages, p.err
}

func (p *fakePoolProvider) CountObservations(ctx context.Context) (int64, error) {
	return p.observations, p.err
}

func TestNewEngineMetrics(t *testing.T) {
	t.Run("requires a meter", func(t *testing.T) {
		_, err := NewEngineMetrics(EngineMetricsConfig{})
		assert.ErrorIs(t, err, ErrMeterNil)
	})

	t.Run("creates all instruments", func(t *testing.T) {
		em, err := NewEngineMetrics(EngineMetricsConfig{
			Meter: otel.GetMeterProvider().Meter("test"),
		})

		require.NoError(t, err)
		assert.NotNil(t, em.recommendationRequestsTotal)
		assert.NotNil(t, em.packageProposalsTotal)
		assert.NotNil(t, em.packagesCommittedTotal)
		assert.NotNil(t, em.engineDuration)
		assert.NotNil(t, em.openPackagesCount)
		assert.NotNil(t, em.observationPoolCount)
	})
}

func TestEngineMetrics_Record(t *testing.T) {
	em, err := NewEngineMetrics(EngineMetricsConfig{
		Meter: otel.GetMeterProvider().Meter("test"),
	})
	require.NoError(t, err)

	ctx := context.Background()

	// No-op meter: recording must not panic
	em.RecordRecommendationRequest(ctx, "exact", 25*time.Millisecond)
	em.RecordRecommendationRequest(ctx, "search", 10*time.Millisecond)
	em.RecordPackageProposal(ctx, 40*time.Millisecond)
	em.RecordPackageCommitted(ctx, "Alpha Returns")
}

func TestEngineMetrics_PeriodicCollection(t *testing.T) {
	t.Run("collect reads from the provider", func(t *testing.T) {
		provider := &fakePoolProvider{openPackages: 3, observations: 120}
		em, err := NewEngineMetrics(EngineMetricsConfig{
			Meter:        otel.GetMeterProvider().Meter("test"),
			PoolProvider: provider,
		})
		require.NoError(t, err)

		em.collect()
	})

	t.Run("collect tolerates provider errors", func(t *testing.T) {
		provider := &fakePoolProvider{err: errors.New("db down")}
		em, err := NewEngineMetrics(EngineMetricsConfig{
			Meter:        otel.GetMeterProvider().Meter("test"),
			PoolProvider: provider,
		})
		require.NoError(t, err)

		em.collect()
	})

	t.Run("start without provider is a no-op", func(t *testing.T) {
		em, err := NewEngineMetrics(EngineMetricsConfig{
			Meter: otel.GetMeterProvider().Meter("test"),
		})
		require.NoError(t, err)

		em.StartPeriodicCollection(time.Minute)
		em.Stop()
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		em, err := NewEngineMetrics(EngineMetricsConfig{
			Meter:        otel.GetMeterProvider().Meter("test"),
			PoolProvider: &fakePoolProvider{},
		})
		require.NoError(t, err)

		em.StartPeriodicCollection(time.Minute)
		em.Stop()
		em.Stop()
	})
}

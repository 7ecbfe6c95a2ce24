// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"go.opentelemetry.io/otel/metric"
)

// EngineMetrics provides business metrics for the return optimization
// engine. It tracks recommendation and proposal activity, and the size
// of the shared pricing pool.
type EngineMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	recommendationRequestsTotal *Counter
	packageProposalsTotal       *Counter
	packagesCommittedTotal      *Counter

	// Distribution metrics
	engineDuration *Histogram

	// Gauge metrics (point-in-time values)
	openPackagesCount    *Gauge
	observationPoolCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	provider EnginePoolProvider
}

// EnginePoolProvider provides aggregate pool data for periodic metrics
// collection. The interface keeps the telemetry layer off the domain
// repositories.
type EnginePoolProvider interface {
	// CountOpenPackages returns the number of OPEN packages across all pharmacies
	CountOpenPackages(ctx context.Context) (int64, error)

	// CountObservations returns the size of the global pricing pool
	CountObservations(ctx context.Context) (int64, error)
}

// EngineMetricsConfig holds configuration for engine metrics.
type EngineMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	PoolProvider    EnginePoolProvider
}

// MetricsError describes a failure constructing a metric instrument
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewEngineMetrics", Err: "meter cannot be nil"}

// NewEngineMetrics creates a new EngineMetrics instance.
func NewEngineMetrics(cfg EngineMetricsConfig) (*EngineMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	em := &EngineMetrics{
		meter:    cfg.Meter,
		logger:   logger,
		stopChan: make(chan struct{}),
		provider: cfg.PoolProvider,
	}

	var err error

	em.recommendationRequestsTotal, err = NewCounter(cfg.Meter,
		"engine_recommendation_requests_total",
		"Total number of recommendation report requests",
		"{request}")
	if err != nil {
		return nil, err
	}

	em.packageProposalsTotal, err = NewCounter(cfg.Meter,
		"engine_package_proposals_total",
		"Total number of package proposals built",
		"{proposal}")
	if err != nil {
		return nil, err
	}

	em.packagesCommittedTotal, err = NewCounter(cfg.Meter,
		"engine_packages_committed_total",
		"Total number of return packages committed",
		"{package}")
	if err != nil {
		return nil, err
	}

	em.engineDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "engine_request_duration_seconds",
		Description: "Duration of optimization engine requests",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	em.openPackagesCount, err = NewGauge(cfg.Meter,
		"engine_open_packages",
		"Number of open return packages across all pharmacies",
		"{package}")
	if err != nil {
		return nil, err
	}

	em.observationPoolCount, err = NewGauge(cfg.Meter,
		"engine_observation_pool_size",
		"Number of price observations in the shared pricing pool",
		"{observation}")
	if err != nil {
		return nil, err
	}

	return em, nil
}

// RecordRecommendationRequest increments the recommendation request counter
func (em *EngineMetrics) RecordRecommendationRequest(ctx context.Context, mode string, duration time.Duration) {
	em.recommendationRequestsTotal.Inc(ctx, AttrMatchMode.String(mode))
	em.engineDuration.RecordDuration(ctx, duration, AttrMatchMode.String(mode))
}

// RecordPackageProposal increments the proposal counter
func (em *EngineMetrics) RecordPackageProposal(ctx context.Context, duration time.Duration) {
	em.packageProposalsTotal.Inc(ctx)
	em.engineDuration.RecordDuration(ctx, duration)
}

// RecordPackageCommitted increments the committed package counter
func (em *EngineMetrics) RecordPackageCommitted(ctx context.Context, distributorName string) {
	em.packagesCommittedTotal.Inc(ctx, AttrDistributorName.String(distributorName))
}

// StartPeriodicCollection starts the background pool gauge collector.
// Safe to call multiple times; only the first call starts the loop.
func (em *EngineMetrics) StartPeriodicCollection(interval time.Duration) {
	if em.provider == nil {
		em.logger.Debug("No pool provider configured, skipping periodic engine metrics")
		return
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	em.collectOnce.Do(func() {
		go em.collectLoop(interval)
	})
}

// Stop halts periodic collection
func (em *EngineMetrics) Stop() {
	em.stopOnce.Do(func() {
		close(em.stopChan)
	})
}

func (em *EngineMetrics) collectLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			em.collect()
		case <-em.stopChan:
			return
		}
	}
}

func (em *EngineMetrics) collect() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if count, err := em.provider.CountOpenPackages(ctx); err != nil {
		em.logger.Warn("failed to collect open package count", zap.Error(err))
	} else {
		em.openPackagesCount.Record(ctx, count)
	}

	if count, err := em.provider.CountObservations(ctx); err != nil {
		em.logger.Warn("failed to collect observation pool size", zap.Error(err))
	} else {
		em.observationPoolCount.Record(ctx, count)
	}
}

package telemetry

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetricsConfig holds configuration for database metrics collection.
type DBMetricsConfig struct {
	Enabled bool
	// SlowQueryThreshold marks queries above it as slow (default 200ms)
	SlowQueryThreshold time.Duration
	// PoolStatsInterval is how often pool stats are sampled (default 15s)
	PoolStatsInterval time.Duration
}

// DefaultDBMetricsConfig returns the default database metrics configuration.
func DefaultDBMetricsConfig() DBMetricsConfig {
	return DBMetricsConfig{
		Enabled:            true,
		SlowQueryThreshold: 200 * time.Millisecond,
		PoolStatsInterval:  15 * time.Second,
	}
}

// DBMetrics records query and connection-pool metrics for the store
// backing the engine. Query metrics come from a GORM plugin; pool stats
// are sampled periodically from the underlying sql.DB.
type DBMetrics struct {
	poolConnections    *Gauge
	poolConnectionsMax *Gauge
	queryTotal         *Counter
	queryDuration      *Histogram
	slowQueryTotal     *Counter

	config   DBMetricsConfig
	logger   *zap.Logger
	sqlDB    *sql.DB
	stopCh   chan struct{}
	wg       sync.WaitGroup
	mu       sync.RWMutex
	stopOnce sync.Once
}

// NewDBMetrics creates the metric instruments on the given meter.
func NewDBMetrics(meter metric.Meter, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThreshold == 0 {
		cfg.SlowQueryThreshold = 200 * time.Millisecond
	}
	if cfg.PoolStatsInterval == 0 {
		cfg.PoolStatsInterval = 15 * time.Second
	}

	poolConnections, err := NewGauge(meter,
		"db_pool_connections",
		"Number of connections in the pool by state",
		"{connection}")
	if err != nil {
		return nil, err
	}
	poolConnectionsMax, err := NewGauge(meter,
		"db_pool_connections_max",
		"Maximum number of connections in the pool",
		"{connection}")
	if err != nil {
		return nil, err
	}
	queryTotal, err := NewCounter(meter,
		"db_query_total",
		"Total number of database queries by operation type",
		"{query}")
	if err != nil {
		return nil, err
	}
	queryDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency distribution in seconds",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	slowQueryTotal, err := NewCounter(meter,
		"db_slow_query_total",
		"Total number of database queries above the slow threshold",
		"{query}")
	if err != nil {
		return nil, err
	}

	return &DBMetrics{
		poolConnections:    poolConnections,
		poolConnectionsMax: poolConnectionsMax,
		queryTotal:         queryTotal,
		queryDuration:      queryDuration,
		slowQueryTotal:     slowQueryTotal,
		config:             cfg,
		logger:             logger,
		stopCh:             make(chan struct{}),
	}, nil
}

// SetSQLDB sets the connection pool to sample. Must be called before
// StartPoolStatsCollection.
func (m *DBMetrics) SetSQLDB(sqlDB *sql.DB) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sqlDB = sqlDB
}

// StartPoolStatsCollection starts the periodic pool stats sampler.
// Call Stop to terminate it.
func (m *DBMetrics) StartPoolStatsCollection(ctx context.Context) {
	m.mu.RLock()
	sqlDB := m.sqlDB
	m.mu.RUnlock()

	if sqlDB == nil {
		m.logger.Warn("Cannot start pool stats collection: sqlDB not set")
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.config.PoolStatsInterval)
		defer ticker.Stop()

		m.collectPoolStats(ctx)
		for {
			select {
			case <-ticker.C:
				m.collectPoolStats(ctx)
			case <-m.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	m.logger.Info("Started database connection pool stats collection",
		zap.Duration("interval", m.config.PoolStatsInterval),
	)
}

func (m *DBMetrics) collectPoolStats(ctx context.Context) {
	m.mu.RLock()
	sqlDB := m.sqlDB
	m.mu.RUnlock()

	if sqlDB == nil {
		return
	}

	stats := sqlDB.Stats()
	m.poolConnectionsMax.Record(ctx, int64(stats.MaxOpenConnections))
	m.poolConnections.Record(ctx, int64(stats.Idle), AttrDBState.String("idle"))
	m.poolConnections.Record(ctx, int64(stats.InUse), AttrDBState.String("in_use"))
	m.poolConnections.Record(ctx, int64(stats.OpenConnections), AttrDBState.String("open"))
}

// Stop stops the pool stats sampler. Safe to call multiple times.
func (m *DBMetrics) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.wg.Wait()
		m.logger.Debug("Database metrics stopped")
	})
}

// RecordQuery records one completed query.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}

	m.queryTotal.Inc(ctx, AttrDBOperation.String(operation))
	m.queryDuration.RecordDuration(ctx, duration, AttrDBOperation.String(operation))

	if duration > m.config.SlowQueryThreshold {
		if table == "" {
			table = "unknown"
		}
		m.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
	}
}

// DBMetricsPlugin is a GORM plugin that feeds DBMetrics from query
// callbacks.
type DBMetricsPlugin struct {
	metrics *DBMetrics
	logger  *zap.Logger
}

// NewDBMetricsPlugin creates the GORM plugin for the given metrics.
func NewDBMetricsPlugin(metrics *DBMetrics, logger *zap.Logger) *DBMetricsPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBMetricsPlugin{metrics: metrics, logger: logger}
}

// Name returns the plugin name.
func (p *DBMetricsPlugin) Name() string {
	return "db_metrics"
}

// Initialize registers start-time and recording callbacks around every
// GORM operation type.
func (p *DBMetricsPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	registrations := []struct {
		register func(string, func(*gorm.DB)) error
		name     string
		fn       func(*gorm.DB)
	}{
		{cb.Create().Before("gorm:create").Register, "db_metrics:before_create", p.markStart},
		{cb.Create().After("gorm:create").Register, "db_metrics:after_create", p.recordAs("INSERT")},
		{cb.Query().Before("gorm:query").Register, "db_metrics:before_query", p.markStart},
		{cb.Query().After("gorm:query").Register, "db_metrics:after_query", p.recordAs("SELECT")},
		{cb.Update().Before("gorm:update").Register, "db_metrics:before_update", p.markStart},
		{cb.Update().After("gorm:update").Register, "db_metrics:after_update", p.recordAs("UPDATE")},
		{cb.Delete().Before("gorm:delete").Register, "db_metrics:before_delete", p.markStart},
		{cb.Delete().After("gorm:delete").Register, "db_metrics:after_delete", p.recordAs("DELETE")},
		{cb.Row().Before("gorm:row").Register, "db_metrics:before_row", p.markStart},
		{cb.Row().After("gorm:row").Register, "db_metrics:after_row", p.recordRaw},
		{cb.Raw().Before("gorm:raw").Register, "db_metrics:before_raw", p.markStart},
		{cb.Raw().After("gorm:raw").Register, "db_metrics:after_raw", p.recordRaw},
	}
	for _, r := range registrations {
		if err := r.register(r.name, r.fn); err != nil {
			return err
		}
	}

	p.logger.Info("Database metrics plugin initialized")
	return nil
}

func (p *DBMetricsPlugin) markStart(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	db.Statement.Context = context.WithValue(ctx, dbMetricsStartTimeKey, time.Now())
}

func (p *DBMetricsPlugin) recordAs(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		p.record(db, operation)
	}
}

// recordRaw handles Row and Raw callbacks, where the operation type is
// only known from the SQL text.
func (p *DBMetricsPlugin) recordRaw(db *gorm.DB) {
	p.record(db, detectOperationType(db.Statement.SQL.String()))
}

func (p *DBMetricsPlugin) record(db *gorm.DB, operation string) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}

	var duration time.Duration
	if startTime, ok := ctx.Value(dbMetricsStartTimeKey).(time.Time); ok {
		duration = time.Since(startTime)
	}

	p.metrics.RecordQuery(ctx, operation, db.Statement.Table, duration)
}

func detectOperationType(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))
	switch {
	case strings.HasPrefix(sql, "SELECT"):
		return "SELECT"
	case strings.HasPrefix(sql, "INSERT"):
		return "INSERT"
	case strings.HasPrefix(sql, "UPDATE"):
		return "UPDATE"
	case strings.HasPrefix(sql, "DELETE"):
		return "DELETE"
	default:
		return "OTHER"
	}
}

type dbMetricsContextKey string

const dbMetricsStartTimeKey dbMetricsContextKey = "db_metrics_start_time"

// RegisterDBMetrics creates database metrics and installs the query
// plugin on the GORM DB. Returns nil without error when metrics are
// disabled or the meter provider is not exporting. The caller owns the
// returned instance's lifecycle (call Stop on shutdown).
func RegisterDBMetrics(db *gorm.DB, meterProvider *MeterProvider, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if !cfg.Enabled {
		logger.Debug("Database metrics disabled, skipping registration")
		return nil, nil
	}
	if meterProvider == nil || !meterProvider.IsEnabled() {
		logger.Debug("MeterProvider not available, skipping database metrics")
		return nil, nil
	}

	metrics, err := NewDBMetrics(meterProvider.Meter("db.client"), cfg, logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	metrics.SetSQLDB(sqlDB)

	if err := db.Use(NewDBMetricsPlugin(metrics, logger)); err != nil {
		return nil, err
	}

	logger.Info("Database metrics registered",
		zap.Duration("slow_query_threshold", cfg.SlowQueryThreshold),
		zap.Duration("pool_stats_interval", cfg.PoolStatsInterval),
	)
	return metrics, nil
}

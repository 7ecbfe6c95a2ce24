package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rxreturns/backend/internal/infrastructure/telemetry"
)

// HTTPMetricsConfig holds configuration for the HTTP metrics middleware
type HTTPMetricsConfig struct {
	// MeterProvider is the OpenTelemetry meter provider
	MeterProvider *telemetry.MeterProvider
	// Enabled controls whether metrics collection is active
	Enabled bool
}

// httpMetrics holds the HTTP-level instruments
type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(
		meter,
		"http_server_request_total",
		"Total number of HTTP requests",
		"{request}",
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	responseSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_response_size_bytes",
		Description: "HTTP response body size distribution in bytes",
		Unit:        "By",
		Boundaries:  []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000},
	})
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http_server_active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		responseSize:    responseSize,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics returns a middleware that records request count, latency,
// response size and in-flight requests. Counter labels carry the route
// pattern rather than the raw path to bound cardinality.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.MeterProvider == nil || !cfg.MeterProvider.IsEnabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	meter := cfg.MeterProvider.Meter("http.server")
	instruments, err := newHTTPMetrics(meter)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return httpMetricsMiddleware(instruments)
}

// HTTPMetricsWithMeter returns HTTP metrics middleware using an
// existing meter. Useful in tests.
func HTTPMetricsWithMeter(meter metric.Meter, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	instruments, err := newHTTPMetrics(meter)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return httpMetricsMiddleware(instruments)
}

func httpMetricsMiddleware(instruments *httpMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		instruments.activeRequests.Add(ctx, 1)
		c.Next()
		instruments.activeRequests.Add(ctx, -1)

		duration := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}

		requestAttrs := []attribute.KeyValue{
			telemetry.AttrHTTPMethod.String(c.Request.Method),
			telemetry.AttrHTTPRoute.String(route),
			telemetry.AttrHTTPStatusCode.Int(c.Writer.Status()),
		}
		if pharmacyID := GetJWTPharmacyID(c); pharmacyID != "" {
			requestAttrs = append(requestAttrs, telemetry.AttrPharmacyID.String(pharmacyID))
		}
		instruments.requestTotal.Inc(ctx, requestAttrs...)

		baseAttrs := []attribute.KeyValue{
			telemetry.AttrHTTPMethod.String(c.Request.Method),
			telemetry.AttrHTTPRoute.String(route),
		}
		instruments.requestDuration.RecordDuration(ctx, duration, baseAttrs...)

		if size := c.Writer.Size(); size > 0 {
			instruments.responseSize.Record(ctx, float64(size), baseAttrs...)
		}
	}
}

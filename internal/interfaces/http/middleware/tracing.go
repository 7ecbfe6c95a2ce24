package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rxreturns/backend/internal/infrastructure/telemetry"
)

// TracingConfig holds configuration for the tracing middleware
type TracingConfig struct {
	// ServiceName identifies the service in trace data
	ServiceName string
	// Enabled controls whether tracing is active
	Enabled bool
}

// DefaultTracingConfig returns default tracing configuration
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "rxreturns-backend",
		Enabled:     true,
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig wraps otelgin and enriches each span with the
// request ID and, once authentication has run, the pharmacy and user
// claims. Span names follow otelgin's "METHOD route" pattern.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	base := otelgin.Middleware(cfg.ServiceName)

	return func(c *gin.Context) {
		base(c)

		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpan(c, span)
		}
	}
}

func enrichSpan(c *gin.Context, span trace.Span) {
	if requestID := c.GetString(RequestIDKey); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if pharmacyID := GetJWTPharmacyID(c); pharmacyID != "" {
		span.SetAttributes(attribute.String(telemetry.SpanAttrPharmacyID, pharmacyID))
	}
	if userID := GetJWTUserID(c); userID != "" {
		span.SetAttributes(attribute.String("user_id", userID))
	}
}

// TracingAttributeInjector injects claim attributes into the current
// span. Place it after both Tracing and JWT in the chain, since the
// claims are not in the context when the span is first created.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpan(c, span)
		}
		c.Next()
	}
}

// SpanErrorMarker marks spans with error status for 4xx/5xx responses.
// Place it after the Tracing middleware in the chain.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		statusCode := c.Writer.Status()
		if statusCode < http.StatusBadRequest {
			return
		}

		var message string
		switch {
		case statusCode >= http.StatusInternalServerError:
			message = "Internal Server Error"
		case statusCode == http.StatusUnauthorized:
			message = "Unauthorized"
		case statusCode == http.StatusNotFound:
			message = "Not Found"
		default:
			message = "Client Error"
		}

		span.SetStatus(codes.Error, message)
		span.SetAttributes(attribute.Int("http.status_code", statusCode))
	}
}

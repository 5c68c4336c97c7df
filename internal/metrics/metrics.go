// Package metrics provides Prometheus metrics collection for the pool flow service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// FlowCalculationsTotal counts calculation runs by outcome.
	FlowCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flow_calculations_total",
			Help: "Total number of flow rate calculations",
		},
		[]string{"status"},
	)

	// FlowCalculationDuration tracks calculation run duration.
	FlowCalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flow_calculation_duration_seconds",
			Help:    "Flow rate calculation duration in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	// ZonesPerRun tracks how many zones each run carries.
	ZonesPerRun = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flow_calculation_zones",
			Help:    "Number of zones per calculation run",
			Buckets: []float64{0, 1, 2, 3, 4, 6, 8, 16, 32, 64},
		},
	)

	// ExportsTotal counts exports by format and outcome.
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flow_exports_total",
			Help: "Total number of report exports",
		},
		[]string{"format", "status"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)

	// CircuitBreakerState is 0 for closed, 1 for open and 2 for half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)

	// AuditLogsDroppedTotal counts audit entries dropped because the buffer was full.
	AuditLogsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_logs_dropped_total",
			Help: "Total number of audit log entries dropped",
		},
	)

	// RateLimitedTotal counts requests rejected by the API rate limiter.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"key_type"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordFlowCalculation records metrics for one calculation run.
func RecordFlowCalculation(duration time.Duration, zones int, status string) {
	FlowCalculationDuration.Observe(duration.Seconds())
	ZonesPerRun.Observe(float64(zones))
	FlowCalculationsTotal.WithLabelValues(status).Inc()
}

// RecordExport records metrics for a report export.
func RecordExport(format, status string) {
	ExportsTotal.WithLabelValues(format, status).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// SetCircuitBreakerState publishes the numeric state of a named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordAuditLogDropped counts one dropped audit entry.
func RecordAuditLogDropped() {
	AuditLogsDroppedTotal.Inc()
}

// RecordRateLimited counts one rejected request. keyType is "subject" or "ip".
func RecordRateLimited(keyType string) {
	RateLimitedTotal.WithLabelValues(keyType).Inc()
}

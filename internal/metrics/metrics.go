// Package metrics holds the Prometheus instruments exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Engine metrics
	EngineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suraksha_engine_runs_total",
			Help: "Engine invocations by outcome (computed or fallback)",
		},
		[]string{"engine", "outcome"},
	)

	EngineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "suraksha_engine_duration_seconds",
			Help:    "Engine computation time in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"engine"},
	)

	EngineStageDegraded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suraksha_engine_stage_degraded_total",
			Help: "Sub-computations that fell back to their default value",
		},
		[]string{"engine", "stage"},
	)

	AnomalyVerdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suraksha_anomaly_verdicts_total",
			Help: "Anomaly verdicts by type (none when nothing fired)",
		},
		[]string{"type"},
	)

	RiskScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "suraksha_route_risk_score",
			Help:    "Distribution of route risk scores",
			Buckets: []float64{10, 20, 25, 30, 40, 50, 60, 75, 90, 100},
		},
	)

	// Gateway metrics
	GatewayCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suraksha_gateway_calls_total",
			Help: "Data gateway calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	GatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "suraksha_gateway_duration_seconds",
			Help:    "Data gateway call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "suraksha_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	AsyncWritesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suraksha_async_writes_dropped_total",
			Help: "Fire-and-forget writes dropped because the queue was full or closed",
		},
		[]string{"kind"},
	)

	AsyncWriteQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "suraksha_async_write_queue_depth",
			Help: "Pending fire-and-forget writes",
		},
	)

	// Profile cache metrics
	ProfileCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suraksha_profile_cache_lookups_total",
			Help: "Movement profile cache lookups by tier and result",
		},
		[]string{"tier", "result"},
	)

	// API metrics
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suraksha_api_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	APIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "suraksha_api_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suraksha_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

// RecordEngineRun records one engine invocation.
func RecordEngineRun(engine, outcome string, duration time.Duration) {
	EngineRuns.WithLabelValues(engine, outcome).Inc()
	EngineDuration.WithLabelValues(engine).Observe(duration.Seconds())
}

// RecordGatewayCall records one gateway call; err == nil counts as success.
func RecordGatewayCall(operation string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	GatewayCalls.WithLabelValues(operation, result).Inc()
	GatewayDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordProfileLookup records a cache hit or miss for the given tier.
func RecordProfileLookup(tier string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	ProfileCacheLookups.WithLabelValues(tier, result).Inc()
}

// Package gateway puts timeouts, a circuit breaker and an async write queue
// in front of the repository store. It implements analysis.Gateway.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/anshc022/suraksha-ai-service/internal/logging"
	"github.com/anshc022/suraksha-ai-service/internal/metrics"
	"github.com/anshc022/suraksha-ai-service/internal/models"
)

// ErrUnavailable is returned while the breaker rejects calls.
var ErrUnavailable = errors.New("data store unavailable")

const breakerName = "data-store"

// Store is the persistence the gateway wraps.
type Store interface {
	FindIncidents(ctx context.Context, q models.AreaQuery) ([]models.Incident, error)
	FindPanicAlerts(ctx context.Context, q models.AreaQuery) ([]models.PanicAlert, error)
	LocationHistory(ctx context.Context, userID string, since time.Time) ([]models.TelemetryPoint, error)
	InsertRiskPrediction(ctx context.Context, rec models.RiskPredictionRecord) error
	InsertAnomalyDetection(ctx context.Context, rec models.AnomalyDetectionRecord) error
}

// Config tunes the gateway.
type Config struct {
	Timeout          time.Duration
	QueueSize        int
	MaxFailures      uint32
	OpenTimeout      time.Duration
	HalfOpenRequests uint32
}

// DefaultConfig mirrors the service defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:          30 * time.Second,
		QueueSize:        256,
		MaxFailures:      5,
		OpenTimeout:      30 * time.Second,
		HalfOpenRequests: 1,
	}
}

type writeJob struct {
	kind string
	run  func(ctx context.Context) error
}

// Gateway is safe for concurrent use.
type Gateway struct {
	store Store
	cfg   Config
	cb    *gobreaker.CircuitBreaker[any]
	now   func() time.Time

	mu     sync.RWMutex
	closed bool
	writes chan writeJob
	done   chan struct{}
}

// New starts the background writer. Call Close to drain it.
func New(store Store, cfg Config) *Gateway {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = def.MaxFailures
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = def.HalfOpenRequests
	}

	g := &Gateway{
		store:  store,
		cfg:    cfg,
		cb:     newBreaker(cfg),
		now:    time.Now,
		writes: make(chan writeJob, cfg.QueueSize),
		done:   make(chan struct{}),
	}
	go g.writeLoop()
	return g
}

func newBreaker(cfg Config) *gobreaker.CircuitBreaker[any] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		// a caller giving up is not a store failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// read runs fn under the per-call timeout and the breaker.
func read[T any](ctx context.Context, g *Gateway, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	start := time.Now()

	v, err := g.cb.Execute(func() (any, error) {
		cctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
		return fn(cctx)
	})
	metrics.RecordGatewayCall(op, time.Since(start), err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
		}
		return zero, fmt.Errorf("failed to read %s: %w", op, err)
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%s: unexpected result type %T", op, v)
	}
	return typed, nil
}

// GetIncidentsInArea returns incidents around q.Center.
func (g *Gateway) GetIncidentsInArea(ctx context.Context, q models.AreaQuery) ([]models.Incident, error) {
	return read(ctx, g, "incidents", func(ctx context.Context) ([]models.Incident, error) {
		return g.store.FindIncidents(ctx, q)
	})
}

// GetPanicAlertsInArea returns panic alerts around q.Center.
func (g *Gateway) GetPanicAlertsInArea(ctx context.Context, q models.AreaQuery) ([]models.PanicAlert, error) {
	return read(ctx, g, "panic_alerts", func(ctx context.Context) ([]models.PanicAlert, error) {
		return g.store.FindPanicAlerts(ctx, q)
	})
}

// GetUserLocationHistory returns the last hoursBack hours of the user's points, oldest first.
func (g *Gateway) GetUserLocationHistory(ctx context.Context, userID string, hoursBack int) ([]models.TelemetryPoint, error) {
	since := g.now().Add(-time.Duration(hoursBack) * time.Hour)
	return read(ctx, g, "location_history", func(ctx context.Context) ([]models.TelemetryPoint, error) {
		return g.store.LocationHistory(ctx, userID, since)
	})
}

// StoreRiskPrediction queues the record; it never blocks the caller.
func (g *Gateway) StoreRiskPrediction(_ context.Context, rec models.RiskPredictionRecord) {
	g.enqueue(writeJob{kind: "risk_prediction", run: func(ctx context.Context) error {
		return g.store.InsertRiskPrediction(ctx, rec)
	}})
}

// StoreAnomalyDetection queues the record; it never blocks the caller.
func (g *Gateway) StoreAnomalyDetection(_ context.Context, rec models.AnomalyDetectionRecord) {
	g.enqueue(writeJob{kind: "anomaly_detection", run: func(ctx context.Context) error {
		return g.store.InsertAnomalyDetection(ctx, rec)
	}})
}

func (g *Gateway) enqueue(job writeJob) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.closed {
		g.drop(job, "gateway closed")
		return
	}
	select {
	case g.writes <- job:
		metrics.AsyncWriteQueueDepth.Set(float64(len(g.writes)))
	default:
		g.drop(job, "write queue full")
	}
}

func (g *Gateway) drop(job writeJob, reason string) {
	metrics.AsyncWritesDropped.WithLabelValues(job.kind).Inc()
	logging.Warn().Str("kind", job.kind).Str("reason", reason).Msg("dropping write")
}

func (g *Gateway) writeLoop() {
	defer close(g.done)
	for job := range g.writes {
		metrics.AsyncWriteQueueDepth.Set(float64(len(g.writes)))

		ctx, cancel := context.WithTimeout(context.Background(), g.cfg.Timeout)
		start := time.Now()
		err := job.run(ctx)
		cancel()

		metrics.RecordGatewayCall("store_"+job.kind, time.Since(start), err)
		if err != nil {
			logging.Error().Err(err).Str("kind", job.kind).Msg("failed to persist record")
		}
	}
}

// Close stops accepting writes and waits for queued ones to finish or ctx to expire.
func (g *Gateway) Close(ctx context.Context) error {
	g.mu.Lock()
	if !g.closed {
		g.closed = true
		close(g.writes)
	}
	g.mu.Unlock()

	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("write queue not drained: %w", ctx.Err())
	}
}

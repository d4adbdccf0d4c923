// Package anomaly flags unusual movement in a short telemetry sequence by
// comparing it with absolute limits and with the user's movement profile.
package anomaly

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/anshc022/suraksha-ai-service/internal/analysis"
	"github.com/anshc022/suraksha-ai-service/internal/logging"
	"github.com/anshc022/suraksha-ai-service/internal/metrics"
	"github.com/anshc022/suraksha-ai-service/internal/models"
)

const storedSampleSize = 5

// ProfileCache stores movement profiles per user. Implementations must be
// safe for concurrent use.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (models.MovementProfile, bool)
	Set(ctx context.Context, userID string, profile models.MovementProfile)
}

// Config holds the engine thresholds.
type Config struct {
	SpeedThresholdKmh float64
	HistoryHours      int
}

// DefaultConfig mirrors the service defaults.
func DefaultConfig() Config {
	return Config{SpeedThresholdKmh: 100, HistoryHours: 24 * 7}
}

// Engine runs the speed, pattern, location and time detectors.
type Engine struct {
	gw     analysis.Gateway
	cache  ProfileCache
	cfg    Config
	builds singleflight.Group
	now    func() time.Time
	log    zerolog.Logger
}

// NewEngine wires an engine to its gateway and profile cache.
func NewEngine(gw analysis.Gateway, cache ProfileCache, cfg Config) *Engine {
	return &Engine{
		gw:    gw,
		cache: cache,
		cfg:   cfg,
		now:   time.Now,
		log:   logging.Component("anomaly"),
	}
}

// Detect returns a verdict for points. It never panics and never returns an
// error; faults are folded into a non-anomalous "error" verdict.
func (e *Engine) Detect(ctx context.Context, userID string, points []models.TelemetryPoint) analysis.Result[models.AnomalyVerdict] {
	if len(points) < 2 {
		return analysis.Computed(models.AnomalyVerdict{Details: "Insufficient data"})
	}

	verdict, err := analysis.GuardValue(func() (models.AnomalyVerdict, error) {
		enriched := Enrich(points)
		profile := e.Profile(ctx, userID)
		return e.evaluate(ctx, enriched, profile), nil
	})
	if err != nil {
		e.log.Error().Err(err).Str("user_id", userID).Msg("anomaly detection failed")
		return analysis.Fallback(models.AnomalyVerdict{
			Type:    models.AnomalyError,
			Details: fmt.Sprintf("Detection error: %v", err),
		}, err)
	}

	sample := points
	if len(sample) > storedSampleSize {
		sample = sample[:storedSampleSize]
	}
	e.gw.StoreAnomalyDetection(ctx, models.AnomalyDetectionRecord{
		UserID:             userID,
		LocationSample:     append([]models.TelemetryPoint(nil), sample...),
		Verdict:            verdict,
		DetectionTimestamp: e.now().UTC(),
	})

	return analysis.Computed(verdict)
}

// evaluate runs each detector in isolation and keeps the most confident
// verdict. Ties go to the detector that runs first.
func (e *Engine) evaluate(ctx context.Context, points []models.EnrichedPoint, profile models.MovementProfile) models.AnomalyVerdict {
	var best models.AnomalyVerdict
	for i, d := range e.detectors() {
		v, err := analysis.GuardValue(func() (models.AnomalyVerdict, error) {
			return d.run(points, profile), nil
		})
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("detector", d.name).Msg("detector failed")
			metrics.EngineStageDegraded.WithLabelValues("anomaly", d.name).Inc()
			v = models.AnomalyVerdict{Type: models.AnomalyError}
		}
		if i == 0 || v.Confidence > best.Confidence {
			best = v
		}
	}
	return best
}

// Profile returns the cached profile for userID, building it on a miss.
// Concurrent misses for one user share a single build. A profile that had
// to fall back because history could not be read is not cached.
func (e *Engine) Profile(ctx context.Context, userID string) models.MovementProfile {
	if p, ok := e.cache.Get(ctx, userID); ok {
		return p
	}

	v, _, _ := e.builds.Do(userID, func() (interface{}, error) {
		if p, ok := e.cache.Get(ctx, userID); ok {
			return p, nil
		}

		history, err := analysis.GuardValue(func() ([]models.TelemetryPoint, error) {
			return e.gw.GetUserLocationHistory(ctx, userID, e.cfg.HistoryHours)
		})
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("location history unavailable, using default profile")
			metrics.EngineStageDegraded.WithLabelValues("anomaly", "profile").Inc()
			return models.DefaultMovementProfile(), nil
		}

		profile := models.DefaultMovementProfile()
		if len(history) >= MinHistoryPoints {
			built, err := analysis.GuardValue(func() (models.MovementProfile, error) {
				return BuildProfile(history), nil
			})
			if err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("profile build failed, using default profile")
				metrics.EngineStageDegraded.WithLabelValues("anomaly", "profile").Inc()
				return profile, nil
			}
			profile = built
		}

		e.cache.Set(ctx, userID, profile)
		return profile, nil
	})
	return v.(models.MovementProfile)
}

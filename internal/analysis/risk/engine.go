// Package risk scores routes and areas from nearby incidents and panic alerts.
package risk

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/anshc022/suraksha-ai-service/internal/analysis"
	"github.com/anshc022/suraksha-ai-service/internal/logging"
	"github.com/anshc022/suraksha-ai-service/internal/metrics"
	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/stats"
)

const (
	// FallbackScore is returned when a prediction cannot be computed.
	FallbackScore = 30.0

	noDataBase      = 20.0
	failedPointRisk = 20.0
	maxBaseRisk     = 80.0
	maxScore        = 100.0
	routeLookback   = 365 * 24 * time.Hour
	areaLookback    = 30 * 24 * time.Hour
	areaPeriod      = "30 days"
)

// Config holds the engine settings.
type Config struct {
	RadiusKm float64
	// Parallel bounds concurrent per-point reads.
	Parallel int
}

// DefaultConfig mirrors the service defaults.
func DefaultConfig() Config {
	return Config{RadiusKm: 1.0, Parallel: 4}
}

// RouteRequest is one route to score.
type RouteRequest struct {
	Route     models.Route
	TimeOfDay string
	UserID    string
}

// Engine scores routes and areas.
type Engine struct {
	gw  analysis.Gateway
	cfg Config
	now func() time.Time
	log zerolog.Logger
}

// NewEngine returns an engine reading from gw.
func NewEngine(gw analysis.Gateway, cfg Config) *Engine {
	if cfg.Parallel < 1 {
		cfg.Parallel = 1
	}
	return &Engine{
		gw:  gw,
		cfg: cfg,
		now: time.Now,
		log: logging.Component("risk"),
	}
}

type pointRisk struct {
	score   float64
	records int
	err     error // read failure that degraded the point
}

// routeScore is a prediction plus the reads it had to do without.
type routeScore struct {
	pred     models.RiskPrediction
	points   int
	degraded []error
}

// PredictRoute scores a route in 0..100. Points whose reads fail count as
// 20 and mark the result as fallback; any other failure yields
// FallbackScore. Predictions backed by at least one successful read are
// handed to the gateway for storage.
func (e *Engine) PredictRoute(ctx context.Context, req RouteRequest) analysis.Result[models.RiskPrediction] {
	if req.TimeOfDay == "" {
		req.TimeOfDay = models.TimeDay
	}

	scored, err := analysis.GuardValue(func() (routeScore, error) {
		return e.predict(ctx, req)
	})
	if err != nil {
		e.log.Warn().Err(err).Str("request_id", logging.RequestIDFromContext(ctx)).Msg("route prediction fell back")
		return analysis.Fallback(models.RiskPrediction{Score: FallbackScore}, err)
	}

	pred := scored.pred
	metrics.RiskScores.Observe(pred.Score)

	var degradedErr error
	if n := len(scored.degraded); n > 0 {
		degradedErr = fmt.Errorf("%d of %d route points degraded: %w", n, scored.points, errors.Join(scored.degraded...))
	}

	if len(scored.degraded) == scored.points {
		e.log.Warn().Err(degradedErr).Str("request_id", logging.RequestIDFromContext(ctx)).Msg("no route point could be read, prediction not stored")
		return analysis.Fallback(pred, degradedErr)
	}

	rec := models.RiskPredictionRecord{
		Route:      req.Route,
		TimeOfDay:  req.TimeOfDay,
		UserID:     req.UserID,
		RiskScore:  pred.Score,
		Components: pred.Components,
		Timestamp:  e.now().UTC(),
	}
	if err := analysis.Guard(func() error {
		e.gw.StoreRiskPrediction(ctx, rec)
		return nil
	}); err != nil {
		e.log.Error().Err(err).Msg("failed to hand off risk prediction")
	}

	if degradedErr != nil {
		return analysis.Fallback(pred, degradedErr)
	}
	return analysis.Computed(pred)
}

func (e *Engine) predict(ctx context.Context, req RouteRequest) (routeScore, error) {
	points := req.Route.Points()
	since := e.now().Add(-routeLookback)
	risks := make([]pointRisk, len(points))

	var g errgroup.Group
	g.SetLimit(e.cfg.Parallel)
	for i, p := range points {
		i, p := i, p
		g.Go(func() error {
			pr, err := analysis.GuardValue(func() (pointRisk, error) {
				return e.scorePoint(ctx, p, since), nil
			})
			if err != nil {
				return fmt.Errorf("point %d: %w", i, err)
			}
			risks[i] = pr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return routeScore{}, err
	}

	scores := make([]float64, len(risks))
	records := 0
	var degraded []error
	for i, r := range risks {
		scores[i] = r.score
		records += r.records
		if r.err != nil {
			degraded = append(degraded, fmt.Errorf("point %d: %w", i, r.err))
		}
	}

	base := noDataBase
	if records > 0 {
		base = math.Min(maxBaseRisk, stats.Mean(scores))
	}
	timeMod := TimeMultiplier(req.TimeOfDay)
	routeMod := RouteMultiplier(req.Route)

	return routeScore{
		pred: models.RiskPrediction{
			Score: stats.Round(math.Min(maxScore, base*timeMod*routeMod), 2),
			Components: models.RiskComponents{
				BaseRisk:      base,
				TimeModifier:  timeMod,
				RouteModifier: routeMod,
			},
		},
		points:   len(points),
		degraded: degraded,
	}, nil
}

// scorePoint reads the records around p. A failed read degrades the point
// to failedPointRisk instead of failing the route.
func (e *Engine) scorePoint(ctx context.Context, p models.GeoPoint, since time.Time) pointRisk {
	q := models.AreaQuery{Center: p, RadiusKm: e.cfg.RadiusKm, Start: &since}

	incidents, err := e.gw.GetIncidentsInArea(ctx, q)
	if err == nil {
		var alerts []models.PanicAlert
		alerts, err = e.gw.GetPanicAlertsInArea(ctx, q)
		if err == nil {
			return pointRisk{
				score:   pointScore(incidents, len(alerts)),
				records: len(incidents) + len(alerts),
			}
		}
	}

	logging.Ctx(ctx).Warn().Err(err).Float64("lat", p.Lat).Float64("lng", p.Lng).Msg("route point degraded")
	metrics.EngineStageDegraded.WithLabelValues("risk", "point").Inc()
	return pointRisk{score: failedPointRisk, err: err}
}

// AreaSummary scores the area around center from the last 30 days of records.
func (e *Engine) AreaSummary(ctx context.Context, center models.GeoPoint, radiusKm float64) analysis.Result[models.AreaRiskSummary] {
	summary, err := analysis.GuardValue(func() (models.AreaRiskSummary, error) {
		since := e.now().Add(-areaLookback)
		q := models.AreaQuery{Center: center, RadiusKm: radiusKm, Start: &since}

		incidents, err := e.gw.GetIncidentsInArea(ctx, q)
		if err != nil {
			return models.AreaRiskSummary{}, fmt.Errorf("failed to load incidents: %w", err)
		}
		alerts, err := e.gw.GetPanicAlertsInArea(ctx, q)
		if err != nil {
			return models.AreaRiskSummary{}, fmt.Errorf("failed to load panic alerts: %w", err)
		}

		breakdown := make(map[string]int)
		for _, inc := range incidents {
			t := inc.Type
			if t == "" {
				t = models.IncidentOther
			}
			breakdown[t]++
		}

		score := pointScore(incidents, len(alerts))
		return models.AreaRiskSummary{
			RiskScore:         stats.Round(score, 2),
			RiskLevel:         LevelForScore(score),
			TotalIncidents:    len(incidents),
			TotalPanicAlerts:  len(alerts),
			IncidentBreakdown: breakdown,
			TimePeriod:        areaPeriod,
		}, nil
	})
	if err != nil {
		e.log.Warn().Err(err).Msg("area summary fell back")
		return analysis.Fallback(models.AreaRiskSummary{
			RiskScore:         25,
			RiskLevel:         "moderate",
			IncidentBreakdown: map[string]int{},
			TimePeriod:        areaPeriod,
		}, err)
	}
	return analysis.Computed(summary)
}

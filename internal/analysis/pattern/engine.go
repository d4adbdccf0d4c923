// Package pattern finds hotspots, risk zones and temporal trends in the
// incidents and panic alerts recorded around an area.
package pattern

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/anshc022/suraksha-ai-service/internal/analysis"
	"github.com/anshc022/suraksha-ai-service/internal/logging"
	"github.com/anshc022/suraksha-ai-service/internal/metrics"
	"github.com/anshc022/suraksha-ai-service/internal/models"
)

// Config holds the hotspot thresholds.
type Config struct {
	HotspotRadiusKm        float64
	MinIncidentsForHotspot int
	GridSizeDeg            float64
}

// DefaultConfig mirrors the service defaults.
func DefaultConfig() Config {
	return Config{
		HotspotRadiusKm:        0.5,
		MinIncidentsForHotspot: 5,
		GridSizeDeg:            0.005,
	}
}

// Request describes the area and window to analyse.
type Request struct {
	Center        models.GeoPoint
	RadiusKm      float64
	Start         time.Time
	End           time.Time
	IncidentTypes []string
}

// Engine runs the pattern analysis.
type Engine struct {
	gw  analysis.Gateway
	cfg Config
	now func() time.Time
	log zerolog.Logger
}

// NewEngine returns an engine reading from gw.
func NewEngine(gw analysis.Gateway, cfg Config) *Engine {
	if cfg.GridSizeDeg <= 0 {
		cfg.GridSizeDeg = DefaultConfig().GridSizeDeg
	}
	return &Engine{
		gw:  gw,
		cfg: cfg,
		now: time.Now,
		log: logging.Component("pattern"),
	}
}

// LevelForScore maps a hotspot or zone score onto a risk level.
// This scale is deliberately tighter than the route risk scale.
func LevelForScore(score float64) string {
	switch {
	case score < 10:
		return "low"
	case score < 20:
		return "moderate"
	case score < 35:
		return "high"
	default:
		return "critical"
	}
}

// Analyze fetches the area's records and runs every stage. A failing stage
// is replaced by its empty value and listed in DegradedStages; the result is
// then marked as a fallback.
func (e *Engine) Analyze(ctx context.Context, req Request) analysis.Result[models.PatternAnalysis] {
	q := models.AreaQuery{
		Center:   req.Center,
		RadiusKm: req.RadiusKm,
		Start:    &req.Start,
		End:      &req.End,
		Types:    req.IncidentTypes,
	}

	incidents, err := analysis.GuardValue(func() ([]models.Incident, error) {
		return e.gw.GetIncidentsInArea(ctx, q)
	})
	if err != nil {
		return e.failed(ctx, "incidents", fmt.Errorf("failed to load incidents: %w", err))
	}
	alerts, err := analysis.GuardValue(func() ([]models.PanicAlert, error) {
		return e.gw.GetPanicAlertsInArea(ctx, models.AreaQuery{
			Center: req.Center, RadiusKm: req.RadiusKm, Start: &req.Start, End: &req.End,
		})
	})
	if err != nil {
		return e.failed(ctx, "alerts", fmt.Errorf("failed to load panic alerts: %w", err))
	}

	var (
		out  = emptyAnalysis()
		errs []error
	)
	stage := func(name string, fn func() error) {
		if err := analysis.Guard(fn); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("stage", name).Msg("pattern stage degraded")
			metrics.EngineStageDegraded.WithLabelValues("pattern", name).Inc()
			out.DegradedStages = append(out.DegradedStages, name)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	now := e.now()
	stage("hotspots", func() error {
		out.Hotspots = e.hotspots(incidents, alerts, now)
		return nil
	})
	stage("trends", func() error {
		out.Trends = analyzeTrends(incidents, alerts, req.Start, req.End)
		return nil
	})
	stage("risk_zones", func() error {
		out.RiskZones = e.riskZones(incidents, alerts, req.Center, req.RadiusKm)
		return nil
	})
	stage("insights", func() error {
		out.Insights = generateInsights(len(incidents)+len(alerts), out.Hotspots, out.Trends)
		return nil
	})

	if len(errs) > 0 {
		return analysis.Fallback(out, errors.Join(errs...))
	}
	return analysis.Computed(out)
}

func (e *Engine) failed(ctx context.Context, stage string, err error) analysis.Result[models.PatternAnalysis] {
	e.log.Error().Err(err).Str("request_id", logging.RequestIDFromContext(ctx)).Msg("pattern analysis fell back to empty result")
	metrics.EngineStageDegraded.WithLabelValues("pattern", stage).Inc()
	out := emptyAnalysis()
	out.DegradedStages = []string{stage}
	return analysis.Fallback(out, err)
}

func emptyAnalysis() models.PatternAnalysis {
	return models.PatternAnalysis{
		Hotspots:  []models.Hotspot{},
		Trends:    emptyTrends(),
		RiskZones: []models.RiskZone{},
		Insights:  []models.Insight{},
	}
}

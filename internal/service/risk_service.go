package service

import (
	"context"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/analysis/risk"
	"github.com/anshc022/suraksha-ai-service/internal/logging"
	"github.com/anshc022/suraksha-ai-service/internal/metrics"
	"github.com/anshc022/suraksha-ai-service/internal/models"
)

// DefaultAreaRadiusKm applies when an area query gives no radius.
const DefaultAreaRadiusKm = 5.0

// RiskService handles route and area risk requests
type RiskService struct {
	engine *risk.Engine
	now    func() time.Time
}

// NewRiskService creates a new risk service
func NewRiskService(engine *risk.Engine) *RiskService {
	return &RiskService{engine: engine, now: time.Now}
}

// PredictRoute scores a route and attaches level and advice.
func (s *RiskService) PredictRoute(ctx context.Context, req models.RiskPredictRequest) models.RiskPredictResponse {
	start := time.Now()
	res := s.engine.PredictRoute(ctx, risk.RouteRequest{
		Route:     req.Route.Route(),
		TimeOfDay: req.TimeOfDay,
		UserID:    req.UserID,
	})
	metrics.RecordEngineRun("risk", string(res.Outcome), time.Since(start))
	if res.IsFallback() {
		logging.Ctx(ctx).Warn().Err(res.Err).Msg("serving fallback route risk")
	}

	score := res.Value.Score
	return models.RiskPredictResponse{
		RiskScore:       score,
		RiskLevel:       risk.LevelForScore(score),
		Recommendations: risk.Recommendations(score),
		Timestamp:       s.now().UTC(),
	}
}

// AreaSummary returns the 30-day snapshot around a point.
func (s *RiskService) AreaSummary(ctx context.Context, q models.AreaRiskQuery) models.AreaRiskSummary {
	radius := q.RadiusKm
	if radius <= 0 {
		radius = DefaultAreaRadiusKm
	}

	start := time.Now()
	res := s.engine.AreaSummary(ctx, models.GeoPoint{Lat: q.Lat, Lng: q.Lng}, radius)
	metrics.RecordEngineRun("risk_area", string(res.Outcome), time.Since(start))
	if res.IsFallback() {
		logging.Ctx(ctx).Warn().Err(res.Err).Msg("serving fallback area summary")
	}
	return res.Value
}

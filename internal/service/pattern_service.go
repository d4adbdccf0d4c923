package service

import (
	"context"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/analysis/pattern"
	"github.com/anshc022/suraksha-ai-service/internal/logging"
	"github.com/anshc022/suraksha-ai-service/internal/metrics"
	"github.com/anshc022/suraksha-ai-service/internal/models"
)

// DefaultPatternWindow is used when a request has no time range.
const DefaultPatternWindow = 30 * 24 * time.Hour

// PatternService handles area pattern requests
type PatternService struct {
	engine *pattern.Engine
	now    func() time.Time
}

// NewPatternService creates a new pattern service
func NewPatternService(engine *pattern.Engine) *PatternService {
	return &PatternService{engine: engine, now: time.Now}
}

// Analyze runs the pattern engine over the requested or default window.
func (s *PatternService) Analyze(ctx context.Context, req models.PatternAnalyzeRequest) models.PatternAnalyzeResponse {
	now := s.now().UTC()
	window := models.TimeRange{Start: now.Add(-DefaultPatternWindow), End: now}
	if req.TimeRange != nil {
		window = *req.TimeRange
	}

	start := time.Now()
	res := s.engine.Analyze(ctx, pattern.Request{
		Center:        req.Area.Center,
		RadiusKm:      req.Area.RadiusKm,
		Start:         window.Start,
		End:           window.End,
		IncidentTypes: req.IncidentTypes,
	})
	metrics.RecordEngineRun("pattern", string(res.Outcome), time.Since(start))
	if res.IsFallback() {
		logging.Ctx(ctx).Warn().Err(res.Err).Strs("degraded", res.Value.DegradedStages).Msg("serving degraded pattern analysis")
	}

	return models.PatternAnalyzeResponse{PatternAnalysis: res.Value, Timestamp: now}
}

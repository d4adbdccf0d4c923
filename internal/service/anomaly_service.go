package service

import (
	"context"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/analysis/anomaly"
	"github.com/anshc022/suraksha-ai-service/internal/logging"
	"github.com/anshc022/suraksha-ai-service/internal/metrics"
	"github.com/anshc022/suraksha-ai-service/internal/models"
)

// AnomalyService handles movement anomaly requests
type AnomalyService struct {
	engine *anomaly.Engine
	now    func() time.Time
}

// NewAnomalyService creates a new anomaly service
func NewAnomalyService(engine *anomaly.Engine) *AnomalyService {
	return &AnomalyService{engine: engine, now: time.Now}
}

// Detect evaluates a validated telemetry batch.
func (s *AnomalyService) Detect(ctx context.Context, req models.AnomalyDetectRequest) models.AnomalyDetectResponse {
	start := time.Now()
	res := s.engine.Detect(ctx, req.UserID, req.LocationData)
	metrics.RecordEngineRun("anomaly", string(res.Outcome), time.Since(start))

	verdict := res.Value
	kind := string(verdict.Type)
	if kind == "" {
		kind = "none"
	}
	metrics.AnomalyVerdicts.WithLabelValues(kind).Inc()

	if res.IsFallback() {
		logging.Ctx(ctx).Warn().Err(res.Err).Str("user_id", req.UserID).Msg("serving fallback anomaly verdict")
	} else if verdict.IsAnomaly {
		logging.Ctx(ctx).Info().
			Str("user_id", req.UserID).
			Str("anomaly_type", kind).
			Float64("confidence", verdict.Confidence).
			Msg("movement anomaly detected")
	}

	return models.AnomalyDetectResponse{AnomalyVerdict: verdict, Timestamp: s.now().UTC()}
}

package service

import (
	"context"
	"math"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/logging"
	"github.com/anshc022/suraksha-ai-service/internal/models"
)

const (
	baseThreat     = 20.0
	lateHourThreat = 15.0
	eveningThreat  = 8.0
	weatherThreat  = 10.0
	maxThreat      = 100.0
)

// ThreatService scores the circumstances of a trip. It looks only at the
// request context; historical data is covered by the risk endpoints.
type ThreatService struct {
	now func() time.Time
}

// NewThreatService creates a new threat service
func NewThreatService() *ThreatService {
	return &ThreatService{now: time.Now}
}

// Assess adds context-driven increments to a base score.
func (s *ThreatService) Assess(ctx context.Context, req models.ThreatAssessRequest) models.ThreatAssessResponse {
	score := baseThreat
	factors := []string{}

	switch req.Context.TimeOfDay {
	case models.TimeNight, "late_evening":
		score += lateHourThreat
		factors = append(factors, "Late hour increases risk")
	case models.TimeEvening:
		score += eveningThreat
		factors = append(factors, "Evening hours have moderate risk")
	}

	switch req.Context.Weather {
	case "rainy", "foggy":
		score += weatherThreat
		factors = append(factors, "Poor weather conditions")
	}

	level, recs := threatLevel(score)
	logging.Ctx(ctx).Debug().Float64("score", score).Str("level", level).Msg("threat assessed")

	return models.ThreatAssessResponse{
		ThreatLevel:         level,
		ThreatScore:         math.Min(maxThreat, score),
		ContributingFactors: factors,
		Recommendations:     recs,
		Timestamp:           s.now().UTC(),
	}
}

func threatLevel(score float64) (string, []string) {
	switch {
	case score < 30:
		return "low", []string{"Normal safety precautions"}
	case score < 50:
		return "moderate", []string{"Increased awareness recommended", "Share location with contacts"}
	case score < 70:
		return "high", []string{"Exercise caution", "Consider alternative routes"}
	default:
		return "critical", []string{"Avoid area if possible", "Contact emergency services if in danger"}
	}
}

package anomaly

import (
	"fmt"
	"math"

	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/spatial"
	"github.com/anshc022/suraksha-ai-service/internal/stats"
)

const (
	unusualSpeedFactor   = 1.5
	suddenSpeedChangeKmh = 50.0
	meaningfulMoveMeters = 10.0
	minBearings          = 3
	largeTurnDegrees     = 90.0
	erraticRatio         = 0.7
	unusualLocationKm    = 10.0
	lateNightStart       = 2
	lateNightEnd         = 5
)

// detector inspects an enriched sequence and returns at most one verdict.
type detector struct {
	name string
	run  func(points []models.EnrichedPoint, profile models.MovementProfile) models.AnomalyVerdict
}

var quiet = models.AnomalyVerdict{}

func (e *Engine) detectors() []detector {
	return []detector{
		{"speed", e.detectSpeed},
		{"pattern", detectPattern},
		{"location", detectLocation},
		{"time", detectTime},
	}
}

func (e *Engine) detectSpeed(points []models.EnrichedPoint, profile models.MovementProfile) models.AnomalyVerdict {
	var speeds []float64
	for _, p := range points {
		if p.CalculatedSpeed > 0 {
			speeds = append(speeds, p.CalculatedSpeed)
		}
	}
	if len(speeds) == 0 {
		return quiet
	}

	maxSpeed := stats.Max(speeds)
	if maxSpeed > e.cfg.SpeedThresholdKmh {
		return models.AnomalyVerdict{
			IsAnomaly:  true,
			Confidence: 0.9,
			Type:       models.AnomalyExcessiveSpeed,
			Details:    fmt.Sprintf("Speed %.1f km/h exceeds threshold", maxSpeed),
		}
	}

	if maxSpeed > profile.SpeedPercentile99*unusualSpeedFactor {
		return models.AnomalyVerdict{
			IsAnomaly:  true,
			Confidence: 0.8,
			Type:       models.AnomalyUnusualSpeed,
			Details:    fmt.Sprintf("Speed %.1f km/h is unusual for this user", maxSpeed),
		}
	}

	var maxChange float64
	for i := 1; i < len(speeds); i++ {
		maxChange = math.Max(maxChange, math.Abs(speeds[i]-speeds[i-1]))
	}
	if maxChange > suddenSpeedChangeKmh {
		return models.AnomalyVerdict{
			IsAnomaly:  true,
			Confidence: 0.7,
			Type:       models.AnomalySuddenSpeedChange,
			Details:    fmt.Sprintf("Sudden speed change detected: %.1f km/h", maxChange),
		}
	}
	return quiet
}

func detectPattern(points []models.EnrichedPoint, _ models.MovementProfile) models.AnomalyVerdict {
	if len(points) < 3 {
		return quiet
	}

	var bearings []float64
	for i := 1; i < len(points); i++ {
		if points[i].DistanceFromPrev > meaningfulMoveMeters {
			prev, curr := points[i-1], points[i]
			bearings = append(bearings, spatial.Bearing(prev.Lat, prev.Lng, curr.Lat, curr.Lng))
		}
	}
	if len(bearings) < minBearings {
		return quiet
	}

	large := 0
	for i := 1; i < len(bearings); i++ {
		if spatial.TurnAngle(bearings[i-1], bearings[i]) > largeTurnDegrees {
			large++
		}
	}
	ratio := float64(large) / float64(len(bearings)-1)
	if ratio > erraticRatio {
		return models.AnomalyVerdict{
			IsAnomaly:  true,
			Confidence: 0.6,
			Type:       models.AnomalyErraticMovement,
			Details:    fmt.Sprintf("Erratic movement pattern detected (%.1f%% erratic changes)", ratio*100),
		}
	}
	return quiet
}

func detectLocation(points []models.EnrichedPoint, profile models.MovementProfile) models.AnomalyVerdict {
	if len(profile.FrequentLocations) == 0 || len(points) == 0 {
		return quiet
	}

	minDistances := make([]float64, 0, len(points))
	for _, p := range points {
		here := spatial.Point{Lat: p.Lat, Lng: p.Lng}
		nearest := math.Inf(1)
		for _, fl := range profile.FrequentLocations {
			nearest = math.Min(nearest, spatial.DistanceKm(here, fl.Center.Point()))
		}
		minDistances = append(minDistances, nearest)
	}

	avg := stats.Mean(minDistances)
	if avg > unusualLocationKm {
		return models.AnomalyVerdict{
			IsAnomaly:  true,
			Confidence: 0.5,
			Type:       models.AnomalyUnusualLocation,
			Details:    fmt.Sprintf("Location %.1fkm from typical areas", avg),
		}
	}
	return quiet
}

// detectTime flags movement starting in the small hours, read in the timestamp's own offset.
func detectTime(points []models.EnrichedPoint, _ models.MovementProfile) models.AnomalyVerdict {
	hour := points[0].Timestamp.Hour()
	if hour >= lateNightStart && hour <= lateNightEnd {
		return models.AnomalyVerdict{
			IsAnomaly:  true,
			Confidence: 0.4,
			Type:       models.AnomalyUnusualTime,
			Details:    fmt.Sprintf("Movement detected at %d:00 (late night)", hour),
		}
	}
	return quiet
}

package anomaly

import (
	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/spatial"
)

// Enrich derives distance, elapsed time and speed for each point relative to
// the one before it. The first point keeps all derived fields at zero.
func Enrich(points []models.TelemetryPoint) []models.EnrichedPoint {
	out := make([]models.EnrichedPoint, len(points))
	for i, p := range points {
		out[i].TelemetryPoint = p
		if i == 0 {
			continue
		}

		prev := points[i-1]
		dist := spatial.HaversineDistance(prev.Lat, prev.Lng, p.Lat, p.Lng)
		dt := p.Timestamp.Sub(prev.Timestamp).Seconds()

		out[i].DistanceFromPrev = dist
		out[i].TimeFromPrev = dt
		switch {
		case p.Speed != nil && *p.Speed != 0:
			out[i].CalculatedSpeed = *p.Speed
		case dt > 0:
			out[i].CalculatedSpeed = dist / dt * 3.6
		}
	}
	return out
}

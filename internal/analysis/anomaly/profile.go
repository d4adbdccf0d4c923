package anomaly

import (
	"github.com/anshc022/suraksha-ai-service/internal/analysis/cluster"
	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/spatial"
	"github.com/anshc022/suraksha-ai-service/internal/stats"
)

const (
	// MinHistoryPoints is the smallest history that yields a personal profile.
	MinHistoryPoints = 10

	frequentLocationRadiusM = 100.0
	frequentLocationVisits  = 3
	frequentLocationMinimum = 5
)

// BuildProfile computes a movement profile from time-ordered history.
// Segments with a non-positive time delta are skipped.
func BuildProfile(history []models.TelemetryPoint) models.MovementProfile {
	var speeds, distances, intervals []float64
	var visited []spatial.Point

	for i := 1; i < len(history); i++ {
		prev, curr := history[i-1], history[i]
		dt := curr.Timestamp.Sub(prev.Timestamp).Seconds()
		if dt <= 0 {
			continue
		}
		dist := spatial.HaversineDistance(prev.Lat, prev.Lng, curr.Lat, curr.Lng)

		speeds = append(speeds, dist/dt*3.6)
		distances = append(distances, dist)
		intervals = append(intervals, dt)
		visited = append(visited, spatial.Point{Lat: curr.Lat, Lng: curr.Lng})
	}

	return models.MovementProfile{
		AvgSpeed:          stats.Mean(speeds),
		MaxSpeed:          stats.Max(speeds),
		SpeedStd:          stats.StdDev(speeds),
		AvgDistance:       stats.Mean(distances),
		AvgTimeInterval:   stats.Mean(intervals),
		SpeedPercentile95: stats.Percentile(speeds, 95),
		SpeedPercentile99: stats.Percentile(speeds, 99),
		FrequentLocations: FrequentLocations(visited),
	}
}

// FrequentLocations finds places visited at least three times within 100 m.
// Fewer than five locations never produce any.
func FrequentLocations(locations []spatial.Point) []models.FrequentLocation {
	result := []models.FrequentLocation{}
	if len(locations) < frequentLocationMinimum {
		return result
	}

	pts := make([]cluster.Point, len(locations))
	for i, l := range locations {
		pts[i] = cluster.Point{Location: l, Weight: 1, Index: i}
	}

	for _, c := range cluster.Partition(pts, cluster.Options{
		RadiusMeters: frequentLocationRadiusM,
		MinMembers:   frequentLocationVisits,
	}) {
		result = append(result, models.FrequentLocation{
			Center:     models.FromPoint(c.Center),
			VisitCount: c.Size(),
		})
	}
	return result
}

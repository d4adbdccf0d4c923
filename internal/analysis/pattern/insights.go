package pattern

import (
	"fmt"

	"github.com/anshc022/suraksha-ai-service/internal/models"
)

const (
	dominantShare    = 0.4
	highVolumeEvents = 20
	nightPeakFrom    = 22
	nightPeakUntil   = 5
)

// generateInsights applies a fixed sequence of rules; output order follows the rules.
func generateInsights(total int, hotspots []models.Hotspot, trends models.TrendSummary) []models.Insight {
	insights := []models.Insight{}

	if len(hotspots) > 0 {
		top := hotspots[0]
		insights = append(insights, models.Insight{
			Type:     "hotspot",
			Severity: "high",
			Message: fmt.Sprintf("Critical hotspot identified with %d incidents. Primary incident type: %s",
				top.IncidentCount, top.MostCommonType),
			Recommendation: "Increase patrol frequency and consider safety infrastructure improvements.",
		})
	}

	if total == 0 {
		return insights
	}

	if trends.PeakHour >= nightPeakFrom || trends.PeakHour <= nightPeakUntil {
		insights = append(insights, models.Insight{
			Type:           "temporal",
			Severity:       "medium",
			Message:        fmt.Sprintf("Peak incident time is %d:00 (night hours)", trends.PeakHour),
			Recommendation: "Enhance night-time security measures and lighting.",
		})
	}

	if trends.TrendDirection == models.TrendIncreasing {
		insights = append(insights, models.Insight{
			Type:           "trend",
			Severity:       "high",
			Message:        "Incident trend is increasing over the analyzed period",
			Recommendation: "Immediate intervention and additional safety measures required.",
		})
	}

	if kind, n := dominantType(trends.TypeDistribution); n > 0 && float64(n) >= float64(total)*dominantShare {
		insights = append(insights, models.Insight{
			Type:           "incident_pattern",
			Severity:       "medium",
			Message:        fmt.Sprintf("%s incidents are predominant (%d out of %d)", kind, n, total),
			Recommendation: fmt.Sprintf("Implement targeted prevention strategies for %s incidents.", kind),
		})
	}

	if total > highVolumeEvents {
		insights = append(insights, models.Insight{
			Type:           "safety",
			Severity:       "high",
			Message:        fmt.Sprintf("High incident density detected (%d incidents in analyzed period)", total),
			Recommendation: "Consider this area as high-risk and advise increased caution for travelers.",
		})
	}

	return insights
}

// dominantType picks the most frequent type. Ties resolve alphabetically so
// the message does not depend on map iteration order.
func dominantType(dist map[string]int) (string, int) {
	best, bestN := "", 0
	for k, n := range dist {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best, bestN
}

package risk

import (
	"math"

	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/spatial"
)

const (
	minPointRisk     = 5.0
	maxPointRisk     = 80.0
	pointScale       = 10.0
	alertWeight      = 2.0
	maxRouteModifier = 1.5
	waypointModifier = 0.05
	kmPerModifierPct = 1000.0
)

var typeWeights = map[string]float64{
	models.IncidentCrime:    3,
	models.IncidentAccident: 2,
	models.IncidentMedical:  1.5,
	models.IncidentFire:     2.5,
	models.IncidentOther:    1,
}

var severityMultipliers = map[string]float64{
	models.SeverityLow:      0.5,
	models.SeverityMedium:   1,
	models.SeverityHigh:     1.5,
	models.SeverityCritical: 2,
}

var timeMultipliers = map[string]float64{
	models.TimeMorning:   0.8,
	models.TimeAfternoon: 0.9,
	models.TimeEvening:   1.1,
	models.TimeNight:     1.3,
	models.TimeLateNight: 1.5,
}

func weightOr(m map[string]float64, key string, def float64) float64 {
	if w, ok := m[key]; ok {
		return w
	}
	return def
}

// pointScore turns the records around one location into a 5..80 risk value.
// Ten weighted records saturate the scale.
func pointScore(incidents []models.Incident, alerts int) float64 {
	total := float64(alerts) * alertWeight
	for _, inc := range incidents {
		total += weightOr(typeWeights, inc.Type, 1) * weightOr(severityMultipliers, inc.Severity, 1)
	}
	return math.Max(minPointRisk, math.Min(maxPointRisk, total/pointScale*maxPointRisk))
}

// TimeMultiplier scales risk by time-of-day bucket. Unknown buckets are neutral.
func TimeMultiplier(timeOfDay string) float64 {
	return weightOr(timeMultipliers, timeOfDay, 1)
}

// RouteMultiplier grows with straight-line length (+10% per 100 km) and
// waypoint count (+5% each), capped at 1.5.
func RouteMultiplier(route models.Route) float64 {
	km := spatial.DistanceKm(route.Start.Point(), route.End.Point())
	distance := 1 + km/kmPerModifierPct
	stops := 1 + waypointModifier*float64(len(route.Waypoints))
	return math.Min(maxRouteModifier, distance*stops)
}

// LevelForScore maps a 0..100 route or area score onto a risk level.
func LevelForScore(score float64) string {
	switch {
	case score < 25:
		return "low"
	case score < 50:
		return "moderate"
	case score < 75:
		return "high"
	default:
		return "critical"
	}
}

// Recommendations returns the fixed advice for the score's level.
func Recommendations(score float64) []string {
	switch LevelForScore(score) {
	case "low":
		return []string{"Maintain normal safety awareness", "Keep emergency contacts updated"}
	case "moderate":
		return []string{"Stay alert", "Share your location with trusted contacts", "Avoid isolated areas"}
	case "high":
		return []string{"Consider alternative routes", "Travel in groups if possible", "Inform others of your plans"}
	default:
		return []string{"Strongly consider avoiding this route", "Use alternative transportation", "Contact local authorities if necessary"}
	}
}

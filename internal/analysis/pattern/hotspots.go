package pattern

import (
	"math"
	"sort"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/analysis/cluster"
	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/stats"
)

const (
	maxHotspots       = 10
	decayWindowDays   = 30.0
	minDecay          = 0.1
	recentWindow      = 7 * 24 * time.Hour
	defaultSeverityWt = 2.0
	defaultTypeWt     = 1.0
)

var severityWeights = map[string]float64{
	models.SeverityLow:      1,
	models.SeverityMedium:   2,
	models.SeverityHigh:     3,
	models.SeverityCritical: 4,
}

var typeWeights = map[string]float64{
	models.IncidentCrime:    3,
	models.IncidentAccident: 2,
	models.IncidentMedical:  1.5,
	models.IncidentFire:     2.5,
	models.IncidentOther:    1,
	models.PanicAlertType:   3,
}

// event is an incident or alert flattened for clustering.
type event struct {
	kind      string
	severity  string
	timestamp time.Time
}

func (ev event) weight() float64 {
	sw, ok := severityWeights[ev.severity]
	if !ok {
		sw = defaultSeverityWt
	}
	tw, ok := typeWeights[ev.kind]
	if !ok {
		tw = defaultTypeWt
	}
	return sw * tw
}

func incidentKind(t string) string {
	if t == "" {
		return "unknown"
	}
	return t
}

// timeDecay fades an event linearly over 30 whole days down to 0.1.
func timeDecay(ts, now time.Time) float64 {
	days := math.Floor(now.Sub(ts).Hours() / 24)
	return math.Max(minDecay, 1-days/decayWindowDays)
}

func (e *Engine) hotspots(incidents []models.Incident, alerts []models.PanicAlert, now time.Time) []models.Hotspot {
	events := make([]event, 0, len(incidents)+len(alerts))
	points := make([]cluster.Point, 0, len(incidents)+len(alerts))

	add := func(ev event, loc models.GeoPoint) {
		points = append(points, cluster.Point{Location: loc.Point(), Weight: ev.weight(), Index: len(events)})
		events = append(events, ev)
	}
	for _, inc := range incidents {
		add(event{kind: incidentKind(inc.Type), severity: inc.Severity, timestamp: inc.CreatedAt}, inc.Location)
	}
	for _, a := range alerts {
		add(event{kind: models.PanicAlertType, severity: models.SeverityHigh, timestamp: a.Timestamp}, a.Location)
	}

	hotspots := []models.Hotspot{}
	if len(points) < e.cfg.MinIncidentsForHotspot {
		return hotspots
	}

	clusters := cluster.Partition(points, cluster.Options{
		RadiusMeters: e.cfg.HotspotRadiusKm * 1000,
		MinMembers:   e.cfg.MinIncidentsForHotspot,
	})

	for _, c := range clusters {
		decays := make([]float64, 0, c.Size())
		breakdown := make(map[string]int)
		var order []string
		recent := 0

		for _, m := range c.Members {
			ev := events[m.Index]
			decays = append(decays, timeDecay(ev.timestamp, now))
			if breakdown[ev.kind] == 0 {
				order = append(order, ev.kind)
			}
			breakdown[ev.kind]++
			if !ev.timestamp.Before(now.Add(-recentWindow)) {
				recent++
			}
		}

		score := c.TotalWeight() * stats.Mean(decays)
		hotspots = append(hotspots, models.Hotspot{
			Center:            models.FromPoint(c.Center),
			IncidentCount:     c.Size(),
			RiskScore:         stats.Round(score, 2),
			RiskLevel:         LevelForScore(score),
			RadiusKm:          e.cfg.HotspotRadiusKm,
			IncidentBreakdown: breakdown,
			MostCommonType:    mostCommon(order, breakdown),
			RecentIncidents:   recent,
		})
	}

	sort.SliceStable(hotspots, func(i, j int) bool {
		return hotspots[i].RiskScore > hotspots[j].RiskScore
	})
	if len(hotspots) > maxHotspots {
		hotspots = hotspots[:maxHotspots]
	}
	return hotspots
}

// mostCommon returns the key with the highest count; ties go to the key seen first.
func mostCommon(order []string, counts map[string]int) string {
	best, bestN := "", 0
	for _, k := range order {
		if counts[k] > bestN {
			best, bestN = k, counts[k]
		}
	}
	return best
}

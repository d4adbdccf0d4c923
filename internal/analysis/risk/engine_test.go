package risk

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/analysis"
	"github.com/anshc022/suraksha-ai-service/internal/analysis/analysistest"
	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/spatial"
)

var (
	home = models.GeoPoint{Lat: 19.0760, Lng: 72.8777}
	now  = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
)

func newEngine(gw analysis.Gateway) *Engine {
	e := NewEngine(gw, DefaultConfig())
	e.now = func() time.Time { return now }
	return e
}

func northOf(p models.GeoPoint, km float64) models.GeoPoint {
	return models.GeoPoint{Lat: p.Lat + spatial.LatDegreesForKm(km), Lng: p.Lng}
}

func crime(severity string, loc models.GeoPoint, at time.Time) models.Incident {
	return models.Incident{ID: at.Format(time.RFC3339Nano), Location: loc, Type: models.IncidentCrime, Severity: severity, CreatedAt: at}
}

// failingAt fails reads centred on one point and delegates the rest.
type failingAt struct {
	*analysistest.Gateway
	bad models.GeoPoint
}

func (f failingAt) GetIncidentsInArea(ctx context.Context, q models.AreaQuery) ([]models.Incident, error) {
	if q.Center == f.bad {
		return nil, errors.New("timeout")
	}
	return f.Gateway.GetIncidentsInArea(ctx, q)
}

func TestPointScore(t *testing.T) {
	tests := []struct {
		name      string
		incidents []models.Incident
		alerts    int
		want      float64
	}{
		{"nothing nearby", nil, 0, 5},
		{"one high crime", []models.Incident{crime(models.SeverityHigh, home, now)}, 0, 36},
		{"one alert", nil, 1, 16},
		{"low other floors at five", []models.Incident{{Type: models.IncidentOther, Severity: models.SeverityLow}}, 0, 5},
		{"unknown type and severity", []models.Incident{{Type: "flood", Severity: "extreme"}}, 0, 8},
		{"saturated", []models.Incident{
			crime(models.SeverityCritical, home, now),
			crime(models.SeverityCritical, home, now),
		}, 3, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointScore(tt.incidents, tt.alerts); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("pointScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeMultiplierMonotone(t *testing.T) {
	order := []string{models.TimeMorning, models.TimeAfternoon, models.TimeDay, models.TimeEvening, models.TimeNight, models.TimeLateNight}
	for i := 1; i < len(order); i++ {
		if TimeMultiplier(order[i-1]) > TimeMultiplier(order[i]) {
			t.Errorf("%s (%v) > %s (%v)", order[i-1], TimeMultiplier(order[i-1]), order[i], TimeMultiplier(order[i]))
		}
	}
	if TimeMultiplier("dawn") != 1 {
		t.Errorf("unknown bucket = %v, want 1", TimeMultiplier("dawn"))
	}
}

func TestRouteMultiplier(t *testing.T) {
	tests := []struct {
		name  string
		route models.Route
		want  float64
		tol   float64
	}{
		{"same point", models.Route{Start: home, End: home}, 1, 1e-9},
		{"two waypoints", models.Route{Start: home, End: home, Waypoints: []models.GeoPoint{home, home}}, 1.1, 1e-9},
		{"hundred km", models.Route{Start: home, End: northOf(home, 100)}, 1.1, 1e-3},
		{"capped", models.Route{Start: home, End: home, Waypoints: make([]models.GeoPoint, 20)}, 1.5, 1e-9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RouteMultiplier(tt.route); math.Abs(got-tt.want) > tt.tol {
				t.Errorf("RouteMultiplier = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelAndRecommendations(t *testing.T) {
	tests := []struct {
		score float64
		level string
		first string
	}{
		{0, "low", "Maintain normal safety awareness"},
		{24.99, "low", "Maintain normal safety awareness"},
		{25, "moderate", "Stay alert"},
		{50, "high", "Consider alternative routes"},
		{75, "critical", "Strongly consider avoiding this route"},
	}
	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.level {
			t.Errorf("LevelForScore(%v) = %q, want %q", tt.score, got, tt.level)
		}
		if got := Recommendations(tt.score); got[0] != tt.first {
			t.Errorf("Recommendations(%v)[0] = %q, want %q", tt.score, got[0], tt.first)
		}
	}
}

func TestPredictRouteWithoutData(t *testing.T) {
	gw := &analysistest.Gateway{}
	res := newEngine(gw).PredictRoute(context.Background(), RouteRequest{
		Route:  models.Route{Start: home, End: home},
		UserID: "u1",
	})

	if res.IsFallback() {
		t.Fatalf("unexpected fallback: %v", res.Err)
	}
	if res.Value.Score != 20 {
		t.Errorf("score = %v, want 20", res.Value.Score)
	}
	c := res.Value.Components
	if c.BaseRisk != 20 || c.TimeModifier != 1 || c.RouteModifier != 1 {
		t.Errorf("components = %+v", c)
	}

	recs := gw.RiskRecords()
	if len(recs) != 1 {
		t.Fatalf("stored %d records, want 1", len(recs))
	}
	if recs[0].TimeOfDay != models.TimeDay || recs[0].UserID != "u1" || recs[0].RiskScore != 20 {
		t.Errorf("record = %+v", recs[0])
	}
}

func TestPredictRouteWithIncidents(t *testing.T) {
	end := northOf(home, 10)
	gw := &analysistest.Gateway{
		Incidents: []models.Incident{
			crime(models.SeverityHigh, northOf(home, 0.2), now.Add(-24*time.Hour)),
			crime(models.SeverityHigh, northOf(home, 0.4), now.Add(-48*time.Hour)),
			// older than a year, ignored
			crime(models.SeverityCritical, end, now.AddDate(-2, 0, 0)),
		},
	}
	route := models.Route{Start: home, End: end}

	res := newEngine(gw).PredictRoute(context.Background(), RouteRequest{Route: route, TimeOfDay: models.TimeNight})

	// start scores 72, end has nothing and scores 5
	want := 38.5 * 1.3 * RouteMultiplier(route)
	if math.Abs(res.Value.Score-want) > 0.01 {
		t.Errorf("score = %v, want about %v", res.Value.Score, want)
	}
	if res.Value.Components.BaseRisk != 38.5 {
		t.Errorf("base = %v, want 38.5", res.Value.Components.BaseRisk)
	}
}

func TestPredictRouteFailedPoint(t *testing.T) {
	end := northOf(home, 10)
	gw := failingAt{
		Gateway: &analysistest.Gateway{Incidents: []models.Incident{
			crime(models.SeverityHigh, home, now.Add(-time.Hour)),
			crime(models.SeverityHigh, home, now.Add(-time.Hour)),
		}},
		bad: end,
	}

	res := newEngine(gw).PredictRoute(context.Background(), RouteRequest{Route: models.Route{Start: home, End: end}})
	if !res.IsFallback() || res.Err == nil {
		t.Fatalf("a degraded point should mark the result: %+v", res)
	}
	// (72 + 20) / 2
	if res.Value.Components.BaseRisk != 46 {
		t.Errorf("base = %v, want 46", res.Value.Components.BaseRisk)
	}
	if n := len(gw.RiskRecords()); n != 1 {
		t.Errorf("stored %d records, want 1 since the start point was read", n)
	}
}

func TestPredictRouteAllPointsFailed(t *testing.T) {
	gw := &analysistest.Gateway{IncidentErr: errors.New("store down")}

	res := newEngine(gw).PredictRoute(context.Background(), RouteRequest{Route: models.Route{Start: home, End: home}})
	if !res.IsFallback() || !errors.Is(res.Err, gw.IncidentErr) {
		t.Fatalf("result = %+v, want fallback caused by the read error", res)
	}
	if res.Value.Score != 20 {
		t.Errorf("score = %v, want 20", res.Value.Score)
	}
	if n := len(gw.RiskRecords()); n != 0 {
		t.Errorf("stored %d records for a prediction with no data behind it", n)
	}
}

func TestPredictRoutePanicFallsBack(t *testing.T) {
	gw := &analysistest.Gateway{PanicOnRead: true}

	res := newEngine(gw).PredictRoute(context.Background(), RouteRequest{Route: models.Route{Start: home, End: home}})
	if !res.IsFallback() || res.Value.Score != FallbackScore {
		t.Fatalf("result = %+v, want fallback %v", res, FallbackScore)
	}
	if n := len(gw.RiskRecords()); n != 0 {
		t.Errorf("fallback stored %d records", n)
	}
}

func TestPredictRouteIdempotent(t *testing.T) {
	gw := &analysistest.Gateway{Incidents: []models.Incident{crime(models.SeverityMedium, home, now.Add(-time.Hour))}}
	e := newEngine(gw)
	req := RouteRequest{
		Route: models.Route{
			Start:     home,
			End:       northOf(home, 3),
			Waypoints: []models.GeoPoint{northOf(home, 1), northOf(home, 2)},
		},
		TimeOfDay: models.TimeEvening,
	}

	first := e.PredictRoute(context.Background(), req).Value.Score
	for i := 0; i < 5; i++ {
		if got := e.PredictRoute(context.Background(), req).Value.Score; got != first {
			t.Fatalf("run %d score = %v, first = %v", i, got, first)
		}
	}
}

func TestAreaSummary(t *testing.T) {
	gw := &analysistest.Gateway{
		Incidents: []models.Incident{
			crime(models.SeverityHigh, home, now.Add(-time.Hour)),
			crime(models.SeverityHigh, home, now.Add(-2*time.Hour)),
			{ID: "x", Location: home, Severity: models.SeverityHigh, CreatedAt: now.Add(-time.Hour)},
			crime(models.SeverityCritical, home, now.AddDate(0, 0, -40)),
		},
		Alerts: []models.PanicAlert{{ID: "a", Location: home, Timestamp: now.Add(-time.Hour)}},
	}

	res := newEngine(gw).AreaSummary(context.Background(), home, 5)
	s := res.Value
	if res.IsFallback() {
		t.Fatalf("unexpected fallback: %v", res.Err)
	}
	if s.TotalIncidents != 3 || s.TotalPanicAlerts != 1 {
		t.Errorf("totals = %d/%d, want 3/1", s.TotalIncidents, s.TotalPanicAlerts)
	}
	if s.IncidentBreakdown[models.IncidentCrime] != 2 || s.IncidentBreakdown[models.IncidentOther] != 1 {
		t.Errorf("breakdown = %v", s.IncidentBreakdown)
	}
	if s.RiskScore != 80 || s.RiskLevel != "critical" || s.TimePeriod != "30 days" {
		t.Errorf("summary = %+v", s)
	}
}

func TestAreaSummaryFallback(t *testing.T) {
	gw := &analysistest.Gateway{AlertErr: errors.New("down")}

	res := newEngine(gw).AreaSummary(context.Background(), home, 5)
	if !res.IsFallback() {
		t.Fatal("want fallback")
	}
	if res.Value.RiskScore != 25 || res.Value.RiskLevel != "moderate" || res.Value.IncidentBreakdown == nil {
		t.Errorf("fallback = %+v", res.Value)
	}
}

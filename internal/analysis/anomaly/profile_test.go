package anomaly

import (
	"math"
	"testing"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/spatial"
)

func TestEnrich(t *testing.T) {
	t0 := at(9)
	points := []models.TelemetryPoint{
		north(0, t0),
		north(1, t0.Add(time.Minute)),
		{Lat: origin.Lat, Lng: origin.Lng, Timestamp: t0.Add(2 * time.Minute), Speed: speed(33)},
		north(0, t0.Add(2*time.Minute)),
	}

	got := Enrich(points)

	if got[0].DistanceFromPrev != 0 || got[0].TimeFromPrev != 0 || got[0].CalculatedSpeed != 0 {
		t.Errorf("first point has derived values: %+v", got[0])
	}
	wantDist := spatial.HaversineDistance(points[0].Lat, points[0].Lng, points[1].Lat, points[1].Lng)
	if math.Abs(got[1].DistanceFromPrev-wantDist) > 1e-9 || got[1].TimeFromPrev != 60 {
		t.Errorf("second point = %+v", got[1])
	}
	if math.Abs(got[1].CalculatedSpeed-wantDist/60*3.6) > 1e-9 {
		t.Errorf("calculated speed = %v", got[1].CalculatedSpeed)
	}
	if got[2].CalculatedSpeed != 33 {
		t.Errorf("reported speed should win, got %v", got[2].CalculatedSpeed)
	}
	if got[3].CalculatedSpeed != 0 {
		t.Errorf("zero elapsed time should give zero speed, got %v", got[3].CalculatedSpeed)
	}
}

func TestBuildProfile(t *testing.T) {
	history := make([]models.TelemetryPoint, 11)
	for i := range history {
		history[i] = north(float64(i), at(6).Add(time.Duration(i)*time.Minute))
	}
	// duplicate timestamp segment is skipped
	history = append(history, north(20, history[10].Timestamp))

	p := BuildProfile(history)

	if math.Abs(p.AvgSpeed-60) > 0.5 || math.Abs(p.MaxSpeed-60) > 0.5 {
		t.Errorf("speeds avg=%v max=%v, want ~60", p.AvgSpeed, p.MaxSpeed)
	}
	if p.SpeedStd > 1e-6 {
		t.Errorf("constant speed should have ~0 std, got %v", p.SpeedStd)
	}
	if p.AvgTimeInterval != 60 {
		t.Errorf("avg interval = %v, want 60", p.AvgTimeInterval)
	}
	if len(p.FrequentLocations) != 0 {
		t.Errorf("straight line should have no frequent locations: %+v", p.FrequentLocations)
	}
}

func TestFrequentLocations(t *testing.T) {
	home := origin
	office := spatial.Point{Lat: origin.Lat + 0.05, Lng: origin.Lng}

	var locs []spatial.Point
	for i := 0; i < 4; i++ {
		locs = append(locs, spatial.Point{Lat: home.Lat + float64(i)*0.0001, Lng: home.Lng})
	}
	locs = append(locs, office, office)

	got := FrequentLocations(locs)
	if len(got) != 1 {
		t.Fatalf("got %d locations, want 1: %+v", len(got), got)
	}
	if got[0].VisitCount != 4 {
		t.Errorf("visit count = %d, want 4", got[0].VisitCount)
	}
	if d := spatial.DistanceMeters(got[0].Center.Point(), home); d > 30 {
		t.Errorf("center %.1fm from home", d)
	}

	if got := FrequentLocations(locs[:4]); len(got) != 0 {
		t.Errorf("fewer than five locations should yield none, got %+v", got)
	}
}

package pattern

import (
	"testing"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/models"
)

func day(d, hour int) time.Time {
	return time.Date(2026, 3, d, hour, 0, 0, 0, time.UTC)
}

func crimesAt(times ...time.Time) []models.Incident {
	out := make([]models.Incident, len(times))
	for i, ts := range times {
		out[i] = incident(models.IncidentCrime, models.SeverityMedium, center, ts)
	}
	return out
}

func repeat(ts time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = ts.Add(time.Duration(i) * time.Minute)
	}
	return out
}

func TestTrendDirection(t *testing.T) {
	start, end := day(5, 0), day(15, 0)

	tests := []struct {
		name   string
		first  int
		second int
		start  time.Time
		want   string
	}{
		{"increasing", 3, 7, start, models.TrendIncreasing},
		{"decreasing", 7, 3, start, models.TrendDecreasing},
		{"stable", 5, 5, start, models.TrendStable},
		{"empty first half", 0, 5, start, models.TrendStable},
		{"too few events", 1, 2, start, models.TrendInsufficientData},
		{"window under a week", 5, 5, day(10, 1), models.TrendInsufficientData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			times := append(repeat(day(10, 0).Add(-time.Hour), tt.first), repeat(day(12, 10), tt.second)...)
			got := analyzeTrends(crimesAt(times...), nil, tt.start, end)
			if got.TrendDirection != tt.want {
				t.Errorf("direction = %q, want %q", got.TrendDirection, tt.want)
			}
		})
	}
}

func TestTrendMidpointBelongsToSecondHalf(t *testing.T) {
	start, end := day(5, 0), day(15, 0)
	mid := day(10, 0)

	// 2 before, 3 at the midpoint: counted 2 vs 3 gives a ratio of 1.5.
	times := append(repeat(day(6, 0), 2), mid, mid, mid)
	got := analyzeTrends(crimesAt(times...), nil, start, end)
	if got.TrendDirection != models.TrendIncreasing {
		t.Errorf("direction = %q, want increasing", got.TrendDirection)
	}
}

func TestTrendDistributions(t *testing.T) {
	incidents := crimesAt(day(10, 23), day(10, 23).Add(15*time.Minute), day(15, 8))
	alerts := []models.PanicAlert{{ID: "a", Location: center, Timestamp: day(16, 8)}}

	got := analyzeTrends(incidents, alerts, day(1, 0), day(21, 0))

	if got.TotalIncidents != 3 || got.TotalPanicAlerts != 1 {
		t.Errorf("totals = %d/%d, want 3/1", got.TotalIncidents, got.TotalPanicAlerts)
	}
	if got.PeakHour != 23 {
		t.Errorf("peak hour = %d, want 23 (first of the tied hours)", got.PeakHour)
	}
	if got.PeakDay != "Tuesday" {
		t.Errorf("peak day = %q, want Tuesday", got.PeakDay)
	}
	if got.WeeklyDistribution["2026-W11"] != 3 || got.WeeklyDistribution["2026-W12"] != 1 {
		t.Errorf("weekly = %v", got.WeeklyDistribution)
	}
	if got.TypeDistribution[models.IncidentCrime] != 3 || got.TypeDistribution[models.PanicAlertType] != 1 {
		t.Errorf("types = %v", got.TypeDistribution)
	}
	if got.DailyAverage != 0.2 {
		t.Errorf("daily average = %v, want 0.2", got.DailyAverage)
	}
}

func TestTrendDefaults(t *testing.T) {
	got := analyzeTrends(nil, nil, day(15, 0), day(15, 6))

	if got.PeakHour != 12 || got.PeakDay != "Monday" {
		t.Errorf("peak = %d/%s, want 12/Monday", got.PeakHour, got.PeakDay)
	}
	if got.DailyAverage != 0 || got.TrendDirection != models.TrendInsufficientData {
		t.Errorf("trends = %+v", got)
	}
	if got.HourlyDistribution == nil || got.TypeDistribution == nil {
		t.Error("distributions should be empty maps, not nil")
	}
}

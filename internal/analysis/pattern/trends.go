package pattern

import (
	"fmt"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/stats"
)

const (
	defaultPeakHour = 12
	minTrendEvents  = 4
	minTrendDays    = 7
	increasingRatio = 1.2
	decreasingRatio = 0.8
)

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// weekdayName returns the Monday-first day name.
func weekdayName(t time.Time) string {
	return dayNames[(int(t.Weekday())+6)%7]
}

func isoWeekKey(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", y, w)
}

func emptyTrends() models.TrendSummary {
	return models.TrendSummary{
		PeakHour:           defaultPeakHour,
		PeakDay:            dayNames[0],
		HourlyDistribution: map[int]int{},
		DailyDistribution:  map[string]int{},
		WeeklyDistribution: map[string]int{},
		TypeDistribution:   map[string]int{},
		TrendDirection:     models.TrendInsufficientData,
	}
}

type timedEvent struct {
	kind string
	at   time.Time
}

func analyzeTrends(incidents []models.Incident, alerts []models.PanicAlert, start, end time.Time) models.TrendSummary {
	events := make([]timedEvent, 0, len(incidents)+len(alerts))
	for _, inc := range incidents {
		events = append(events, timedEvent{kind: incidentKind(inc.Type), at: inc.CreatedAt})
	}
	for _, a := range alerts {
		events = append(events, timedEvent{kind: models.PanicAlertType, at: a.Timestamp})
	}

	tr := emptyTrends()
	tr.TotalIncidents = len(incidents)
	tr.TotalPanicAlerts = len(alerts)

	var hourOrder []int
	var dayOrder []string
	for _, ev := range events {
		h := ev.at.Hour()
		if tr.HourlyDistribution[h] == 0 {
			hourOrder = append(hourOrder, h)
		}
		tr.HourlyDistribution[h]++

		d := weekdayName(ev.at)
		if tr.DailyDistribution[d] == 0 {
			dayOrder = append(dayOrder, d)
		}
		tr.DailyDistribution[d]++

		tr.WeeklyDistribution[isoWeekKey(ev.at)]++
		tr.TypeDistribution[ev.kind]++
	}

	best := 0
	for _, h := range hourOrder {
		if tr.HourlyDistribution[h] > best {
			tr.PeakHour, best = h, tr.HourlyDistribution[h]
		}
	}
	if len(dayOrder) > 0 {
		tr.PeakDay = mostCommon(dayOrder, tr.DailyDistribution)
	}

	days := wholeDays(start, end)
	denom := days
	if denom < 1 {
		denom = 1
	}
	tr.DailyAverage = stats.Round(float64(len(events))/float64(denom), 2)
	tr.TrendDirection = trendDirection(events, start, end, days)
	return tr
}

func wholeDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// trendDirection compares event counts in the two halves of [start, end].
// The halves have equal length, so the count ratio equals the rate ratio.
func trendDirection(events []timedEvent, start, end time.Time, days int) string {
	if len(events) < minTrendEvents || days < minTrendDays {
		return models.TrendInsufficientData
	}

	mid := start.Add(end.Sub(start) / 2)
	first := 0
	for _, ev := range events {
		if ev.at.Before(mid) {
			first++
		}
	}
	second := len(events) - first

	ratio := 1.0
	if first > 0 {
		ratio = float64(second) / float64(first)
	}

	switch {
	case ratio > increasingRatio:
		return models.TrendIncreasing
	case ratio < decreasingRatio:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

package models

import (
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/spatial"
)

// Trend directions
const (
	TrendIncreasing       = "increasing"
	TrendDecreasing       = "decreasing"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// Hotspot is a dense cluster of recent weighted events.
type Hotspot struct {
	Center            GeoPoint       `json:"center"`
	IncidentCount     int            `json:"incident_count"`
	RiskScore         float64        `json:"risk_score"`
	RiskLevel         string         `json:"risk_level"`
	RadiusKm          float64        `json:"radius_km"`
	IncidentBreakdown map[string]int `json:"incident_breakdown"`
	MostCommonType    string         `json:"most_common_type"`
	RecentIncidents   int            `json:"recent_incidents"`
}

// RiskZone is a grid cell with enough activity to be reported.
type RiskZone struct {
	ID            string         `json:"id"`
	Center        GeoPoint       `json:"center"`
	Bounds        spatial.Bounds `json:"bounds"`
	IncidentCount int            `json:"incident_count"`
	AlertCount    int            `json:"alert_count"`
	RiskScore     float64        `json:"risk_score"`
	RiskLevel     string         `json:"risk_level"`
}

// TrendSummary describes how events are spread over time.
type TrendSummary struct {
	TotalIncidents     int            `json:"total_incidents"`
	TotalPanicAlerts   int            `json:"total_panic_alerts"`
	DailyAverage       float64        `json:"daily_average"`
	PeakHour           int            `json:"peak_hour"`
	PeakDay            string         `json:"peak_day"`
	HourlyDistribution map[int]int    `json:"hourly_distribution"`
	DailyDistribution  map[string]int `json:"daily_distribution"`
	WeeklyDistribution map[string]int `json:"weekly_distribution"`
	TypeDistribution   map[string]int `json:"type_distribution"`
	TrendDirection     string         `json:"trend_direction"`
}

// Insight is a human-readable observation with a suggested action.
type Insight struct {
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// PatternAnalysis bundles all pattern engine outputs for one area.
type PatternAnalysis struct {
	Hotspots       []Hotspot    `json:"hotspots"`
	Trends         TrendSummary `json:"trends"`
	RiskZones      []RiskZone   `json:"risk_zones"`
	Insights       []Insight    `json:"insights"`
	DegradedStages []string     `json:"degraded_stages,omitempty"`
}

// TimeRange bounds an analysis window.
type TimeRange struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required,gtfield=Start"`
}

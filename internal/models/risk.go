package models

import "time"

// Time-of-day buckets accepted by the route risk model.
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeNight     = "night"
	TimeLateNight = "late_night"
	TimeDay       = "day"
)

// Route is a start/end pair with optional intermediate points.
type Route struct {
	Start     GeoPoint   `json:"start"`
	End       GeoPoint   `json:"end"`
	Waypoints []GeoPoint `json:"waypoints,omitempty" binding:"omitempty,dive"`
}

// Points returns start, waypoints and end in travel order.
func (r Route) Points() []GeoPoint {
	pts := make([]GeoPoint, 0, len(r.Waypoints)+2)
	pts = append(pts, r.Start)
	pts = append(pts, r.Waypoints...)
	return append(pts, r.End)
}

// RiskComponents breaks a route score into its multiplicative parts.
type RiskComponents struct {
	BaseRisk      float64 `json:"base_risk"`
	TimeModifier  float64 `json:"time_modifier"`
	RouteModifier float64 `json:"route_modifier"`
}

// RiskPrediction is the route score with its components.
type RiskPrediction struct {
	Score      float64        `json:"risk_score"`
	Components RiskComponents `json:"components"`
}

// RiskPredictionRecord is what gets persisted for each route prediction.
type RiskPredictionRecord struct {
	Route      Route          `json:"route"`
	TimeOfDay  string         `json:"time_of_day"`
	UserID     string         `json:"user_id,omitempty"`
	RiskScore  float64        `json:"risk_score"`
	Components RiskComponents `json:"components"`
	Timestamp  time.Time      `json:"timestamp"`
}

// AreaRiskSummary is the 30-day risk snapshot for an area.
type AreaRiskSummary struct {
	RiskScore         float64        `json:"risk_score"`
	RiskLevel         string         `json:"risk_level"`
	TotalIncidents    int            `json:"total_incidents"`
	TotalPanicAlerts  int            `json:"total_panic_alerts"`
	IncidentBreakdown map[string]int `json:"incident_breakdown"`
	TimePeriod        string         `json:"time_period"`
}

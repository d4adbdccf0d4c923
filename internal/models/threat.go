package models

import "time"

// ThreatContext describes the circumstances of a threat assessment.
type ThreatContext struct {
	TimeOfDay string `json:"time_of_day,omitempty"`
	DayOfWeek string `json:"day_of_week,omitempty"`
	Weather   string `json:"weather,omitempty"`
}

// ThreatAssessRequest is the body of POST /api/threat/assess.
type ThreatAssessRequest struct {
	Location    *GeoPoint              `json:"location" binding:"required"`
	UserProfile map[string]interface{} `json:"user_profile,omitempty"`
	Context     ThreatContext          `json:"context"`
}

// ThreatAssessResponse is the contextual threat answer.
type ThreatAssessResponse struct {
	ThreatLevel         string    `json:"threat_level"`
	ThreatScore         float64   `json:"threat_score"`
	ContributingFactors []string  `json:"contributing_factors"`
	Recommendations     []string  `json:"recommendations"`
	Timestamp           time.Time `json:"timestamp"`
}

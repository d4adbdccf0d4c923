package models

import "time"

// Incident types
const (
	IncidentCrime    = "crime"
	IncidentAccident = "accident"
	IncidentMedical  = "medical"
	IncidentFire     = "fire"
	IncidentOther    = "other"

	// PanicAlertType labels panic alerts when they are mixed with incidents.
	PanicAlertType = "panic_alert"
)

// Severity levels
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Incident is a reported safety event.
type Incident struct {
	ID        string    `json:"id" db:"id"`
	Location  GeoPoint  `json:"location"`
	Type      string    `json:"type" db:"type"`
	Severity  string    `json:"severity" db:"severity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PanicAlert is a user-triggered emergency. Its severity is always high.
type PanicAlert struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Location  GeoPoint  `json:"location"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// AreaQuery selects records within RadiusKm of Center, optionally bounded in time and by type.
type AreaQuery struct {
	Center   GeoPoint
	RadiusKm float64
	Start    *time.Time
	End      *time.Time
	Types    []string // incidents only; empty means all
}

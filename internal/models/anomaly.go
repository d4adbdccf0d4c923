package models

import "time"

// AnomalyType names the sub-detector that produced a verdict.
type AnomalyType string

const (
	AnomalyNone              AnomalyType = ""
	AnomalyExcessiveSpeed    AnomalyType = "excessive_speed"
	AnomalyUnusualSpeed      AnomalyType = "unusual_speed"
	AnomalySuddenSpeedChange AnomalyType = "sudden_speed_change"
	AnomalyErraticMovement   AnomalyType = "erratic_movement"
	AnomalyUnusualLocation   AnomalyType = "unusual_location"
	AnomalyUnusualTime       AnomalyType = "unusual_time"
	AnomalyError             AnomalyType = "error"
)

// AnomalyVerdict is the outcome of one detection run.
type AnomalyVerdict struct {
	IsAnomaly  bool        `json:"is_anomaly"`
	Confidence float64     `json:"confidence_score"`
	Type       AnomalyType `json:"anomaly_type,omitempty"`
	Details    string      `json:"details,omitempty"`
}

// AnomalyDetectionRecord is what gets persisted for each detection.
type AnomalyDetectionRecord struct {
	UserID             string           `json:"user_id"`
	LocationSample     []TelemetryPoint `json:"location_data"`
	Verdict            AnomalyVerdict   `json:"result"`
	DetectionTimestamp time.Time        `json:"detection_timestamp"`
}

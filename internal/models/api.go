package models

import "time"

// RiskPredictRequest is the body of POST /api/risk/predict.
type RiskPredictRequest struct {
	Route     RouteInput `json:"route"`
	TimeOfDay string     `json:"time_of_day" binding:"omitempty,max=32"`
	UserID    string     `json:"user_id" binding:"omitempty,max=128"`
}

// RouteInput is a route as submitted. Start and end are pointers so that an
// omitted coordinate is rejected instead of read as 0,0.
type RouteInput struct {
	Start     *GeoPoint  `json:"start" binding:"required"`
	End       *GeoPoint  `json:"end" binding:"required"`
	Waypoints []GeoPoint `json:"waypoints,omitempty" binding:"omitempty,dive"`
}

// Route converts a validated input into the engine's route.
func (r RouteInput) Route() Route {
	route := Route{Waypoints: r.Waypoints}
	if r.Start != nil {
		route.Start = *r.Start
	}
	if r.End != nil {
		route.End = *r.End
	}
	return route
}

// RiskPredictResponse is the route risk answer.
type RiskPredictResponse struct {
	RiskScore       float64   `json:"risk_score"`
	RiskLevel       string    `json:"risk_level"`
	Recommendations []string  `json:"recommendations"`
	Timestamp       time.Time `json:"timestamp"`
}

// AreaRiskQuery is the query string of GET /api/risk/area.
type AreaRiskQuery struct {
	Lat      float64 `form:"lat" binding:"gte=-90,lte=90"`
	Lng      float64 `form:"lng" binding:"gte=-180,lte=180"`
	RadiusKm float64 `form:"radius_km" binding:"omitempty,gt=0,lte=50"`
}

// AnomalyDetectRequest is the body of POST /api/anomaly/detect.
type AnomalyDetectRequest struct {
	UserID       string           `json:"user_id" binding:"required,max=128"`
	LocationData []TelemetryPoint `json:"location_data" binding:"required,min=2,dive"`
}

// AnomalyDetectResponse is the anomaly verdict on the wire.
type AnomalyDetectResponse struct {
	AnomalyVerdict
	Timestamp time.Time `json:"timestamp"`
}

// AreaSpec is a circular analysis area.
type AreaSpec struct {
	Center   GeoPoint `json:"center"`
	RadiusKm float64  `json:"radius_km" binding:"required,gt=0,lte=50"`
}

// PatternAnalyzeRequest is the body of POST /api/patterns/analyze.
type PatternAnalyzeRequest struct {
	Area          AreaSpec   `json:"area"`
	TimeRange     *TimeRange `json:"time_range,omitempty"`
	IncidentTypes []string   `json:"incident_types,omitempty" binding:"omitempty,dive,oneof=crime accident medical fire other"`
}

// PatternAnalyzeResponse is the pattern analysis on the wire.
type PatternAnalyzeResponse struct {
	PatternAnalysis
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is returned for every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

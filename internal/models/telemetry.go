package models

import "time"

// TelemetryPoint is one device position report. Order is the caller's and
// is never re-sorted.
type TelemetryPoint struct {
	Lat       float64   `json:"lat" binding:"gte=-90,lte=90"`
	Lng       float64   `json:"lng" binding:"gte=-180,lte=180"`
	Timestamp time.Time `json:"timestamp" binding:"required"`
	Accuracy  *float64  `json:"accuracy,omitempty" binding:"omitempty,gte=0"`
	Speed     *float64  `json:"speed,omitempty" binding:"omitempty,gte=0"` // km/h as reported by the device
}

// EnrichedPoint adds derived kinematics relative to the previous point.
type EnrichedPoint struct {
	TelemetryPoint
	DistanceFromPrev float64 `json:"distance_from_prev"` // meters
	TimeFromPrev     float64 `json:"time_from_prev"`     // seconds
	CalculatedSpeed  float64 `json:"calculated_speed"`   // km/h
}

// FrequentLocation is a place the user visits repeatedly.
type FrequentLocation struct {
	Center     GeoPoint `json:"center"`
	VisitCount int      `json:"visit_count"`
}

// MovementProfile summarises a user's recent movement.
type MovementProfile struct {
	AvgSpeed          float64            `json:"avg_speed"`
	MaxSpeed          float64            `json:"max_speed"`
	SpeedStd          float64            `json:"speed_std"`
	AvgDistance       float64            `json:"avg_distance"`      // meters
	AvgTimeInterval   float64            `json:"avg_time_interval"` // seconds
	SpeedPercentile95 float64            `json:"speed_percentile_95"`
	SpeedPercentile99 float64            `json:"speed_percentile_99"`
	FrequentLocations []FrequentLocation `json:"frequent_locations"`
}

// DefaultMovementProfile is used when there is not enough history.
func DefaultMovementProfile() MovementProfile {
	return MovementProfile{
		AvgSpeed:          25,
		MaxSpeed:          60,
		SpeedStd:          15,
		AvgDistance:       500,
		AvgTimeInterval:   300,
		SpeedPercentile95: 80,
		SpeedPercentile99: 120,
		FrequentLocations: []FrequentLocation{},
	}
}

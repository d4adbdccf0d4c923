package models

import "github.com/anshc022/suraksha-ai-service/internal/spatial"

// GeoPoint is a coordinate in decimal degrees as it appears on the wire.
type GeoPoint struct {
	Lat float64 `json:"lat" binding:"gte=-90,lte=90"`
	Lng float64 `json:"lng" binding:"gte=-180,lte=180"`
}

// Point converts to the geometry type used by the engines.
func (g GeoPoint) Point() spatial.Point {
	return spatial.Point{Lat: g.Lat, Lng: g.Lng}
}

// FromPoint converts an engine coordinate back to its wire form.
func FromPoint(p spatial.Point) GeoPoint {
	return GeoPoint{Lat: p.Lat, Lng: p.Lng}
}

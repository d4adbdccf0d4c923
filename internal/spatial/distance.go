package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers

	// KmPerDegree is the planar approximation used for degree/kilometre conversion.
	KmPerDegree = 111.0
)

// HaversineDistance returns the great-circle distance between two points in meters.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// DistanceKm returns the great-circle distance between two points in kilometres.
func DistanceKm(a, b Point) float64 {
	return HaversineDistance(a.Lat, a.Lng, b.Lat, b.Lng) / 1000
}

// DistanceMeters returns the great-circle distance between two points in meters.
func DistanceMeters(a, b Point) float64 {
	return HaversineDistance(a.Lat, a.Lng, b.Lat, b.Lng)
}

// Bearing returns the initial bearing from point 1 to point 2 in degrees [0,360),
// where 0 is North and 90 is East.
func Bearing(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lngDiff := (lng2 - lng1) * math.Pi / 180

	y := math.Sin(lngDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lngDiff)

	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// TurnAngle returns the absolute change between two bearings in degrees, folded into [0,180].
func TurnAngle(from, to float64) float64 {
	d := math.Abs(math.Mod(to-from, 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}

package spatial

import "math"

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is an axis-aligned box in degrees. West > East means the box
// crosses the antimeridian.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// CrossesAntimeridian reports whether the box wraps from +180 to -180.
func (b Bounds) CrossesAntimeridian() bool {
	return b.West > b.East
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Point) bool {
	if p.Lat < b.South || p.Lat > b.North {
		return false
	}
	if b.CrossesAntimeridian() {
		return p.Lng >= b.West || p.Lng <= b.East
	}
	return p.Lng >= b.West && p.Lng <= b.East
}

// NormalizeLng wraps a longitude into [-180, 180].
func NormalizeLng(lng float64) float64 {
	if lng >= -180 && lng <= 180 {
		return lng
	}
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}

// Centroid returns the arithmetic mean of the points.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lng: sumLng / float64(len(points)),
	}
}

// LatDegreesForKm converts a north-south distance to degrees of latitude.
func LatDegreesForKm(km float64) float64 {
	return km / KmPerDegree
}

// LngDegreesForKm converts an east-west distance at the given latitude to degrees of longitude.
func LngDegreesForKm(km, lat float64) float64 {
	c := math.Cos(lat * math.Pi / 180)
	if c < 1e-6 {
		return 180
	}
	return km / (KmPerDegree * c)
}

// BoundsAround returns a box that contains every point within radiusKm of center.
// It is a prefilter; callers still check the exact distance. Near the
// antimeridian the box wraps, and when the circle reaches a pole it spans
// every longitude.
func BoundsAround(center Point, radiusKm float64) Bounds {
	// pad slightly so the planar approximation never cuts off the true circle
	dLat := LatDegreesForKm(radiusKm) * 1.01
	b := Bounds{
		North: math.Min(90, center.Lat+dLat),
		South: math.Max(-90, center.Lat-dLat),
		East:  180,
		West:  -180,
	}
	if b.North >= 90 || b.South <= -90 {
		return b
	}

	dLng := LngDegreesForKm(radiusKm, math.Max(math.Abs(b.South), math.Abs(b.North))) * 1.01
	if dLng >= 180 {
		return b
	}
	b.East = NormalizeLng(center.Lng + dLng)
	b.West = NormalizeLng(center.Lng - dLng)
	return b
}

package pattern

import (
	"math"
	"sort"

	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/spatial"
)

const (
	maxRiskZones      = 20
	minZoneScore      = 3
	incidentZoneScore = 2
	alertZoneScore    = 3
	zoneLevelScale    = 10
	zoneIDPrecision   = 7

	// maxZoneLngRatio caps the east-west span at this multiple of the
	// north-south span, which bounds the grid at high latitudes.
	maxZoneLngRatio = 4
)

// gridOffsets returns -span, -span+step, ... up to but excluding +span.
func gridOffsets(span, step float64) []float64 {
	n := int(math.Ceil(2 * span / step))
	offsets := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		offsets = append(offsets, -span+float64(i)*step)
	}
	return offsets
}

// cellBounds is the box of half-width half around a cell centre, wrapped at
// the antimeridian.
func cellBounds(lat, lng, half float64) spatial.Bounds {
	return spatial.Bounds{
		North: lat + half,
		South: lat - half,
		East:  spatial.NormalizeLng(lng + half),
		West:  spatial.NormalizeLng(lng - half),
	}
}

// zoneSpans returns the grid's half extent in degrees on each axis.
func zoneSpans(center models.GeoPoint, radiusKm float64) (latSpan, lngSpan float64) {
	latSpan = spatial.LatDegreesForKm(radiusKm)
	lngSpan = math.Min(spatial.LngDegreesForKm(radiusKm, center.Lat), maxZoneLngRatio*latSpan)
	return latSpan, lngSpan
}

// riskZones overlays a regular grid on the query area and scores each cell.
// Every cell scans every record, so cost grows with cells times records.
func (e *Engine) riskZones(incidents []models.Incident, alerts []models.PanicAlert, center models.GeoPoint, radiusKm float64) []models.RiskZone {
	step := e.cfg.GridSizeDeg
	half := step / 2
	latSpan, lngSpan := zoneSpans(center, radiusKm)
	latOffsets := gridOffsets(latSpan, step)
	lngOffsets := gridOffsets(lngSpan, step)

	zones := []models.RiskZone{}
	for _, dLat := range latOffsets {
		for _, dLng := range lngOffsets {
			lat, lng := center.Lat+dLat, spatial.NormalizeLng(center.Lng+dLng)
			cell := cellBounds(lat, lng, half)

			incCount := 0
			for _, inc := range incidents {
				if cell.Contains(inc.Location.Point()) {
					incCount++
				}
			}
			alertCount := 0
			for _, a := range alerts {
				if cell.Contains(a.Location.Point()) {
					alertCount++
				}
			}

			score := incCount*incidentZoneScore + alertCount*alertZoneScore
			if score < minZoneScore {
				continue
			}
			zones = append(zones, models.RiskZone{
				ID:            spatial.EncodeGeohash(lat, lng, zoneIDPrecision),
				Center:        models.GeoPoint{Lat: lat, Lng: lng},
				Bounds:        cell,
				IncidentCount: incCount,
				AlertCount:    alertCount,
				RiskScore:     float64(score),
				RiskLevel:     LevelForScore(float64(score * zoneLevelScale)),
			})
		}
	}

	sort.SliceStable(zones, func(i, j int) bool {
		return zones[i].RiskScore > zones[j].RiskScore
	})
	if len(zones) > maxRiskZones {
		zones = zones[:maxRiskZones]
	}
	return zones
}

// Package repository reads and writes the SQLite tables behind the data gateway.
package repository

import (
	"strings"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/spatial"
)

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// areaConditions builds the bounding-box and time prefilter for q. The box
// over-selects; callers drop rows beyond the radius with withinRadius.
func areaConditions(q models.AreaQuery, timeCol string) ([]string, []interface{}) {
	b := spatial.BoundsAround(q.Center.Point(), q.RadiusKm)

	lngCond := "lng BETWEEN ? AND ?"
	if b.CrossesAntimeridian() {
		lngCond = "(lng >= ? OR lng <= ?)"
	}
	conditions := []string{"lat BETWEEN ? AND ?", lngCond}
	args := []interface{}{b.South, b.North, b.West, b.East}

	if q.Start != nil {
		conditions = append(conditions, timeCol+" >= ?")
		args = append(args, toMillis(*q.Start))
	}
	if q.End != nil {
		conditions = append(conditions, timeCol+" <= ?")
		args = append(args, toMillis(*q.End))
	}
	return conditions, args
}

func withinRadius(q models.AreaQuery, p models.GeoPoint) bool {
	return spatial.DistanceKm(q.Center.Point(), p.Point()) <= q.RadiusKm
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

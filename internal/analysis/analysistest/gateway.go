// Package analysistest provides an in-memory analysis.Gateway for tests.
package analysistest

import (
	"context"
	"sync"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/models"
	"github.com/anshc022/suraksha-ai-service/internal/spatial"
)

// Gateway serves canned records and captures writes. Reads filter by
// distance, time window and type the way a real store would.
type Gateway struct {
	Incidents []models.Incident
	Alerts    []models.PanicAlert
	History   map[string][]models.TelemetryPoint

	IncidentErr error
	AlertErr    error
	HistoryErr  error

	// PanicOnRead makes every read panic, to exercise recovery paths.
	PanicOnRead bool

	mu             sync.Mutex
	historyCalls   int
	incidentCalls  int
	riskRecords    []models.RiskPredictionRecord
	anomalyRecords []models.AnomalyDetectionRecord
}

func inArea(q models.AreaQuery, p models.GeoPoint) bool {
	return spatial.DistanceKm(q.Center.Point(), p.Point()) <= q.RadiusKm
}

func inWindow(q models.AreaQuery, ts time.Time) bool {
	if q.Start != nil && ts.Before(*q.Start) {
		return false
	}
	if q.End != nil && ts.After(*q.End) {
		return false
	}
	return true
}

func (g *Gateway) GetIncidentsInArea(_ context.Context, q models.AreaQuery) ([]models.Incident, error) {
	g.mu.Lock()
	g.incidentCalls++
	g.mu.Unlock()
	if g.PanicOnRead {
		panic("analysistest: incident read")
	}
	if g.IncidentErr != nil {
		return nil, g.IncidentErr
	}

	var out []models.Incident
	for _, inc := range g.Incidents {
		if !inArea(q, inc.Location) || !inWindow(q, inc.CreatedAt) {
			continue
		}
		if len(q.Types) > 0 && !contains(q.Types, inc.Type) {
			continue
		}
		out = append(out, inc)
	}
	return out, nil
}

func (g *Gateway) GetPanicAlertsInArea(_ context.Context, q models.AreaQuery) ([]models.PanicAlert, error) {
	if g.PanicOnRead {
		panic("analysistest: alert read")
	}
	if g.AlertErr != nil {
		return nil, g.AlertErr
	}

	var out []models.PanicAlert
	for _, a := range g.Alerts {
		if inArea(q, a.Location) && inWindow(q, a.Timestamp) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (g *Gateway) GetUserLocationHistory(_ context.Context, userID string, _ int) ([]models.TelemetryPoint, error) {
	g.mu.Lock()
	g.historyCalls++
	g.mu.Unlock()
	if g.PanicOnRead {
		panic("analysistest: history read")
	}
	if g.HistoryErr != nil {
		return nil, g.HistoryErr
	}
	return g.History[userID], nil
}

func (g *Gateway) StoreRiskPrediction(_ context.Context, rec models.RiskPredictionRecord) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.riskRecords = append(g.riskRecords, rec)
}

func (g *Gateway) StoreAnomalyDetection(_ context.Context, rec models.AnomalyDetectionRecord) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.anomalyRecords = append(g.anomalyRecords, rec)
}

// HistoryCalls returns how many times history was read.
func (g *Gateway) HistoryCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.historyCalls
}

// IncidentCalls returns how many times incidents were read.
func (g *Gateway) IncidentCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.incidentCalls
}

// RiskRecords returns a copy of the stored route predictions.
func (g *Gateway) RiskRecords() []models.RiskPredictionRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.RiskPredictionRecord(nil), g.riskRecords...)
}

// AnomalyRecords returns a copy of the stored detections.
func (g *Gateway) AnomalyRecords() []models.AnomalyDetectionRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.AnomalyDetectionRecord(nil), g.anomalyRecords...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

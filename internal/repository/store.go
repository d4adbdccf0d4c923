package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/models"
)

// Store groups the repositories the data gateway reads and writes.
type Store struct {
	Incidents  *IncidentRepository
	Alerts     *PanicAlertRepository
	Locations  *LocationRepository
	Detections *DetectionRepository
}

// NewStore builds every repository over db.
func NewStore(db *sql.DB) *Store {
	return &Store{
		Incidents:  NewIncidentRepository(db),
		Alerts:     NewPanicAlertRepository(db),
		Locations:  NewLocationRepository(db),
		Detections: NewDetectionRepository(db),
	}
}

func (s *Store) FindIncidents(ctx context.Context, q models.AreaQuery) ([]models.Incident, error) {
	return s.Incidents.FindInArea(ctx, q)
}

func (s *Store) FindPanicAlerts(ctx context.Context, q models.AreaQuery) ([]models.PanicAlert, error) {
	return s.Alerts.FindInArea(ctx, q)
}

func (s *Store) LocationHistory(ctx context.Context, userID string, since time.Time) ([]models.TelemetryPoint, error) {
	return s.Locations.History(ctx, userID, since)
}

func (s *Store) InsertRiskPrediction(ctx context.Context, rec models.RiskPredictionRecord) error {
	return s.Detections.InsertRiskPrediction(ctx, rec)
}

func (s *Store) InsertAnomalyDetection(ctx context.Context, rec models.AnomalyDetectionRecord) error {
	return s.Detections.InsertAnomalyDetection(ctx, rec)
}

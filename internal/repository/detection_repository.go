package repository

import (
	"context"
	"database/sql"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/anshc022/suraksha-ai-service/internal/models"
)

// DetectionRepository persists engine outputs for later model tuning.
type DetectionRepository struct {
	db *sql.DB
}

// NewDetectionRepository creates a new detection repository
func NewDetectionRepository(db *sql.DB) *DetectionRepository {
	return &DetectionRepository{db: db}
}

// InsertRiskPrediction stores one route prediction.
func (r *DetectionRepository) InsertRiskPrediction(ctx context.Context, rec models.RiskPredictionRecord) error {
	route, err := json.Marshal(rec.Route)
	if err != nil {
		return fmt.Errorf("failed to encode route: %w", err)
	}
	components, err := json.Marshal(rec.Components)
	if err != nil {
		return fmt.Errorf("failed to encode components: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO risk_predictions (id, user_id, time_of_day, risk_score, route, components, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), rec.UserID, rec.TimeOfDay, rec.RiskScore, string(route), string(components), toMillis(rec.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("failed to insert risk prediction: %w", err)
	}
	return nil
}

// InsertAnomalyDetection stores one anomaly verdict with its location sample.
func (r *DetectionRepository) InsertAnomalyDetection(ctx context.Context, rec models.AnomalyDetectionRecord) error {
	sample, err := json.Marshal(rec.LocationSample)
	if err != nil {
		return fmt.Errorf("failed to encode location sample: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO anomaly_detections (id, user_id, is_anomaly, confidence, anomaly_type, details, location_sample, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), rec.UserID, rec.Verdict.IsAnomaly, rec.Verdict.Confidence,
		string(rec.Verdict.Type), rec.Verdict.Details, string(sample), toMillis(rec.DetectionTimestamp),
	)
	if err != nil {
		return fmt.Errorf("failed to insert anomaly detection: %w", err)
	}
	return nil
}

// RecentRiskPredictions returns a user's latest stored predictions, newest first.
func (r *DetectionRepository) RecentRiskPredictions(ctx context.Context, userID string, limit int) ([]models.RiskPredictionRecord, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, time_of_day, risk_score, route, components, created_at FROM risk_predictions
		WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query risk predictions: %w", err)
	}
	defer rows.Close()

	var records []models.RiskPredictionRecord
	for rows.Next() {
		var rec models.RiskPredictionRecord
		var route, components string
		var createdAt int64
		if err := rows.Scan(&rec.UserID, &rec.TimeOfDay, &rec.RiskScore, &route, &components, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan risk prediction: %w", err)
		}
		if err := json.Unmarshal([]byte(route), &rec.Route); err != nil {
			return nil, fmt.Errorf("failed to decode route: %w", err)
		}
		if err := json.Unmarshal([]byte(components), &rec.Components); err != nil {
			return nil, fmt.Errorf("failed to decode components: %w", err)
		}
		rec.Timestamp = fromMillis(createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

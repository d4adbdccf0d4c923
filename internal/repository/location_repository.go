package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/database"
	"github.com/anshc022/suraksha-ai-service/internal/models"
)

// LocationRepository handles the per-user location history
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// History returns the user's points recorded at or after since, oldest first.
func (r *LocationRepository) History(ctx context.Context, userID string, since time.Time) ([]models.TelemetryPoint, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT lat, lng, accuracy, speed, recorded_at FROM user_locations
		WHERE user_id = ? AND recorded_at >= ? ORDER BY recorded_at ASC, id ASC`,
		userID, toMillis(since),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query location history: %w", err)
	}
	defer rows.Close()

	var points []models.TelemetryPoint
	for rows.Next() {
		var p models.TelemetryPoint
		var accuracy, speed sql.NullFloat64
		var recordedAt int64
		if err := rows.Scan(&p.Lat, &p.Lng, &accuracy, &speed, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		if accuracy.Valid {
			p.Accuracy = &accuracy.Float64
		}
		if speed.Valid {
			p.Speed = &speed.Float64
		}
		p.Timestamp = fromMillis(recordedAt)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate location history: %w", err)
	}

	return points, nil
}

// Append stores points for a user in one transaction.
func (r *LocationRepository) Append(ctx context.Context, userID string, points []models.TelemetryPoint) error {
	return database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO user_locations (user_id, lat, lng, accuracy, speed, recorded_at) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare location insert: %w", err)
		}
		defer stmt.Close()

		for _, p := range points {
			if _, err := stmt.ExecContext(ctx, userID, p.Lat, p.Lng, nullable(p.Accuracy), nullable(p.Speed), toMillis(p.Timestamp)); err != nil {
				return fmt.Errorf("failed to insert location: %w", err)
			}
		}
		return nil
	})
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

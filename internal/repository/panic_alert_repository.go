package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/anshc022/suraksha-ai-service/internal/models"
)

// PanicAlertRepository handles database operations for panic alerts
type PanicAlertRepository struct {
	db *sql.DB
}

// NewPanicAlertRepository creates a new panic alert repository
func NewPanicAlertRepository(db *sql.DB) *PanicAlertRepository {
	return &PanicAlertRepository{db: db}
}

// FindInArea returns alerts within q.RadiusKm of q.Center, newest first.
// q.Types does not apply to alerts.
func (r *PanicAlertRepository) FindInArea(ctx context.Context, q models.AreaQuery) ([]models.PanicAlert, error) {
	conditions, args := areaConditions(q, "created_at")
	query := `SELECT id, user_id, lat, lng, created_at FROM panic_alerts
		WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query panic alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.PanicAlert
	for rows.Next() {
		var a models.PanicAlert
		var createdAt int64
		if err := rows.Scan(&a.ID, &a.UserID, &a.Location.Lat, &a.Location.Lng, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan panic alert: %w", err)
		}
		if !withinRadius(q, a.Location) {
			continue
		}
		a.Timestamp = fromMillis(createdAt)
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate panic alerts: %w", err)
	}

	return alerts, nil
}

// Insert stores an alert, assigning an id when it has none.
func (r *PanicAlertRepository) Insert(ctx context.Context, a *models.PanicAlert) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO panic_alerts (id, user_id, lat, lng, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Location.Lat, a.Location.Lng, toMillis(a.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("failed to insert panic alert: %w", err)
	}
	return nil
}

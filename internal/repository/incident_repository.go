package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/anshc022/suraksha-ai-service/internal/models"
)

// IncidentRepository handles database operations for incidents
type IncidentRepository struct {
	db *sql.DB
}

// NewIncidentRepository creates a new incident repository
func NewIncidentRepository(db *sql.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// FindInArea returns incidents within q.RadiusKm of q.Center, newest first.
func (r *IncidentRepository) FindInArea(ctx context.Context, q models.AreaQuery) ([]models.Incident, error) {
	conditions, args := areaConditions(q, "created_at")
	if len(q.Types) > 0 {
		conditions = append(conditions, "type IN ("+placeholders(len(q.Types))+")")
		for _, t := range q.Types {
			args = append(args, t)
		}
	}

	query := `SELECT id, lat, lng, type, severity, created_at FROM incidents
		WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	var incidents []models.Incident
	for rows.Next() {
		var inc models.Incident
		var createdAt int64
		if err := rows.Scan(&inc.ID, &inc.Location.Lat, &inc.Location.Lng, &inc.Type, &inc.Severity, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		if !withinRadius(q, inc.Location) {
			continue
		}
		inc.CreatedAt = fromMillis(createdAt)
		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incidents: %w", err)
	}

	return incidents, nil
}

// Insert stores an incident, assigning an id when it has none.
func (r *IncidentRepository) Insert(ctx context.Context, inc *models.Incident) error {
	if inc.ID == "" {
		inc.ID = uuid.NewString()
	}
	if inc.Type == "" {
		inc.Type = models.IncidentOther
	}
	if inc.Severity == "" {
		inc.Severity = models.SeverityMedium
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO incidents (id, lat, lng, type, severity, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		inc.ID, inc.Location.Lat, inc.Location.Lng, inc.Type, inc.Severity, toMillis(inc.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert incident: %w", err)
	}
	return nil
}

package repositories

import (
	"context"
	"fmt"

	"cmms-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TimelineRepository struct {
	DB *pgxpool.Pool
}

func NewTimelineRepository(db *pgxpool.Pool) *TimelineRepository {
	return &TimelineRepository{DB: db}
}

func (r *TimelineRepository) Create(ctx context.Context, entry *models.TimelineEntry) error {
	query := `
		INSERT INTO timeline_entries (job_id, event_type, status, notes, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query,
		entry.JobID,
		entry.EventType,
		entry.Status,
		entry.Notes,
		entry.CreatedByUserID,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create timeline entry: %w", err)
	}
	return nil
}

// ListByJob returns a job's timeline oldest first. Entries are append-only
// and never updated, so creation order is the display order.
func (r *TimelineRepository) ListByJob(ctx context.Context, jobID int) ([]*models.TimelineEntry, error) {
	query := `
		SELECT t.id, t.job_id, t.event_type, t.status, t.notes,
		       t.created_by_user_id, COALESCE(u.name, ''), t.created_at
		FROM timeline_entries t
		LEFT JOIN users u ON u.id = t.created_by_user_id
		WHERE t.job_id = $1
		ORDER BY t.created_at, t.id
	`
	rows, err := r.DB.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.TimelineEntry
	for rows.Next() {
		var e models.TimelineEntry
		if err := rows.Scan(&e.ID, &e.JobID, &e.EventType, &e.Status, &e.Notes,
			&e.CreatedByUserID, &e.CreatedByName, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

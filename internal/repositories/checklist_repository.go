package repositories

import (
	"context"
	"errors"
	"fmt"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ChecklistRepository struct {
	DB *pgxpool.Pool
}

func NewChecklistRepository(db *pgxpool.Pool) *ChecklistRepository {
	return &ChecklistRepository{DB: db}
}

// ListTemplates returns checklist templates. When includePeriodic is false,
// templates bound to a daily/weekly/monthly schedule are filtered out --
// those belong to scheduled inspections, not ad-hoc job checklists.
func (r *ChecklistRepository) ListTemplates(ctx context.Context, includePeriodic bool) ([]*models.ChecklistTemplate, error) {
	query := `
		SELECT id, name, frequency, created_at
		FROM checklist_templates
		WHERE $1 OR frequency = 'none'
		ORDER BY name
	`
	rows, err := r.DB.Query(ctx, query, includePeriodic)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.ChecklistTemplate
	for rows.Next() {
		var t models.ChecklistTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Frequency, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, &t)
	}
	return templates, rows.Err()
}

// GetTemplate returns a template with its ordered items.
func (r *ChecklistRepository) GetTemplate(ctx context.Context, id int) (*models.ChecklistTemplate, error) {
	var t models.ChecklistTemplate
	err := r.DB.QueryRow(ctx,
		"SELECT id, name, frequency, created_at FROM checklist_templates WHERE id = $1", id,
	).Scan(&t.ID, &t.Name, &t.Frequency, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("checklist template %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, template_id, position, description, required
		 FROM checklist_items WHERE template_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ChecklistItem
		if err := rows.Scan(&item.ID, &item.TemplateID, &item.Position, &item.Description, &item.Required); err != nil {
			return nil, err
		}
		t.Items = append(t.Items, &item)
	}
	return &t, rows.Err()
}

// CreateResponse persists a checklist response and its per-item answers in
// one transaction.
func (r *ChecklistRepository) CreateResponse(ctx context.Context, response *models.ChecklistResponse) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO checklist_responses (job_id, template_id, notes, submitted_by_user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		response.JobID, response.TemplateID, response.Notes, response.SubmittedByUser,
	).Scan(&response.ID, &response.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create checklist response: %w", err)
	}

	for _, item := range response.Items {
		err = tx.QueryRow(ctx,
			`INSERT INTO checklist_response_items (response_id, item_id, value, is_passed, note)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			response.ID, item.ItemID, item.Value, item.IsPassed, item.Note,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create response item: %w", err)
		}
		item.ResponseID = response.ID
	}

	return tx.Commit(ctx)
}

// ListResponsesByJob returns all checklist responses submitted for a job,
// newest first, with their items.
func (r *ChecklistRepository) ListResponsesByJob(ctx context.Context, jobID int) ([]*models.ChecklistResponse, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT r.id, r.job_id, r.template_id, t.name, r.notes, r.submitted_by_user_id, r.created_at
		 FROM checklist_responses r
		 JOIN checklist_templates t ON t.id = r.template_id
		 WHERE r.job_id = $1
		 ORDER BY r.created_at DESC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []*models.ChecklistResponse
	for rows.Next() {
		var resp models.ChecklistResponse
		if err := rows.Scan(&resp.ID, &resp.JobID, &resp.TemplateID, &resp.TemplateName,
			&resp.Notes, &resp.SubmittedByUser, &resp.CreatedAt); err != nil {
			return nil, err
		}
		responses = append(responses, &resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, resp := range responses {
		itemRows, err := r.DB.Query(ctx,
			`SELECT id, response_id, item_id, value, is_passed, note
			 FROM checklist_response_items WHERE response_id = $1 ORDER BY id`, resp.ID)
		if err != nil {
			return nil, err
		}
		for itemRows.Next() {
			var item models.ChecklistResponseItem
			if err := itemRows.Scan(&item.ID, &item.ResponseID, &item.ItemID,
				&item.Value, &item.IsPassed, &item.Note); err != nil {
				itemRows.Close()
				return nil, err
			}
			resp.Items = append(resp.Items, &item)
		}
		itemRows.Close()
		if err := itemRows.Err(); err != nil {
			return nil, err
		}
	}
	return responses, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JobRepository struct {
	DB *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{DB: db}
}

// GenerateWorkOrderNumber draws the next number from a database sequence
// for O(1) generation under concurrent intake.
func (r *JobRepository) GenerateWorkOrderNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('work_order_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next work order number: %w", err)
	}
	return fmt.Sprintf("WO-%06d", nextNum), nil
}

// Create inserts a new job, drawing its work order number from the document
// sequence. Callers must not pre-assign the number; this is the only draw.
func (r *JobRepository) Create(ctx context.Context, job *models.MaintenanceJob) error {
	number, err := r.GenerateWorkOrderNumber(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO maintenance_jobs (work_order_number, equipment_id, title, description, priority, notes, reported_by_user_id, assigned_to_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, created_at, updated_at
	`
	err = r.DB.QueryRow(ctx, query,
		number,
		job.EquipmentID,
		job.Title,
		job.Description,
		job.Priority,
		job.Notes,
		job.ReportedByUserID,
		job.AssignedToUserID,
	).Scan(&job.ID, &job.Status, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create maintenance job: %w", err)
	}

	job.WorkOrderNumber = number
	return nil
}

const jobColumns = `
	j.id, j.work_order_number, j.equipment_id, e.name, j.title, j.description,
	j.status, j.priority, j.notes, j.root_cause, j.action_taken,
	j.on_hold_reason, j.cancellation_reason, j.reported_by_user_id,
	j.assigned_to_user_id, j.started_at, j.completed_at, j.downtime_minutes,
	j.created_at, j.updated_at`

func scanJob(row pgx.Row) (*models.MaintenanceJob, error) {
	var job models.MaintenanceJob
	err := row.Scan(
		&job.ID, &job.WorkOrderNumber, &job.EquipmentID, &job.EquipmentName,
		&job.Title, &job.Description, &job.Status, &job.Priority, &job.Notes,
		&job.RootCause, &job.ActionTaken, &job.OnHoldReason, &job.CancellationReason,
		&job.ReportedByUserID, &job.AssignedToUserID, &job.StartedAt,
		&job.CompletedAt, &job.DowntimeMinutes, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) Get(ctx context.Context, id int) (*models.MaintenanceJob, error) {
	query := `SELECT` + jobColumns + `
		FROM maintenance_jobs j
		JOIN equipment e ON e.id = j.equipment_id
		WHERE j.id = $1`

	job, err := scanJob(r.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("job %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// List returns jobs, optionally filtered by status and/or equipment.
func (r *JobRepository) List(ctx context.Context, status string, equipmentID int) ([]*models.MaintenanceJob, error) {
	query := `SELECT` + jobColumns + `
		FROM maintenance_jobs j
		JOIN equipment e ON e.id = j.equipment_id
		WHERE ($1 = '' OR j.status = $1)
		  AND ($2 = 0 OR j.equipment_id = $2)
		ORDER BY j.created_at DESC`

	rows, err := r.DB.Query(ctx, query, status, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.MaintenanceJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// StatusTransition carries the field updates a lifecycle transition applies
// along with the expected current status. Nil fields are left untouched.
type StatusTransition struct {
	From               string
	To                 string
	RootCause          *string
	ActionTaken        *string
	OnHoldReason       *string
	CancellationReason *string
	StartedAt          *time.Time
	CompletedAt        *time.Time
	DowntimeMinutes    *int
}

// ApplyTransition moves a job to a new status as a single atomic statement.
// The WHERE clause re-checks the expected current status so a concurrent
// transition makes the second caller fail with a state conflict rather than
// silently winning.
func (r *JobRepository) ApplyTransition(ctx context.Context, id int, t *StatusTransition) error {
	query := `
		UPDATE maintenance_jobs SET
			status = $3,
			root_cause = COALESCE($4, root_cause),
			action_taken = COALESCE($5, action_taken),
			on_hold_reason = COALESCE($6, on_hold_reason),
			cancellation_reason = COALESCE($7, cancellation_reason),
			started_at = COALESCE($8, started_at),
			completed_at = COALESCE($9, completed_at),
			downtime_minutes = COALESCE($10, downtime_minutes),
			updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	tag, err := r.DB.Exec(ctx, query, id, t.From, t.To,
		t.RootCause, t.ActionTaken, t.OnHoldReason, t.CancellationReason,
		t.StartedAt, t.CompletedAt, t.DowntimeMinutes)
	if err != nil {
		return fmt.Errorf("failed to apply transition: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Either the job vanished or its status moved underneath us.
		var current string
		err := r.DB.QueryRow(ctx, "SELECT status FROM maintenance_jobs WHERE id = $1", id).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFoundf("job %d not found", id)
		}
		if err != nil {
			return err
		}
		return apperrors.Conflictf("job is %s, expected %s - reload and retry", current, t.From)
	}
	return nil
}

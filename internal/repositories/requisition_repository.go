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

type RequisitionRepository struct {
	DB *pgxpool.Pool
}

func NewRequisitionRepository(db *pgxpool.Pool) *RequisitionRepository {
	return &RequisitionRepository{DB: db}
}

// GenerateRequisitionNumber generates the next requisition number like PR-000001
func (r *RequisitionRepository) GenerateRequisitionNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('requisition_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to generate requisition number: %w", err)
	}
	return fmt.Sprintf("PR-%06d", nextNum), nil
}

// Create persists a requisition with its lines in one transaction.
func (r *RequisitionRepository) Create(ctx context.Context, req *models.Requisition) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO requisitions (requisition_number, job_id, requested_by_user_id, priority, notes, total_cost, approval_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		req.RequisitionNumber, req.JobID, req.RequestedByUserID, req.Priority,
		req.Notes, req.TotalCost, models.ApprovalStatusPending,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create requisition: %w", err)
	}
	req.ApprovalStatus = models.ApprovalStatusPending

	for _, item := range req.Items {
		err = tx.QueryRow(ctx,
			`INSERT INTO requisition_items (requisition_id, spare_part_id, custom_name, quantity, unit, unit_price)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			req.ID, item.SparePartID, item.CustomName, item.Quantity, item.Unit, item.UnitPrice,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create requisition item: %w", err)
		}
		item.RequisitionID = req.ID
	}

	return tx.Commit(ctx)
}

const requisitionColumns = `r.id, r.requisition_number, r.job_id, r.requested_by_user_id, u.name,
	r.priority, r.notes, r.total_cost, r.approval_status, r.approved_by_user_id,
	r.approved_at, r.rejection_reason, r.created_at`

func scanRequisition(row pgx.Row) (*models.Requisition, error) {
	var req models.Requisition
	err := row.Scan(&req.ID, &req.RequisitionNumber, &req.JobID, &req.RequestedByUserID,
		&req.RequestedByName, &req.Priority, &req.Notes, &req.TotalCost, &req.ApprovalStatus,
		&req.ApprovedByUserID, &req.ApprovedAt, &req.RejectionReason, &req.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequisitionRepository) Get(ctx context.Context, id int) (*models.Requisition, error) {
	req, err := scanRequisition(r.DB.QueryRow(ctx,
		`SELECT `+requisitionColumns+`
		 FROM requisitions r
		 LEFT JOIN users u ON u.id = r.requested_by_user_id
		 WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("requisition %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *RequisitionRepository) loadItems(ctx context.Context, req *models.Requisition) error {
	rows, err := r.DB.Query(ctx,
		`SELECT i.id, i.requisition_id, i.spare_part_id, COALESCE(p.name, i.custom_name, ''),
		        i.custom_name, i.quantity, i.unit, i.unit_price
		 FROM requisition_items i
		 LEFT JOIN spare_parts p ON p.id = i.spare_part_id
		 WHERE i.requisition_id = $1
		 ORDER BY i.id`, req.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.RequisitionItem
		if err := rows.Scan(&item.ID, &item.RequisitionID, &item.SparePartID, &item.PartName,
			&item.CustomName, &item.Quantity, &item.Unit, &item.UnitPrice); err != nil {
			return err
		}
		req.Items = append(req.Items, &item)
	}
	return rows.Err()
}

// ListByJob returns all requisitions raised against a job, newest first.
func (r *RequisitionRepository) ListByJob(ctx context.Context, jobID int) ([]*models.Requisition, error) {
	return r.list(ctx,
		`SELECT `+requisitionColumns+`
		 FROM requisitions r
		 LEFT JOIN users u ON u.id = r.requested_by_user_id
		 WHERE r.job_id = $1
		 ORDER BY r.created_at DESC`, jobID)
}

// ListPending returns requisitions awaiting an approval decision, oldest
// first so approvers work the backlog in order.
func (r *RequisitionRepository) ListPending(ctx context.Context) ([]*models.Requisition, error) {
	return r.list(ctx,
		`SELECT `+requisitionColumns+`
		 FROM requisitions r
		 LEFT JOIN users u ON u.id = r.requested_by_user_id
		 WHERE r.approval_status = 'pending'
		 ORDER BY r.created_at`)
}

func (r *RequisitionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Requisition, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []*models.Requisition
	for rows.Next() {
		req, err := scanRequisition(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, req := range reqs {
		if err := r.loadItems(ctx, req); err != nil {
			return nil, err
		}
	}
	return reqs, nil
}

// Approve marks a pending requisition approved, drains stock for every
// catalog line, and materializes part usage rows, all in one transaction.
// If any line lacks stock the whole approval rolls back.
func (r *RequisitionRepository) Approve(ctx context.Context, id, approverID int) (*models.Requisition, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	tag, err := tx.Exec(ctx,
		`UPDATE requisitions
		 SET approval_status = 'approved', approved_by_user_id = $2, approved_at = $3
		 WHERE id = $1 AND approval_status = 'pending'`,
		id, approverID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to approve requisition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var status string
		checkErr := tx.QueryRow(ctx, "SELECT approval_status FROM requisitions WHERE id = $1", id).Scan(&status)
		if errors.Is(checkErr, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("requisition %d not found", id)
		}
		if checkErr != nil {
			return nil, checkErr
		}
		return nil, apperrors.Conflictf("requisition is already %s", status)
	}

	var jobID int
	var reason string
	err = tx.QueryRow(ctx,
		"SELECT job_id, requisition_number FROM requisitions WHERE id = $1", id,
	).Scan(&jobID, &reason)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx,
		`SELECT i.id, i.spare_part_id, COALESCE(p.name, i.custom_name, ''), i.quantity, i.unit, i.unit_price
		 FROM requisition_items i
		 LEFT JOIN spare_parts p ON p.id = i.spare_part_id
		 WHERE i.requisition_id = $1
		 ORDER BY i.id`, id)
	if err != nil {
		return nil, err
	}
	var items []*models.RequisitionItem
	for rows.Next() {
		var item models.RequisitionItem
		if err := rows.Scan(&item.ID, &item.SparePartID, &item.PartName,
			&item.Quantity, &item.Unit, &item.UnitPrice); err != nil {
			rows.Close()
			return nil, err
		}
		items = append(items, &item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.IsCatalog() {
			_, err = adjustStockTx(ctx, tx, *item.SparePartID, -item.Quantity,
				models.StockRefRequisition, &id, "issued against "+reason, approverID)
			if err != nil {
				return nil, err
			}
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO part_usages (job_id, spare_part_id, part_name, requisition_id, quantity, unit, unit_price)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			jobID, item.SparePartID, item.PartName, id, item.Quantity, item.Unit, item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to record part usage: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Reject marks a pending requisition rejected. Stock is untouched.
func (r *RequisitionRepository) Reject(ctx context.Context, id, approverID int, reason string) (*models.Requisition, error) {
	now := time.Now()
	tag, err := r.DB.Exec(ctx,
		`UPDATE requisitions
		 SET approval_status = 'rejected', approved_by_user_id = $2, approved_at = $3, rejection_reason = $4
		 WHERE id = $1 AND approval_status = 'pending'`,
		id, approverID, now, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to reject requisition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var status string
		checkErr := r.DB.QueryRow(ctx, "SELECT approval_status FROM requisitions WHERE id = $1", id).Scan(&status)
		if errors.Is(checkErr, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("requisition %d not found", id)
		}
		if checkErr != nil {
			return nil, checkErr
		}
		return nil, apperrors.Conflictf("requisition is already %s", status)
	}
	return r.Get(ctx, id)
}

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

type ReturnRepository struct {
	DB *pgxpool.Pool
}

func NewReturnRepository(db *pgxpool.Pool) *ReturnRepository {
	return &ReturnRepository{DB: db}
}

// GenerateReturnNumber generates the next return number like PRT-000001
func (r *ReturnRepository) GenerateReturnNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('return_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to generate return number: %w", err)
	}
	return fmt.Sprintf("PRT-%06d", nextNum), nil
}

// Create inserts a pending return. The usage row is locked for the duration
// of the transaction so the returnable bound is re-checked race-free: two
// concurrent returns against the same usage serialize here.
func (r *ReturnRepository) Create(ctx context.Context, ret *models.PartReturn) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var usageQty int
	var sparePartID *int
	err = tx.QueryRow(ctx,
		"SELECT quantity, spare_part_id FROM part_usages WHERE id = $1 FOR UPDATE",
		ret.UsageID,
	).Scan(&usageQty, &sparePartID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFoundf("part usage %d not found", ret.UsageID)
	}
	if err != nil {
		return err
	}
	if sparePartID == nil {
		return apperrors.Validationf("usage %d is a custom item and cannot be returned to stock", ret.UsageID)
	}

	var prior int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0)
		 FROM part_returns
		 WHERE usage_id = $1 AND approval_status IN ('pending', 'approved')`,
		ret.UsageID,
	).Scan(&prior)
	if err != nil {
		return err
	}
	if ret.Quantity > usageQty-prior {
		return apperrors.Validationf("return quantity %d exceeds returnable quantity %d", ret.Quantity, usageQty-prior)
	}
	ret.SparePartID = *sparePartID

	err = tx.QueryRow(ctx,
		`INSERT INTO part_returns (return_number, job_id, usage_id, spare_part_id, quantity, reason, notes, returned_by_user_id, approval_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		ret.ReturnNumber, ret.JobID, ret.UsageID, ret.SparePartID, ret.Quantity,
		ret.Reason, ret.Notes, ret.ReturnedByUserID, models.ApprovalStatusPending,
	).Scan(&ret.ID, &ret.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create part return: %w", err)
	}
	ret.ApprovalStatus = models.ApprovalStatusPending

	return tx.Commit(ctx)
}

const returnColumns = `pr.id, pr.return_number, pr.job_id, pr.usage_id, pr.spare_part_id, p.name,
	pr.quantity, pr.reason, pr.notes, pr.returned_by_user_id, u.name,
	pr.approval_status, pr.approved_by_user_id, pr.approved_at, pr.rejection_reason, pr.created_at`

func scanReturn(row pgx.Row) (*models.PartReturn, error) {
	var ret models.PartReturn
	err := row.Scan(&ret.ID, &ret.ReturnNumber, &ret.JobID, &ret.UsageID, &ret.SparePartID,
		&ret.PartName, &ret.Quantity, &ret.Reason, &ret.Notes, &ret.ReturnedByUserID,
		&ret.ReturnedByName, &ret.ApprovalStatus, &ret.ApprovedByUserID, &ret.ApprovedAt,
		&ret.RejectionReason, &ret.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *ReturnRepository) Get(ctx context.Context, id int) (*models.PartReturn, error) {
	ret, err := scanReturn(r.DB.QueryRow(ctx,
		`SELECT `+returnColumns+`
		 FROM part_returns pr
		 JOIN spare_parts p ON p.id = pr.spare_part_id
		 LEFT JOIN users u ON u.id = pr.returned_by_user_id
		 WHERE pr.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("part return %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// ListByJob returns all part returns raised against a job, newest first.
func (r *ReturnRepository) ListByJob(ctx context.Context, jobID int) ([]*models.PartReturn, error) {
	return r.list(ctx,
		`SELECT `+returnColumns+`
		 FROM part_returns pr
		 JOIN spare_parts p ON p.id = pr.spare_part_id
		 LEFT JOIN users u ON u.id = pr.returned_by_user_id
		 WHERE pr.job_id = $1
		 ORDER BY pr.created_at DESC`, jobID)
}

// ListPending returns part returns awaiting a decision, oldest first.
func (r *ReturnRepository) ListPending(ctx context.Context) ([]*models.PartReturn, error) {
	return r.list(ctx,
		`SELECT `+returnColumns+`
		 FROM part_returns pr
		 JOIN spare_parts p ON p.id = pr.spare_part_id
		 LEFT JOIN users u ON u.id = pr.returned_by_user_id
		 WHERE pr.approval_status = 'pending'
		 ORDER BY pr.created_at`)
}

func (r *ReturnRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.PartReturn, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rets []*models.PartReturn
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, err
		}
		rets = append(rets, ret)
	}
	return rets, rows.Err()
}

// Approve marks a pending return approved and puts the quantity back into
// stock, in one transaction.
func (r *ReturnRepository) Approve(ctx context.Context, id, approverID int) (*models.PartReturn, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	var partID, qty int
	var returnNumber string
	err = tx.QueryRow(ctx,
		`UPDATE part_returns
		 SET approval_status = 'approved', approved_by_user_id = $2, approved_at = $3
		 WHERE id = $1 AND approval_status = 'pending'
		 RETURNING spare_part_id, quantity, return_number`,
		id, approverID, now,
	).Scan(&partID, &qty, &returnNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		var status string
		checkErr := tx.QueryRow(ctx, "SELECT approval_status FROM part_returns WHERE id = $1", id).Scan(&status)
		if errors.Is(checkErr, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("part return %d not found", id)
		}
		if checkErr != nil {
			return nil, checkErr
		}
		return nil, apperrors.Conflictf("part return is already %s", status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to approve part return: %w", err)
	}

	_, err = adjustStockTx(ctx, tx, partID, qty,
		models.StockRefReturn, &id, "restocked from "+returnNumber, approverID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Reject marks a pending return rejected. The rejected quantity becomes
// returnable again on the usage record.
func (r *ReturnRepository) Reject(ctx context.Context, id, approverID int, reason string) (*models.PartReturn, error) {
	now := time.Now()
	tag, err := r.DB.Exec(ctx,
		`UPDATE part_returns
		 SET approval_status = 'rejected', approved_by_user_id = $2, approved_at = $3, rejection_reason = $4
		 WHERE id = $1 AND approval_status = 'pending'`,
		id, approverID, now, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to reject part return: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var status string
		checkErr := r.DB.QueryRow(ctx, "SELECT approval_status FROM part_returns WHERE id = $1", id).Scan(&status)
		if errors.Is(checkErr, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("part return %d not found", id)
		}
		if checkErr != nil {
			return nil, checkErr
		}
		return nil, apperrors.Conflictf("part return is already %s", status)
	}
	return r.Get(ctx, id)
}

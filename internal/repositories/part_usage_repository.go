package repositories

import (
	"context"
	"errors"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PartUsageRepository struct {
	DB *pgxpool.Pool
}

func NewPartUsageRepository(db *pgxpool.Pool) *PartUsageRepository {
	return &PartUsageRepository{DB: db}
}

func (r *PartUsageRepository) Get(ctx context.Context, id int) (*models.PartUsage, error) {
	var u models.PartUsage
	var sparePartID *int
	err := r.DB.QueryRow(ctx,
		`SELECT id, job_id, spare_part_id, part_name, requisition_id, quantity, unit, unit_price, created_at
		 FROM part_usages WHERE id = $1`, id,
	).Scan(&u.ID, &u.JobID, &sparePartID, &u.PartName, &u.RequisitionID,
		&u.Quantity, &u.Unit, &u.UnitPrice, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("part usage %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	if sparePartID != nil {
		u.SparePartID = *sparePartID
	}
	return &u, nil
}

// ListByJob returns the parts issued to a job, in issue order.
func (r *PartUsageRepository) ListByJob(ctx context.Context, jobID int) ([]*models.PartUsage, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, job_id, spare_part_id, part_name, requisition_id, quantity, unit, unit_price, created_at
		 FROM part_usages WHERE job_id = $1 ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usages []*models.PartUsage
	for rows.Next() {
		var u models.PartUsage
		var sparePartID *int
		if err := rows.Scan(&u.ID, &u.JobID, &sparePartID, &u.PartName, &u.RequisitionID,
			&u.Quantity, &u.Unit, &u.UnitPrice, &u.CreatedAt); err != nil {
			return nil, err
		}
		if sparePartID != nil {
			u.SparePartID = *sparePartID
		}
		usages = append(usages, &u)
	}
	return usages, rows.Err()
}

// SumPriorReturns totals quantities of pending and approved returns against
// a usage record. Rejected returns do not count against the returnable
// bound.
func (r *PartUsageRepository) SumPriorReturns(ctx context.Context, usageID int) (int, error) {
	var total int
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0)
		 FROM part_returns
		 WHERE usage_id = $1 AND approval_status IN ('pending', 'approved')`,
		usageID,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

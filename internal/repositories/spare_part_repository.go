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

type SparePartRepository struct {
	DB *pgxpool.Pool
}

func NewSparePartRepository(db *pgxpool.Pool) *SparePartRepository {
	return &SparePartRepository{DB: db}
}

// adjustStockTx applies a stock delta to a spare part inside an open
// transaction and records the movement in the ledger. Every stock mutation
// in the system goes through here. The WHERE guard rejects any delta that
// would drive stock negative, so two concurrent drains cannot both win.
func adjustStockTx(ctx context.Context, tx pgx.Tx, partID, delta int, refType string, refID *int, reason string, userID int) (int, error) {
	var resulting int
	err := tx.QueryRow(ctx,
		`UPDATE spare_parts
		 SET current_stock = current_stock + $2, updated_at = NOW()
		 WHERE id = $1 AND current_stock + $2 >= 0
		 RETURNING current_stock`,
		partID, delta,
	).Scan(&resulting)
	if errors.Is(err, pgx.ErrNoRows) {
		var available int
		var name string
		checkErr := tx.QueryRow(ctx,
			"SELECT name, current_stock FROM spare_parts WHERE id = $1", partID,
		).Scan(&name, &available)
		if errors.Is(checkErr, pgx.ErrNoRows) {
			return 0, apperrors.NotFoundf("spare part %d not found", partID)
		}
		if checkErr != nil {
			return 0, checkErr
		}
		return 0, apperrors.Stockf("insufficient stock for %s: have %d, need %d", name, available, -delta)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust stock for part %d: %w", partID, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO stock_transactions (spare_part_id, delta, resulting_stock, reference_type, reference_id, reason, created_by_user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		partID, delta, resulting, refType, refID, reason, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to record stock transaction: %w", err)
	}
	return resulting, nil
}

const sparePartColumns = "id, name, part_number, unit, unit_price, current_stock, min_stock, created_at, updated_at"

func scanSparePart(row pgx.Row) (*models.SparePart, error) {
	var p models.SparePart
	err := row.Scan(&p.ID, &p.Name, &p.PartNumber, &p.Unit, &p.UnitPrice,
		&p.CurrentStock, &p.MinStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SparePartRepository) Create(ctx context.Context, part *models.SparePart) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO spare_parts (name, part_number, unit, unit_price, current_stock, min_stock)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		part.Name, part.PartNumber, part.Unit, part.UnitPrice, part.CurrentStock, part.MinStock,
	).Scan(&part.ID, &part.CreatedAt, &part.UpdatedAt)
}

func (r *SparePartRepository) Get(ctx context.Context, id int) (*models.SparePart, error) {
	part, err := scanSparePart(r.DB.QueryRow(ctx,
		"SELECT "+sparePartColumns+" FROM spare_parts WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("spare part %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return part, nil
}

func (r *SparePartRepository) List(ctx context.Context) ([]*models.SparePart, error) {
	rows, err := r.DB.Query(ctx,
		"SELECT "+sparePartColumns+" FROM spare_parts ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []*models.SparePart
	for rows.Next() {
		part, err := scanSparePart(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, rows.Err()
}

// ListLowStock returns parts at or below their minimum stock level.
func (r *SparePartRepository) ListLowStock(ctx context.Context) ([]*models.SparePart, error) {
	rows, err := r.DB.Query(ctx,
		"SELECT "+sparePartColumns+" FROM spare_parts WHERE current_stock <= min_stock ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []*models.SparePart
	for rows.Next() {
		part, err := scanSparePart(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, rows.Err()
}

// AdjustStock applies a manual stock correction and logs it to the ledger.
func (r *SparePartRepository) AdjustStock(ctx context.Context, partID, delta int, reason string, userID int) (int, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	resulting, err := adjustStockTx(ctx, tx, partID, delta, models.StockRefManual, nil, reason, userID)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return resulting, nil
}

// ListTransactions returns the stock ledger for a part, newest first.
func (r *SparePartRepository) ListTransactions(ctx context.Context, partID, limit int) ([]*models.StockTransaction, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Query(ctx,
		`SELECT id, spare_part_id, delta, resulting_stock, reference_type, reference_id, reason, created_by_user_id, created_at
		 FROM stock_transactions
		 WHERE spare_part_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`, partID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*models.StockTransaction
	for rows.Next() {
		var t models.StockTransaction
		if err := rows.Scan(&t.ID, &t.SparePartID, &t.Delta, &t.ResultingStock,
			&t.ReferenceType, &t.ReferenceID, &t.Reason, &t.CreatedByUserID, &t.CreatedAt); err != nil {
			return nil, err
		}
		txns = append(txns, &t)
	}
	return txns, rows.Err()
}

package repositories

import (
	"context"
	"errors"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EquipmentRepository struct {
	DB *pgxpool.Pool
}

func NewEquipmentRepository(db *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{DB: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *models.Equipment) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO equipment (name, asset_tag, location, manufacturer, model)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		eq.Name, eq.AssetTag, eq.Location, eq.Manufacturer, eq.Model,
	).Scan(&eq.ID, &eq.CreatedAt)
}

func (r *EquipmentRepository) Get(ctx context.Context, id int) (*models.Equipment, error) {
	var eq models.Equipment
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, asset_tag, location, manufacturer, model, created_at
		 FROM equipment WHERE id = $1`, id,
	).Scan(&eq.ID, &eq.Name, &eq.AssetTag, &eq.Location, &eq.Manufacturer, &eq.Model, &eq.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("equipment %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

func (r *EquipmentRepository) List(ctx context.Context) ([]*models.Equipment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, asset_tag, location, manufacturer, model, created_at
		 FROM equipment ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Equipment
	for rows.Next() {
		var eq models.Equipment
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.AssetTag, &eq.Location,
			&eq.Manufacturer, &eq.Model, &eq.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &eq)
	}
	return list, rows.Err()
}

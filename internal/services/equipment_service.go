package services

import (
	"context"
	"strings"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"
	"cmms-backend/internal/repositories"
)

type EquipmentService struct {
	Repo *repositories.EquipmentRepository
}

func NewEquipmentService(repo *repositories.EquipmentRepository) *EquipmentService {
	return &EquipmentService{Repo: repo}
}

func (s *EquipmentService) Create(ctx context.Context, eq *models.Equipment) error {
	if strings.TrimSpace(eq.Name) == "" {
		return apperrors.Validationf("name is required")
	}
	return s.Repo.Create(ctx, eq)
}

func (s *EquipmentService) Get(ctx context.Context, id int) (*models.Equipment, error) {
	return s.Repo.Get(ctx, id)
}

func (s *EquipmentService) List(ctx context.Context) ([]*models.Equipment, error) {
	return s.Repo.List(ctx)
}

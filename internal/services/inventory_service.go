package services

import (
	"context"
	"log"
	"strings"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"
	"cmms-backend/internal/repositories"
)

type InventoryService struct {
	SparePartRepo *repositories.SparePartRepository
}

func NewInventoryService(sparePartRepo *repositories.SparePartRepository) *InventoryService {
	return &InventoryService{SparePartRepo: sparePartRepo}
}

func (s *InventoryService) CreatePart(ctx context.Context, part *models.SparePart) (*models.SparePart, error) {
	if strings.TrimSpace(part.Name) == "" {
		return nil, apperrors.Validationf("name is required")
	}
	if part.CurrentStock < 0 {
		return nil, apperrors.Validationf("current_stock cannot be negative")
	}
	if part.MinStock < 0 {
		return nil, apperrors.Validationf("min_stock cannot be negative")
	}
	if part.Unit == "" {
		part.Unit = "pcs"
	}
	if err := s.SparePartRepo.Create(ctx, part); err != nil {
		return nil, err
	}
	log.Printf("[Inventory] created spare part %d (%s)", part.ID, part.Name)
	return part, nil
}

func (s *InventoryService) GetPart(ctx context.Context, id int) (*models.SparePart, error) {
	return s.SparePartRepo.Get(ctx, id)
}

func (s *InventoryService) ListParts(ctx context.Context) ([]*models.SparePart, error) {
	return s.SparePartRepo.List(ctx)
}

func (s *InventoryService) ListLowStock(ctx context.Context) ([]*models.SparePart, error) {
	return s.SparePartRepo.ListLowStock(ctx)
}

// AdjustStock applies a manual correction (receipt, count fix, write-off).
// A non-zero delta and a reason are mandatory; the ledger records both.
func (s *InventoryService) AdjustStock(ctx context.Context, partID int, req *models.AdjustStockRequest, userID int) (*models.SparePart, error) {
	if req.Delta == 0 {
		return nil, apperrors.Validationf("delta must be non-zero")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.Validationf("reason is required")
	}
	resulting, err := s.SparePartRepo.AdjustStock(ctx, partID, req.Delta, req.Reason, userID)
	if err != nil {
		return nil, err
	}
	log.Printf("[Inventory] adjusted part %d by %+d, now %d (%s)", partID, req.Delta, resulting, req.Reason)
	return s.SparePartRepo.Get(ctx, partID)
}

// ListTransactions returns the stock ledger for a part, newest first.
func (s *InventoryService) ListTransactions(ctx context.Context, partID, limit int) ([]*models.StockTransaction, error) {
	if _, err := s.SparePartRepo.Get(ctx, partID); err != nil {
		return nil, err
	}
	return s.SparePartRepo.ListTransactions(ctx, partID, limit)
}

package services

import (
	"context"
	"log"
	"strings"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"
	"cmms-backend/internal/repositories"
)

type RequisitionService struct {
	RequisitionRepo *repositories.RequisitionRepository
	SparePartRepo   *repositories.SparePartRepository
	JobRepo         *repositories.JobRepository
	TimelineRepo    *repositories.TimelineRepository
}

func NewRequisitionService(requisitionRepo *repositories.RequisitionRepository, sparePartRepo *repositories.SparePartRepository,
	jobRepo *repositories.JobRepository, timelineRepo *repositories.TimelineRepository) *RequisitionService {
	return &RequisitionService{
		RequisitionRepo: requisitionRepo,
		SparePartRepo:   sparePartRepo,
		JobRepo:         jobRepo,
		TimelineRepo:    timelineRepo,
	}
}

// validateRequisitionItems checks every line names either a catalog part or
// a custom item and carries a positive quantity.
func validateRequisitionItems(items []models.RequisitionItemInput) error {
	if len(items) == 0 {
		return apperrors.Validationf("a requisition needs at least one item")
	}
	for i, item := range items {
		if item.SparePartID == nil && strings.TrimSpace(item.CustomName) == "" {
			return apperrors.Validationf("item %d must reference a spare part or carry a custom name", i+1)
		}
		if item.Quantity < 1 {
			return apperrors.Validationf("item %d quantity must be at least 1", i+1)
		}
		if item.UnitPrice < 0 {
			return apperrors.Validationf("item %d unit price cannot be negative", i+1)
		}
	}
	return nil
}

// requisitionTotal sums qty times unit price over the lines. Informational
// only.
func requisitionTotal(items []*models.RequisitionItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// shortageWarnings flags catalog lines whose requested quantity exceeds the
// part's current stock. Advisory; creation proceeds regardless.
func shortageWarnings(items []*models.RequisitionItem, stockByPart map[int]*models.SparePart) []*models.StockWarning {
	var warnings []*models.StockWarning
	for _, item := range items {
		if !item.IsCatalog() {
			continue
		}
		part, ok := stockByPart[*item.SparePartID]
		if !ok {
			continue
		}
		if item.Quantity > part.CurrentStock {
			warnings = append(warnings, &models.StockWarning{
				SparePartID: part.ID,
				PartName:    part.Name,
				Requested:   item.Quantity,
				Available:   part.CurrentStock,
			})
		}
	}
	return warnings
}

// Create raises a requisition against an active job. Catalog lines take
// their unit and price from the catalog; custom lines keep what the caller
// supplied. Stock does not move here.
func (s *RequisitionService) Create(ctx context.Context, jobID int, req *models.CreateRequisitionRequest, userID int) (*models.Requisition, []*models.StockWarning, error) {
	job, err := s.JobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if job.Status != models.JobStatusInProgress && job.Status != models.JobStatusOnHold {
		return nil, nil, apperrors.Conflictf("job is %s, requisitions need an active job", job.Status)
	}
	if err := validateRequisitionItems(req.Items); err != nil {
		return nil, nil, err
	}
	priority := req.Priority
	if priority == "" {
		priority = models.RequisitionPriorityNormal
	}
	if !models.ValidRequisitionPriority(priority) {
		return nil, nil, apperrors.Validationf("invalid priority %q", priority)
	}

	stockByPart := make(map[int]*models.SparePart)
	var items []*models.RequisitionItem
	for _, input := range req.Items {
		item := &models.RequisitionItem{
			SparePartID: input.SparePartID,
			Quantity:    input.Quantity,
			Unit:        input.Unit,
			UnitPrice:   input.UnitPrice,
		}
		if input.SparePartID != nil {
			part, ok := stockByPart[*input.SparePartID]
			if !ok {
				part, err = s.SparePartRepo.Get(ctx, *input.SparePartID)
				if err != nil {
					return nil, nil, err
				}
				stockByPart[part.ID] = part
			}
			item.PartName = part.Name
			item.Unit = part.Unit
			item.UnitPrice = part.UnitPrice
		} else {
			name := strings.TrimSpace(input.CustomName)
			item.CustomName = &name
			item.PartName = name
			if item.Unit == "" {
				item.Unit = "pcs"
			}
		}
		items = append(items, item)
	}

	number, err := s.RequisitionRepo.GenerateRequisitionNumber(ctx)
	if err != nil {
		return nil, nil, err
	}

	requisition := &models.Requisition{
		RequisitionNumber: number,
		JobID:             jobID,
		RequestedByUserID: userID,
		Priority:          priority,
		Notes:             req.Notes,
		TotalCost:         requisitionTotal(items),
		Items:             items,
	}
	if err := s.RequisitionRepo.Create(ctx, requisition); err != nil {
		return nil, nil, err
	}

	warnings := shortageWarnings(items, stockByPart)
	s.appendEvent(ctx, jobID, models.EventTypeRequisitionCreated, job.Status, number, userID)
	log.Printf("[Requisition] created %s for job %d (%d items, %d shortage warnings)",
		number, jobID, len(items), len(warnings))

	return requisition, warnings, nil
}

// Approve issues the requested parts: stock drains, usage rows materialize,
// all atomically. Fails whole if any catalog line lacks stock.
func (s *RequisitionService) Approve(ctx context.Context, id, approverID int) (*models.Requisition, error) {
	requisition, err := s.RequisitionRepo.Approve(ctx, id, approverID)
	if err != nil {
		return nil, err
	}
	s.appendEvent(ctx, requisition.JobID, models.EventTypeRequisitionApproved, "", requisition.RequisitionNumber, approverID)
	log.Printf("[Requisition] approved %s (requisition %d)", requisition.RequisitionNumber, id)
	return requisition, nil
}

func (s *RequisitionService) Reject(ctx context.Context, id, approverID int, reason string) (*models.Requisition, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.Validationf("reason is required")
	}
	requisition, err := s.RequisitionRepo.Reject(ctx, id, approverID, reason)
	if err != nil {
		return nil, err
	}
	s.appendEvent(ctx, requisition.JobID, models.EventTypeRequisitionRejected, "", requisition.RequisitionNumber+": "+reason, approverID)
	return requisition, nil
}

func (s *RequisitionService) Get(ctx context.Context, id int) (*models.Requisition, error) {
	return s.RequisitionRepo.Get(ctx, id)
}

func (s *RequisitionService) ListByJob(ctx context.Context, jobID int) ([]*models.Requisition, error) {
	return s.RequisitionRepo.ListByJob(ctx, jobID)
}

func (s *RequisitionService) ListPending(ctx context.Context) ([]*models.Requisition, error) {
	return s.RequisitionRepo.ListPending(ctx)
}

func (s *RequisitionService) appendEvent(ctx context.Context, jobID int, eventType, status, notes string, userID int) {
	if status == "" {
		job, err := s.JobRepo.Get(ctx, jobID)
		if err == nil {
			status = job.Status
		}
	}
	entry := &models.TimelineEntry{
		JobID:           jobID,
		EventType:       eventType,
		Status:          status,
		Notes:           notes,
		CreatedByUserID: userID,
	}
	if err := s.TimelineRepo.Create(ctx, entry); err != nil {
		log.Printf("[Requisition] failed to append %s event for job %d: %v", eventType, jobID, err)
	}
}

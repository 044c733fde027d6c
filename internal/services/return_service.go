package services

import (
	"context"
	"log"
	"strings"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"
	"cmms-backend/internal/repositories"
)

type ReturnService struct {
	ReturnRepo   *repositories.ReturnRepository
	UsageRepo    *repositories.PartUsageRepository
	JobRepo      *repositories.JobRepository
	TimelineRepo *repositories.TimelineRepository
}

func NewReturnService(returnRepo *repositories.ReturnRepository, usageRepo *repositories.PartUsageRepository,
	jobRepo *repositories.JobRepository, timelineRepo *repositories.TimelineRepository) *ReturnService {
	return &ReturnService{
		ReturnRepo:   returnRepo,
		UsageRepo:    usageRepo,
		JobRepo:      jobRepo,
		TimelineRepo: timelineRepo,
	}
}

// ReturnableQuantity is how much of a usage may still be returned: the
// issued quantity minus pending and approved prior returns. Rejected
// returns free their quantity back up.
func ReturnableQuantity(usageQty, priorReturns int) int {
	remaining := usageQty - priorReturns
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

func validateCreateReturn(req *models.CreateReturnRequest) error {
	if req.UsageID <= 0 {
		return apperrors.Validationf("usage_id is required")
	}
	if req.Quantity < 1 {
		return apperrors.Validationf("quantity must be at least 1")
	}
	if !models.ValidReturnReason(req.Reason) {
		return apperrors.Validationf("invalid reason %q", req.Reason)
	}
	return nil
}

// Create raises a pending return against a usage record. The returnable
// bound is validated here for a fast failure and re-checked under lock in
// the repository.
func (s *ReturnService) Create(ctx context.Context, jobID int, req *models.CreateReturnRequest, userID int) (*models.PartReturn, error) {
	if err := validateCreateReturn(req); err != nil {
		return nil, err
	}

	job, err := s.JobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	usage, err := s.UsageRepo.Get(ctx, req.UsageID)
	if err != nil {
		return nil, err
	}
	if usage.JobID != jobID {
		return nil, apperrors.Validationf("usage %d does not belong to job %d", req.UsageID, jobID)
	}

	prior, err := s.UsageRepo.SumPriorReturns(ctx, req.UsageID)
	if err != nil {
		return nil, err
	}
	returnable := ReturnableQuantity(usage.Quantity, prior)
	if req.Quantity > returnable {
		return nil, apperrors.Validationf("return quantity %d exceeds returnable quantity %d", req.Quantity, returnable)
	}

	number, err := s.ReturnRepo.GenerateReturnNumber(ctx)
	if err != nil {
		return nil, err
	}

	ret := &models.PartReturn{
		ReturnNumber:     number,
		JobID:            jobID,
		UsageID:          req.UsageID,
		Quantity:         req.Quantity,
		Reason:           req.Reason,
		Notes:            req.Notes,
		ReturnedByUserID: userID,
	}
	if err := s.ReturnRepo.Create(ctx, ret); err != nil {
		return nil, err
	}
	ret.PartName = usage.PartName

	s.appendEvent(ctx, jobID, models.EventTypeReturnCreated, job.Status, number, userID)
	log.Printf("[Return] created %s for job %d (usage %d, qty %d)", number, jobID, req.UsageID, req.Quantity)

	return ret, nil
}

// Approve restocks the returned quantity.
func (s *ReturnService) Approve(ctx context.Context, id, approverID int) (*models.PartReturn, error) {
	ret, err := s.ReturnRepo.Approve(ctx, id, approverID)
	if err != nil {
		return nil, err
	}
	s.appendEvent(ctx, ret.JobID, models.EventTypeReturnApproved, "", ret.ReturnNumber, approverID)
	log.Printf("[Return] approved %s (return %d)", ret.ReturnNumber, id)
	return ret, nil
}

func (s *ReturnService) Reject(ctx context.Context, id, approverID int, reason string) (*models.PartReturn, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.Validationf("reason is required")
	}
	ret, err := s.ReturnRepo.Reject(ctx, id, approverID, reason)
	if err != nil {
		return nil, err
	}
	s.appendEvent(ctx, ret.JobID, models.EventTypeReturnRejected, "", ret.ReturnNumber+": "+reason, approverID)
	return ret, nil
}

func (s *ReturnService) Get(ctx context.Context, id int) (*models.PartReturn, error) {
	return s.ReturnRepo.Get(ctx, id)
}

func (s *ReturnService) ListByJob(ctx context.Context, jobID int) ([]*models.PartReturn, error) {
	return s.ReturnRepo.ListByJob(ctx, jobID)
}

func (s *ReturnService) ListPending(ctx context.Context) ([]*models.PartReturn, error) {
	return s.ReturnRepo.ListPending(ctx)
}

func (s *ReturnService) appendEvent(ctx context.Context, jobID int, eventType, status, notes string, userID int) {
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
		log.Printf("[Return] failed to append %s event for job %d: %v", eventType, jobID, err)
	}
}

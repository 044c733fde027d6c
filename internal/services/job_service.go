package services

import (
	"context"
	"log"
	"strings"
	"time"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"
	"cmms-backend/internal/repositories"
)

type JobService struct {
	JobRepo       *repositories.JobRepository
	TimelineRepo  *repositories.TimelineRepository
	EquipmentRepo *repositories.EquipmentRepository
	UsageRepo     *repositories.PartUsageRepository
	ImageRepo     *repositories.JobImageRepository
}

func NewJobService(jobRepo *repositories.JobRepository, timelineRepo *repositories.TimelineRepository,
	equipmentRepo *repositories.EquipmentRepository, usageRepo *repositories.PartUsageRepository,
	imageRepo *repositories.JobImageRepository) *JobService {
	return &JobService{
		JobRepo:       jobRepo,
		TimelineRepo:  timelineRepo,
		EquipmentRepo: equipmentRepo,
		UsageRepo:     usageRepo,
		ImageRepo:     imageRepo,
	}
}

func validateCreateJob(req *models.CreateJobRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return apperrors.Validationf("title is required")
	}
	if req.EquipmentID <= 0 {
		return apperrors.Validationf("equipment_id is required")
	}
	if req.Priority != "" && !models.ValidJobPriority(req.Priority) {
		return apperrors.Validationf("invalid priority %q", req.Priority)
	}
	return nil
}

// validateCompletion checks the fields a completion must carry.
func validateCompletion(req *models.CompleteJobRequest) error {
	if strings.TrimSpace(req.RootCause) == "" {
		return apperrors.Validationf("root_cause is required to complete a job")
	}
	if strings.TrimSpace(req.ActionTaken) == "" {
		return apperrors.Validationf("action_taken is required to complete a job")
	}
	return nil
}

func validateReason(reason, field string) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.Validationf("%s is required", field)
	}
	return nil
}

// CreateJob registers a new maintenance job in pending status and opens its
// timeline.
func (s *JobService) CreateJob(ctx context.Context, req *models.CreateJobRequest, userID int) (*models.JobSnapshot, error) {
	if err := validateCreateJob(req); err != nil {
		return nil, err
	}
	if _, err := s.EquipmentRepo.Get(ctx, req.EquipmentID); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.JobPriorityNormal
	}

	job := &models.MaintenanceJob{
		EquipmentID:      req.EquipmentID,
		Title:            req.Title,
		Description:      req.Description,
		Status:           models.JobStatusPending,
		Priority:         priority,
		Notes:            req.Notes,
		ReportedByUserID: userID,
		AssignedToUserID: req.AssignedToUserID,
	}
	if err := s.JobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	s.appendEvent(ctx, job.ID, models.EventTypeCreated, models.JobStatusPending, req.Notes, userID)
	log.Printf("[Job] created %s (job %d) for equipment %d", job.WorkOrderNumber, job.ID, job.EquipmentID)

	return s.GetSnapshot(ctx, job.ID)
}

// Start moves a pending job to in_progress and stamps started_at.
func (s *JobService) Start(ctx context.Context, jobID, userID int) (*models.JobSnapshot, error) {
	now := time.Now()
	t := &repositories.StatusTransition{
		From:      models.JobStatusPending,
		To:        models.JobStatusInProgress,
		StartedAt: &now,
	}
	if err := s.JobRepo.ApplyTransition(ctx, jobID, t); err != nil {
		return nil, err
	}
	s.appendEvent(ctx, jobID, models.EventTypeStarted, models.JobStatusInProgress, "", userID)
	return s.GetSnapshot(ctx, jobID)
}

// Complete closes an in_progress job. Root cause and action taken are
// mandatory; downtime is derived from creation to completion.
func (s *JobService) Complete(ctx context.Context, jobID int, req *models.CompleteJobRequest, userID int) (*models.JobSnapshot, error) {
	if err := validateCompletion(req); err != nil {
		return nil, err
	}

	job, err := s.JobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	downtime := models.DowntimeMinutesAt(job.CreatedAt, now)
	t := &repositories.StatusTransition{
		From:            models.JobStatusInProgress,
		To:              models.JobStatusCompleted,
		RootCause:       &req.RootCause,
		ActionTaken:     &req.ActionTaken,
		CompletedAt:     &now,
		DowntimeMinutes: &downtime,
	}
	if err := s.JobRepo.ApplyTransition(ctx, jobID, t); err != nil {
		return nil, err
	}
	s.appendEvent(ctx, jobID, models.EventTypeCompleted, models.JobStatusCompleted, req.ActionTaken, userID)
	log.Printf("[Job] completed %s (job %d), downtime %d min", job.WorkOrderNumber, jobID, downtime)
	return s.GetSnapshot(ctx, jobID)
}

// Hold parks an in_progress job. A reason is mandatory and is retained on
// the job until it resumes.
func (s *JobService) Hold(ctx context.Context, jobID int, req *models.HoldJobRequest, userID int) (*models.JobSnapshot, error) {
	if err := validateReason(req.Reason, "reason"); err != nil {
		return nil, err
	}
	t := &repositories.StatusTransition{
		From:         models.JobStatusInProgress,
		To:           models.JobStatusOnHold,
		OnHoldReason: &req.Reason,
	}
	if err := s.JobRepo.ApplyTransition(ctx, jobID, t); err != nil {
		return nil, err
	}
	s.appendEvent(ctx, jobID, models.EventTypeOnHold, models.JobStatusOnHold, req.Reason, userID)
	return s.GetSnapshot(ctx, jobID)
}

// Resume takes an on_hold job back to in_progress.
func (s *JobService) Resume(ctx context.Context, jobID, userID int) (*models.JobSnapshot, error) {
	t := &repositories.StatusTransition{
		From: models.JobStatusOnHold,
		To:   models.JobStatusInProgress,
	}
	if err := s.JobRepo.ApplyTransition(ctx, jobID, t); err != nil {
		return nil, err
	}
	s.appendEvent(ctx, jobID, models.EventTypeResumed, models.JobStatusInProgress, "", userID)
	return s.GetSnapshot(ctx, jobID)
}

// Cancel abandons a job from any non-terminal status. A reason is
// mandatory. When cancelling from on_hold the hold reason stays on the job
// for audit.
func (s *JobService) Cancel(ctx context.Context, jobID int, req *models.CancelJobRequest, userID int) (*models.JobSnapshot, error) {
	if err := validateReason(req.Reason, "reason"); err != nil {
		return nil, err
	}

	job, err := s.JobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(job.Status, models.JobStatusCancelled) {
		return nil, apperrors.Conflictf("job is %s and cannot be cancelled", job.Status)
	}

	t := &repositories.StatusTransition{
		From:               job.Status,
		To:                 models.JobStatusCancelled,
		CancellationReason: &req.Reason,
	}
	if err := s.JobRepo.ApplyTransition(ctx, jobID, t); err != nil {
		return nil, err
	}
	s.appendEvent(ctx, jobID, models.EventTypeCancelled, models.JobStatusCancelled, req.Reason, userID)
	log.Printf("[Job] cancelled %s (job %d): %s", job.WorkOrderNumber, jobID, req.Reason)
	return s.GetSnapshot(ctx, jobID)
}

// AddNote appends a progress note to the timeline without touching the job
// status. Notes are allowed on any non-terminal job.
func (s *JobService) AddNote(ctx context.Context, jobID int, req *models.AddJobNoteRequest, userID int) (*models.JobSnapshot, error) {
	if err := validateReason(req.Notes, "notes"); err != nil {
		return nil, err
	}
	job, err := s.JobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if models.IsTerminalStatus(job.Status) {
		return nil, apperrors.Conflictf("job is %s, notes are closed", job.Status)
	}

	entry := &models.TimelineEntry{
		JobID:           jobID,
		EventType:       models.EventTypeProgressNote,
		Status:          job.Status,
		Notes:           req.Notes,
		CreatedByUserID: userID,
	}
	if err := s.TimelineRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return s.GetSnapshot(ctx, jobID)
}

func (s *JobService) GetJob(ctx context.Context, jobID int) (*models.MaintenanceJob, error) {
	return s.JobRepo.Get(ctx, jobID)
}

func (s *JobService) ListJobs(ctx context.Context, status string, equipmentID int) ([]*models.MaintenanceJob, error) {
	if status != "" {
		switch status {
		case models.JobStatusPending, models.JobStatusInProgress, models.JobStatusOnHold,
			models.JobStatusCompleted, models.JobStatusCancelled:
		default:
			return nil, apperrors.Validationf("invalid status filter %q", status)
		}
	}
	return s.JobRepo.List(ctx, status, equipmentID)
}

// GetSnapshot assembles the full job view: the job row, its timeline, the
// parts issued to it, and its images. Every mutating operation returns one
// of these so callers always see fresh state.
func (s *JobService) GetSnapshot(ctx context.Context, jobID int) (*models.JobSnapshot, error) {
	job, err := s.JobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	timeline, err := s.TimelineRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	parts, err := s.UsageRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	images, err := s.ImageRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &models.JobSnapshot{
		Job:       job,
		Timeline:  timeline,
		PartsUsed: parts,
		Images:    images,
	}, nil
}

// AddImage attaches an external image URL to a job.
func (s *JobService) AddImage(ctx context.Context, jobID int, url, caption string, userID int) (*models.JobSnapshot, error) {
	if strings.TrimSpace(url) == "" {
		return nil, apperrors.Validationf("url is required")
	}
	if _, err := s.JobRepo.Get(ctx, jobID); err != nil {
		return nil, err
	}
	img := &models.JobImage{
		JobID:            jobID,
		URL:              url,
		Caption:          caption,
		UploadedByUserID: userID,
	}
	if err := s.ImageRepo.Create(ctx, img); err != nil {
		return nil, err
	}
	return s.GetSnapshot(ctx, jobID)
}

// appendEvent writes a timeline entry, logging instead of failing the
// operation when the write goes wrong. The status change already happened.
func (s *JobService) appendEvent(ctx context.Context, jobID int, eventType, status, notes string, userID int) {
	entry := &models.TimelineEntry{
		JobID:           jobID,
		EventType:       eventType,
		Status:          status,
		Notes:           notes,
		CreatedByUserID: userID,
	}
	if err := s.TimelineRepo.Create(ctx, entry); err != nil {
		log.Printf("[Job] failed to append %s event for job %d: %v", eventType, jobID, err)
	}
}

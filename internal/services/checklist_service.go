package services

import (
	"context"
	"log"
	"strings"

	"cmms-backend/internal/apperrors"
	"cmms-backend/internal/models"
	"cmms-backend/internal/repositories"
)

type ChecklistService struct {
	ChecklistRepo *repositories.ChecklistRepository
	JobRepo       *repositories.JobRepository
	TimelineRepo  *repositories.TimelineRepository
}

func NewChecklistService(checklistRepo *repositories.ChecklistRepository, jobRepo *repositories.JobRepository,
	timelineRepo *repositories.TimelineRepository) *ChecklistService {
	return &ChecklistService{
		ChecklistRepo: checklistRepo,
		JobRepo:       jobRepo,
		TimelineRepo:  timelineRepo,
	}
}

// ListTemplates returns the templates available for ad-hoc job checklists.
func (s *ChecklistService) ListTemplates(ctx context.Context) ([]*models.ChecklistTemplate, error) {
	return s.ChecklistRepo.ListTemplates(ctx, false)
}

func (s *ChecklistService) GetTemplate(ctx context.Context, id int) (*models.ChecklistTemplate, error) {
	return s.ChecklistRepo.GetTemplate(ctx, id)
}

// missingRequiredItems returns descriptions of required template items that
// have no answer. Any recorded value satisfies the item, fail included; the
// per-item note stays optional.
func missingRequiredItems(template *models.ChecklistTemplate, answers []models.ChecklistItemAnswer) []string {
	byItem := make(map[int]*models.ChecklistItemAnswer, len(answers))
	for i := range answers {
		byItem[answers[i].ItemID] = &answers[i]
	}

	var missing []string
	for _, item := range template.Items {
		if !item.Required {
			continue
		}
		ans, ok := byItem[item.ID]
		if !ok || ans.Value == nil || *ans.Value == "" {
			missing = append(missing, item.Description)
		}
	}
	return missing
}

// answerPassed derives is_passed: only an explicit pass counts, fail and na
// do not.
func answerPassed(value *string) bool {
	return value != nil && *value == models.ChecklistValuePass
}

// validAnswerValues checks every provided answer uses a known value and
// references an item that belongs to the template.
func validAnswerValues(template *models.ChecklistTemplate, answers []models.ChecklistItemAnswer) error {
	known := make(map[int]bool, len(template.Items))
	for _, item := range template.Items {
		known[item.ID] = true
	}
	for _, ans := range answers {
		if !known[ans.ItemID] {
			return apperrors.Validationf("item %d does not belong to template %d", ans.ItemID, template.ID)
		}
		if ans.Value == nil {
			continue
		}
		switch *ans.Value {
		case models.ChecklistValuePass, models.ChecklistValueFail, models.ChecklistValueNA:
		default:
			return apperrors.Validationf("invalid value %q for item %d", *ans.Value, ans.ItemID)
		}
	}
	return nil
}

// SubmitResponse records a checklist pass against a job. Every required item
// must carry an answer, and the job has to be actively worked (in_progress or
// on_hold) to accept a checklist.
func (s *ChecklistService) SubmitResponse(ctx context.Context, jobID int, req *models.SubmitChecklistRequest, userID int) (*models.ChecklistResponse, error) {
	job, err := s.JobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusInProgress && job.Status != models.JobStatusOnHold {
		return nil, apperrors.Conflictf("job is %s, checklists need an active job", job.Status)
	}

	template, err := s.ChecklistRepo.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	if err := validAnswerValues(template, req.Items); err != nil {
		return nil, err
	}
	if missing := missingRequiredItems(template, req.Items); len(missing) > 0 {
		return nil, apperrors.Validationf("incomplete checklist: %s", strings.Join(missing, "; "))
	}

	response := &models.ChecklistResponse{
		JobID:           jobID,
		TemplateID:      template.ID,
		TemplateName:    template.Name,
		Notes:           req.Notes,
		SubmittedByUser: userID,
	}
	for _, ans := range req.Items {
		item := &models.ChecklistResponseItem{
			ItemID: ans.ItemID,
			Value:  ans.Value,
			Note:   ans.Note,
		}
		item.IsPassed = answerPassed(ans.Value)
		response.Items = append(response.Items, item)
	}

	if err := s.ChecklistRepo.CreateResponse(ctx, response); err != nil {
		return nil, err
	}

	entry := &models.TimelineEntry{
		JobID:           jobID,
		EventType:       models.EventTypeChecklistSubmitted,
		Status:          job.Status,
		Notes:           template.Name,
		CreatedByUserID: userID,
	}
	if err := s.TimelineRepo.Create(ctx, entry); err != nil {
		log.Printf("[Checklist] failed to append timeline event for job %d: %v", jobID, err)
	}
	log.Printf("[Checklist] %s submitted for job %d", template.Name, jobID)

	return response, nil
}

func (s *ChecklistService) ListResponses(ctx context.Context, jobID int) ([]*models.ChecklistResponse, error) {
	if _, err := s.JobRepo.Get(ctx, jobID); err != nil {
		return nil, err
	}
	return s.ChecklistRepo.ListResponsesByJob(ctx, jobID)
}

package models

import "time"

// Checklist frequency constants. Periodic templates (daily/weekly/monthly)
// are scheduled inspections and are excluded from ad-hoc job checklists.
const (
	ChecklistFrequencyNone    = "none"
	ChecklistFrequencyDaily   = "daily"
	ChecklistFrequencyWeekly  = "weekly"
	ChecklistFrequencyMonthly = "monthly"
)

// Checklist response value constants
const (
	ChecklistValuePass = "pass"
	ChecklistValueFail = "fail"
	ChecklistValueNA   = "na"
)

type ChecklistTemplate struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Frequency string           `json:"frequency"`
	Items     []*ChecklistItem `json:"items,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type ChecklistItem struct {
	ID          int    `json:"id"`
	TemplateID  int    `json:"template_id"`
	Position    int    `json:"position"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ChecklistResponse is one completed pass of a template against a job. A job
// may hold multiple responses (several templates, or re-submissions).
type ChecklistResponse struct {
	ID              int                      `json:"id"`
	JobID           int                      `json:"job_id"`
	TemplateID      int                      `json:"template_id"`
	TemplateName    string                   `json:"template_name,omitempty"`
	Notes           string                   `json:"notes"`
	Items           []*ChecklistResponseItem `json:"items,omitempty"`
	SubmittedByUser int                      `json:"submitted_by_user_id"`
	CreatedAt       time.Time                `json:"created_at"`
}

type ChecklistResponseItem struct {
	ID         int     `json:"id"`
	ResponseID int     `json:"response_id"`
	ItemID     int     `json:"item_id"`
	Value      *string `json:"value"` // nil when the item was left unanswered
	IsPassed   bool    `json:"is_passed"`
	Note       string  `json:"note"` // Expected when the item failed
}

// SubmitChecklistRequest represents the request body for submitting a
// checklist response against a job.
type SubmitChecklistRequest struct {
	TemplateID int                   `json:"template_id"`
	Notes      string                `json:"notes"`
	Items      []ChecklistItemAnswer `json:"items"`
}

type ChecklistItemAnswer struct {
	ItemID int     `json:"item_id"`
	Value  *string `json:"value"`
	Note   string  `json:"note"`
}

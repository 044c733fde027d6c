package models

import "time"

// TimelineEntry is an append-only record of one event on a job. Entries are
// never edited or removed.
type TimelineEntry struct {
	ID              int       `json:"id"`
	JobID           int       `json:"job_id"`
	EventType       string    `json:"event_type"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	CreatedByUserID int       `json:"created_by_user_id"`
	CreatedByName   string    `json:"created_by_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Event type constants
const (
	EventTypeCreated             = "CREATED"
	EventTypeStarted             = "STARTED"
	EventTypeCompleted           = "COMPLETED"
	EventTypeOnHold              = "ON_HOLD"
	EventTypeResumed             = "RESUMED"
	EventTypeCancelled           = "CANCELLED"
	EventTypeProgressNote        = "PROGRESS_NOTE"
	EventTypeChecklistSubmitted  = "CHECKLIST_SUBMITTED"
	EventTypeRequisitionCreated  = "REQUISITION_CREATED"
	EventTypeRequisitionApproved = "REQUISITION_APPROVED"
	EventTypeRequisitionRejected = "REQUISITION_REJECTED"
	EventTypeReturnCreated       = "RETURN_CREATED"
	EventTypeReturnApproved      = "RETURN_APPROVED"
	EventTypeReturnRejected      = "RETURN_REJECTED"
)

package models

import "time"

// Job status constants
const (
	JobStatusPending    = "pending"
	JobStatusInProgress = "in_progress"
	JobStatusOnHold     = "on_hold"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
)

// jobTransitions is the legal transition set. completed and cancelled are
// terminal; nothing leaves them.
var jobTransitions = map[string][]string{
	JobStatusPending:    {JobStatusInProgress, JobStatusCancelled},
	JobStatusInProgress: {JobStatusCompleted, JobStatusOnHold, JobStatusCancelled},
	JobStatusOnHold:     {JobStatusInProgress, JobStatusCancelled},
	JobStatusCompleted:  {},
	JobStatusCancelled:  {},
}

// CanTransition reports whether a job may move from one status to another.
func CanTransition(from, to string) bool {
	allowed, ok := jobTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no transition leaves the given status.
func IsTerminalStatus(status string) bool {
	return status == JobStatusCompleted || status == JobStatusCancelled
}

type MaintenanceJob struct {
	ID                 int        `json:"id"`
	WorkOrderNumber    string     `json:"work_order_number"`
	EquipmentID        int        `json:"equipment_id"`
	EquipmentName      string     `json:"equipment_name,omitempty"` // Denormalized for display
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Status             string     `json:"status"`
	Priority           string     `json:"priority"`
	Notes              string     `json:"notes"`
	RootCause          *string    `json:"root_cause,omitempty"`          // Set only on completion
	ActionTaken        *string    `json:"action_taken,omitempty"`        // Set only on completion
	OnHoldReason       *string    `json:"on_hold_reason,omitempty"`      // Set when placed on hold, retained for audit
	CancellationReason *string    `json:"cancellation_reason,omitempty"` // Set on cancellation
	ReportedByUserID   int        `json:"reported_by_user_id"`
	AssignedToUserID   *int       `json:"assigned_to_user_id,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	DowntimeMinutes    *int       `json:"downtime_minutes,omitempty"` // Derived at completion
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// DowntimeMinutesAt derives the downtime for a job completed at the given
// time, measured from job creation and clamped at zero.
func DowntimeMinutesAt(createdAt, completedAt time.Time) int {
	minutes := int(completedAt.Sub(createdAt).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return minutes
}

// CreateJobRequest represents the request body for creating a maintenance job
type CreateJobRequest struct {
	EquipmentID      int    `json:"equipment_id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Priority         string `json:"priority"`
	Notes            string `json:"notes"`
	AssignedToUserID *int   `json:"assigned_to_user_id,omitempty"`
}

// CompleteJobRequest represents the request body for completing a job
type CompleteJobRequest struct {
	RootCause   string `json:"root_cause"`
	ActionTaken string `json:"action_taken"`
}

// HoldJobRequest represents the request body for placing a job on hold
type HoldJobRequest struct {
	Reason string `json:"reason"`
}

// CancelJobRequest represents the request body for cancelling a job
type CancelJobRequest struct {
	Reason string `json:"reason"`
}

// AddJobNoteRequest represents the request body for a progress note
type AddJobNoteRequest struct {
	Notes string `json:"notes"`
}

// JobSnapshot is the full read-after-write view returned to the caller and
// broadcast to connected clients after every successful operation.
type JobSnapshot struct {
	Job       *MaintenanceJob  `json:"job"`
	Timeline  []*TimelineEntry `json:"timeline"`
	PartsUsed []*PartUsage     `json:"parts_used"`
	Images    []*JobImage      `json:"images"`
}

// Job priority constants
const (
	JobPriorityLow    = "low"
	JobPriorityNormal = "normal"
	JobPriorityHigh   = "high"
	JobPriorityUrgent = "urgent"
)

// ValidJobPriority reports whether p is a recognised job priority.
func ValidJobPriority(p string) bool {
	switch p {
	case JobPriorityLow, JobPriorityNormal, JobPriorityHigh, JobPriorityUrgent:
		return true
	}
	return false
}

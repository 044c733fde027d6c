package models

import "time"

// Return reason constants
const (
	ReturnReasonWrongPart = "wrong_part"
	ReturnReasonDefective = "defective"
	ReturnReasonNotNeeded = "not_needed"
	ReturnReasonExcess    = "excess"
)

// ValidReturnReason reports whether r is one of the four enumerated reasons.
func ValidReturnReason(r string) bool {
	switch r {
	case ReturnReasonWrongPart, ReturnReasonDefective, ReturnReasonNotNeeded, ReturnReasonExcess:
		return true
	}
	return false
}

// PartReturn is a request to put previously-issued parts back into stock,
// subject to approval. Quantity is bounded by the usage record's returnable
// quantity (usage quantity minus pending and approved prior returns).
type PartReturn struct {
	ID               int        `json:"id"`
	ReturnNumber     string     `json:"return_number"`
	JobID            int        `json:"job_id"`
	UsageID          int        `json:"usage_id"`
	SparePartID      int        `json:"spare_part_id"`
	PartName         string     `json:"part_name,omitempty"`
	Quantity         int        `json:"quantity"`
	Reason           string     `json:"reason"`
	Notes            string     `json:"notes"`
	ReturnedByUserID int        `json:"returned_by_user_id"`
	ReturnedByName   string     `json:"returned_by_name,omitempty"`
	ApprovalStatus   string     `json:"approval_status"`
	ApprovedByUserID *int       `json:"approved_by_user_id,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	RejectionReason  *string    `json:"rejection_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// CreateReturnRequest represents the request body for creating a parts
// return against a usage record.
type CreateReturnRequest struct {
	UsageID  int    `json:"usage_id"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes"`
}

package models

import "time"

// Approval status constants (shared by requisitions and returns)
const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

// Requisition priority constants
const (
	RequisitionPriorityNormal = "normal"
	RequisitionPriorityHigh   = "high"
	RequisitionPriorityUrgent = "urgent"
)

// ValidRequisitionPriority reports whether p is a recognised priority.
func ValidRequisitionPriority(p string) bool {
	switch p {
	case RequisitionPriorityNormal, RequisitionPriorityHigh, RequisitionPriorityUrgent:
		return true
	}
	return false
}

// Requisition is a parts request raised against a job. It represents demand,
// not a stock reservation: stock only moves on approval.
type Requisition struct {
	ID                 int                `json:"id"`
	RequisitionNumber  string             `json:"requisition_number"`
	JobID              int                `json:"job_id"`
	RequestedByUserID  int                `json:"requested_by_user_id"`
	RequestedByName    string             `json:"requested_by_name,omitempty"`
	Priority           string             `json:"priority"`
	Notes              string             `json:"notes"`
	TotalCost          float64            `json:"total_cost"` // Informational, Σ(qty × unit_price)
	ApprovalStatus     string             `json:"approval_status"`
	ApprovedByUserID   *int               `json:"approved_by_user_id,omitempty"`
	ApprovedAt         *time.Time         `json:"approved_at,omitempty"`
	RejectionReason    *string            `json:"rejection_reason,omitempty"`
	Items              []*RequisitionItem `json:"items,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

// RequisitionItem is one line of a requisition: either a catalog part
// (spare_part_id set) or a free-form custom item (custom_name set, no stock
// linkage).
type RequisitionItem struct {
	ID          int     `json:"id"`
	RequisitionID int   `json:"requisition_id"`
	SparePartID *int    `json:"spare_part_id,omitempty"`
	PartName    string  `json:"part_name,omitempty"` // Denormalized for display
	CustomName  *string `json:"custom_name,omitempty"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
}

// IsCatalog reports whether the line references a catalog spare part.
func (i *RequisitionItem) IsCatalog() bool {
	return i.SparePartID != nil
}

// CreateRequisitionRequest represents the request body for creating a
// parts requisition against a job.
type CreateRequisitionRequest struct {
	Priority string                 `json:"priority"`
	Notes    string                 `json:"notes"`
	Items    []RequisitionItemInput `json:"items"`
}

type RequisitionItemInput struct {
	SparePartID *int    `json:"spare_part_id,omitempty"`
	CustomName  string  `json:"custom_name,omitempty"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
}

// StockWarning flags a catalog line whose requested quantity exceeds current
// stock. Advisory only; the requisition is still created.
type StockWarning struct {
	SparePartID int    `json:"spare_part_id"`
	PartName    string `json:"part_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

// RejectRequest represents the request body for rejecting a requisition or
// return.
type RejectRequest struct {
	Reason string `json:"reason"`
}

package models

import "time"

// PartUsage records how much of a catalog part was actually issued to a job.
// Usage rows materialize when a requisition is approved and are the basis
// against which returns are bounded.
type PartUsage struct {
	ID            int       `json:"id"`
	JobID         int       `json:"job_id"`
	SparePartID   int       `json:"spare_part_id"`
	PartName      string    `json:"part_name,omitempty"`
	RequisitionID int       `json:"requisition_id"`
	Quantity      int       `json:"quantity"`
	Unit          string    `json:"unit"`
	UnitPrice     float64   `json:"unit_price"`
	CreatedAt     time.Time `json:"created_at"`
}

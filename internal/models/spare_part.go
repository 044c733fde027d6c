package models

import "time"

type SparePart struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	PartNumber   string    `json:"part_number"`
	Unit         string    `json:"unit"` // pcs, liter, meter, set
	UnitPrice    float64   `json:"unit_price"`
	CurrentStock int       `json:"current_stock"`
	MinStock     int       `json:"min_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StockTransaction is the audit row written alongside every stock mutation.
// All mutations go through the inventory ledger; nothing writes
// current_stock directly.
type StockTransaction struct {
	ID              int       `json:"id"`
	SparePartID     int       `json:"spare_part_id"`
	Delta           int       `json:"delta"` // Negative for issue, positive for receipt/return
	ResultingStock  int       `json:"resulting_stock"`
	ReferenceType   string    `json:"reference_type"` // requisition, return, manual
	ReferenceID     *int      `json:"reference_id,omitempty"`
	Reason          string    `json:"reason"`
	CreatedByUserID int       `json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// Stock transaction reference type constants
const (
	StockRefRequisition = "requisition"
	StockRefReturn      = "return"
	StockRefManual      = "manual"
)

// AdjustStockRequest represents the request body for a manual stock
// adjustment.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"cmms-backend/internal/models"
	"cmms-backend/internal/repositories"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportService renders printable documents for the storeroom.
type ReportService struct {
	RequisitionRepo *repositories.RequisitionRepository
	JobRepo         *repositories.JobRepository
}

func NewReportService(requisitionRepo *repositories.RequisitionRepository, jobRepo *repositories.JobRepository) *ReportService {
	return &ReportService{
		RequisitionRepo: requisitionRepo,
		JobRepo:         jobRepo,
	}
}

// GenerateRequisitionPDF renders a requisition as a pick list the storeroom
// can work from.
func (s *ReportService) GenerateRequisitionPDF(ctx context.Context, requisitionID int) ([]byte, error) {
	requisition, err := s.RequisitionRepo.Get(ctx, requisitionID)
	if err != nil {
		return nil, err
	}
	job, err := s.JobRepo.Get(ctx, requisition.JobID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Parts Requisition - Pick List", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Requisition Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Requisition Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Number: %s", requisition.RequisitionNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Priority: %s", requisition.Priority), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Work Order: %s", job.WorkOrderNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", requisition.ApprovalStatus), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, fmt.Sprintf("Equipment: %s", job.EquipmentName), "LRB", 1, "L", false, 0, "")
	if requisition.RequestedByName != "" {
		pdf.CellFormat(190, 7, fmt.Sprintf("Requested by: %s", requisition.RequestedByName), "LRB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Items table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Requested Items", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(80, 7, "Part", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Line Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range requisition.Items {
		name := item.PartName
		if !item.IsCatalog() {
			name += " (custom)"
		}
		if len(name) > 45 {
			name = name[:42] + "..."
		}
		pdf.CellFormat(80, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, item.Unit, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", float64(item.Quantity)*item.UnitPrice), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(160, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", requisition.TotalCost), "1", 1, "R", false, 0, "")
	pdf.Ln(10)

	// Signature lines for issue and receipt
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 7, "Issued by: ______________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "Received by: ______________________", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render requisition PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateJobSummaryPDF renders a closed-out job report: the work order,
// parts consumed, and the resolution.
func (s *ReportService) GenerateJobSummaryPDF(ctx context.Context, snapshot *models.JobSnapshot) ([]byte, error) {
	job := snapshot.Job

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Maintenance Job Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Job Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Work Order: %s", job.WorkOrderNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", job.Status), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Equipment: %s", job.EquipmentName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Priority: %s", job.Priority), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, fmt.Sprintf("Title: %s", job.Title), "LRB", 1, "L", false, 0, "")
	if job.DowntimeMinutes != nil {
		pdf.CellFormat(190, 7, fmt.Sprintf("Downtime: %d minutes", *job.DowntimeMinutes), "LRB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	if job.RootCause != nil || job.ActionTaken != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Resolution", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		if job.RootCause != nil {
			pdf.MultiCell(190, 6, fmt.Sprintf("Root cause: %s", *job.RootCause), "LRB", "L", false)
		}
		if job.ActionTaken != nil {
			pdf.MultiCell(190, 6, fmt.Sprintf("Action taken: %s", *job.ActionTaken), "LRB", "L", false)
		}
		pdf.Ln(5)
	}

	if len(snapshot.PartsUsed) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Parts Used", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(100, 7, "Part", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Qty", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Unit", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Price", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, usage := range snapshot.PartsUsed {
			name := usage.PartName
			if len(name) > 55 {
				name = name[:52] + "..."
			}
			pdf.CellFormat(100, 6, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d", usage.Quantity), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, usage.Unit, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", usage.UnitPrice), "1", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render job PDF: %w", err)
	}
	return buf.Bytes(), nil
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cmms-backend/internal/cache"
	"cmms-backend/internal/metrics"
	"cmms-backend/internal/middleware"
	"cmms-backend/internal/models"
	"cmms-backend/internal/notify"
	"cmms-backend/internal/services"
	"cmms-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type RequisitionHandler struct {
	Service       *services.RequisitionService
	ReportService *services.ReportService
	Hub           *notify.Hub
}

func NewRequisitionHandler(s *services.RequisitionService, reportService *services.ReportService, hub *notify.Hub) *RequisitionHandler {
	return &RequisitionHandler{
		Service:       s,
		ReportService: reportService,
		Hub:           hub,
	}
}

// createRequisitionResponse pairs the created requisition with any shortage
// warnings so the requester sees supply problems up front.
type createRequisitionResponse struct {
	Requisition *models.Requisition    `json:"requisition"`
	Warnings    []*models.StockWarning `json:"warnings,omitempty"`
}

func (h *RequisitionHandler) CreateRequisition(w http.ResponseWriter, r *http.Request) {
	jobID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateRequisitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	requisition, warnings, err := h.Service.Create(r.Context(), jobID, &req, userID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	cache.InvalidateJobSnapshot(r.Context(), jobID)
	if h.Hub != nil {
		h.Hub.Publish("requisition_updated", requisition)
	}

	utils.JSON(w, http.StatusCreated, createRequisitionResponse{
		Requisition: requisition,
		Warnings:    warnings,
	})
}

func (h *RequisitionHandler) GetRequisition(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	requisition, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, requisition)
}

func (h *RequisitionHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
	jobID, _ := strconv.Atoi(mux.Vars(r)["id"])

	requisitions, err := h.Service.ListByJob(r.Context(), jobID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if requisitions == nil {
		requisitions = []*models.Requisition{}
	}
	utils.JSON(w, http.StatusOK, requisitions)
}

func (h *RequisitionHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	requisitions, err := h.Service.ListPending(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	if requisitions == nil {
		requisitions = []*models.Requisition{}
	}
	utils.JSON(w, http.StatusOK, requisitions)
}

func (h *RequisitionHandler) ApproveRequisition(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	requisition, err := h.Service.Approve(r.Context(), id, userID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	metrics.RequisitionDecisionsTotal.WithLabelValues("approved").Inc()
	metrics.StockMovementsTotal.WithLabelValues(models.StockRefRequisition).Inc()
	cache.InvalidateParts(r.Context())
	cache.InvalidateJobSnapshot(r.Context(), requisition.JobID)
	if h.Hub != nil {
		h.Hub.Publish("requisition_updated", requisition)
	}

	utils.JSON(w, http.StatusOK, requisition)
}

func (h *RequisitionHandler) RejectRequisition(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	requisition, err := h.Service.Reject(r.Context(), id, userID, req.Reason)
	if err != nil {
		utils.Error(w, err)
		return
	}
	metrics.RequisitionDecisionsTotal.WithLabelValues("rejected").Inc()
	cache.InvalidateJobSnapshot(r.Context(), requisition.JobID)
	if h.Hub != nil {
		h.Hub.Publish("requisition_updated", requisition)
	}

	utils.JSON(w, http.StatusOK, requisition)
}

// GetRequisitionPDF renders the storeroom pick list.
func (h *RequisitionHandler) GetRequisitionPDF(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	pdfBytes, err := h.ReportService.GenerateRequisitionPDF(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=requisition-"+strconv.Itoa(id)+".pdf")
	w.Write(pdfBytes)
}

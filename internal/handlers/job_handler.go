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

type JobHandler struct {
	Service       *services.JobService
	ReportService *services.ReportService
	Hub           *notify.Hub
}

func NewJobHandler(s *services.JobService, reportService *services.ReportService, hub *notify.Hub) *JobHandler {
	return &JobHandler{
		Service:       s,
		ReportService: reportService,
		Hub:           hub,
	}
}

// publishSnapshot pushes fresh job state to websocket clients and drops the
// stale cached copy.
func (h *JobHandler) publishSnapshot(r *http.Request, snapshot *models.JobSnapshot) {
	cache.InvalidateJobSnapshot(r.Context(), snapshot.Job.ID)
	if h.Hub != nil {
		h.Hub.Publish("job_updated", snapshot)
	}
}

func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	snapshot, err := h.Service.CreateJob(r.Context(), &req, userID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	metrics.JobTransitionsTotal.WithLabelValues(models.JobStatusPending).Inc()
	h.publishSnapshot(r, snapshot)

	utils.JSON(w, http.StatusCreated, snapshot)
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if data, ok := cache.GetCachedJobSnapshot(r.Context(), id); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	snapshot, err := h.Service.GetSnapshot(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	if data, err := json.Marshal(snapshot); err == nil {
		cache.CacheJobSnapshot(r.Context(), id, data)
	}
	utils.JSON(w, http.StatusOK, snapshot)
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	equipmentID, _ := strconv.Atoi(r.URL.Query().Get("equipment_id"))

	jobs, err := h.Service.ListJobs(r.Context(), status, equipmentID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if jobs == nil {
		jobs = []*models.MaintenanceJob{}
	}
	utils.JSON(w, http.StatusOK, jobs)
}

// transition runs one lifecycle operation and replies with the fresh
// snapshot.
func (h *JobHandler) transition(w http.ResponseWriter, r *http.Request, toStatus string,
	run func(jobID, userID int) (*models.JobSnapshot, error)) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	snapshot, err := run(id, userID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	metrics.JobTransitionsTotal.WithLabelValues(toStatus).Inc()
	h.publishSnapshot(r, snapshot)

	utils.JSON(w, http.StatusOK, snapshot)
}

func (h *JobHandler) StartJob(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.JobStatusInProgress, func(jobID, userID int) (*models.JobSnapshot, error) {
		return h.Service.Start(r.Context(), jobID, userID)
	})
}

func (h *JobHandler) CompleteJob(w http.ResponseWriter, r *http.Request) {
	var req models.CompleteJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.transition(w, r, models.JobStatusCompleted, func(jobID, userID int) (*models.JobSnapshot, error) {
		return h.Service.Complete(r.Context(), jobID, &req, userID)
	})
}

func (h *JobHandler) HoldJob(w http.ResponseWriter, r *http.Request) {
	var req models.HoldJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.transition(w, r, models.JobStatusOnHold, func(jobID, userID int) (*models.JobSnapshot, error) {
		return h.Service.Hold(r.Context(), jobID, &req, userID)
	})
}

func (h *JobHandler) ResumeJob(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.JobStatusInProgress, func(jobID, userID int) (*models.JobSnapshot, error) {
		return h.Service.Resume(r.Context(), jobID, userID)
	})
}

func (h *JobHandler) CancelJob(w http.ResponseWriter, r *http.Request) {
	var req models.CancelJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.transition(w, r, models.JobStatusCancelled, func(jobID, userID int) (*models.JobSnapshot, error) {
		return h.Service.Cancel(r.Context(), jobID, &req, userID)
	})
}

func (h *JobHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.AddJobNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	snapshot, err := h.Service.AddNote(r.Context(), id, &req, userID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	h.publishSnapshot(r, snapshot)

	utils.JSON(w, http.StatusCreated, snapshot)
}

func (h *JobHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.AddJobImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	snapshot, err := h.Service.AddImage(r.Context(), id, req.URL, req.Caption, userID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	h.publishSnapshot(r, snapshot)

	utils.JSON(w, http.StatusCreated, snapshot)
}

// GetJobPDF renders the job close-out report.
func (h *JobHandler) GetJobPDF(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	snapshot, err := h.Service.GetSnapshot(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	pdfBytes, err := h.ReportService.GenerateJobSummaryPDF(r.Context(), snapshot)
	if err != nil {
		utils.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+snapshot.Job.WorkOrderNumber+".pdf")
	w.Write(pdfBytes)
}

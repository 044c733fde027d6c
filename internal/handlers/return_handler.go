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

type ReturnHandler struct {
	Service *services.ReturnService
	Hub     *notify.Hub
}

func NewReturnHandler(s *services.ReturnService, hub *notify.Hub) *ReturnHandler {
	return &ReturnHandler{Service: s, Hub: hub}
}

func (h *ReturnHandler) CreateReturn(w http.ResponseWriter, r *http.Request) {
	jobID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	ret, err := h.Service.Create(r.Context(), jobID, &req, userID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	cache.InvalidateJobSnapshot(r.Context(), jobID)
	if h.Hub != nil {
		h.Hub.Publish("return_updated", ret)
	}

	utils.JSON(w, http.StatusCreated, ret)
}

func (h *ReturnHandler) GetReturn(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	ret, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, ret)
}

func (h *ReturnHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
	jobID, _ := strconv.Atoi(mux.Vars(r)["id"])

	returns, err := h.Service.ListByJob(r.Context(), jobID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if returns == nil {
		returns = []*models.PartReturn{}
	}
	utils.JSON(w, http.StatusOK, returns)
}

func (h *ReturnHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	returns, err := h.Service.ListPending(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	if returns == nil {
		returns = []*models.PartReturn{}
	}
	utils.JSON(w, http.StatusOK, returns)
}

func (h *ReturnHandler) ApproveReturn(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	ret, err := h.Service.Approve(r.Context(), id, userID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	metrics.ReturnDecisionsTotal.WithLabelValues("approved").Inc()
	metrics.StockMovementsTotal.WithLabelValues(models.StockRefReturn).Inc()
	cache.InvalidateParts(r.Context())
	cache.InvalidateJobSnapshot(r.Context(), ret.JobID)
	if h.Hub != nil {
		h.Hub.Publish("return_updated", ret)
	}

	utils.JSON(w, http.StatusOK, ret)
}

func (h *ReturnHandler) RejectReturn(w http.ResponseWriter, r *http.Request) {
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

	ret, err := h.Service.Reject(r.Context(), id, userID, req.Reason)
	if err != nil {
		utils.Error(w, err)
		return
	}
	metrics.ReturnDecisionsTotal.WithLabelValues("rejected").Inc()
	cache.InvalidateJobSnapshot(r.Context(), ret.JobID)
	if h.Hub != nil {
		h.Hub.Publish("return_updated", ret)
	}

	utils.JSON(w, http.StatusOK, ret)
}

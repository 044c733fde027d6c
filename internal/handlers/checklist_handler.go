package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cmms-backend/internal/cache"
	"cmms-backend/internal/middleware"
	"cmms-backend/internal/models"
	"cmms-backend/internal/notify"
	"cmms-backend/internal/services"
	"cmms-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ChecklistHandler struct {
	Service *services.ChecklistService
	Hub     *notify.Hub
}

func NewChecklistHandler(s *services.ChecklistService, hub *notify.Hub) *ChecklistHandler {
	return &ChecklistHandler{Service: s, Hub: hub}
}

func (h *ChecklistHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.ListTemplates(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	if templates == nil {
		templates = []*models.ChecklistTemplate{}
	}
	utils.JSON(w, http.StatusOK, templates)
}

func (h *ChecklistHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	template, err := h.Service.GetTemplate(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, template)
}

func (h *ChecklistHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	jobID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.SubmitChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	response, err := h.Service.SubmitResponse(r.Context(), jobID, &req, userID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	cache.InvalidateJobSnapshot(r.Context(), jobID)
	if h.Hub != nil {
		h.Hub.Publish("checklist_submitted", response)
	}

	utils.JSON(w, http.StatusCreated, response)
}

func (h *ChecklistHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	jobID, _ := strconv.Atoi(mux.Vars(r)["id"])

	responses, err := h.Service.ListResponses(r.Context(), jobID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if responses == nil {
		responses = []*models.ChecklistResponse{}
	}
	utils.JSON(w, http.StatusOK, responses)
}

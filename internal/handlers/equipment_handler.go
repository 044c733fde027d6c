package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cmms-backend/internal/models"
	"cmms-backend/internal/services"
	"cmms-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type EquipmentHandler struct {
	Service *services.EquipmentService
}

func NewEquipmentHandler(s *services.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{Service: s}
}

func (h *EquipmentHandler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var eq models.Equipment
	if err := json.NewDecoder(r.Body).Decode(&eq); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.Create(r.Context(), &eq); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	eq, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	if list == nil {
		list = []*models.Equipment{}
	}
	utils.JSON(w, http.StatusOK, list)
}

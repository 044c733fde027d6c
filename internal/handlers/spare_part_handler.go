package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cmms-backend/internal/cache"
	"cmms-backend/internal/metrics"
	"cmms-backend/internal/middleware"
	"cmms-backend/internal/models"
	"cmms-backend/internal/services"
	"cmms-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type SparePartHandler struct {
	Service *services.InventoryService
}

func NewSparePartHandler(s *services.InventoryService) *SparePartHandler {
	return &SparePartHandler{Service: s}
}

func (h *SparePartHandler) CreatePart(w http.ResponseWriter, r *http.Request) {
	var part models.SparePart
	if err := json.NewDecoder(r.Body).Decode(&part); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreatePart(r.Context(), &part)
	if err != nil {
		utils.Error(w, err)
		return
	}
	cache.InvalidateParts(r.Context())

	utils.JSON(w, http.StatusCreated, created)
}

func (h *SparePartHandler) GetPart(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	part, err := h.Service.GetPart(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, part)
}

func (h *SparePartHandler) ListParts(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCachedPartsList(r.Context()); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	parts, err := h.Service.ListParts(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	if parts == nil {
		parts = []*models.SparePart{}
	}

	if data, err := json.Marshal(parts); err == nil {
		cache.CachePartsList(r.Context(), data)
	}
	utils.JSON(w, http.StatusOK, parts)
}

func (h *SparePartHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCachedLowStock(r.Context()); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	parts, err := h.Service.ListLowStock(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	if parts == nil {
		parts = []*models.SparePart{}
	}

	if data, err := json.Marshal(parts); err == nil {
		cache.CacheLowStock(r.Context(), data)
	}
	utils.JSON(w, http.StatusOK, parts)
}

func (h *SparePartHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	part, err := h.Service.AdjustStock(r.Context(), id, &req, userID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	metrics.StockMovementsTotal.WithLabelValues(models.StockRefManual).Inc()
	cache.InvalidateParts(r.Context())

	utils.JSON(w, http.StatusOK, part)
}

func (h *SparePartHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	txns, err := h.Service.ListTransactions(r.Context(), id, limit)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if txns == nil {
		txns = []*models.StockTransaction{}
	}
	utils.JSON(w, http.StatusOK, txns)
}

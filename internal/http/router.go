package http

import (
	"net/http"

	"cmms-backend/internal/handlers"
	"cmms-backend/internal/middleware"
	"cmms-backend/internal/models"
	"cmms-backend/internal/notify"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	jobHandler *handlers.JobHandler,
	checklistHandler *handlers.ChecklistHandler,
	requisitionHandler *handlers.RequisitionHandler,
	returnHandler *handlers.ReturnHandler,
	sparePartHandler *handlers.SparePartHandler,
	equipmentHandler *handlers.EquipmentHandler,
	healthHandler *handlers.HealthHandler,
	hub *notify.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	approver := authMiddleware.RequireRole(models.RoleSupervisor, models.RoleAdmin)
	adminOnly := authMiddleware.RequireRole(models.RoleAdmin)

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(adminOnly)
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("", userHandler.CreateUser).Methods("POST")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.UpdateUser).Methods("PUT")
	usersAPI.HandleFunc("/{id}", userHandler.DeleteUser).Methods("DELETE")
	usersAPI.HandleFunc("/{id}/toggle-active", userHandler.ToggleActive).Methods("PATCH")

	// Protected API routes - Equipment
	equipmentAPI := r.PathPrefix("/api/equipment").Subrouter()
	equipmentAPI.Use(authMiddleware.Authenticate)
	equipmentAPI.HandleFunc("", equipmentHandler.ListEquipment).Methods("GET")
	equipmentAPI.HandleFunc("", approver(http.HandlerFunc(equipmentHandler.CreateEquipment)).ServeHTTP).Methods("POST")
	equipmentAPI.HandleFunc("/{id}", equipmentHandler.GetEquipment).Methods("GET")

	// Protected API routes - Maintenance Jobs
	jobsAPI := r.PathPrefix("/api/jobs").Subrouter()
	jobsAPI.Use(authMiddleware.Authenticate)
	jobsAPI.HandleFunc("", jobHandler.ListJobs).Methods("GET")
	jobsAPI.HandleFunc("", jobHandler.CreateJob).Methods("POST")
	jobsAPI.HandleFunc("/{id}", jobHandler.GetJob).Methods("GET")
	jobsAPI.HandleFunc("/{id}/start", jobHandler.StartJob).Methods("POST")
	jobsAPI.HandleFunc("/{id}/complete", jobHandler.CompleteJob).Methods("POST")
	jobsAPI.HandleFunc("/{id}/hold", jobHandler.HoldJob).Methods("POST")
	jobsAPI.HandleFunc("/{id}/resume", jobHandler.ResumeJob).Methods("POST")
	jobsAPI.HandleFunc("/{id}/cancel", jobHandler.CancelJob).Methods("POST")
	jobsAPI.HandleFunc("/{id}/notes", jobHandler.AddNote).Methods("POST")
	jobsAPI.HandleFunc("/{id}/images", jobHandler.AddImage).Methods("POST")
	jobsAPI.HandleFunc("/{id}/pdf", jobHandler.GetJobPDF).Methods("GET")

	// Job-scoped checklists, requisitions and returns
	jobsAPI.HandleFunc("/{id}/checklists", checklistHandler.SubmitResponse).Methods("POST")
	jobsAPI.HandleFunc("/{id}/checklists", checklistHandler.ListResponses).Methods("GET")
	jobsAPI.HandleFunc("/{id}/requisitions", requisitionHandler.CreateRequisition).Methods("POST")
	jobsAPI.HandleFunc("/{id}/requisitions", requisitionHandler.ListByJob).Methods("GET")
	jobsAPI.HandleFunc("/{id}/returns", returnHandler.CreateReturn).Methods("POST")
	jobsAPI.HandleFunc("/{id}/returns", returnHandler.ListByJob).Methods("GET")

	// Protected API routes - Checklist templates
	templatesAPI := r.PathPrefix("/api/checklist-templates").Subrouter()
	templatesAPI.Use(authMiddleware.Authenticate)
	templatesAPI.HandleFunc("", checklistHandler.ListTemplates).Methods("GET")
	templatesAPI.HandleFunc("/{id}", checklistHandler.GetTemplate).Methods("GET")

	// Protected API routes - Requisitions (approval decisions need supervisor or admin)
	requisitionsAPI := r.PathPrefix("/api/requisitions").Subrouter()
	requisitionsAPI.Use(authMiddleware.Authenticate)
	requisitionsAPI.HandleFunc("/pending", approver(http.HandlerFunc(requisitionHandler.ListPending)).ServeHTTP).Methods("GET")
	requisitionsAPI.HandleFunc("/{id}", requisitionHandler.GetRequisition).Methods("GET")
	requisitionsAPI.HandleFunc("/{id}/approve", approver(http.HandlerFunc(requisitionHandler.ApproveRequisition)).ServeHTTP).Methods("POST")
	requisitionsAPI.HandleFunc("/{id}/reject", approver(http.HandlerFunc(requisitionHandler.RejectRequisition)).ServeHTTP).Methods("POST")
	requisitionsAPI.HandleFunc("/{id}/pdf", requisitionHandler.GetRequisitionPDF).Methods("GET")

	// Protected API routes - Part Returns
	returnsAPI := r.PathPrefix("/api/returns").Subrouter()
	returnsAPI.Use(authMiddleware.Authenticate)
	returnsAPI.HandleFunc("/pending", approver(http.HandlerFunc(returnHandler.ListPending)).ServeHTTP).Methods("GET")
	returnsAPI.HandleFunc("/{id}", returnHandler.GetReturn).Methods("GET")
	returnsAPI.HandleFunc("/{id}/approve", approver(http.HandlerFunc(returnHandler.ApproveReturn)).ServeHTTP).Methods("POST")
	returnsAPI.HandleFunc("/{id}/reject", approver(http.HandlerFunc(returnHandler.RejectReturn)).ServeHTTP).Methods("POST")

	// Protected API routes - Spare Parts
	partsAPI := r.PathPrefix("/api/parts").Subrouter()
	partsAPI.Use(authMiddleware.Authenticate)
	partsAPI.HandleFunc("", sparePartHandler.ListParts).Methods("GET")
	partsAPI.HandleFunc("", approver(http.HandlerFunc(sparePartHandler.CreatePart)).ServeHTTP).Methods("POST")
	partsAPI.HandleFunc("/low-stock", sparePartHandler.ListLowStock).Methods("GET")
	partsAPI.HandleFunc("/{id}", sparePartHandler.GetPart).Methods("GET")
	partsAPI.HandleFunc("/{id}/adjust-stock", approver(http.HandlerFunc(sparePartHandler.AdjustStock)).ServeHTTP).Methods("POST")
	partsAPI.HandleFunc("/{id}/transactions", sparePartHandler.ListTransactions).Methods("GET")

	// WebSocket for live job and inventory updates
	r.HandleFunc("/ws", hub.HandleWebSocket)

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

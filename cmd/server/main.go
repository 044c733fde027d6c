package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"cmms-backend/internal/auth"
	"cmms-backend/internal/cache"
	"cmms-backend/internal/config"
	"cmms-backend/internal/database"
	"cmms-backend/internal/db"
	"cmms-backend/internal/handlers"
	"cmms-backend/internal/health"
	h "cmms-backend/internal/http"
	"cmms-backend/internal/middleware"
	"cmms-backend/internal/monitoring"
	"cmms-backend/internal/notify"
	"cmms-backend/internal/repositories"
	"cmms-backend/internal/services"
)

func main() {
	// Load configuration from environment and config file
	cfg := config.Load()

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Run pending schema migrations before serving traffic
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := database.NewMigrator(pool).RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("Migrations failed: %v", err)
	}
	cancel()

	// Initialize Redis cache (the API works without it, reads just hit the DB)
	if err := cache.Init(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password); err != nil {
		log.Printf("[Redis] Cache unavailable, continuing without it: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	equipmentRepo := repositories.NewEquipmentRepository(pool)
	jobRepo := repositories.NewJobRepository(pool)
	timelineRepo := repositories.NewTimelineRepository(pool)
	jobImageRepo := repositories.NewJobImageRepository(pool)
	checklistRepo := repositories.NewChecklistRepository(pool)
	sparePartRepo := repositories.NewSparePartRepository(pool)
	requisitionRepo := repositories.NewRequisitionRepository(pool)
	usageRepo := repositories.NewPartUsageRepository(pool)
	returnRepo := repositories.NewReturnRepository(pool)

	// Initialize JWT manager for token generation and validation
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	equipmentService := services.NewEquipmentService(equipmentRepo)
	jobService := services.NewJobService(jobRepo, timelineRepo, equipmentRepo, usageRepo, jobImageRepo)
	checklistService := services.NewChecklistService(checklistRepo, jobRepo, timelineRepo)
	inventoryService := services.NewInventoryService(sparePartRepo)
	requisitionService := services.NewRequisitionService(requisitionRepo, sparePartRepo, jobRepo, timelineRepo)
	returnService := services.NewReturnService(returnRepo, usageRepo, jobRepo, timelineRepo)
	reportService := services.NewReportService(requisitionRepo, jobRepo)

	// Start the websocket hub that pushes job and approval events to clients
	hub := notify.NewHub()
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	equipmentHandler := handlers.NewEquipmentHandler(equipmentService)
	jobHandler := handlers.NewJobHandler(jobService, reportService, hub)
	checklistHandler := handlers.NewChecklistHandler(checklistService, hub)
	requisitionHandler := handlers.NewRequisitionHandler(requisitionService, reportService, hub)
	returnHandler := handlers.NewReturnHandler(returnService, hub)
	sparePartHandler := handlers.NewSparePartHandler(inventoryService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	// Auth middleware re-reads the user row per request so suspensions apply immediately
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := h.NewRouter(
		authHandler,
		userHandler,
		jobHandler,
		checklistHandler,
		requisitionHandler,
		returnHandler,
		sparePartHandler,
		equipmentHandler,
		healthHandler,
		hub,
		authMiddleware,
	)

	// Wrap with panic recovery, CORS and request metrics
	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Ops monitoring server on its own port (stats, alerts, websocket feed)
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort).Start()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

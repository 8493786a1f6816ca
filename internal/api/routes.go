package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skyward/droneops/internal/assignment"
	"github.com/skyward/droneops/internal/config"
	"github.com/skyward/droneops/internal/conflict"
	"github.com/skyward/droneops/internal/inventory"
	"github.com/skyward/droneops/internal/roster"
	"github.com/skyward/droneops/internal/storage"
	"github.com/skyward/droneops/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(
	rosterService *roster.Service,
	inventoryService *inventory.Service,
	assignService *assignment.Service,
	detector *conflict.Detector,
	store storage.Store,
	config *config.Config,
	logger *logger.Logger,
) *Router {
	return &Router{
		handler:    NewHandler(rosterService, inventoryService, assignService, detector, store, config, logger),
		middleware: NewMiddleware(logger),
		config:     config,
		logger:     logger.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Roster routes
		router.Get("/pilots", r.handler.GetPilots)
		router.Get("/pilots/{id}", r.handler.GetPilotByID)
		router.Put("/pilots/{id}/status", r.handler.UpdatePilotStatus)

		// Fleet routes
		router.Get("/drones", r.handler.GetDrones)
		router.Get("/drones/{id}", r.handler.GetDroneByID)
		router.Put("/drones/{id}/status", r.handler.UpdateDroneStatus)

		// Mission routes
		router.Get("/missions", r.handler.GetMissions)
		router.Post("/missions", r.handler.CreateMission)
		router.Get("/missions/{id}", r.handler.GetMissionByID)
		router.Post("/missions/{id}/assign", r.handler.AssignMission)

		// Matching and assignment
		router.Post("/match", r.handler.Match)
		router.Get("/assignments", r.handler.GetAssignments)

		// Conflict report
		router.Get("/conflicts", r.handler.GetConflicts)

		// Health check
		router.Get("/health", r.handler.GetHealth)

		// Configuration
		router.Get("/config", r.handler.GetConfig)
	})

	return router
}

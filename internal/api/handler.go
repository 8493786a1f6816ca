package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/skyward/droneops/internal/assignment"
	"github.com/skyward/droneops/internal/config"
	"github.com/skyward/droneops/internal/conflict"
	"github.com/skyward/droneops/internal/inventory"
	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/roster"
	"github.com/skyward/droneops/internal/storage"
	"github.com/skyward/droneops/pkg/logger"
)

// Handler handles API requests
type Handler struct {
	rosterService    *roster.Service
	inventoryService *inventory.Service
	assignService    *assignment.Service
	detector         *conflict.Detector
	store            storage.Store
	config           *config.Config
	logger           *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	rosterService *roster.Service,
	inventoryService *inventory.Service,
	assignService *assignment.Service,
	detector *conflict.Detector,
	store storage.Store,
	config *config.Config,
	logger *logger.Logger,
) *Handler {
	return &Handler{
		rosterService:    rosterService,
		inventoryService: inventoryService,
		assignService:    assignService,
		detector:         detector,
		store:            store,
		config:           config,
		logger:           logger.Named("api-handler"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, storage.ErrNotFound) {
		status = http.StatusNotFound
	} else if errors.Is(err, storage.ErrUnknownField) || errors.Is(err, ops.ErrDateOrder) {
		status = http.StatusBadRequest
	}
	h.respondJSON(w, status, errorResponse{Error: err.Error()})
}

// GetPilots returns pilots matching the query filters
func (h *Handler) GetPilots(w http.ResponseWriter, r *http.Request) {
	filter := roster.Filter{
		Skill:    r.URL.Query().Get("skill"),
		Location: r.URL.Query().Get("location"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		st, err := ops.ParsePilotStatus(status)
		if err != nil {
			h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		filter.Status = st
	}

	pilots, err := h.rosterService.Find(filter)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(pilots),
		"pilots": pilots,
	})
}

// GetPilotByID returns a single pilot
func (h *Handler) GetPilotByID(w http.ResponseWriter, r *http.Request) {
	pilot, err := h.rosterService.GetPilotByID(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, pilot)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdatePilotStatus sets a pilot's status
func (h *Handler) UpdatePilotStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	status, err := ops.ParsePilotStatus(req.Status)
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.rosterService.UpdateStatus(chi.URLParam(r, "id"), status); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"result": "updated"})
}

// GetDrones returns drones matching the query filters
func (h *Handler) GetDrones(w http.ResponseWriter, r *http.Request) {
	filter := inventory.Filter{
		Capability: r.URL.Query().Get("capability"),
		Location:   r.URL.Query().Get("location"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		st, err := ops.ParseDroneStatus(status)
		if err != nil {
			h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		filter.Status = st
	}

	drones, err := h.inventoryService.Find(filter)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(drones),
		"drones": drones,
	})
}

// GetDroneByID returns a single drone
func (h *Handler) GetDroneByID(w http.ResponseWriter, r *http.Request) {
	drone, err := h.inventoryService.GetDroneByID(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, drone)
}

// UpdateDroneStatus sets a drone's status
func (h *Handler) UpdateDroneStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	status, err := ops.ParseDroneStatus(req.Status)
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.inventoryService.UpdateStatus(chi.URLParam(r, "id"), status); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"result": "updated"})
}

// GetMissions returns all missions
func (h *Handler) GetMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := h.store.Missions()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(missions),
		"missions": missions,
	})
}

// GetMissionByID returns a single mission
func (h *Handler) GetMissionByID(w http.ResponseWriter, r *http.Request) {
	mission, err := h.store.GetMission(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, mission)
}

// CreateMission appends a new mission record. A mission identifier is
// generated when the request omits one.
func (h *Handler) CreateMission(w http.ResponseWriter, r *http.Request) {
	var mission ops.Mission
	if err := json.NewDecoder(r.Body).Decode(&mission); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if mission.ID == "" {
		mission.ID = "M-" + uuid.NewString()[:8]
	}
	if mission.Status == "" {
		mission.Status = ops.MissionPlanning
	}
	if mission.Priority == "" {
		mission.Priority = ops.PriorityMedium
	}

	if err := h.store.AppendMission(mission); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, mission)
}

type assignRequest struct {
	PilotID string `json:"pilot_id,omitempty"`
	DroneID string `json:"drone_id,omitempty"`
	Auto    bool   `json:"auto,omitempty"`
}

// AssignMission assigns resources to a mission, either explicitly or by
// first-fit auto-matching
func (h *Handler) AssignMission(w http.ResponseWriter, r *http.Request) {
	missionID := chi.URLParam(r, "id")

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Auto {
		pilot, drone, err := h.assignService.AutoAssign(missionID)
		if err != nil {
			h.respondError(w, err)
			return
		}
		h.respondJSON(w, http.StatusOK, map[string]interface{}{
			"mission_id": missionID,
			"pilot":      pilot,
			"drone":      drone,
		})
		return
	}

	if req.PilotID == "" && req.DroneID == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "pilot_id or drone_id required unless auto is set"})
		return
	}

	if err := h.assignService.Assign(missionID, req.PilotID, req.DroneID); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"result": "assigned"})
}

// Match returns a candidate pilot for the given requirements without
// recording an assignment
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	var req assignment.Requirements
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	pilot, err := h.assignService.MatchPilot(req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"pilot": pilot})
}

// GetAssignments lists pilots with active assignment references
func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.rosterService.ActiveAssignments()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":       len(assignments),
		"assignments": assignments,
	})
}

// GetConflicts runs a full conflict scan
func (h *Handler) GetConflicts(w http.ResponseWriter, r *http.Request) {
	conflicts, err := h.detector.Detect()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(conflicts),
		"conflicts": conflicts,
	})
}

// GetHealth returns service health
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// GetConfig returns the non-sensitive parts of the running configuration
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"server": map[string]interface{}{
			"host": h.config.Server.Host,
			"port": h.config.Server.Port,
		},
		"logging": h.config.Logging,
	})
}

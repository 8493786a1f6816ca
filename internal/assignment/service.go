package assignment

import (
	"fmt"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/storage"
	"github.com/skyward/droneops/pkg/logger"
)

// Service matches pilots and drones to missions and records assignments
type Service struct {
	store  storage.Store
	logger *logger.Logger
}

// NewService creates an assignment service
func NewService(store storage.Store, logger *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.Named("assignment"),
	}
}

// Assign records a pilot (and optionally a drone) against a mission. Both
// sides of each weak reference are written in one atomic batch: the
// mission's assigned_pilot together with the pilot's status and
// current_assignment, and likewise for the drone. All records are
// validated first, and a write failure anywhere in the batch leaves the
// store unchanged.
func (s *Service) Assign(missionID, pilotID, droneID string) error {
	mission, err := s.store.GetMission(missionID)
	if err != nil {
		return fmt.Errorf("mission %s: %w", missionID, err)
	}

	var pilot *ops.Pilot
	if pilotID != "" {
		pilot, err = s.store.GetPilot(pilotID)
		if err != nil {
			return fmt.Errorf("pilot %s: %w", pilotID, err)
		}
		if pilot.Status != ops.PilotAvailable {
			return fmt.Errorf("pilot %s is not available (status %s)", pilotID, pilot.Status)
		}
	}

	var drone *ops.Drone
	if droneID != "" {
		drone, err = s.store.GetDrone(droneID)
		if err != nil {
			return fmt.Errorf("drone %s: %w", droneID, err)
		}
		if drone.Status != ops.DroneAvailable {
			return fmt.Errorf("drone %s is not available (status %s)", droneID, drone.Status)
		}
	}

	var updates []storage.FieldUpdate
	if pilot != nil {
		updates = append(updates,
			storage.FieldUpdate{Collection: storage.CollectionMissions, ID: mission.ID, Field: "assigned_pilot", Value: pilot.ID},
			storage.FieldUpdate{Collection: storage.CollectionPilots, ID: pilot.ID, Field: "status", Value: string(ops.PilotAssigned)},
			storage.FieldUpdate{Collection: storage.CollectionPilots, ID: pilot.ID, Field: "current_assignment", Value: mission.ID},
		)
	}
	if drone != nil {
		updates = append(updates,
			storage.FieldUpdate{Collection: storage.CollectionMissions, ID: mission.ID, Field: "assigned_drone", Value: drone.ID},
			storage.FieldUpdate{Collection: storage.CollectionDrones, ID: drone.ID, Field: "status", Value: string(ops.DroneDeployed)},
			storage.FieldUpdate{Collection: storage.CollectionDrones, ID: drone.ID, Field: "current_assignment", Value: mission.ID},
		)
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.store.ApplyUpdates(updates); err != nil {
		return fmt.Errorf("failed to record assignment: %w", err)
	}

	if pilot != nil {
		s.logger.Info("Pilot assigned",
			logger.String("mission_id", mission.ID),
			logger.String("pilot_id", pilot.ID),
		)
	}
	if drone != nil {
		s.logger.Info("Drone assigned",
			logger.String("mission_id", mission.ID),
			logger.String("drone_id", drone.ID),
		)
	}
	return nil
}

// AutoAssign derives requirements from the mission record and first-fit
// matches a pilot and a drone, then records the assignment. Returns the
// matched records; either may be nil when nothing qualified.
func (s *Service) AutoAssign(missionID string) (*ops.Pilot, *ops.Drone, error) {
	mission, err := s.store.GetMission(missionID)
	if err != nil {
		return nil, nil, fmt.Errorf("mission %s: %w", missionID, err)
	}

	pilot, err := s.MatchPilot(Requirements{
		Skills:         mission.RequiredSkills,
		Certifications: mission.RequiredCerts,
		Location:       mission.Location,
		StartDate:      mission.StartDate,
		EndDate:        mission.EndDate,
	})
	if err != nil {
		return nil, nil, err
	}

	drone, err := s.MatchDrone(DroneRequirements{
		Location:  mission.Location,
		StartDate: mission.StartDate,
	})
	if err != nil {
		return nil, nil, err
	}

	if pilot == nil && drone == nil {
		s.logger.Warn("No eligible resources for mission",
			logger.String("mission_id", mission.ID),
		)
		return nil, nil, nil
	}

	pilotID := ""
	if pilot != nil {
		pilotID = pilot.ID
	}
	droneID := ""
	if drone != nil {
		droneID = drone.ID
	}

	if err := s.Assign(mission.ID, pilotID, droneID); err != nil {
		return nil, nil, err
	}
	return pilot, drone, nil
}

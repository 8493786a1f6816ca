// Package inventory provides query and update operations over the drone
// fleet.
package inventory

import (
	"fmt"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/storage"
	"github.com/skyward/droneops/pkg/logger"
)

// Filter narrows an inventory query. All supplied criteria must match
// (conjunctive); zero values mean "any".
type Filter struct {
	Status     ops.DroneStatus
	Capability string
	Location   string
}

// Service answers fleet queries against the record store
type Service struct {
	store  storage.Store
	logger *logger.Logger
}

// NewService creates an inventory service
func NewService(store storage.Store, logger *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.Named("inventory"),
	}
}

// Find returns drones matching every supplied filter criterion, in store
// order. Capability matching is verbatim containment on the drone's tag
// list.
func (s *Service) Find(filter Filter) ([]ops.Drone, error) {
	drones, err := s.store.Drones()
	if err != nil {
		return nil, fmt.Errorf("failed to load drones: %w", err)
	}

	var matched []ops.Drone
	for _, d := range drones {
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.Capability != "" && !d.HasCapabilities([]string{filter.Capability}) {
			continue
		}
		if filter.Location != "" && d.Location != filter.Location {
			continue
		}
		matched = append(matched, d)
	}

	s.logger.Debug("Inventory query",
		logger.String("status", string(filter.Status)),
		logger.String("capability", filter.Capability),
		logger.String("location", filter.Location),
		logger.Int("matched", len(matched)),
	)
	return matched, nil
}

// GetDroneByID returns a single drone record
func (s *Service) GetDroneByID(id string) (*ops.Drone, error) {
	return s.store.GetDrone(id)
}

// UpdateStatus sets a drone's status. The value is validated against the
// closed status set before the write.
func (s *Service) UpdateStatus(id string, status ops.DroneStatus) error {
	if _, err := ops.ParseDroneStatus(string(status)); err != nil {
		return err
	}
	if err := s.store.UpdateField(storage.CollectionDrones, id, "status", string(status)); err != nil {
		return fmt.Errorf("failed to update drone %s status: %w", id, err)
	}
	s.logger.Info("Drone status updated",
		logger.String("drone_id", id),
		logger.String("status", string(status)),
	)
	return nil
}

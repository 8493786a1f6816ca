// Package roster provides query and update operations over the pilot
// roster.
package roster

import (
	"fmt"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/storage"
	"github.com/skyward/droneops/pkg/logger"
)

// Filter narrows a roster query. All supplied criteria must match
// (conjunctive); zero values mean "any".
type Filter struct {
	Status   ops.PilotStatus
	Skill    string
	Location string
}

// Assignment is one pilot's active assignment reference
type Assignment struct {
	PilotID    string `json:"pilot_id"`
	Name       string `json:"name"`
	Assignment string `json:"assignment"`
}

// Service answers roster queries against the record store
type Service struct {
	store  storage.Store
	logger *logger.Logger
}

// NewService creates a roster service
func NewService(store storage.Store, logger *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.Named("roster"),
	}
}

// Find returns pilots matching every supplied filter criterion, in store
// order. Skill matching is verbatim containment on the pilot's tag list.
func (s *Service) Find(filter Filter) ([]ops.Pilot, error) {
	pilots, err := s.store.Pilots()
	if err != nil {
		return nil, fmt.Errorf("failed to load pilots: %w", err)
	}

	var matched []ops.Pilot
	for _, p := range pilots {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Skill != "" && !p.HasSkills([]string{filter.Skill}) {
			continue
		}
		if filter.Location != "" && p.Location != filter.Location {
			continue
		}
		matched = append(matched, p)
	}

	s.logger.Debug("Roster query",
		logger.String("status", string(filter.Status)),
		logger.String("skill", filter.Skill),
		logger.String("location", filter.Location),
		logger.Int("matched", len(matched)),
	)
	return matched, nil
}

// GetPilotByID returns a single pilot record
func (s *Service) GetPilotByID(id string) (*ops.Pilot, error) {
	return s.store.GetPilot(id)
}

// UpdateStatus sets a pilot's status. The value is validated against the
// closed status set before the write.
func (s *Service) UpdateStatus(id string, status ops.PilotStatus) error {
	if _, err := ops.ParsePilotStatus(string(status)); err != nil {
		return err
	}
	if err := s.store.UpdateField(storage.CollectionPilots, id, "status", string(status)); err != nil {
		return fmt.Errorf("failed to update pilot %s status: %w", id, err)
	}
	s.logger.Info("Pilot status updated",
		logger.String("pilot_id", id),
		logger.String("status", string(status)),
	)
	return nil
}

// ActiveAssignments lists pilots that currently hold an assignment
// reference
func (s *Service) ActiveAssignments() ([]Assignment, error) {
	pilots, err := s.store.Pilots()
	if err != nil {
		return nil, fmt.Errorf("failed to load pilots: %w", err)
	}

	var assignments []Assignment
	for _, p := range pilots {
		if ops.IsUnassigned(p.CurrentAssignment) {
			continue
		}
		assignments = append(assignments, Assignment{
			PilotID:    p.ID,
			Name:       p.Name,
			Assignment: p.CurrentAssignment,
		})
	}
	return assignments, nil
}

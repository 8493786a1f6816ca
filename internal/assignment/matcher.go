// Package assignment implements resource matching and the assignment
// workflow that writes matches back to the record store.
package assignment

import (
	"fmt"

	"github.com/skyward/droneops/internal/ops"
)

// Requirements describes what a mission needs from a pilot
type Requirements struct {
	Skills         []string `json:"skills"`
	Certifications []string `json:"certifications,omitempty"`
	Location       string   `json:"location,omitempty"`
	StartDate      string   `json:"start_date,omitempty"`
	EndDate        string   `json:"end_date,omitempty"`
}

// DroneRequirements describes what a mission needs from a drone
type DroneRequirements struct {
	Capabilities []string `json:"capabilities"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
}

// MatchPilot picks one eligible pilot for the given requirements: the
// first Available pilot in store order whose skill set is a superset of
// the required skills, whose location equals the required location when
// one is given, and whose availability window covers the date range when
// both dates parse. First-fit, no scoring; ties are broken by iteration
// order. Returns nil when no pilot qualifies.
func (s *Service) MatchPilot(req Requirements) (*ops.Pilot, error) {
	pilots, err := s.store.Pilots()
	if err != nil {
		return nil, fmt.Errorf("failed to load pilots: %w", err)
	}

	start, serr := ops.ParseDate(req.StartDate)
	end, eerr := ops.ParseDate(req.EndDate)
	checkWindow := serr == nil && eerr == nil

	for i := range pilots {
		p := &pilots[i]
		if p.Status != ops.PilotAvailable {
			continue
		}
		if !p.HasSkills(req.Skills) {
			continue
		}
		if len(req.Certifications) > 0 && !p.HasCertifications(req.Certifications) {
			continue
		}
		if req.Location != "" && p.Location != req.Location {
			continue
		}
		if checkWindow && !p.AvailableFor(start, end) {
			continue
		}
		return p, nil
	}
	return nil, nil
}

// MatchDrone picks the first Available drone in store order whose
// capability set covers the requirements, matching location when one is
// given and skipping drones due for maintenance on or before the start
// date when it parses. Returns nil when no drone qualifies.
func (s *Service) MatchDrone(req DroneRequirements) (*ops.Drone, error) {
	drones, err := s.store.Drones()
	if err != nil {
		return nil, fmt.Errorf("failed to load drones: %w", err)
	}

	start, serr := ops.ParseDate(req.StartDate)
	checkDate := serr == nil

	for i := range drones {
		d := &drones[i]
		if d.Status != ops.DroneAvailable {
			continue
		}
		if !d.HasCapabilities(req.Capabilities) {
			continue
		}
		if req.Location != "" && d.Location != req.Location {
			continue
		}
		if checkDate && !d.AvailableOn(start) {
			continue
		}
		return d, nil
	}
	return nil, nil
}

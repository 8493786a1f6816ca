// Package conflict scans the record store for scheduling problems:
// double-booked pilots, skill mismatches on assigned missions, and drones
// held in maintenance while still assigned. All checks are read-only over
// the current snapshot; nothing is auto-resolved.
package conflict

import (
	"fmt"
	"sort"
	"time"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/storage"
	"github.com/skyward/droneops/pkg/logger"
)

// Detector produces conflict reports from record store snapshots
type Detector struct {
	store  storage.Store
	logger *logger.Logger
}

// NewDetector creates a conflict detector
func NewDetector(store storage.Store, logger *logger.Logger) *Detector {
	return &Detector{
		store:  store,
		logger: logger.Named("conflict"),
	}
}

// Detect runs every check and aggregates the results into one report
func (d *Detector) Detect() ([]Conflict, error) {
	var report []Conflict

	bookings, err := d.DoubleBookings()
	if err != nil {
		return nil, err
	}
	report = append(report, bookings...)

	mismatches, err := d.SkillMismatches()
	if err != nil {
		return nil, err
	}
	report = append(report, mismatches...)

	maintenance, err := d.MaintenanceAssignments()
	if err != nil {
		return nil, err
	}
	report = append(report, maintenance...)

	d.logger.Debug("Conflict scan complete",
		logger.Int("double_bookings", len(bookings)),
		logger.Int("skill_mismatches", len(mismatches)),
		logger.Int("maintenance_assignments", len(maintenance)),
	)
	return report, nil
}

// booking is one mission's parsed date range for a pilot
type booking struct {
	missionID string
	start     time.Time
	end       time.Time
}

// DoubleBookings reports pilots assigned to missions whose date ranges
// overlap. Ranges are closed intervals: a mission ending the day another
// begins counts as a conflict. Missions with unparseable dates are
// silently skipped.
func (d *Detector) DoubleBookings() ([]Conflict, error) {
	missions, err := d.store.Missions()
	if err != nil {
		return nil, fmt.Errorf("failed to load missions: %w", err)
	}

	byPilot := make(map[string][]booking)
	var pilotOrder []string
	for _, m := range missions {
		if ops.IsUnassigned(m.AssignedPilot) {
			continue
		}
		start, err := ops.ParseDate(m.StartDate)
		if err != nil {
			continue
		}
		end, err := ops.ParseDate(m.EndDate)
		if err != nil {
			continue
		}
		if _, seen := byPilot[m.AssignedPilot]; !seen {
			pilotOrder = append(pilotOrder, m.AssignedPilot)
		}
		byPilot[m.AssignedPilot] = append(byPilot[m.AssignedPilot], booking{
			missionID: m.ID,
			start:     start,
			end:       end,
		})
	}

	var conflicts []Conflict
	for _, pilotID := range pilotOrder {
		bookings := byPilot[pilotID]
		if len(bookings) < 2 {
			continue
		}

		sort.SliceStable(bookings, func(i, j int) bool {
			return bookings[i].start.Before(bookings[j].start)
		})

		// After sorting by start, any pairwise overlap among a pilot's
		// missions shows up at some adjacent step, so an adjacent sweep
		// is sufficient.
		for i := 0; i < len(bookings)-1; i++ {
			current, next := bookings[i], bookings[i+1]
			if !current.end.Before(next.start) {
				conflicts = append(conflicts, Conflict{
					Kind:         KindDoubleBooking,
					PilotID:      pilotID,
					MissionIDs:   []string{current.missionID, next.missionID},
					OverlapStart: next.start.Format(ops.DateLayout),
					OverlapEnd:   current.end.Format(ops.DateLayout),
					Detail: fmt.Sprintf("pilot %s is booked on %s and %s from %s to %s",
						pilotID, current.missionID, next.missionID,
						next.start.Format(ops.DateLayout), current.end.Format(ops.DateLayout)),
				})
			}
		}
	}
	return conflicts, nil
}

// SkillMismatches reports missions whose assigned pilot lacks one or more
// required skills. Missions whose assigned pilot no longer exists on the
// roster are silently skipped.
func (d *Detector) SkillMismatches() ([]Conflict, error) {
	missions, err := d.store.Missions()
	if err != nil {
		return nil, fmt.Errorf("failed to load missions: %w", err)
	}
	pilots, err := d.store.Pilots()
	if err != nil {
		return nil, fmt.Errorf("failed to load pilots: %w", err)
	}

	pilotsByID := make(map[string]ops.Pilot, len(pilots))
	for _, p := range pilots {
		pilotsByID[p.ID] = p
	}

	var conflicts []Conflict
	for _, m := range missions {
		if ops.IsUnassigned(m.AssignedPilot) {
			continue
		}
		pilot, ok := pilotsByID[m.AssignedPilot]
		if !ok {
			continue
		}

		var missing []string
		for _, skill := range m.RequiredSkills {
			if !pilot.HasSkills([]string{skill}) {
				missing = append(missing, skill)
			}
		}
		if len(missing) > 0 {
			conflicts = append(conflicts, Conflict{
				Kind:          KindSkillMismatch,
				PilotID:       pilot.ID,
				MissionIDs:    []string{m.ID},
				MissingSkills: missing,
				Detail: fmt.Sprintf("pilot %s on mission %s is missing skills: %s",
					pilot.ID, m.ID, ops.JoinTags(missing)),
			})
		}
	}
	return conflicts, nil
}

// MaintenanceAssignments reports drones that are in maintenance while
// still holding an assignment reference
func (d *Detector) MaintenanceAssignments() ([]Conflict, error) {
	drones, err := d.store.Drones()
	if err != nil {
		return nil, fmt.Errorf("failed to load drones: %w", err)
	}

	var conflicts []Conflict
	for _, drone := range drones {
		if drone.Status == ops.DroneMaintenance && !ops.IsUnassigned(drone.CurrentAssignment) {
			conflicts = append(conflicts, Conflict{
				Kind:       KindMaintenanceAssignment,
				DroneID:    drone.ID,
				MissionIDs: []string{drone.CurrentAssignment},
				Detail: fmt.Sprintf("drone %s is in maintenance but assigned to %s",
					drone.ID, drone.CurrentAssignment),
			})
		}
	}
	return conflicts, nil
}

// SuggestReassignment proposes an alternative drone for a maintenance
// conflict: the first Available drone in store order. Returns nil when no
// alternative exists or the conflict kind has no suggestion.
func (d *Detector) SuggestReassignment(c Conflict) (*ops.Drone, error) {
	if c.Kind != KindMaintenanceAssignment {
		return nil, nil
	}

	drones, err := d.store.Drones()
	if err != nil {
		return nil, fmt.Errorf("failed to load drones: %w", err)
	}
	for i := range drones {
		if drones[i].Status == ops.DroneAvailable {
			return &drones[i], nil
		}
	}
	return nil, nil
}

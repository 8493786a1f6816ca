package ops

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the external representation of all date fields
const DateLayout = "2006-01-02"

// ErrDateOrder is returned when a mission's start date falls after its end
// date
var ErrDateOrder = errors.New("mission start date is after end date")

// PilotStatus is the closed set of pilot states
type PilotStatus string

const (
	PilotAvailable   PilotStatus = "Available"
	PilotAssigned    PilotStatus = "Assigned"
	PilotOnLeave     PilotStatus = "On Leave"
	PilotUnavailable PilotStatus = "Unavailable"
)

// ParsePilotStatus converts external text into a PilotStatus, rejecting
// anything outside the closed set
func ParsePilotStatus(s string) (PilotStatus, error) {
	switch PilotStatus(strings.TrimSpace(s)) {
	case PilotAvailable:
		return PilotAvailable, nil
	case PilotAssigned:
		return PilotAssigned, nil
	case PilotOnLeave:
		return PilotOnLeave, nil
	case PilotUnavailable:
		return PilotUnavailable, nil
	default:
		return "", fmt.Errorf("unknown pilot status: %q", s)
	}
}

// DroneStatus is the closed set of drone states
type DroneStatus string

const (
	DroneAvailable   DroneStatus = "Available"
	DroneDeployed    DroneStatus = "Deployed"
	DroneMaintenance DroneStatus = "Maintenance"
	DroneInactive    DroneStatus = "Inactive"
)

// ParseDroneStatus converts external text into a DroneStatus
func ParseDroneStatus(s string) (DroneStatus, error) {
	switch DroneStatus(strings.TrimSpace(s)) {
	case DroneAvailable:
		return DroneAvailable, nil
	case DroneDeployed:
		return DroneDeployed, nil
	case DroneMaintenance:
		return DroneMaintenance, nil
	case DroneInactive:
		return DroneInactive, nil
	default:
		return "", fmt.Errorf("unknown drone status: %q", s)
	}
}

// MissionStatus is the closed set of mission states
type MissionStatus string

const (
	MissionPlanning  MissionStatus = "Planning"
	MissionActive    MissionStatus = "Active"
	MissionCompleted MissionStatus = "Completed"
	MissionCancelled MissionStatus = "Cancelled"
)

// ParseMissionStatus converts external text into a MissionStatus
func ParseMissionStatus(s string) (MissionStatus, error) {
	switch MissionStatus(strings.TrimSpace(s)) {
	case MissionPlanning:
		return MissionPlanning, nil
	case MissionActive:
		return MissionActive, nil
	case MissionCompleted:
		return MissionCompleted, nil
	case MissionCancelled:
		return MissionCancelled, nil
	default:
		return "", fmt.Errorf("unknown mission status: %q", s)
	}
}

// Priority is the closed set of mission priorities
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// ParsePriority converts external text into a Priority
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.TrimSpace(s)) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityCritical:
		return PriorityCritical, nil
	default:
		return "", fmt.Errorf("unknown priority: %q", s)
	}
}

// Pilot represents a drone pilot on the roster
type Pilot struct {
	ID                string      `json:"pilot_id"`
	Name              string      `json:"name"`
	Skills            []string    `json:"skills"`
	Certifications    []string    `json:"certifications"`
	ExperienceYears   int         `json:"experience_years"`
	Location          string      `json:"location"`
	Status            PilotStatus `json:"status"`
	CurrentAssignment string      `json:"current_assignment,omitempty"`
	AvailabilityStart string      `json:"availability_start,omitempty"`
	AvailabilityEnd   string      `json:"availability_end,omitempty"`
	ContactEmail      string      `json:"contact_email,omitempty"`
}

// HasSkills reports whether the pilot has every required skill. Matching is
// verbatim and case-sensitive.
func (p *Pilot) HasSkills(required []string) bool {
	return containsAll(p.Skills, required)
}

// HasCertifications reports whether the pilot holds every required
// certification
func (p *Pilot) HasCertifications(required []string) bool {
	return containsAll(p.Certifications, required)
}

// AvailableFor reports whether the pilot's availability window covers the
// given date range. Pilots without a window are treated as always available.
func (p *Pilot) AvailableFor(start, end time.Time) bool {
	if p.Status != PilotAvailable {
		return false
	}
	if p.AvailabilityStart != "" {
		ws, err := ParseDate(p.AvailabilityStart)
		if err != nil || start.Before(ws) {
			return false
		}
	}
	if p.AvailabilityEnd != "" {
		we, err := ParseDate(p.AvailabilityEnd)
		if err != nil || end.After(we) {
			return false
		}
	}
	return true
}

// Drone represents a drone in the fleet inventory
type Drone struct {
	ID                string      `json:"drone_id"`
	Model             string      `json:"model"`
	Capabilities      []string    `json:"capabilities"`
	MaxRangeKM        float64     `json:"max_range_km"`
	PayloadCapacityKG float64     `json:"payload_capacity_kg"`
	Location          string      `json:"location"`
	Status            DroneStatus `json:"status"`
	CurrentAssignment string      `json:"current_assignment,omitempty"`
	MaintenanceDue    string      `json:"maintenance_due_date,omitempty"`
	LastMaintenance   string      `json:"last_maintenance,omitempty"`
	FlightHours       int         `json:"flight_hours"`
}

// HasCapabilities reports whether the drone has every required capability
func (d *Drone) HasCapabilities(required []string) bool {
	return containsAll(d.Capabilities, required)
}

// AvailableOn reports whether the drone can fly on the given date, meaning
// it is Available and not yet due for maintenance
func (d *Drone) AvailableOn(date time.Time) bool {
	if d.Status != DroneAvailable {
		return false
	}
	if d.MaintenanceDue == "" {
		return true
	}
	due, err := ParseDate(d.MaintenanceDue)
	if err != nil {
		return true
	}
	return due.After(date)
}

// Mission represents a client mission
type Mission struct {
	ID             string        `json:"mission_id"`
	ClientName     string        `json:"client_name"`
	Location       string        `json:"location"`
	RequiredSkills []string      `json:"required_skills"`
	RequiredCerts  []string      `json:"required_certifications"`
	StartDate      string        `json:"start_date"`
	EndDate        string        `json:"end_date"`
	Priority       Priority      `json:"priority"`
	Status         MissionStatus `json:"status"`
	AssignedPilot  string        `json:"assigned_pilot,omitempty"`
	AssignedDrone  string        `json:"assigned_drone,omitempty"`
	Description    string        `json:"description,omitempty"`
}

// ParseDate parses an ISO YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ValidateMissionDates rejects a mission date range whose start falls after
// its end. Empty or unparseable dates pass: the external store tolerates
// them and the conflict scans skip them.
func ValidateMissionDates(start, end string) error {
	s, err := ParseDate(start)
	if err != nil {
		return nil
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil
	}
	if s.After(e) {
		return fmt.Errorf("%w: %s > %s", ErrDateOrder, strings.TrimSpace(start), strings.TrimSpace(end))
	}
	return nil
}

// SplitTags splits a comma-separated tag field into trimmed tokens,
// dropping empties
func SplitTags(s string) []string {
	var tags []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			tags = append(tags, tok)
		}
	}
	return tags
}

// JoinTags joins tags back into the external comma-separated representation
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// IsUnassigned reports whether a cross-reference field holds one of the
// placeholder values the external store uses for "no assignment"
func IsUnassigned(ref string) bool {
	switch strings.TrimSpace(ref) {
	case "", "None", "nan":
		return true
	default:
		return false
	}
}

// containsAll reports whether every wanted tag appears verbatim in have.
// Tags are trimmed before comparison.
func containsAll(have, want []string) bool {
	for _, w := range want {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		found := false
		for _, h := range have {
			if strings.TrimSpace(h) == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

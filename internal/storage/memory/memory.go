// Package memory provides an in-memory Store implementation. It backs the
// engine's tests and any deployment that does not need records to survive
// a restart.
package memory

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/storage"
)

// Store is an in-memory record store. Records keep their insertion order.
type Store struct {
	mu       sync.RWMutex
	pilots   []ops.Pilot
	drones   []ops.Drone
	missions []ops.Mission
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{}
}

// Pilots returns a snapshot of the pilot roster in insertion order
func (s *Store) Pilots() ([]ops.Pilot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ops.Pilot, len(s.pilots))
	copy(out, s.pilots)
	return out, nil
}

// Drones returns a snapshot of the drone fleet in insertion order
func (s *Store) Drones() ([]ops.Drone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ops.Drone, len(s.drones))
	copy(out, s.drones)
	return out, nil
}

// Missions returns a snapshot of the mission table in insertion order
func (s *Store) Missions() ([]ops.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ops.Mission, len(s.missions))
	copy(out, s.missions)
	return out, nil
}

// GetPilot returns the pilot with the given identifier
func (s *Store) GetPilot(id string) (*ops.Pilot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.pilots {
		if s.pilots[i].ID == id {
			p := s.pilots[i]
			return &p, nil
		}
	}
	return nil, storage.ErrNotFound
}

// GetDrone returns the drone with the given identifier
func (s *Store) GetDrone(id string) (*ops.Drone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.drones {
		if s.drones[i].ID == id {
			d := s.drones[i]
			return &d, nil
		}
	}
	return nil, storage.ErrNotFound
}

// GetMission returns the mission with the given identifier
func (s *Store) GetMission(id string) (*ops.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.missions {
		if s.missions[i].ID == id {
			m := s.missions[i]
			return &m, nil
		}
	}
	return nil, storage.ErrNotFound
}

// UpdateField writes a single field of a single record
func (s *Store) UpdateField(collection storage.Collection, id, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch collection {
	case storage.CollectionPilots:
		if i := pilotIndex(s.pilots, id); i >= 0 {
			return setPilotField(&s.pilots[i], field, value)
		}
	case storage.CollectionDrones:
		if i := droneIndex(s.drones, id); i >= 0 {
			return setDroneField(&s.drones[i], field, value)
		}
	case storage.CollectionMissions:
		if i := missionIndex(s.missions, id); i >= 0 {
			return setMissionField(&s.missions[i], field, value)
		}
	default:
		return fmt.Errorf("unknown collection: %s", collection)
	}
	return storage.ErrNotFound
}

// ApplyUpdates applies a batch of field updates atomically. Updates are
// staged on record copies and committed only after every one succeeds, so a
// failure anywhere in the batch leaves the store unchanged.
func (s *Store) ApplyUpdates(updates []storage.FieldUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stagedPilots := make(map[int]ops.Pilot)
	stagedDrones := make(map[int]ops.Drone)
	stagedMissions := make(map[int]ops.Mission)

	for _, u := range updates {
		switch u.Collection {
		case storage.CollectionPilots:
			i := pilotIndex(s.pilots, u.ID)
			if i < 0 {
				return storage.ErrNotFound
			}
			rec, ok := stagedPilots[i]
			if !ok {
				rec = s.pilots[i]
			}
			if err := setPilotField(&rec, u.Field, u.Value); err != nil {
				return err
			}
			stagedPilots[i] = rec
		case storage.CollectionDrones:
			i := droneIndex(s.drones, u.ID)
			if i < 0 {
				return storage.ErrNotFound
			}
			rec, ok := stagedDrones[i]
			if !ok {
				rec = s.drones[i]
			}
			if err := setDroneField(&rec, u.Field, u.Value); err != nil {
				return err
			}
			stagedDrones[i] = rec
		case storage.CollectionMissions:
			i := missionIndex(s.missions, u.ID)
			if i < 0 {
				return storage.ErrNotFound
			}
			rec, ok := stagedMissions[i]
			if !ok {
				rec = s.missions[i]
			}
			if err := setMissionField(&rec, u.Field, u.Value); err != nil {
				return err
			}
			stagedMissions[i] = rec
		default:
			return fmt.Errorf("unknown collection: %s", u.Collection)
		}
	}

	for i, rec := range stagedPilots {
		s.pilots[i] = rec
	}
	for i, rec := range stagedDrones {
		s.drones[i] = rec
	}
	for i, rec := range stagedMissions {
		s.missions[i] = rec
	}
	return nil
}

func pilotIndex(pilots []ops.Pilot, id string) int {
	for i := range pilots {
		if pilots[i].ID == id {
			return i
		}
	}
	return -1
}

func droneIndex(drones []ops.Drone, id string) int {
	for i := range drones {
		if drones[i].ID == id {
			return i
		}
	}
	return -1
}

func missionIndex(missions []ops.Mission, id string) int {
	for i := range missions {
		if missions[i].ID == id {
			return i
		}
	}
	return -1
}

// AppendPilot adds a pilot record
func (s *Store) AppendPilot(p ops.Pilot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pilots = append(s.pilots, p)
	return nil
}

// AppendDrone adds a drone record
func (s *Store) AppendDrone(d ops.Drone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drones = append(s.drones, d)
	return nil
}

// AppendMission adds a mission record
func (s *Store) AppendMission(m ops.Mission) error {
	if err := ops.ValidateMissionDates(m.StartDate, m.EndDate); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missions = append(s.missions, m)
	return nil
}

// Close is a no-op for the in-memory store
func (s *Store) Close() error {
	return nil
}

func setPilotField(p *ops.Pilot, field, value string) error {
	switch field {
	case "name":
		p.Name = value
	case "skills":
		p.Skills = ops.SplitTags(value)
	case "certifications":
		p.Certifications = ops.SplitTags(value)
	case "experience_years":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid experience_years: %w", err)
		}
		p.ExperienceYears = n
	case "location":
		p.Location = value
	case "status":
		st, err := ops.ParsePilotStatus(value)
		if err != nil {
			return err
		}
		p.Status = st
	case "current_assignment":
		p.CurrentAssignment = value
	case "availability_start":
		p.AvailabilityStart = value
	case "availability_end":
		p.AvailabilityEnd = value
	case "contact_email":
		p.ContactEmail = value
	default:
		return fmt.Errorf("%w: pilots.%s", storage.ErrUnknownField, field)
	}
	return nil
}

func setDroneField(d *ops.Drone, field, value string) error {
	switch field {
	case "model":
		d.Model = value
	case "capabilities":
		d.Capabilities = ops.SplitTags(value)
	case "max_range_km":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid max_range_km: %w", err)
		}
		d.MaxRangeKM = f
	case "payload_capacity_kg":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid payload_capacity_kg: %w", err)
		}
		d.PayloadCapacityKG = f
	case "location":
		d.Location = value
	case "status":
		st, err := ops.ParseDroneStatus(value)
		if err != nil {
			return err
		}
		d.Status = st
	case "current_assignment":
		d.CurrentAssignment = value
	case "maintenance_due_date":
		d.MaintenanceDue = value
	case "last_maintenance":
		d.LastMaintenance = value
	case "flight_hours":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid flight_hours: %w", err)
		}
		d.FlightHours = n
	default:
		return fmt.Errorf("%w: drones.%s", storage.ErrUnknownField, field)
	}
	return nil
}

func setMissionField(m *ops.Mission, field, value string) error {
	switch field {
	case "client_name":
		m.ClientName = value
	case "location":
		m.Location = value
	case "required_skills":
		m.RequiredSkills = ops.SplitTags(value)
	case "required_certifications":
		m.RequiredCerts = ops.SplitTags(value)
	case "start_date":
		if err := ops.ValidateMissionDates(value, m.EndDate); err != nil {
			return err
		}
		m.StartDate = value
	case "end_date":
		if err := ops.ValidateMissionDates(m.StartDate, value); err != nil {
			return err
		}
		m.EndDate = value
	case "priority":
		p, err := ops.ParsePriority(value)
		if err != nil {
			return err
		}
		m.Priority = p
	case "status":
		st, err := ops.ParseMissionStatus(value)
		if err != nil {
			return err
		}
		m.Status = st
	case "assigned_pilot":
		m.AssignedPilot = value
	case "assigned_drone":
		m.AssignedDrone = value
	case "description":
		m.Description = value
	default:
		return fmt.Errorf("%w: missions.%s", storage.ErrUnknownField, field)
	}
	return nil
}

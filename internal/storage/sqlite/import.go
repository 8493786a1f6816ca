package sqlite

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/storage"
	"github.com/skyward/droneops/pkg/logger"
)

// ImportCSV seeds a collection from a CSV export. The first row must be a
// header using the collection's schema field names. Returns the number of
// records imported; rows that fail validation abort the import.
func (s *Store) ImportCSV(collection storage.Collection, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	count := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read CSV row: %w", err)
		}

		record := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				record[col] = row[i]
			}
		}

		switch collection {
		case storage.CollectionPilots:
			p, err := pilotFromRecord(record)
			if err != nil {
				return count, err
			}
			if err := s.AppendPilot(*p); err != nil {
				return count, err
			}
		case storage.CollectionDrones:
			d, err := droneFromRecord(record)
			if err != nil {
				return count, err
			}
			if err := s.AppendDrone(*d); err != nil {
				return count, err
			}
		case storage.CollectionMissions:
			m, err := missionFromRecord(record)
			if err != nil {
				return count, err
			}
			if err := s.AppendMission(*m); err != nil {
				return count, err
			}
		default:
			return count, fmt.Errorf("unknown collection: %s", collection)
		}
		count++
	}

	s.logger.Info("Imported CSV records",
		logger.String("collection", string(collection)),
		logger.String("path", path),
		logger.Int("count", count),
	)
	return count, nil
}

func pilotFromRecord(r map[string]string) (*ops.Pilot, error) {
	if r["pilot_id"] == "" {
		return nil, fmt.Errorf("pilot record missing pilot_id")
	}
	status, err := ops.ParsePilotStatus(r["status"])
	if err != nil {
		return nil, fmt.Errorf("pilot %s: %w", r["pilot_id"], err)
	}
	return &ops.Pilot{
		ID:                r["pilot_id"],
		Name:              r["name"],
		Skills:            ops.SplitTags(r["skills"]),
		Certifications:    ops.SplitTags(r["certifications"]),
		ExperienceYears:   atoiOrZero(r["experience_years"]),
		Location:          r["location"],
		Status:            status,
		CurrentAssignment: r["current_assignment"],
		AvailabilityStart: r["availability_start"],
		AvailabilityEnd:   r["availability_end"],
		ContactEmail:      r["contact_email"],
	}, nil
}

func droneFromRecord(r map[string]string) (*ops.Drone, error) {
	if r["drone_id"] == "" {
		return nil, fmt.Errorf("drone record missing drone_id")
	}
	status, err := ops.ParseDroneStatus(r["status"])
	if err != nil {
		return nil, fmt.Errorf("drone %s: %w", r["drone_id"], err)
	}
	return &ops.Drone{
		ID:                r["drone_id"],
		Model:             r["model"],
		Capabilities:      ops.SplitTags(r["capabilities"]),
		MaxRangeKM:        atofOrZero(r["max_range_km"]),
		PayloadCapacityKG: atofOrZero(r["payload_capacity_kg"]),
		Location:          r["location"],
		Status:            status,
		CurrentAssignment: r["current_assignment"],
		MaintenanceDue:    r["maintenance_due_date"],
		LastMaintenance:   r["last_maintenance"],
		FlightHours:       atoiOrZero(r["flight_hours"]),
	}, nil
}

func missionFromRecord(r map[string]string) (*ops.Mission, error) {
	if r["mission_id"] == "" {
		return nil, fmt.Errorf("mission record missing mission_id")
	}
	priority, err := ops.ParsePriority(r["priority"])
	if err != nil {
		return nil, fmt.Errorf("mission %s: %w", r["mission_id"], err)
	}
	status, err := ops.ParseMissionStatus(r["status"])
	if err != nil {
		return nil, fmt.Errorf("mission %s: %w", r["mission_id"], err)
	}
	return &ops.Mission{
		ID:             r["mission_id"],
		ClientName:     r["client_name"],
		Location:       r["location"],
		RequiredSkills: ops.SplitTags(r["required_skills"]),
		RequiredCerts:  ops.SplitTags(r["required_certifications"]),
		StartDate:      r["start_date"],
		EndDate:        r["end_date"],
		Priority:       priority,
		Status:         status,
		AssignedPilot:  r["assigned_pilot"],
		AssignedDrone:  r["assigned_drone"],
		Description:    r["description"],
	}, nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atofOrZero(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

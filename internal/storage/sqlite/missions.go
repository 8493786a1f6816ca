package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/storage"
)

const missionColumns = `mission_id, client_name, location, required_skills,
	required_certifications, start_date, end_date, priority, status,
	assigned_pilot, assigned_drone, description`

// Missions returns all mission records in table order
func (s *Store) Missions() ([]ops.Mission, error) {
	rows, err := s.db.Query(`SELECT ` + missionColumns + ` FROM missions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query missions: %w", err)
	}
	defer rows.Close()

	return scanMissionRows(rows)
}

// GetMission returns the mission with the given identifier
func (s *Store) GetMission(id string) (*ops.Mission, error) {
	rows, err := s.db.Query(`SELECT `+missionColumns+` FROM missions WHERE mission_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query mission: %w", err)
	}
	defer rows.Close()

	missions, err := scanMissionRows(rows)
	if err != nil {
		return nil, err
	}
	if len(missions) == 0 {
		return nil, storage.ErrNotFound
	}
	return &missions[0], nil
}

// AppendMission inserts a new mission record
func (s *Store) AppendMission(m ops.Mission) error {
	if _, err := ops.ParseMissionStatus(string(m.Status)); err != nil {
		return err
	}
	if _, err := ops.ParsePriority(string(m.Priority)); err != nil {
		return err
	}
	if err := ops.ValidateMissionDates(m.StartDate, m.EndDate); err != nil {
		return err
	}

	_, err := s.db.Exec(
		`INSERT INTO missions (`+missionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.ClientName,
		m.Location,
		ops.JoinTags(m.RequiredSkills),
		ops.JoinTags(m.RequiredCerts),
		m.StartDate,
		m.EndDate,
		string(m.Priority),
		string(m.Status),
		m.AssignedPilot,
		m.AssignedDrone,
		m.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert mission: %w", err)
	}
	return nil
}

// scanMissionRows scans database rows into Mission structs
func scanMissionRows(rows *sql.Rows) ([]ops.Mission, error) {
	var missions []ops.Mission
	for rows.Next() {
		var m ops.Mission
		var skills, certs, priority, status string

		if err := rows.Scan(
			&m.ID,
			&m.ClientName,
			&m.Location,
			&skills,
			&certs,
			&m.StartDate,
			&m.EndDate,
			&priority,
			&status,
			&m.AssignedPilot,
			&m.AssignedDrone,
			&m.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan mission: %w", err)
		}

		pr, err := ops.ParsePriority(priority)
		if err != nil {
			return nil, fmt.Errorf("mission %s: %w", m.ID, err)
		}
		st, err := ops.ParseMissionStatus(status)
		if err != nil {
			return nil, fmt.Errorf("mission %s: %w", m.ID, err)
		}
		m.Priority = pr
		m.Status = st
		m.RequiredSkills = ops.SplitTags(skills)
		m.RequiredCerts = ops.SplitTags(certs)

		missions = append(missions, m)
	}
	return missions, rows.Err()
}

package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/storage"
)

const pilotColumns = `pilot_id, name, skills, certifications, experience_years,
	location, status, current_assignment, availability_start, availability_end,
	contact_email`

// Pilots returns all pilot records in table order
func (s *Store) Pilots() ([]ops.Pilot, error) {
	rows, err := s.db.Query(`SELECT ` + pilotColumns + ` FROM pilots ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pilots: %w", err)
	}
	defer rows.Close()

	return scanPilotRows(rows)
}

// GetPilot returns the pilot with the given identifier
func (s *Store) GetPilot(id string) (*ops.Pilot, error) {
	rows, err := s.db.Query(`SELECT `+pilotColumns+` FROM pilots WHERE pilot_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query pilot: %w", err)
	}
	defer rows.Close()

	pilots, err := scanPilotRows(rows)
	if err != nil {
		return nil, err
	}
	if len(pilots) == 0 {
		return nil, storage.ErrNotFound
	}
	return &pilots[0], nil
}

// AppendPilot inserts a new pilot record
func (s *Store) AppendPilot(p ops.Pilot) error {
	if _, err := ops.ParsePilotStatus(string(p.Status)); err != nil {
		return err
	}

	_, err := s.db.Exec(
		`INSERT INTO pilots (`+pilotColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.Name,
		ops.JoinTags(p.Skills),
		ops.JoinTags(p.Certifications),
		p.ExperienceYears,
		p.Location,
		string(p.Status),
		p.CurrentAssignment,
		p.AvailabilityStart,
		p.AvailabilityEnd,
		p.ContactEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to insert pilot: %w", err)
	}
	return nil
}

// scanPilotRows scans database rows into Pilot structs
func scanPilotRows(rows *sql.Rows) ([]ops.Pilot, error) {
	var pilots []ops.Pilot
	for rows.Next() {
		var p ops.Pilot
		var skills, certs, status string

		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&skills,
			&certs,
			&p.ExperienceYears,
			&p.Location,
			&status,
			&p.CurrentAssignment,
			&p.AvailabilityStart,
			&p.AvailabilityEnd,
			&p.ContactEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pilot: %w", err)
		}

		st, err := ops.ParsePilotStatus(status)
		if err != nil {
			return nil, fmt.Errorf("pilot %s: %w", p.ID, err)
		}
		p.Status = st
		p.Skills = ops.SplitTags(skills)
		p.Certifications = ops.SplitTags(certs)

		pilots = append(pilots, p)
	}
	return pilots, rows.Err()
}

package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/storage"
)

const droneColumns = `drone_id, model, capabilities, max_range_km,
	payload_capacity_kg, location, status, current_assignment,
	maintenance_due_date, last_maintenance, flight_hours`

// Drones returns all drone records in table order
func (s *Store) Drones() ([]ops.Drone, error) {
	rows, err := s.db.Query(`SELECT ` + droneColumns + ` FROM drones ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query drones: %w", err)
	}
	defer rows.Close()

	return scanDroneRows(rows)
}

// GetDrone returns the drone with the given identifier
func (s *Store) GetDrone(id string) (*ops.Drone, error) {
	rows, err := s.db.Query(`SELECT `+droneColumns+` FROM drones WHERE drone_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query drone: %w", err)
	}
	defer rows.Close()

	drones, err := scanDroneRows(rows)
	if err != nil {
		return nil, err
	}
	if len(drones) == 0 {
		return nil, storage.ErrNotFound
	}
	return &drones[0], nil
}

// AppendDrone inserts a new drone record
func (s *Store) AppendDrone(d ops.Drone) error {
	if _, err := ops.ParseDroneStatus(string(d.Status)); err != nil {
		return err
	}

	_, err := s.db.Exec(
		`INSERT INTO drones (`+droneColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID,
		d.Model,
		ops.JoinTags(d.Capabilities),
		d.MaxRangeKM,
		d.PayloadCapacityKG,
		d.Location,
		string(d.Status),
		d.CurrentAssignment,
		d.MaintenanceDue,
		d.LastMaintenance,
		d.FlightHours,
	)
	if err != nil {
		return fmt.Errorf("failed to insert drone: %w", err)
	}
	return nil
}

// scanDroneRows scans database rows into Drone structs
func scanDroneRows(rows *sql.Rows) ([]ops.Drone, error) {
	var drones []ops.Drone
	for rows.Next() {
		var d ops.Drone
		var capabilities, status string

		if err := rows.Scan(
			&d.ID,
			&d.Model,
			&capabilities,
			&d.MaxRangeKM,
			&d.PayloadCapacityKG,
			&d.Location,
			&status,
			&d.CurrentAssignment,
			&d.MaintenanceDue,
			&d.LastMaintenance,
			&d.FlightHours,
		); err != nil {
			return nil, fmt.Errorf("failed to scan drone: %w", err)
		}

		st, err := ops.ParseDroneStatus(status)
		if err != nil {
			return nil, fmt.Errorf("drone %s: %w", d.ID, err)
		}
		d.Status = st
		d.Capabilities = ops.SplitTags(capabilities)

		drones = append(drones, d)
	}
	return drones, rows.Err()
}

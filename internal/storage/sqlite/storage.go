// Package sqlite implements the record store on SQLite. Records keep the
// external text representation: list fields are comma-joined, dates are
// ISO YYYY-MM-DD strings.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/storage"
	"github.com/skyward/droneops/pkg/logger"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed record store
type Store struct {
	db     *sql.DB
	logger *logger.Logger
}

// New opens (or creates) the database at path and initializes the schema
func New(path string, logger *logger.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database exists per connection, so the pool must not
	// grow past one
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{
		db:     db,
		logger: logger.Named("sqlite-store"),
	}

	if err := store.initDB(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initDB creates the record tables and indexes
func (s *Store) initDB() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS pilots (
			pilot_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			skills TEXT NOT NULL DEFAULT '',
			certifications TEXT NOT NULL DEFAULT '',
			experience_years INTEGER NOT NULL DEFAULT 0,
			location TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			current_assignment TEXT NOT NULL DEFAULT '',
			availability_start TEXT NOT NULL DEFAULT '',
			availability_end TEXT NOT NULL DEFAULT '',
			contact_email TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS drones (
			drone_id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			capabilities TEXT NOT NULL DEFAULT '',
			max_range_km REAL NOT NULL DEFAULT 0,
			payload_capacity_kg REAL NOT NULL DEFAULT 0,
			location TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			current_assignment TEXT NOT NULL DEFAULT '',
			maintenance_due_date TEXT NOT NULL DEFAULT '',
			last_maintenance TEXT NOT NULL DEFAULT '',
			flight_hours INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS missions (
			mission_id TEXT PRIMARY KEY,
			client_name TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			required_skills TEXT NOT NULL DEFAULT '',
			required_certifications TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL DEFAULT '',
			end_date TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL,
			status TEXT NOT NULL,
			assigned_pilot TEXT NOT NULL DEFAULT '',
			assigned_drone TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, tableSQL := range tables {
		if _, err := s.db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_pilots_status ON pilots(status)`,
		`CREATE INDEX IF NOT EXISTS idx_pilots_location ON pilots(location)`,
		`CREATE INDEX IF NOT EXISTS idx_drones_status ON drones(status)`,
		`CREATE INDEX IF NOT EXISTS idx_missions_status ON missions(status)`,
		`CREATE INDEX IF NOT EXISTS idx_missions_assigned_pilot ON missions(assigned_pilot)`,
	}

	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// columns that UpdateField may target, per collection. Values are
// validated before the write where the schema constrains them.
var updatableColumns = map[storage.Collection]map[string]bool{
	storage.CollectionPilots: {
		"name": true, "skills": true, "certifications": true,
		"experience_years": true, "location": true, "status": true,
		"current_assignment": true, "availability_start": true,
		"availability_end": true, "contact_email": true,
	},
	storage.CollectionDrones: {
		"model": true, "capabilities": true, "max_range_km": true,
		"payload_capacity_kg": true, "location": true, "status": true,
		"current_assignment": true, "maintenance_due_date": true,
		"last_maintenance": true, "flight_hours": true,
	},
	storage.CollectionMissions: {
		"client_name": true, "location": true, "required_skills": true,
		"required_certifications": true, "start_date": true, "end_date": true,
		"priority": true, "status": true, "assigned_pilot": true,
		"assigned_drone": true, "description": true,
	},
}

var idColumns = map[storage.Collection]string{
	storage.CollectionPilots:   "pilot_id",
	storage.CollectionDrones:   "drone_id",
	storage.CollectionMissions: "mission_id",
}

// execer is the slice of database/sql shared by *sql.DB and *sql.Tx that
// field updates need
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// UpdateField writes a single field of a single record
func (s *Store) UpdateField(collection storage.Collection, id, field, value string) error {
	return applyFieldUpdate(s.db, storage.FieldUpdate{
		Collection: collection,
		ID:         id,
		Field:      field,
		Value:      value,
	})
}

// ApplyUpdates applies a batch of field updates in one transaction: either
// every update lands or none do
func (s *Store) ApplyUpdates(updates []storage.FieldUpdate) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, u := range updates {
		if err := applyFieldUpdate(tx, u); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit updates: %w", err)
	}

	s.logger.Debug("Applied update batch", logger.Int("updates", len(updates)))
	return nil
}

func applyFieldUpdate(ex execer, u storage.FieldUpdate) error {
	cols, ok := updatableColumns[u.Collection]
	if !ok {
		return fmt.Errorf("unknown collection: %s", u.Collection)
	}
	if !cols[u.Field] {
		return fmt.Errorf("%w: %s.%s", storage.ErrUnknownField, u.Collection, u.Field)
	}

	if err := validateFieldValue(u.Collection, u.Field, u.Value); err != nil {
		return err
	}
	if err := validateMissionDateUpdate(ex, u); err != nil {
		return err
	}

	// field is allowlisted above, safe to interpolate
	query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?", u.Collection, u.Field, idColumns[u.Collection])
	result, err := ex.Exec(query, u.Value, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update %s.%s: %w", u.Collection, u.Field, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// validateMissionDateUpdate enforces start <= end when a mission date field
// changes, reading the counterpart date through the same execer so batched
// updates see each other
func validateMissionDateUpdate(ex execer, u storage.FieldUpdate) error {
	if u.Collection != storage.CollectionMissions {
		return nil
	}
	if u.Field != "start_date" && u.Field != "end_date" {
		return nil
	}

	var start, end string
	err := ex.QueryRow(`SELECT start_date, end_date FROM missions WHERE mission_id = ?`, u.ID).Scan(&start, &end)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read mission dates: %w", err)
	}

	if u.Field == "start_date" {
		start = u.Value
	} else {
		end = u.Value
	}
	return ops.ValidateMissionDates(start, end)
}

// validateFieldValue rejects values outside the closed enum sets at the
// store boundary rather than letting arbitrary text through
func validateFieldValue(collection storage.Collection, field, value string) error {
	switch {
	case collection == storage.CollectionPilots && field == "status":
		_, err := ops.ParsePilotStatus(value)
		return err
	case collection == storage.CollectionDrones && field == "status":
		_, err := ops.ParseDroneStatus(value)
		return err
	case collection == storage.CollectionMissions && field == "status":
		_, err := ops.ParseMissionStatus(value)
		return err
	case collection == storage.CollectionMissions && field == "priority":
		_, err := ops.ParsePriority(value)
		return err
	}
	return nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

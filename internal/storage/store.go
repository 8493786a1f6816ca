// Package storage defines the record store boundary the coordination
// engine works against. Any tabular backend can satisfy it; field values
// in the external representation are plain text, list fields are
// comma-separated and dates are ISO YYYY-MM-DD.
package storage

import (
	"errors"

	"github.com/skyward/droneops/internal/ops"
)

// Collection identifies one of the three record tables
type Collection string

const (
	CollectionPilots   Collection = "pilots"
	CollectionDrones   Collection = "drones"
	CollectionMissions Collection = "missions"
)

var (
	// ErrNotFound is returned when an identifier is absent from a collection
	ErrNotFound = errors.New("record not found")
	// ErrUnknownField is returned when an update targets a field the
	// backing schema does not recognize
	ErrUnknownField = errors.New("unknown field")
)

// FieldUpdate addresses a single field write in a batch
type FieldUpdate struct {
	Collection Collection
	ID         string
	Field      string
	Value      string
}

// Store is the persistence boundary. Reads return full ordered snapshots;
// writes are field-level. Implementations must preserve insertion order
// across reads.
type Store interface {
	Pilots() ([]ops.Pilot, error)
	Drones() ([]ops.Drone, error)
	Missions() ([]ops.Mission, error)

	GetPilot(id string) (*ops.Pilot, error)
	GetDrone(id string) (*ops.Drone, error)
	GetMission(id string) (*ops.Mission, error)

	// UpdateField writes a single field of a single record, using the
	// external text representation for the value. It returns ErrNotFound
	// when the identifier is absent and ErrUnknownField when the field is
	// not part of the collection's schema.
	UpdateField(collection Collection, id, field, value string) error

	// ApplyUpdates applies a batch of field updates atomically: either
	// every update lands or none do. Updates within a batch see the
	// effect of earlier ones.
	ApplyUpdates(updates []FieldUpdate) error

	AppendPilot(p ops.Pilot) error
	AppendDrone(d ops.Drone) error
	AppendMission(m ops.Mission) error

	Close() error
}

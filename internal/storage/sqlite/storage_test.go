package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/storage"
	"github.com/skyward/droneops/pkg/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:", logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPilotRoundTrip(t *testing.T) {
	store := newTestStore(t)

	pilot := ops.Pilot{
		ID:              "P-001",
		Name:            "Asha Rao",
		Skills:          []string{"Mapping", "LiDAR"},
		Certifications:  []string{"DGCA-RPC"},
		ExperienceYears: 4,
		Location:        "Bangalore",
		Status:          ops.PilotAvailable,
		ContactEmail:    "asha@example.com",
	}
	require.NoError(t, store.AppendPilot(pilot))

	got, err := store.GetPilot("P-001")
	require.NoError(t, err)
	assert.Equal(t, pilot.Name, got.Name)
	assert.Equal(t, []string{"Mapping", "LiDAR"}, got.Skills)
	assert.Equal(t, ops.PilotAvailable, got.Status)
	assert.Equal(t, 4, got.ExperienceYears)
}

func TestMissionRoundTrip(t *testing.T) {
	store := newTestStore(t)

	mission := ops.Mission{
		ID:             "M-001",
		ClientName:     "AgriScan Ltd",
		Location:       "Mysore",
		RequiredSkills: []string{"Mapping"},
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-05",
		Priority:       ops.PriorityHigh,
		Status:         ops.MissionPlanning,
	}
	require.NoError(t, store.AppendMission(mission))

	got, err := store.GetMission("M-001")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", got.StartDate)
	assert.Equal(t, ops.PriorityHigh, got.Priority)
	assert.Equal(t, []string{"Mapping"}, got.RequiredSkills)
}

func TestAppendRejectsUnknownEnumValues(t *testing.T) {
	store := newTestStore(t)

	err := store.AppendPilot(ops.Pilot{ID: "P-001", Status: "Busy"})
	assert.Error(t, err)

	err = store.AppendMission(ops.Mission{ID: "M-001", Priority: "Urgent", Status: ops.MissionPlanning})
	assert.Error(t, err)
}

func TestStoreOrder(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"D-005", "D-001", "D-003"} {
		require.NoError(t, store.AppendDrone(ops.Drone{ID: id, Model: "X1", Status: ops.DroneAvailable}))
	}

	drones, err := store.Drones()
	require.NoError(t, err)
	require.Len(t, drones, 3)
	assert.Equal(t, "D-005", drones[0].ID)
	assert.Equal(t, "D-001", drones[1].ID)
	assert.Equal(t, "D-003", drones[2].ID)
}

func TestUpdateField(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AppendPilot(ops.Pilot{ID: "P-001", Name: "Asha Rao", Status: ops.PilotAvailable}))

	t.Run("updates allowed field", func(t *testing.T) {
		require.NoError(t, store.UpdateField(storage.CollectionPilots, "P-001", "status", "On Leave"))
		p, err := store.GetPilot("P-001")
		require.NoError(t, err)
		assert.Equal(t, ops.PilotOnLeave, p.Status)
	})

	t.Run("rejects invalid enum value", func(t *testing.T) {
		err := store.UpdateField(storage.CollectionPilots, "P-001", "status", "Resting")
		assert.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		err := store.UpdateField(storage.CollectionPilots, "P-001", "callsign", "x")
		assert.ErrorIs(t, err, storage.ErrUnknownField)
	})

	t.Run("missing record", func(t *testing.T) {
		err := store.UpdateField(storage.CollectionPilots, "P-404", "status", "Available")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestImportCSV(t *testing.T) {
	store := newTestStore(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "pilots.csv")
	csv := "pilot_id,name,skills,status,location\n" +
		"P-001,Asha Rao,\"Mapping, LiDAR\",Available,Bangalore\n" +
		"P-002,Dev Mehta,Thermal,On Leave,Pune\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	count, err := store.ImportCSV(storage.CollectionPilots, path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	pilots, err := store.Pilots()
	require.NoError(t, err)
	require.Len(t, pilots, 2)
	assert.Equal(t, []string{"Mapping", "LiDAR"}, pilots[0].Skills)
	assert.Equal(t, ops.PilotOnLeave, pilots[1].Status)
}

func TestImportCSVRejectsBadStatus(t *testing.T) {
	store := newTestStore(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "pilots.csv")
	csv := "pilot_id,name,status\nP-001,Asha Rao,Busy\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	_, err := store.ImportCSV(storage.CollectionPilots, path)
	assert.Error(t, err)
}

func TestApplyUpdates(t *testing.T) {
	seed := func(t *testing.T) *Store {
		store := newTestStore(t)
		require.NoError(t, store.AppendPilot(ops.Pilot{ID: "P-001", Name: "Asha Rao", Status: ops.PilotAvailable}))
		require.NoError(t, store.AppendMission(ops.Mission{
			ID: "M-001", Priority: ops.PriorityMedium, Status: ops.MissionPlanning,
		}))
		return store
	}

	t.Run("commits the whole batch", func(t *testing.T) {
		store := seed(t)
		err := store.ApplyUpdates([]storage.FieldUpdate{
			{Collection: storage.CollectionMissions, ID: "M-001", Field: "assigned_pilot", Value: "P-001"},
			{Collection: storage.CollectionPilots, ID: "P-001", Field: "status", Value: "Assigned"},
			{Collection: storage.CollectionPilots, ID: "P-001", Field: "current_assignment", Value: "M-001"},
		})
		require.NoError(t, err)

		m, err := store.GetMission("M-001")
		require.NoError(t, err)
		assert.Equal(t, "P-001", m.AssignedPilot)

		p, err := store.GetPilot("P-001")
		require.NoError(t, err)
		assert.Equal(t, ops.PilotAssigned, p.Status)
	})

	t.Run("rolls back on any failure", func(t *testing.T) {
		store := seed(t)
		err := store.ApplyUpdates([]storage.FieldUpdate{
			{Collection: storage.CollectionMissions, ID: "M-001", Field: "assigned_pilot", Value: "P-001"},
			{Collection: storage.CollectionPilots, ID: "P-404", Field: "status", Value: "Assigned"},
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)

		m, merr := store.GetMission("M-001")
		require.NoError(t, merr)
		assert.Empty(t, m.AssignedPilot)
	})

	t.Run("in-batch date updates see each other", func(t *testing.T) {
		store := seed(t)
		err := store.ApplyUpdates([]storage.FieldUpdate{
			{Collection: storage.CollectionMissions, ID: "M-001", Field: "start_date", Value: "2024-02-01"},
			{Collection: storage.CollectionMissions, ID: "M-001", Field: "end_date", Value: "2024-02-10"},
		})
		require.NoError(t, err)

		m, merr := store.GetMission("M-001")
		require.NoError(t, merr)
		assert.Equal(t, "2024-02-01", m.StartDate)
		assert.Equal(t, "2024-02-10", m.EndDate)
	})
}

func TestMissionDateOrder(t *testing.T) {
	t.Run("append rejects inverted range", func(t *testing.T) {
		store := newTestStore(t)
		err := store.AppendMission(ops.Mission{
			ID: "M-001", StartDate: "2024-03-10", EndDate: "2024-03-05",
			Priority: ops.PriorityMedium, Status: ops.MissionPlanning,
		})
		assert.ErrorIs(t, err, ops.ErrDateOrder)
	})

	t.Run("update cannot invert the range", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.AppendMission(ops.Mission{
			ID: "M-001", StartDate: "2024-03-01", EndDate: "2024-03-05",
			Priority: ops.PriorityMedium, Status: ops.MissionPlanning,
		}))

		err := store.UpdateField(storage.CollectionMissions, "M-001", "end_date", "2024-02-28")
		assert.ErrorIs(t, err, ops.ErrDateOrder)

		m, merr := store.GetMission("M-001")
		require.NoError(t, merr)
		assert.Equal(t, "2024-03-05", m.EndDate)
	})
}

package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/storage"
)

func TestPilotsPreserveInsertionOrder(t *testing.T) {
	store := New()
	for _, id := range []string{"P-003", "P-001", "P-002"} {
		require.NoError(t, store.AppendPilot(ops.Pilot{ID: id, Status: ops.PilotAvailable}))
	}

	pilots, err := store.Pilots()
	require.NoError(t, err)
	require.Len(t, pilots, 3)
	assert.Equal(t, "P-003", pilots[0].ID)
	assert.Equal(t, "P-001", pilots[1].ID)
	assert.Equal(t, "P-002", pilots[2].ID)
}

func TestGetPilotNotFound(t *testing.T) {
	store := New()
	_, err := store.GetPilot("P-404")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateField(t *testing.T) {
	newStore := func(t *testing.T) *Store {
		store := New()
		require.NoError(t, store.AppendPilot(ops.Pilot{ID: "P-001", Status: ops.PilotAvailable}))
		require.NoError(t, store.AppendMission(ops.Mission{
			ID: "M-001", Priority: ops.PriorityMedium, Status: ops.MissionPlanning,
		}))
		return store
	}

	t.Run("updates status", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.UpdateField(storage.CollectionPilots, "P-001", "status", "Assigned"))

		p, err := store.GetPilot("P-001")
		require.NoError(t, err)
		assert.Equal(t, ops.PilotAssigned, p.Status)
	})

	t.Run("rejects unknown status value", func(t *testing.T) {
		store := newStore(t)
		err := store.UpdateField(storage.CollectionPilots, "P-001", "status", "Busy")
		assert.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		store := newStore(t)
		err := store.UpdateField(storage.CollectionPilots, "P-001", "callsign", "x")
		assert.ErrorIs(t, err, storage.ErrUnknownField)
	})

	t.Run("missing record", func(t *testing.T) {
		store := newStore(t)
		err := store.UpdateField(storage.CollectionPilots, "P-404", "status", "Assigned")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("list field round-trip", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.UpdateField(storage.CollectionMissions, "M-001", "required_skills", "Mapping, LiDAR"))

		m, err := store.GetMission("M-001")
		require.NoError(t, err)
		assert.Equal(t, []string{"Mapping", "LiDAR"}, m.RequiredSkills)
	})

	t.Run("assignment reference", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.UpdateField(storage.CollectionMissions, "M-001", "assigned_pilot", "P-001"))

		m, err := store.GetMission("M-001")
		require.NoError(t, err)
		assert.Equal(t, "P-001", m.AssignedPilot)
	})
}

func TestSnapshotIsACopy(t *testing.T) {
	store := New()
	require.NoError(t, store.AppendDrone(ops.Drone{ID: "D-001", Status: ops.DroneAvailable}))

	drones, err := store.Drones()
	require.NoError(t, err)
	drones[0].Status = ops.DroneInactive

	fresh, err := store.GetDrone("D-001")
	require.NoError(t, err)
	assert.Equal(t, ops.DroneAvailable, fresh.Status)
}

func TestApplyUpdates(t *testing.T) {
	newStore := func(t *testing.T) *Store {
		store := New()
		require.NoError(t, store.AppendPilot(ops.Pilot{ID: "P-001", Status: ops.PilotAvailable}))
		require.NoError(t, store.AppendMission(ops.Mission{
			ID: "M-001", Priority: ops.PriorityMedium, Status: ops.MissionPlanning,
		}))
		return store
	}

	t.Run("applies the whole batch", func(t *testing.T) {
		store := newStore(t)
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
		assert.Equal(t, "M-001", p.CurrentAssignment)
	})

	t.Run("failure anywhere rolls back everything", func(t *testing.T) {
		store := newStore(t)
		err := store.ApplyUpdates([]storage.FieldUpdate{
			{Collection: storage.CollectionMissions, ID: "M-001", Field: "assigned_pilot", Value: "P-001"},
			{Collection: storage.CollectionPilots, ID: "P-404", Field: "status", Value: "Assigned"},
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)

		m, merr := store.GetMission("M-001")
		require.NoError(t, merr)
		assert.Empty(t, m.AssignedPilot)
	})

	t.Run("later updates see earlier ones", func(t *testing.T) {
		store := newStore(t)
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
		store := New()
		err := store.AppendMission(ops.Mission{
			ID: "M-001", StartDate: "2024-03-10", EndDate: "2024-03-05",
			Priority: ops.PriorityMedium, Status: ops.MissionPlanning,
		})
		assert.ErrorIs(t, err, ops.ErrDateOrder)
	})

	t.Run("update cannot invert the range", func(t *testing.T) {
		store := New()
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

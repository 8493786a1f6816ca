package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyward/droneops/internal/ops"
	"github.com/skyward/droneops/internal/storage/memory"
	"github.com/skyward/droneops/pkg/logger"
)

func seedPilots(t *testing.T, store *memory.Store) {
	t.Helper()
	pilots := []ops.Pilot{
		{ID: "P-001", Skills: []string{"Mapping"}, Location: "Bangalore", Status: ops.PilotAssigned},
		{ID: "P-002", Skills: []string{"Mapping", "LiDAR"}, Location: "Pune", Status: ops.PilotAvailable},
		{ID: "P-003", Skills: []string{"Mapping", "LiDAR"}, Location: "Bangalore", Status: ops.PilotAvailable},
		{ID: "P-004", Skills: []string{"Mapping", "LiDAR"}, Location: "Bangalore", Status: ops.PilotAvailable},
	}
	for _, p := range pilots {
		require.NoError(t, store.AppendPilot(p))
	}
}

func TestMatchPilotFirstFit(t *testing.T) {
	store := memory.New()
	seedPilots(t, store)
	svc := NewService(store, logger.NewNop())

	t.Run("first available superset wins", func(t *testing.T) {
		// P-001 is not Available, so the first eligible in store order
		// is P-002
		pilot, err := svc.MatchPilot(Requirements{Skills: []string{"Mapping", "LiDAR"}})
		require.NoError(t, err)
		require.NotNil(t, pilot)
		assert.Equal(t, "P-002", pilot.ID)
	})

	t.Run("location narrows the match", func(t *testing.T) {
		pilot, err := svc.MatchPilot(Requirements{
			Skills:   []string{"Mapping", "LiDAR"},
			Location: "Bangalore",
		})
		require.NoError(t, err)
		require.NotNil(t, pilot)
		// ties among equally qualified pilots break by iteration order
		assert.Equal(t, "P-003", pilot.ID)
	})

	t.Run("no eligible pilot returns nil", func(t *testing.T) {
		pilot, err := svc.MatchPilot(Requirements{Skills: []string{"Thermal"}})
		require.NoError(t, err)
		assert.Nil(t, pilot)
	})

	t.Run("certifications filter when given", func(t *testing.T) {
		pilot, err := svc.MatchPilot(Requirements{
			Skills:         []string{"Mapping"},
			Certifications: []string{"DGCA-RPC"},
		})
		require.NoError(t, err)
		assert.Nil(t, pilot)
	})
}

func TestMatchDrone(t *testing.T) {
	store := memory.New()
	drones := []ops.Drone{
		{ID: "D-001", Capabilities: []string{"Survey"}, Location: "Pune", Status: ops.DroneDeployed},
		{ID: "D-002", Capabilities: []string{"Survey"}, Location: "Pune", Status: ops.DroneAvailable},
		{ID: "D-003", Capabilities: []string{"Survey", "Night Ops"}, Location: "Bangalore", Status: ops.DroneAvailable},
	}
	for _, d := range drones {
		require.NoError(t, store.AppendDrone(d))
	}
	svc := NewService(store, logger.NewNop())

	t.Run("first fit by store order", func(t *testing.T) {
		drone, err := svc.MatchDrone(DroneRequirements{Capabilities: []string{"Survey"}})
		require.NoError(t, err)
		require.NotNil(t, drone)
		assert.Equal(t, "D-002", drone.ID)
	})

	t.Run("capability and location", func(t *testing.T) {
		drone, err := svc.MatchDrone(DroneRequirements{
			Capabilities: []string{"Night Ops"},
			Location:     "Bangalore",
		})
		require.NoError(t, err)
		require.NotNil(t, drone)
		assert.Equal(t, "D-003", drone.ID)
	})

	t.Run("none eligible", func(t *testing.T) {
		drone, err := svc.MatchDrone(DroneRequirements{Capabilities: []string{"Delivery"}})
		require.NoError(t, err)
		assert.Nil(t, drone)
	})
}

func TestMatchPilotAvailabilityWindow(t *testing.T) {
	store := memory.New()
	pilots := []ops.Pilot{
		{ID: "P-001", Skills: []string{"Mapping"}, Status: ops.PilotAvailable,
			AvailabilityStart: "2024-01-01", AvailabilityEnd: "2024-03-31"},
		{ID: "P-002", Skills: []string{"Mapping"}, Status: ops.PilotAvailable,
			AvailabilityStart: "2024-04-01", AvailabilityEnd: "2024-12-31"},
	}
	for _, p := range pilots {
		require.NoError(t, store.AppendPilot(p))
	}
	svc := NewService(store, logger.NewNop())

	t.Run("window must cover the date range", func(t *testing.T) {
		pilot, err := svc.MatchPilot(Requirements{
			Skills:    []string{"Mapping"},
			StartDate: "2024-04-10",
			EndDate:   "2024-04-15",
		})
		require.NoError(t, err)
		require.NotNil(t, pilot)
		assert.Equal(t, "P-002", pilot.ID)
	})

	t.Run("no dates skips the window check", func(t *testing.T) {
		pilot, err := svc.MatchPilot(Requirements{Skills: []string{"Mapping"}})
		require.NoError(t, err)
		require.NotNil(t, pilot)
		assert.Equal(t, "P-001", pilot.ID)
	})
}

func TestMatchDroneMaintenanceDue(t *testing.T) {
	store := memory.New()
	drones := []ops.Drone{
		{ID: "D-001", Capabilities: []string{"Survey"}, Status: ops.DroneAvailable, MaintenanceDue: "2024-04-05"},
		{ID: "D-002", Capabilities: []string{"Survey"}, Status: ops.DroneAvailable, MaintenanceDue: "2024-09-01"},
	}
	for _, d := range drones {
		require.NoError(t, store.AppendDrone(d))
	}
	svc := NewService(store, logger.NewNop())

	drone, err := svc.MatchDrone(DroneRequirements{
		Capabilities: []string{"Survey"},
		StartDate:    "2024-04-10",
	})
	require.NoError(t, err)
	require.NotNil(t, drone)
	assert.Equal(t, "D-002", drone.ID)
}

package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTags(t *testing.T) {
	t.Run("splits and trims", func(t *testing.T) {
		assert.Equal(t, []string{"Mapping", "LiDAR", "Thermal"}, SplitTags("Mapping, LiDAR ,Thermal"))
	})

	t.Run("drops empty tokens", func(t *testing.T) {
		assert.Equal(t, []string{"Mapping"}, SplitTags("Mapping,, ,"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, SplitTags(""))
	})
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "Mapping, LiDAR", JoinTags([]string{"Mapping", "LiDAR"}))
	assert.Equal(t, "", JoinTags(nil))
}

func TestIsUnassigned(t *testing.T) {
	for _, ref := range []string{"", "None", "nan", "  None  ", " "} {
		assert.True(t, IsUnassigned(ref), "ref %q", ref)
	}
	assert.False(t, IsUnassigned("M-001"))
	assert.False(t, IsUnassigned("none")) // placeholders are case-sensitive
}

func TestParsePilotStatus(t *testing.T) {
	t.Run("accepts known values", func(t *testing.T) {
		for _, s := range []string{"Available", "Assigned", "On Leave", "Unavailable"} {
			st, err := ParsePilotStatus(s)
			require.NoError(t, err)
			assert.Equal(t, PilotStatus(s), st)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := ParsePilotStatus("Busy")
		assert.Error(t, err)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		st, err := ParsePilotStatus(" Available ")
		require.NoError(t, err)
		assert.Equal(t, PilotAvailable, st)
	})
}

func TestParsePriority(t *testing.T) {
	_, err := ParsePriority("Urgent")
	assert.Error(t, err)

	p, err := ParsePriority("Critical")
	require.NoError(t, err)
	assert.Equal(t, PriorityCritical, p)
}

func TestPilotHasSkills(t *testing.T) {
	pilot := Pilot{Skills: []string{"Mapping", "LiDAR"}}

	assert.True(t, pilot.HasSkills([]string{"Mapping"}))
	assert.True(t, pilot.HasSkills([]string{"Mapping", "LiDAR"}))
	assert.True(t, pilot.HasSkills(nil))
	assert.False(t, pilot.HasSkills([]string{"Thermal"}))
	assert.False(t, pilot.HasSkills([]string{"mapping"}), "matching is case-sensitive")
}

func TestDroneHasCapabilities(t *testing.T) {
	drone := Drone{Capabilities: []string{"Survey", "Night Ops"}}

	assert.True(t, drone.HasCapabilities([]string{"Night Ops"}))
	assert.False(t, drone.HasCapabilities([]string{"Delivery"}))
}

func TestPilotAvailableFor(t *testing.T) {
	start, err := ParseDate("2024-03-10")
	require.NoError(t, err)
	end, err := ParseDate("2024-03-15")
	require.NoError(t, err)

	t.Run("within window", func(t *testing.T) {
		p := Pilot{Status: PilotAvailable, AvailabilityStart: "2024-03-01", AvailabilityEnd: "2024-03-31"}
		assert.True(t, p.AvailableFor(start, end))
	})

	t.Run("outside window", func(t *testing.T) {
		p := Pilot{Status: PilotAvailable, AvailabilityStart: "2024-03-12", AvailabilityEnd: "2024-03-31"}
		assert.False(t, p.AvailableFor(start, end))
	})

	t.Run("no window means always available", func(t *testing.T) {
		p := Pilot{Status: PilotAvailable}
		assert.True(t, p.AvailableFor(start, end))
	})

	t.Run("not available status", func(t *testing.T) {
		p := Pilot{Status: PilotOnLeave}
		assert.False(t, p.AvailableFor(start, end))
	})
}

func TestDroneAvailableOn(t *testing.T) {
	date, err := ParseDate("2024-06-01")
	require.NoError(t, err)

	assert.True(t, (&Drone{Status: DroneAvailable, MaintenanceDue: "2024-07-01"}).AvailableOn(date))
	assert.False(t, (&Drone{Status: DroneAvailable, MaintenanceDue: "2024-05-01"}).AvailableOn(date))
	assert.False(t, (&Drone{Status: DroneMaintenance}).AvailableOn(date))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", d.Format(DateLayout))

	_, err = ParseDate("05/01/2024")
	assert.Error(t, err)
}

func TestValidateMissionDates(t *testing.T) {
	assert.NoError(t, ValidateMissionDates("2024-01-01", "2024-01-05"))
	assert.NoError(t, ValidateMissionDates("2024-01-05", "2024-01-05"))

	err := ValidateMissionDates("2024-01-10", "2024-01-05")
	assert.ErrorIs(t, err, ErrDateOrder)

	t.Run("empty or unparseable dates pass", func(t *testing.T) {
		assert.NoError(t, ValidateMissionDates("", "2024-01-05"))
		assert.NoError(t, ValidateMissionDates("2024-01-10", ""))
		assert.NoError(t, ValidateMissionDates("soon", "later"))
	})
}

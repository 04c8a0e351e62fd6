package dashboard

import (
	"testing"
	"time"

	"github.com/bnema/rumble-cli/internal/application"
	"github.com/bnema/rumble-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 16, 12, 0, 0, 0, time.UTC)

func fixtureRobots() []domain.Robot {
	return []domain.Robot{
		{
			ID:               "RUMBLE-001",
			Name:             "Trash Collector Alpha",
			Status:           domain.RobotStatusActive,
			BatteryLevel:     87,
			Location:         &domain.Location{Lat: 42.026211, Lng: -93.646301},
			LastCollection:   time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
			TrashCollectedKg: 34.2,
			NextScheduled:    time.Date(2025, 1, 17, 8, 0, 0, 0, time.UTC),
			OwnerID:          "1",
		},
		{
			ID:               "RUMBLE-002",
			Name:             "Trash Collector Beta",
			Status:           domain.RobotStatusCharging,
			BatteryLevel:     22,
			Location:         &domain.Location{Lat: 42.024753, Lng: -93.644450},
			LastCollection:   time.Date(2025, 1, 16, 11, 15, 0, 0, time.UTC),
			TrashCollectedKg: 28.7,
			NextScheduled:    time.Date(2025, 1, 17, 13, 0, 0, 0, time.UTC),
			OwnerID:          "1",
		},
	}
}

func TestRenderDashboard(t *testing.T) {
	owned := fixtureRobots()
	shared := []domain.Robot{{
		ID:           "RUMBLE-004",
		Name:         "Trash Collector Delta",
		Status:       domain.RobotStatusIdle,
		BatteryLevel: 55,
		SharedBy:     "test@example.com",
	}}

	output, err := Render(
		&domain.User{ID: "1", Name: "Admin User", Email: "admin@rumble.com"},
		application.Dashboard{Owned: owned, Shared: shared, Stats: domain.ComputeStats(owned)},
		RenderOptions{Now: now},
	)
	require.NoError(t, err)

	assert.Contains(t, output, "RUMBLE Dashboard")
	assert.Contains(t, output, "signed in as Admin User <admin@rumble.com>")
	assert.Contains(t, output, "1 / 2")
	assert.Contains(t, output, "62.9 kg")
	assert.Contains(t, output, "My robots (2)")
	assert.Contains(t, output, "Trash Collector Alpha (RUMBLE-001)")
	assert.Contains(t, output, "87% (high)")
	assert.Contains(t, output, "22% (low)")
	assert.Contains(t, output, "Shared with me (1)")
	assert.Contains(t, output, "[shared]")
	assert.Contains(t, output, "shared by: test@example.com")
	assert.Contains(t, output, "location: unknown")
	assert.Contains(t, output, "map centre: 42.026211, -93.646301")
}

func TestRenderDashboardWithoutRobots(t *testing.T) {
	output, err := Render(nil, application.Dashboard{}, RenderOptions{Now: now})
	require.NoError(t, err)

	assert.Contains(t, output, "No robots assigned to this account.")
	assert.NotContains(t, output, "Shared with me")
	assert.Contains(t, output, "map centre: 42.030800, -93.631900")
}

func TestRenderDashboardCentresOnSelectedRobot(t *testing.T) {
	output, err := Render(nil, application.Dashboard{Owned: fixtureRobots()}, RenderOptions{Now: now, Selected: "RUMBLE-002"})
	require.NoError(t, err)

	assert.Contains(t, output, "map centre: 42.024753, -93.644450")
}

func TestRenderRobotTimes(t *testing.T) {
	output, err := RenderRobot(fixtureRobots()[0], RenderOptions{Now: now})
	require.NoError(t, err)

	assert.Contains(t, output, "Active")
	assert.Contains(t, output, "trash collected: 34.2 kg")
	assert.Contains(t, output, "last collection: 09:30 on 15 Jan (2 days ago)")
	assert.Contains(t, output, "next scheduled: 08:00 on 17 Jan (in 20 hours)")
	assert.NotContains(t, output, "shared by")
}

func TestRenderRobotWithoutSchedule(t *testing.T) {
	output, err := RenderRobot(domain.Robot{ID: "RUMBLE-009", Status: domain.RobotStatusIdle}, RenderOptions{Now: now})
	require.NoError(t, err)

	assert.Contains(t, output, "Unnamed robot (RUMBLE-009)")
	assert.Contains(t, output, "last collection: never")
	assert.Contains(t, output, "next scheduled: not scheduled")
}

func TestRenderRobots(t *testing.T) {
	output, err := RenderRobots(fixtureRobots(), RenderOptions{Now: now})
	require.NoError(t, err)
	assert.Contains(t, output, "robots: 2")
	assert.Contains(t, output, "RUMBLE-002")

	empty, err := RenderRobots(nil, RenderOptions{Now: now})
	require.NoError(t, err)
	assert.Contains(t, empty, "No robots to show.")
}

func TestRenderBatteryBarWidth(t *testing.T) {
	s := newStyles()

	assert.Equal(t, "[==========----------]", renderBatteryBar(50, 20, batteryColor("medium"), s))
	assert.Equal(t, "[====================]", renderBatteryBar(130, 20, batteryColor("high"), s))
	assert.Equal(t, "[--------------------]", renderBatteryBar(-5, 20, batteryColor("low"), s))
}

func TestRelative(t *testing.T) {
	assert.Equal(t, "1 minute ago", relative(10*time.Second, "ago"))
	assert.Equal(t, "45 minutes", relative(45*time.Minute, ""))
	assert.Equal(t, "1 hour", relative(time.Hour, ""))
	assert.Equal(t, "3 days ago", relative(50*time.Hour, "ago"))
}

package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/rumble-cli/internal/domain"
)

func steppedClock(start time.Time, steps ...time.Duration) func() time.Time {
	calls := 0
	return func() time.Time {
		at := start
		if calls > 0 && calls <= len(steps) {
			at = start.Add(steps[calls-1])
		}
		calls++
		return at
	}
}

func TestCommandSpinnerShowsConfirmedStatus(t *testing.T) {
	start := time.Date(2025, 1, 16, 12, 0, 0, 0, time.UTC)
	model := newCommandSpinnerModel("RUMBLE-001", "charge", nil, steppedClock(start, 1500*time.Millisecond))

	pending := model.View()
	assert.Contains(t, pending, "charge")
	assert.Contains(t, pending, "RUMBLE-001")

	updated, cmd := model.Update(commandResultMsg{robot: domain.Robot{ID: "RUMBLE-001", Status: domain.RobotStatusCharging}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	final, ok := updated.(commandSpinnerModel)
	require.True(t, ok)
	assert.Contains(t, final.View(), "RUMBLE-001 is now charging")
	assert.Contains(t, final.View(), "(1.5s)")
}

func TestCommandSpinnerShowsRefusalKind(t *testing.T) {
	start := time.Date(2025, 1, 16, 12, 0, 0, 0, time.UTC)
	model := newCommandSpinnerModel("RUMBLE-003", "start", nil, steppedClock(start, 20*time.Millisecond))

	refusal := domain.NewError(domain.KindPreconditionFailed, "send command", "HTTP 409: Robot is in maintenance")
	updated, _ := model.Update(commandResultMsg{err: refusal})

	final, ok := updated.(commandSpinnerModel)
	require.True(t, ok)
	assert.Contains(t, final.View(), "RUMBLE-003 refused start: precondition_failed")
	assert.NotContains(t, final.View(), "is now")
}

func TestRunCommandSpinnerReturnsSendResult(t *testing.T) {
	var output bytes.Buffer
	refusal := domain.NewError(domain.KindPreconditionFailed, "send command", "HTTP 409: Battery level too low to start operation")

	_, err := runCommandSpinner(context.Background(), &output, "RUMBLE-005", "start", time.Now,
		func(context.Context) (domain.Robot, error) {
			return domain.Robot{}, refusal
		})
	require.ErrorIs(t, err, domain.ErrPreconditionFailed)

	robot, err := runCommandSpinner(context.Background(), &output, "RUMBLE-005", "charge", time.Now,
		func(context.Context) (domain.Robot, error) {
			return domain.Robot{ID: "RUMBLE-005", Status: domain.RobotStatusCharging}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, domain.RobotStatusCharging, robot.Status)
}

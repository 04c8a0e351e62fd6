package devserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bnema/rumble-cli/internal/domain"
)

func TestLoadSeedDefaults(t *testing.T) {
	t.Parallel()

	seed, err := LoadSeed("")
	require.NoError(t, err)
	require.Len(t, seed.Users, 3)
	require.Len(t, seed.Robots, 6)
	assert.Equal(t, "admin@rumble.com", seed.Users[0].Email)
	assert.Equal(t, 246810, seed.Robots[5].PairingCode)
	assert.Empty(t, seed.Robots[5].Owner)
}

func TestLoadSeedFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `users:
  - id: "7"
    name: Grace
    email: grace@example.com
    username: grace
    password: hopper1
    robotId: 700001
robots:
  - id: RUMBLE-700
    name: Navy
    status: idle
    batteryLevel: 50
    owner: "7"
    pairingCode: 700001
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	seed, err := LoadSeed(path)
	require.NoError(t, err)

	backend := NewMemoryBackend()
	require.NoError(t, seed.Apply(context.Background(), backend, bcrypt.MinCost))

	user, err := backend.UserByEmail(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, "7", user.ID)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hopper1")))

	robot, err := backend.Robot(context.Background(), "RUMBLE-700")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("7"), robot.Robot.OwnerID)
	assert.Nil(t, robot.Robot.Location)
}

func TestLoadSeedErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users: [\n"), 0o600))
	_, err = LoadSeed(path)
	require.Error(t, err)
}

func TestSeedApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	seed, err := LoadSeed("")
	require.NoError(t, err)

	backend := NewMemoryBackend()
	require.NoError(t, seed.Apply(context.Background(), backend, bcrypt.MinCost))

	robot, err := backend.Robot(context.Background(), "RUMBLE-001")
	require.NoError(t, err)
	robot.Robot.Status = domain.RobotStatusIdle
	require.NoError(t, backend.SaveRobot(context.Background(), robot))

	require.NoError(t, seed.Apply(context.Background(), backend, bcrypt.MinCost))

	again, err := backend.Robot(context.Background(), "RUMBLE-001")
	require.NoError(t, err)
	assert.Equal(t, domain.RobotStatusIdle, again.Robot.Status)
}

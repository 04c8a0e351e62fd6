package devserver

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bnema/rumble-cli/internal/domain"
)

func openTestSQLite(t *testing.T) (*SQLiteBackend, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "rumble.db")
	backend, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return backend, path
}

func TestSQLiteBackendUsers(t *testing.T) {
	t.Parallel()

	backend, _ := openTestSQLite(t)
	ctx := context.Background()

	created, err := backend.CreateUser(ctx, UserRecord{Name: "Ada", Email: "ada@example.com", Username: "ada", PasswordHash: "hash", RobotID: 123456})
	require.NoError(t, err)
	assert.Equal(t, "1", created.ID)

	_, err = backend.CreateUser(ctx, UserRecord{Name: "Dup", Email: "ADA@example.com", Username: "dup", PasswordHash: "hash"})
	assert.ErrorIs(t, err, errConflict)

	byEmail, err := backend.UserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, created, byEmail)

	created.Name = "Ada L."
	require.NoError(t, backend.UpdateUser(ctx, created))
	byID, err := backend.UserByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", byID.Name)

	_, err = backend.UserByID(ctx, "99")
	assert.ErrorIs(t, err, errNotFound)

	users, err := backend.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSQLiteBackendSessionsCascadeOnUserDelete(t *testing.T) {
	t.Parallel()

	backend, _ := openTestSQLite(t)
	ctx := context.Background()

	user, err := backend.CreateUser(ctx, UserRecord{Name: "Ada", Email: "ada@example.com", Username: "ada", PasswordHash: "hash"})
	require.NoError(t, err)

	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, backend.CreateSession(ctx, "token-1", user.ID, expires))

	userID, gotExpires, err := backend.SessionUser(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.True(t, expires.Equal(gotExpires))

	require.NoError(t, backend.DeleteUser(ctx, user.ID))

	_, _, err = backend.SessionUser(ctx, "token-1")
	assert.ErrorIs(t, err, errNotFound)
	assert.ErrorIs(t, backend.DeleteUser(ctx, user.ID), errNotFound)
}

func TestSQLiteBackendRobotsRoundTrip(t *testing.T) {
	t.Parallel()

	backend, _ := openTestSQLite(t)
	ctx := context.Background()

	record := RobotRecord{
		Robot: domain.Robot{
			ID:               "RUMBLE-010",
			Name:             "Kappa",
			Status:           domain.RobotStatusActive,
			BatteryLevel:     70,
			Location:         &domain.Location{Lat: 42.03, Lng: -93.64},
			LastCollection:   time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
			TrashCollectedKg: 12.5,
			OwnerID:          "1",
		},
		PairingCode: 654321,
		SharedWith:  []string{"2", "3"},
	}
	require.NoError(t, backend.SaveRobot(ctx, record))
	require.NoError(t, backend.SaveRobot(ctx, RobotRecord{Robot: domain.Robot{ID: "RUMBLE-011", Name: "Lambda", Status: domain.RobotStatusIdle}}))

	got, err := backend.Robot(ctx, "RUMBLE-010")
	require.NoError(t, err)
	assert.Equal(t, record, got)

	record.Robot.Status = domain.RobotStatusIdle
	record.SharedWith = []string{"3"}
	require.NoError(t, backend.SaveRobot(ctx, record))

	robots, err := backend.ListRobots(ctx)
	require.NoError(t, err)
	require.Len(t, robots, 2)
	assert.Equal(t, domain.RobotStatusIdle, robots[0].Robot.Status)
	assert.Equal(t, []string{"3"}, robots[0].SharedWith)
	assert.Nil(t, robots[1].Robot.Location)
	assert.True(t, robots[1].Robot.NextScheduled.IsZero())

	_, err = backend.Robot(ctx, "RUMBLE-404")
	assert.ErrorIs(t, err, errNotFound)

	assert.Error(t, backend.SaveRobot(ctx, RobotRecord{Robot: domain.Robot{ID: "RUMBLE-012", Status: "flying"}}))
}

func TestSQLiteBackendSeedSurvivesReopen(t *testing.T) {
	t.Parallel()

	backend, path := openTestSQLite(t)
	ctx := context.Background()

	seed, err := LoadSeed("")
	require.NoError(t, err)
	require.NoError(t, seed.Apply(ctx, backend, bcrypt.MinCost))
	require.NoError(t, backend.Close())

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	require.NoError(t, seed.Apply(ctx, reopened, bcrypt.MinCost))

	users, err := reopened.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	robots, err := reopened.ListRobots(ctx)
	require.NoError(t, err)
	assert.Len(t, robots, 6)
}

func TestOpenSQLiteRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := OpenSQLite(context.Background(), " ")
	require.Error(t, err)
}

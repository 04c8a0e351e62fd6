package devserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bnema/rumble-cli/internal/adapters/api"
	"github.com/bnema/rumble-cli/internal/domain"
)

func newSeededServer(t *testing.T, backend Backend) (*httptest.Server, api.Client) {
	t.Helper()

	seed, err := LoadSeed("")
	require.NoError(t, err)
	require.NoError(t, seed.Apply(context.Background(), backend, bcrypt.MinCost))

	server := httptest.NewServer(New(Options{Backend: backend, HashCost: bcrypt.MinCost}).Handler())
	t.Cleanup(server.Close)

	return server, api.Client{BaseURL: server.URL, HTTPClient: server.Client()}
}

func loginAs(t *testing.T, client api.Client, email, password string) domain.Caller {
	t.Helper()

	result, err := client.Login(context.Background(), email, password)
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	return domain.Caller{Token: result.Token, UserID: result.User.ID}
}

func TestLoginIssuesTokenAndReturnsUser(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())

	result, err := client.Login(context.Background(), "admin@rumble.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("1"), result.User.ID)
	assert.Equal(t, "Admin User", result.User.Name)
	assert.Equal(t, 100001, result.User.RobotID)
	assert.NotEmpty(t, result.Token)

	require.NoError(t, client.VerifySession(context.Background(), result.Token))
}

func TestLoginRejectsUnknownUserAndWrongPassword(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())

	_, err := client.Login(context.Background(), "nobody@example.com", "whatever")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, err = client.Login(context.Background(), "admin@rumble.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestLoginAcceptsReservedCharactersInPassword(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())

	registered, err := client.Register(context.Background(), domain.Registration{
		Name:     "Slash User",
		Email:    "slash@example.com",
		Password: "a/b?c#d",
		Username: "slash",
		RobotID:  424242,
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)

	result, err := client.Login(context.Background(), "slash@example.com", "a/b?c#d")
	require.NoError(t, err)
	assert.Equal(t, "Slash User", result.User.Name)
}

func TestVerifySessionRejectsUnknownAndExpiredTokens(t *testing.T) {
	t.Parallel()

	backend := NewMemoryBackend()
	_, client := newSeededServer(t, backend)

	err := client.VerifySession(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	require.NoError(t, backend.CreateSession(context.Background(), "stale", "1", time.Now().Add(-time.Minute)))
	err = client.VerifySession(context.Background(), "stale")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, _, err = backend.SessionUser(context.Background(), "stale")
	assert.ErrorIs(t, err, errNotFound)
}

func TestRegisterClaimsUnownedRobot(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())

	result, err := client.Register(context.Background(), domain.Registration{
		Name:     "New Owner",
		Email:    "owner@example.com",
		Password: "secret1",
		Username: "owner",
		RobotID:  246810,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("4"), result.User.ID)
	require.NotEmpty(t, result.Token)

	robots, err := client.ListOwnedRobots(context.Background(), domain.Caller{Token: result.Token, UserID: result.User.ID})
	require.NoError(t, err)
	require.Len(t, robots, 1)
	assert.Equal(t, domain.RobotID("RUMBLE-006"), robots[0].ID)
	assert.Equal(t, domain.UserID("4"), robots[0].OwnerID)
}

func TestRegisterFailures(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())

	tests := []struct {
		name         string
		registration domain.Registration
	}{
		{
			name:         "robot already assigned",
			registration: domain.Registration{Name: "Taken", Email: "taken@example.com", Password: "secret1", Username: "taken", RobotID: 100002},
		},
		{
			name:         "email already registered",
			registration: domain.Registration{Name: "Dup", Email: "ADMIN@rumble.com", Password: "secret1", Username: "dup", RobotID: 555555},
		},
		{
			name:         "reserved robot id",
			registration: domain.Registration{Name: "Zero", Email: "zero@example.com", Password: "secret1", Username: "zero", RobotID: 0},
		},
	}

	for _, tt := range tests {
		_, err := client.Register(context.Background(), tt.registration)
		require.Error(t, err, tt.name)
		assert.Equal(t, domain.KindPreconditionFailed, domain.KindOf(err), tt.name)
	}
}

func TestOwnedSharedAndStatsForAdmin(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())
	caller := loginAs(t, client, "admin@rumble.com", "admin123")

	owned, err := client.ListOwnedRobots(context.Background(), caller)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, domain.RobotID("RUMBLE-001"), owned[0].ID)
	assert.Equal(t, domain.RobotID("RUMBLE-002"), owned[1].ID)
	assert.Empty(t, owned[0].SharedBy)

	shared, err := client.ListShared(context.Background(), caller)
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, domain.RobotID("RUMBLE-004"), shared[0].ID)
	assert.Equal(t, "test@example.com", shared[0].SharedBy)

	stats, err := client.DashboardStats(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRobots)
	assert.Equal(t, 1, stats.ActiveRobots)
	assert.Equal(t, 1, stats.RobotsCharging)
	assert.InDelta(t, 62.9, stats.TotalTrashCollectedKg, 0.001)
	assert.InDelta(t, 54.5, stats.AverageBatteryLevel, 0.001)
}

func TestOwnedRobotsNeverIncludeAnotherOwner(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())
	caller := loginAs(t, client, "test@example.com", "test123")

	owned, err := client.ListOwnedRobots(context.Background(), caller)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, domain.RobotID("RUMBLE-003"), owned[0].ID)
	assert.Equal(t, domain.RobotID("RUMBLE-004"), owned[1].ID)
	for _, robot := range owned {
		assert.Equal(t, caller.UserID, robot.OwnerID)
	}
}

func TestOwnerQueryForAnotherUserIsForbidden(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())
	caller := loginAs(t, client, "admin@rumble.com", "admin123")

	_, err := client.ListOwnedRobots(context.Background(), domain.Caller{Token: caller.Token, UserID: "2"})
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestGetRobotVisibility(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())
	caller := loginAs(t, client, "admin@rumble.com", "admin123")

	robot, err := client.GetRobot(context.Background(), caller, "RUMBLE-001")
	require.NoError(t, err)
	assert.Equal(t, "Trash Collector Alpha", robot.Name)
	require.NotNil(t, robot.Location)
	assert.InDelta(t, 42.026211, robot.Location.Lat, 1e-9)

	shared, err := client.GetRobot(context.Background(), caller, "RUMBLE-004")
	require.NoError(t, err)
	assert.True(t, shared.Shared())

	_, err = client.GetRobot(context.Background(), caller, "RUMBLE-005")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, err = client.GetRobot(context.Background(), caller, "RUMBLE-404")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestSendCommandUpdatesRobot(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())
	caller := loginAs(t, client, "admin@rumble.com", "admin123")

	robot, err := client.SendCommand(context.Background(), caller, "RUMBLE-001", domain.CommandStop)
	require.NoError(t, err)
	assert.Equal(t, domain.RobotStatusIdle, robot.Status)

	stats, err := client.DashboardStats(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ActiveRobots)
}

func TestSendCommandRejections(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())
	admin := loginAs(t, client, "admin@rumble.com", "admin123")
	tester := loginAs(t, client, "test@example.com", "test123")

	_, err := client.SendCommand(context.Background(), tester, "RUMBLE-003", domain.CommandStart)
	require.Error(t, err)
	assert.Equal(t, domain.KindPreconditionFailed, domain.KindOf(err))
	assert.Contains(t, err.Error(), "Robot is in maintenance")

	_, err = client.SendCommand(context.Background(), admin, "RUMBLE-004", domain.CommandStart)
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, err = client.SendCommand(context.Background(), admin, "RUMBLE-404", domain.CommandStart)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = client.SendCommand(context.Background(), admin, "RUMBLE-001", domain.Command("dance"))
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidCommand, domain.KindOf(err))
}

func TestLowBatteryChargingRobotRefusesStart(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())
	john := loginAs(t, client, "john@example.com", "john123")

	_, err := client.SendCommand(context.Background(), john, "RUMBLE-005", domain.CommandStart)
	require.Error(t, err)
	assert.Equal(t, domain.KindPreconditionFailed, domain.KindOf(err))

	robot, err := client.GetRobot(context.Background(), john, "RUMBLE-005")
	require.NoError(t, err)
	assert.Equal(t, domain.RobotStatusCharging, robot.Status)
}

func TestAccountLifecycle(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())
	caller := loginAs(t, client, "john@example.com", "john123")

	user, err := client.GetUser(context.Background(), caller, caller.UserID)
	require.NoError(t, err)
	assert.Equal(t, "john", user.Username)

	_, err = client.GetUser(context.Background(), caller, "1")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, err = client.UpdateUser(context.Background(), caller, "wrong-password", domain.UserUpdate{Name: "Johnny"})
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, err = client.UpdateUser(context.Background(), caller, "john123", domain.UserUpdate{Email: "admin@rumble.com"})
	require.Error(t, err)
	assert.Equal(t, domain.KindPreconditionFailed, domain.KindOf(err))

	updated, err := client.UpdateUser(context.Background(), caller, "john123", domain.UserUpdate{Name: "Johnny", Password: "newpass1"})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", updated.Name)

	_, err = client.Login(context.Background(), "john@example.com", "newpass1")
	require.NoError(t, err)

	require.NoError(t, client.DeleteUser(context.Background(), caller))

	_, err = client.Login(context.Background(), "john@example.com", "newpass1")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestListUsersAndPasswordReset(t *testing.T) {
	t.Parallel()

	_, client := newSeededServer(t, NewMemoryBackend())

	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 3)

	require.NoError(t, client.RequestPasswordReset(context.Background(), "admin@rumble.com"))
	require.NoError(t, client.RequestPasswordReset(context.Background(), "unknown@example.com"))
}

func TestHandlerRejectsMalformedBodies(t *testing.T) {
	t.Parallel()

	server, _ := newSeededServer(t, NewMemoryBackend())

	resp, err := server.Client().Post(server.URL+"/users/", "application/json", http.NoBody)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(Options{}).ListenAndServe(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

package application

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tomlstore "github.com/bnema/rumble-cli/internal/adapters/storage/toml"
	"github.com/bnema/rumble-cli/internal/domain"
	"github.com/bnema/rumble-cli/internal/ports"
	"github.com/bnema/rumble-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var signedInAt = time.Date(2025, 1, 16, 12, 0, 0, 0, time.UTC)

var adminUser = domain.User{ID: "1", Name: "Admin User", Email: "admin@rumble.com", Username: "admin", RobotID: 100001}

func anyCtx() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func newSessionStore(t *testing.T) *tomlstore.Store {
	t.Helper()

	store, err := tomlstore.NewStore(filepath.Join(t.TempDir(), "session.toml"))
	require.NoError(t, err)
	return store
}

func newTestSessionManager(t *testing.T, store ports.DurableStore) (*SessionManager, *mocks.MockAuthAPI) {
	t.Helper()

	auth := mocks.NewMockAuthAPI(t)
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(signedInAt).Maybe()

	manager := NewSessionManager(auth, store, clock, nil)
	manager.newToken = func() string { return "session_fixed" }
	return manager, auth
}

func TestLoginValidationBlocksNetwork(t *testing.T) {
	manager, _ := newTestSessionManager(t, newSessionStore(t))

	_, err := manager.Login(context.Background(), "not-an-email", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var fieldErrs domain.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "Please enter a valid email address", fieldErrs.Field("email"))
	assert.Equal(t, "Password is required", fieldErrs.Field("password"))
	assert.False(t, manager.Current().Active())
}

func TestLoginPersistsServerToken(t *testing.T) {
	store := newSessionStore(t)
	manager, auth := newTestSessionManager(t, store)
	auth.EXPECT().Login(anyCtx(), "admin@rumble.com", "admin123").Return(ports.AuthResult{User: adminUser, Token: "server-token"}, nil)

	user, err := manager.Login(context.Background(), " admin@rumble.com ", "admin123")
	require.NoError(t, err)
	assert.Equal(t, adminUser, user)

	session := manager.Current()
	require.True(t, session.Active())
	assert.Equal(t, "server-token", session.Token)
	assert.Equal(t, signedInAt, session.SignedInAt)

	token, err := store.Get(context.Background(), TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "server-token", token)

	rawUser, err := store.Get(context.Background(), UserKey)
	require.NoError(t, err)
	assert.Contains(t, rawUser, `"email":"admin@rumble.com"`)
}

func TestLoginSynthesizesTokenWhenServerIssuesNone(t *testing.T) {
	manager, auth := newTestSessionManager(t, newSessionStore(t))
	auth.EXPECT().Login(anyCtx(), "admin@rumble.com", "admin123").Return(ports.AuthResult{User: adminUser}, nil)

	_, err := manager.Login(context.Background(), "admin@rumble.com", "admin123")
	require.NoError(t, err)

	token, err := manager.Token()
	require.NoError(t, err)
	assert.Equal(t, "session_fixed", token)
}

func TestDefaultSynthesizedTokenHasSessionPrefix(t *testing.T) {
	manager := NewSessionManager(mocks.NewMockAuthAPI(t), newSessionStore(t), nil, nil)

	first := manager.newToken()
	second := manager.newToken()
	assert.True(t, strings.HasPrefix(first, "session_"))
	assert.NotEqual(t, first, second)
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	store := newSessionStore(t)
	manager, auth := newTestSessionManager(t, store)
	auth.EXPECT().Login(anyCtx(), "admin@rumble.com", "wrong").
		Return(ports.AuthResult{}, domain.NewError(domain.KindUnauthorized, "login", "HTTP 400: Password does not match"))

	_, err := manager.Login(context.Background(), "admin@rumble.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Password does not match")
	assert.False(t, manager.Current().Active())

	_, err = store.Get(context.Background(), TokenKey)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestRestoreWithEmptyStorageIsUnauthenticated(t *testing.T) {
	manager, _ := newTestSessionManager(t, newSessionStore(t))

	session, err := manager.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, session.Active())
}

func TestRestoreVerifiesStoredSession(t *testing.T) {
	store := newSessionStore(t)
	first, auth := newTestSessionManager(t, store)
	auth.EXPECT().Login(anyCtx(), "admin@rumble.com", "admin123").Return(ports.AuthResult{User: adminUser, Token: "server-token"}, nil)
	_, err := first.Login(context.Background(), "admin@rumble.com", "admin123")
	require.NoError(t, err)

	second, auth2 := newTestSessionManager(t, store)
	auth2.EXPECT().VerifySession(anyCtx(), "server-token").Return(nil).Once()
	auth2.EXPECT().GetUser(anyCtx(), domain.Caller{Token: "server-token", UserID: "1"}, domain.UserID("1")).Return(adminUser, nil).Once()

	session, err := second.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, session.Active())
	assert.Equal(t, adminUser, *session.User)
	assert.Equal(t, signedInAt, session.SignedInAt)
	assert.Equal(t, domain.Caller{Token: "server-token", UserID: "1"}, second.Current().Caller())
}

func TestRestoreRefreshesStoredProfile(t *testing.T) {
	store := newSessionStore(t)
	require.NoError(t, store.Put(context.Background(), UserKey, `{"id":"1","name":"Admin User","email":"admin@rumble.com","username":"admin","robotId":100001}`))
	require.NoError(t, store.Put(context.Background(), TokenKey, "server-token"))

	renamed := adminUser
	renamed.Name = "Fleet Admin"

	manager, auth := newTestSessionManager(t, store)
	auth.EXPECT().VerifySession(anyCtx(), "server-token").Return(nil).Once()
	auth.EXPECT().GetUser(anyCtx(), domain.Caller{Token: "server-token", UserID: "1"}, domain.UserID("1")).Return(renamed, nil).Once()

	session, err := manager.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, session.Active())
	assert.Equal(t, renamed, *session.User)
	assert.Equal(t, renamed, *manager.Current().User)

	raw, err := store.Get(context.Background(), UserKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"name":"Fleet Admin"`)

	token, err := store.Get(context.Background(), TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "server-token", token)
}

func TestRestoreKeepsStoredProfileWhenLookupFails(t *testing.T) {
	store := newSessionStore(t)
	require.NoError(t, store.Put(context.Background(), UserKey, `{"id":"1","name":"Admin User","email":"admin@rumble.com","username":"admin","robotId":100001}`))
	require.NoError(t, store.Put(context.Background(), TokenKey, "server-token"))

	manager, auth := newTestSessionManager(t, store)
	auth.EXPECT().VerifySession(anyCtx(), "server-token").Return(nil).Once()
	auth.EXPECT().GetUser(anyCtx(), domain.Caller{Token: "server-token", UserID: "1"}, domain.UserID("1")).
		Return(domain.User{}, domain.NewError(domain.KindNetworkOrServer, "get user", "HTTP 500: boom")).Once()

	session, err := manager.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, session.Active())
	assert.Equal(t, adminUser, *session.User)
}

func TestRestoreSignsOutWhenVerificationFails(t *testing.T) {
	store := newSessionStore(t)
	require.NoError(t, store.Put(context.Background(), UserKey, `{"id":"1","email":"admin@rumble.com"}`))
	require.NoError(t, store.Put(context.Background(), TokenKey, "expired"))

	manager, auth := newTestSessionManager(t, store)
	auth.EXPECT().VerifySession(anyCtx(), "expired").Return(domain.NewError(domain.KindUnauthorized, "verify session", "HTTP 401: expired")).Once()

	session, err := manager.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, session.Active())
	assert.False(t, manager.Current().Active())

	_, err = store.Get(context.Background(), UserKey)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	_, err = store.Get(context.Background(), TokenKey)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestRestoreWipesMalformedUserWithoutNetwork(t *testing.T) {
	store := newSessionStore(t)
	require.NoError(t, store.Put(context.Background(), UserKey, `{not json`))
	require.NoError(t, store.Put(context.Background(), TokenKey, "token"))

	manager, _ := newTestSessionManager(t, store)

	session, err := manager.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, session.Active())

	_, err = store.Get(context.Background(), TokenKey)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestRestoreDiscardsHalfWrittenSession(t *testing.T) {
	store := newSessionStore(t)
	require.NoError(t, store.Put(context.Background(), TokenKey, "orphan"))

	manager, _ := newTestSessionManager(t, store)

	session, err := manager.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, session.Active())

	_, err = store.Get(context.Background(), TokenKey)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestRestoreReportsStorageFailure(t *testing.T) {
	store := mocks.NewMockDurableStore(t)
	store.EXPECT().Get(anyCtx(), UserKey).Return("", errors.New("disk unavailable"))
	store.EXPECT().Get(anyCtx(), TokenKey).Return("", domain.ErrKeyNotFound)

	manager, _ := newTestSessionManager(t, store)

	_, err := manager.Restore(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk unavailable")
}

func TestSignupGeneratesRobotIDAndSignsIn(t *testing.T) {
	manager, auth := newTestSessionManager(t, newSessionStore(t))

	var sent domain.Registration
	auth.EXPECT().Register(anyCtx(), mock.AnythingOfType("domain.Registration")).
		RunAndReturn(func(_ context.Context, registration domain.Registration) (ports.AuthResult, error) {
			sent = registration
			return ports.AuthResult{User: domain.User{ID: "4", Name: registration.Name, Email: registration.Email, Username: registration.Username, RobotID: registration.RobotID}}, nil
		})

	user, err := manager.Signup(context.Background(), domain.Registration{
		Name:            "New User",
		Email:           "new@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Username:        "newbie",
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, sent.RobotID, 100000)
	assert.LessOrEqual(t, sent.RobotID, 999999)
	assert.Equal(t, sent.RobotID, user.RobotID)
	assert.Equal(t, "session_fixed", manager.Current().Token)
}

func TestGeneratedRobotIDsStayInRange(t *testing.T) {
	manager := NewSessionManager(mocks.NewMockAuthAPI(t), newSessionStore(t), nil, nil)

	for range 1000 {
		id := manager.newRobotID()
		require.GreaterOrEqual(t, id, 100000)
		require.LessOrEqual(t, id, 999999)
	}
}

func TestSignupValidationBlocksNetwork(t *testing.T) {
	manager, _ := newTestSessionManager(t, newSessionStore(t))

	_, err := manager.Signup(context.Background(), domain.Registration{
		Name:            "New User",
		Email:           "new@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret2",
		Username:        "nb",
	})
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "Passwords don't match", fieldErrs.Field("confirmPassword"))
	assert.Equal(t, "Username must be at least 3 characters", fieldErrs.Field("username"))
}

func TestSignupRejectsShortRobotIDBeforeNetwork(t *testing.T) {
	manager, _ := newTestSessionManager(t, newSessionStore(t))

	_, err := manager.Signup(context.Background(), domain.Registration{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "secret1",
		Username: "newbie",
		RobotID:  42,
	})
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "Robot ID must be 6 digits", fieldErrs.Field("robotId"))
	assert.False(t, manager.Current().Active())
}

func TestLogoutNeverFails(t *testing.T) {
	store := mocks.NewMockDurableStore(t)
	store.EXPECT().Delete(anyCtx(), UserKey).Return(errors.New("read-only filesystem"))
	store.EXPECT().Delete(anyCtx(), TokenKey).Return(nil)

	manager, _ := newTestSessionManager(t, store)
	manager.setSession(domain.Session{User: &adminUser, Token: "token"})

	manager.Logout(context.Background())
	assert.False(t, manager.Current().Active())

	_, err := manager.Token()
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestClearAuthReportsStorageFailure(t *testing.T) {
	store := mocks.NewMockDurableStore(t)
	store.EXPECT().Delete(anyCtx(), UserKey).Return(nil)
	store.EXPECT().Delete(anyCtx(), TokenKey).Return(errors.New("read-only filesystem"))

	manager, _ := newTestSessionManager(t, store)
	manager.setSession(domain.Session{User: &adminUser, Token: "token"})

	err := manager.ClearAuth(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only filesystem")
	assert.False(t, manager.Current().Active())
}

func TestPersistRollsBackUserWhenTokenWriteFails(t *testing.T) {
	store := mocks.NewMockDurableStore(t)
	store.EXPECT().Put(anyCtx(), UserKey, mock.AnythingOfType("string")).Return(nil)
	store.EXPECT().Put(anyCtx(), TokenKey, "server-token").Return(errors.New("quota exceeded"))
	store.EXPECT().Delete(anyCtx(), UserKey).Return(nil)

	manager, auth := newTestSessionManager(t, store)
	auth.EXPECT().Login(anyCtx(), "admin@rumble.com", "admin123").Return(ports.AuthResult{User: adminUser, Token: "server-token"}, nil)

	_, err := manager.Login(context.Background(), "admin@rumble.com", "admin123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store session token")
	assert.False(t, manager.Current().Active())
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	manager, _ := newTestSessionManager(t, newSessionStore(t))

	_, err := manager.UpdateProfile(context.Background(), "admin123", domain.UserUpdate{Name: "Renamed"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateProfilePersistsUpdatedUser(t *testing.T) {
	store := newSessionStore(t)
	manager, auth := newTestSessionManager(t, store)
	auth.EXPECT().Login(anyCtx(), "admin@rumble.com", "admin123").Return(ports.AuthResult{User: adminUser, Token: "server-token"}, nil)
	_, err := manager.Login(context.Background(), "admin@rumble.com", "admin123")
	require.NoError(t, err)

	renamed := adminUser
	renamed.Name = "Renamed"
	caller := domain.Caller{Token: "server-token", UserID: "1"}
	auth.EXPECT().UpdateUser(anyCtx(), caller, "admin123", domain.UserUpdate{Name: "Renamed"}).Return(renamed, nil)

	user, err := manager.UpdateProfile(context.Background(), "admin123", domain.UserUpdate{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)
	assert.Equal(t, "Renamed", manager.Current().User.Name)

	rawUser, err := store.Get(context.Background(), UserKey)
	require.NoError(t, err)
	assert.Contains(t, rawUser, `"name":"Renamed"`)
}

func TestUpdateProfileValidatesInput(t *testing.T) {
	manager, _ := newTestSessionManager(t, newSessionStore(t))
	manager.setSession(domain.Session{User: &adminUser, Token: "token"})

	_, err := manager.UpdateProfile(context.Background(), "", domain.UserUpdate{Email: "bad", Password: "123"})
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.NotEmpty(t, fieldErrs.Field("currentPassword"))
	assert.NotEmpty(t, fieldErrs.Field("email"))
	assert.NotEmpty(t, fieldErrs.Field("password"))
}

func TestDeleteAccountSignsOut(t *testing.T) {
	store := newSessionStore(t)
	manager, auth := newTestSessionManager(t, store)
	auth.EXPECT().Login(anyCtx(), "admin@rumble.com", "admin123").Return(ports.AuthResult{User: adminUser, Token: "server-token"}, nil)
	_, err := manager.Login(context.Background(), "admin@rumble.com", "admin123")
	require.NoError(t, err)

	auth.EXPECT().DeleteUser(anyCtx(), domain.Caller{Token: "server-token", UserID: "1"}).Return(nil)

	require.NoError(t, manager.DeleteAccount(context.Background()))
	assert.False(t, manager.Current().Active())

	_, err = store.Get(context.Background(), UserKey)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestRequestPasswordResetValidatesEmail(t *testing.T) {
	manager, auth := newTestSessionManager(t, newSessionStore(t))

	err := manager.RequestPasswordReset(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrValidation)

	auth.EXPECT().RequestPasswordReset(anyCtx(), "admin@rumble.com").Return(nil)
	require.NoError(t, manager.RequestPasswordReset(context.Background(), "admin@rumble.com"))
}

func TestCurrentReturnsCopy(t *testing.T) {
	manager, _ := newTestSessionManager(t, newSessionStore(t))
	manager.setSession(domain.Session{User: &adminUser, Token: "token"})

	session := manager.Current()
	session.User.Name = "mutated"

	assert.Equal(t, "Admin User", manager.Current().User.Name)
}

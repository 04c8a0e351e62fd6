package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/rumble-cli/internal/domain"
	"github.com/bnema/rumble-cli/internal/ports"
)

const (
	UserKey  = "rumble_user"
	TokenKey = "rumble_token"

	syntheticTokenPrefix = "session_"
	minGeneratedRobotID  = 100_000
	maxGeneratedRobotID  = 999_999
)

var ErrNotSignedIn = domain.NewError(domain.KindUnauthorized, "", "not signed in")

type storedUser struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	RobotID    int       `json:"robotId"`
	SignedInAt time.Time `json:"signedInAt,omitzero"`
}

// SessionManager owns the signed-in identity and keeps it in sync with durable storage.
type SessionManager struct {
	auth   ports.AuthAPI
	store  ports.DurableStore
	clock  ports.Clock
	logger *slog.Logger

	newToken   func() string
	newRobotID func() int

	mu      sync.Mutex
	session domain.Session
}

func NewSessionManager(auth ports.AuthAPI, store ports.DurableStore, clock ports.Clock, logger *slog.Logger) *SessionManager {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &SessionManager{
		auth:   auth,
		store:  store,
		clock:  clock,
		logger: logger,
		newToken: func() string {
			return syntheticTokenPrefix + uuid.NewString()
		},
		newRobotID: func() int {
			return minGeneratedRobotID + rand.IntN(maxGeneratedRobotID-minGeneratedRobotID+1)
		},
	}
}

func (m *SessionManager) Current() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return copySession(m.session)
}

func (m *SessionManager) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.session.Active() {
		return "", ErrNotSignedIn
	}
	return m.session.Token, nil
}

// Restore loads the persisted session and confirms it with the server. Any verification
// failure signs the user out silently; only storage failures are reported.
func (m *SessionManager) Restore(ctx context.Context) (domain.Session, error) {
	rawUser, userErr := m.store.Get(ctx, UserKey)
	rawToken, tokenErr := m.store.Get(ctx, TokenKey)
	if err := storageFailure(userErr, tokenErr); err != nil {
		return domain.Session{}, fmt.Errorf("restore session: %w", err)
	}

	if userErr != nil || tokenErr != nil {
		if userErr == nil || tokenErr == nil {
			m.logger.Warn("discarding half-written session", "has_user", userErr == nil, "has_token", tokenErr == nil)
			m.wipe(ctx)
		}
		m.setSession(domain.Session{})
		return domain.Session{}, nil
	}

	user, signedInAt, err := decodeStoredUser(rawUser)
	token := strings.TrimSpace(rawToken)
	if err != nil || token == "" {
		m.logger.Warn("discarding unreadable session", "error", err)
		m.wipe(ctx)
		m.setSession(domain.Session{})
		return domain.Session{}, nil
	}

	session := domain.Session{User: &user, Token: token, SignedInAt: signedInAt}
	m.setSession(session)

	if err := m.auth.VerifySession(ctx, token); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			m.setSession(domain.Session{})
			return domain.Session{}, ctxErr
		}

		m.logger.Info("stored session rejected, signing out", "user", user.Email, "kind", domain.KindOf(err), "error", err)
		m.setSession(domain.Session{})
		m.wipe(ctx)
		return domain.Session{}, nil
	}

	session = m.refreshUser(ctx, session)
	m.logger.Debug("session restored", "user", session.User.Email)
	return copySession(session), nil
}

// refreshUser swaps the stored profile for the server's copy. A failed lookup keeps the
// verified session with the stored profile.
func (m *SessionManager) refreshUser(ctx context.Context, session domain.Session) domain.Session {
	stored := *session.User
	if stored.ID == "" {
		return session
	}

	fresh, err := m.auth.GetUser(ctx, session.Caller(), stored.ID)
	if err != nil {
		m.logger.Debug("keeping stored profile", "user", stored.Email, "kind", domain.KindOf(err), "error", err)
		return session
	}
	if fresh.ID == "" {
		fresh.ID = stored.ID
	}
	if fresh == stored {
		return session
	}

	encoded, err := encodeStoredUser(fresh, session.SignedInAt)
	if err == nil {
		err = m.store.Put(ctx, UserKey, encoded)
	}
	if err != nil {
		m.logger.Warn("could not store refreshed profile", "user", stored.Email, "error", err)
		return session
	}

	session.User = &fresh
	m.setSession(session)
	return session
}

func (m *SessionManager) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if err := domain.ValidateCredentials(email, password); err != nil {
		return domain.User{}, err
	}

	result, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.logger.Info("login failed", "email", email, "kind", domain.KindOf(err))
		return domain.User{}, err
	}

	return m.establish(ctx, result)
}

// Signup registers a new account and signs it in. A zero RobotID is replaced with a
// generated six digit pairing id.
func (m *SessionManager) Signup(ctx context.Context, registration domain.Registration) (domain.User, error) {
	registration.Name = strings.TrimSpace(registration.Name)
	registration.Email = strings.TrimSpace(registration.Email)
	registration.Username = strings.TrimSpace(registration.Username)
	if err := registration.Validate(); err != nil {
		return domain.User{}, err
	}
	if registration.RobotID == 0 {
		registration.RobotID = m.newRobotID()
	}

	result, err := m.auth.Register(ctx, registration)
	if err != nil {
		m.logger.Info("signup failed", "email", registration.Email, "kind", domain.KindOf(err))
		return domain.User{}, err
	}

	return m.establish(ctx, result)
}

// Logout clears the session in memory and storage. Storage failures are logged, never returned.
func (m *SessionManager) Logout(ctx context.Context) {
	m.setSession(domain.Session{})
	if err := m.wipe(ctx); err != nil {
		m.logger.Warn("logout left session data behind", "error", err)
	}
}

// ClearAuth has the same effect as Logout but reports storage failures to the caller.
func (m *SessionManager) ClearAuth(ctx context.Context) error {
	m.setSession(domain.Session{})
	if err := m.wipe(ctx); err != nil {
		return fmt.Errorf("clear stored auth: %w", err)
	}

	m.logger.Info("stored auth cleared")
	return nil
}

func (m *SessionManager) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := domain.ValidatePasswordResetEmail(email); err != nil {
		return err
	}

	return m.auth.RequestPasswordReset(ctx, email)
}

func (m *SessionManager) UpdateProfile(ctx context.Context, currentPassword string, update domain.UserUpdate) (domain.User, error) {
	session := m.Current()
	if !session.Active() {
		return domain.User{}, ErrNotSignedIn
	}
	if err := validateUserUpdate(currentPassword, update); err != nil {
		return domain.User{}, err
	}

	updated, err := m.auth.UpdateUser(ctx, session.Caller(), currentPassword, update)
	if err != nil {
		return domain.User{}, err
	}
	if updated.ID == "" {
		updated.ID = session.User.ID
	}

	if err := m.persist(ctx, updated, session.Token, session.SignedInAt); err != nil {
		return domain.User{}, err
	}
	m.setSession(domain.Session{User: &updated, Token: session.Token, SignedInAt: session.SignedInAt})

	return updated, nil
}

func (m *SessionManager) DeleteAccount(ctx context.Context) error {
	session := m.Current()
	if !session.Active() {
		return ErrNotSignedIn
	}

	if err := m.auth.DeleteUser(ctx, session.Caller()); err != nil {
		return err
	}

	m.logger.Info("account deleted", "user", session.User.Email)
	m.Logout(ctx)
	return nil
}

func (m *SessionManager) establish(ctx context.Context, result ports.AuthResult) (domain.User, error) {
	token := strings.TrimSpace(result.Token)
	if token == "" {
		token = m.newToken()
	}
	user := result.User
	signedInAt := m.clock.Now().UTC()

	if err := m.persist(ctx, user, token, signedInAt); err != nil {
		return domain.User{}, err
	}

	m.setSession(domain.Session{User: &user, Token: token, SignedInAt: signedInAt})
	m.logger.Info("signed in", "user", user.Email)
	return user, nil
}

func (m *SessionManager) persist(ctx context.Context, user domain.User, token string, signedInAt time.Time) error {
	encoded, err := encodeStoredUser(user, signedInAt)
	if err != nil {
		return err
	}

	if err := m.store.Put(ctx, UserKey, encoded); err != nil {
		return fmt.Errorf("store session user: %w", err)
	}
	if err := m.store.Put(ctx, TokenKey, token); err != nil {
		if rollbackErr := m.store.Delete(ctx, UserKey); rollbackErr != nil {
			return fmt.Errorf("store session token and rollback user: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("store session token: %w", err)
	}

	return nil
}

func (m *SessionManager) wipe(ctx context.Context) error {
	var err error
	for _, key := range []string{UserKey, TokenKey} {
		if deleteErr := m.store.Delete(ctx, key); deleteErr != nil && !errors.Is(deleteErr, domain.ErrKeyNotFound) {
			err = errors.Join(err, fmt.Errorf("delete %s: %w", key, deleteErr))
		}
	}

	return err
}

func (m *SessionManager) setSession(session domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = copySession(session)
}

func copySession(session domain.Session) domain.Session {
	if session.User == nil {
		return session
	}

	user := *session.User
	session.User = &user
	return session
}

func encodeStoredUser(user domain.User, signedInAt time.Time) (string, error) {
	encoded, err := json.Marshal(storedUser{
		ID:         string(user.ID),
		Name:       user.Name,
		Email:      user.Email,
		Username:   user.Username,
		RobotID:    user.RobotID,
		SignedInAt: signedInAt,
	})
	if err != nil {
		return "", fmt.Errorf("encode session user: %w", err)
	}

	return string(encoded), nil
}

func decodeStoredUser(raw string) (domain.User, time.Time, error) {
	var stored storedUser
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return domain.User{}, time.Time{}, fmt.Errorf("decode session user: %w", err)
	}
	if strings.TrimSpace(stored.ID) == "" && strings.TrimSpace(stored.Email) == "" {
		return domain.User{}, time.Time{}, errors.New("session user has no identity")
	}

	return domain.User{
		ID:       domain.UserID(stored.ID),
		Name:     stored.Name,
		Email:    stored.Email,
		Username: stored.Username,
		RobotID:  stored.RobotID,
	}, stored.SignedInAt, nil
}

func storageFailure(errs ...error) error {
	var failure error
	for _, err := range errs {
		if err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
			failure = errors.Join(failure, err)
		}
	}

	return failure
}

func validateUserUpdate(currentPassword string, update domain.UserUpdate) error {
	var errs domain.ValidationErrors
	if currentPassword == "" {
		errs = append(errs, domain.FieldError{Field: "currentPassword", Message: "Current password is required"})
	}
	if email := strings.TrimSpace(update.Email); email != "" && !domain.ValidEmail(email) {
		errs = append(errs, domain.FieldError{Field: "email", Message: "Please enter a valid email address"})
	}
	if update.Password != "" && len(update.Password) < domain.PasswordMinLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters", domain.PasswordMinLength)})
	}
	if username := strings.TrimSpace(update.Username); username != "" && len(username) < domain.UsernameMinLength {
		errs = append(errs, domain.FieldError{Field: "username", Message: fmt.Sprintf("Username must be at least %d characters", domain.UsernameMinLength)})
	}
	if update == (domain.UserUpdate{}) {
		errs = append(errs, domain.FieldError{Field: "update", Message: "Nothing to update"})
	}

	return errs.OrNil()
}

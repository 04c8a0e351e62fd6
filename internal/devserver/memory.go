package devserver

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bnema/rumble-cli/internal/domain"
)

type memorySession struct {
	userID    string
	expiresAt time.Time
}

type MemoryBackend struct {
	mu       sync.RWMutex
	nextID   int
	users    map[string]UserRecord
	sessions map[string]memorySession
	robots   map[domain.RobotID]RobotRecord
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		nextID:   1,
		users:    map[string]UserRecord{},
		sessions: map[string]memorySession{},
		robots:   map[domain.RobotID]RobotRecord{},
	}
}

func (b *MemoryBackend) CreateUser(_ context.Context, user UserRecord) (UserRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, existing := range b.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return UserRecord{}, fmt.Errorf("email %s: %w", user.Email, errConflict)
		}
	}

	if user.ID == "" {
		user.ID = strconv.Itoa(b.nextID)
	}
	if _, exists := b.users[user.ID]; exists {
		return UserRecord{}, fmt.Errorf("user %s: %w", user.ID, errConflict)
	}
	if id, err := strconv.Atoi(user.ID); err == nil && id >= b.nextID {
		b.nextID = id + 1
	}

	b.users[user.ID] = user
	return user, nil
}

func (b *MemoryBackend) UserByID(_ context.Context, id string) (UserRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	user, ok := b.users[id]
	if !ok {
		return UserRecord{}, fmt.Errorf("user %s: %w", id, errNotFound)
	}
	return user, nil
}

func (b *MemoryBackend) UserByEmail(_ context.Context, email string) (UserRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, user := range b.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return UserRecord{}, fmt.Errorf("user %s: %w", email, errNotFound)
}

func (b *MemoryBackend) ListUsers(_ context.Context) ([]UserRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	users := make([]UserRecord, 0, len(b.users))
	for _, user := range b.users {
		users = append(users, user)
	}
	slices.SortFunc(users, func(a, b UserRecord) int {
		return compareIDs(a.ID, b.ID)
	})
	return users, nil
}

func (b *MemoryBackend) UpdateUser(_ context.Context, user UserRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.users[user.ID]; !ok {
		return fmt.Errorf("user %s: %w", user.ID, errNotFound)
	}
	for id, existing := range b.users {
		if id != user.ID && strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("email %s: %w", user.Email, errConflict)
		}
	}

	b.users[user.ID] = user
	return nil
}

func (b *MemoryBackend) DeleteUser(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, errNotFound)
	}
	delete(b.users, id)

	for token, session := range b.sessions {
		if session.userID == id {
			delete(b.sessions, token)
		}
	}
	for robotID, robot := range b.robots {
		if string(robot.Robot.OwnerID) == id {
			robot.Robot.OwnerID = ""
		}
		robot.SharedWith = slices.DeleteFunc(robot.SharedWith, func(userID string) bool { return userID == id })
		b.robots[robotID] = robot
	}

	return nil
}

func (b *MemoryBackend) CreateSession(_ context.Context, token, userID string, expiresAt time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sessions[token] = memorySession{userID: userID, expiresAt: expiresAt}
	return nil
}

func (b *MemoryBackend) SessionUser(_ context.Context, token string) (string, time.Time, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	session, ok := b.sessions[token]
	if !ok {
		return "", time.Time{}, fmt.Errorf("session: %w", errNotFound)
	}
	return session.userID, session.expiresAt, nil
}

func (b *MemoryBackend) DeleteSession(_ context.Context, token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.sessions, token)
	return nil
}

func (b *MemoryBackend) ListRobots(_ context.Context) ([]RobotRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	robots := make([]RobotRecord, 0, len(b.robots))
	for _, robot := range b.robots {
		robots = append(robots, cloneRobotRecord(robot))
	}
	slices.SortFunc(robots, func(a, b RobotRecord) int {
		return cmp.Compare(a.Robot.ID, b.Robot.ID)
	})
	return robots, nil
}

func (b *MemoryBackend) Robot(_ context.Context, id domain.RobotID) (RobotRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	robot, ok := b.robots[id]
	if !ok {
		return RobotRecord{}, fmt.Errorf("robot %s: %w", id, errNotFound)
	}
	return cloneRobotRecord(robot), nil
}

func (b *MemoryBackend) SaveRobot(_ context.Context, robot RobotRecord) error {
	if err := robot.Robot.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.robots[robot.Robot.ID] = cloneRobotRecord(robot)
	return nil
}

func (b *MemoryBackend) Close() error {
	return nil
}

func cloneRobotRecord(robot RobotRecord) RobotRecord {
	robot.SharedWith = slices.Clone(robot.SharedWith)
	if robot.Robot.Location != nil {
		location := *robot.Robot.Location
		robot.Robot.Location = &location
	}
	return robot
}

// compareIDs orders numeric ids numerically and everything else lexically.
func compareIDs(a, b string) int {
	left, leftErr := strconv.Atoi(a)
	right, rightErr := strconv.Atoi(b)
	if leftErr == nil && rightErr == nil {
		return cmp.Compare(left, right)
	}
	return cmp.Compare(a, b)
}

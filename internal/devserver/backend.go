package devserver

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/rumble-cli/internal/domain"
)

var (
	errNotFound = errors.New("record not found")
	errConflict = errors.New("record already exists")
)

type UserRecord struct {
	ID           string
	Name         string
	Email        string
	Username     string
	PasswordHash string
	RobotID      int
}

func (u UserRecord) Domain() domain.User {
	return domain.User{
		ID:       domain.UserID(u.ID),
		Name:     u.Name,
		Email:    u.Email,
		Username: u.Username,
		RobotID:  u.RobotID,
	}
}

type RobotRecord struct {
	Robot domain.Robot
	// PairingCode is the six digit id a user enters at signup to claim the robot.
	PairingCode int
	SharedWith  []string
}

func (r RobotRecord) sharedWith(userID string) bool {
	for _, id := range r.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// Backend persists users, sessions and robots for the dev server.
type Backend interface {
	CreateUser(ctx context.Context, user UserRecord) (UserRecord, error)
	UserByID(ctx context.Context, id string) (UserRecord, error)
	UserByEmail(ctx context.Context, email string) (UserRecord, error)
	ListUsers(ctx context.Context) ([]UserRecord, error)
	UpdateUser(ctx context.Context, user UserRecord) error
	DeleteUser(ctx context.Context, id string) error

	CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) error
	SessionUser(ctx context.Context, token string) (string, time.Time, error)
	DeleteSession(ctx context.Context, token string) error

	ListRobots(ctx context.Context) ([]RobotRecord, error)
	Robot(ctx context.Context, id domain.RobotID) (RobotRecord, error)
	SaveRobot(ctx context.Context, robot RobotRecord) error

	Close() error
}

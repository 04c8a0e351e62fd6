package ports

import (
	"context"

	"github.com/bnema/rumble-cli/internal/domain"
)

type AuthResult struct {
	User domain.User
	// Token is empty when the server does not issue one.
	Token string
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Register(ctx context.Context, registration domain.Registration) (AuthResult, error)
	VerifySession(ctx context.Context, token string) error
	GetUser(ctx context.Context, caller domain.Caller, id domain.UserID) (domain.User, error)
	UpdateUser(ctx context.Context, caller domain.Caller, currentPassword string, update domain.UserUpdate) (domain.User, error)
	DeleteUser(ctx context.Context, caller domain.Caller) error
	RequestPasswordReset(ctx context.Context, email string) error
}

type FleetAPI interface {
	ListOwnedRobots(ctx context.Context, caller domain.Caller) ([]domain.Robot, error)
	GetRobot(ctx context.Context, caller domain.Caller, id domain.RobotID) (domain.Robot, error)
	SendCommand(ctx context.Context, caller domain.Caller, id domain.RobotID, command domain.Command) (domain.Robot, error)
	DashboardStats(ctx context.Context, caller domain.Caller) (domain.DashboardStats, error)
}

// SharedRobotSource lists robots other principals made visible to the caller.
type SharedRobotSource interface {
	ListShared(ctx context.Context, caller domain.Caller) ([]domain.Robot, error)
}

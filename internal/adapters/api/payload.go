package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/rumble-cli/internal/domain"
)

// ID accepts both numeric and string identifiers; the upstream backend uses integer user ids.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(value)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(number.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id != "" && strings.Trim(string(id), "0123456789") == "" {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

type UserJSON struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	EmailID  string `json:"emailId"`
	Username string `json:"username"`
	RobotID  int    `json:"robotId"`
}

func (u UserJSON) Domain() domain.User {
	return domain.User{
		ID:       domain.UserID(u.ID),
		Name:     u.Name,
		Email:    u.EmailID,
		Username: u.Username,
		RobotID:  u.RobotID,
	}
}

func UserFromDomain(user domain.User) UserJSON {
	return UserJSON{
		ID:       ID(user.ID),
		Name:     user.Name,
		EmailID:  user.Email,
		Username: user.Username,
		RobotID:  user.RobotID,
	}
}

type RegisterRequest struct {
	Name         string `json:"name"`
	EmailID      string `json:"emailId"`
	UserPassword string `json:"userPassword"`
	Username     string `json:"username"`
	RobotID      int    `json:"robotId"`
}

// RegisterResponse is {"message":"success"|"failure"}; newer servers add the created id.
type RegisterResponse struct {
	Message string    `json:"message"`
	ID      ID        `json:"id,omitempty"`
	User    *UserJSON `json:"user,omitempty"`
}

type UpdateUserRequest struct {
	Name         string `json:"name,omitempty"`
	EmailID      string `json:"emailId,omitempty"`
	Username     string `json:"username,omitempty"`
	UserPassword string `json:"userPassword,omitempty"`
}

type PasswordResetRequest struct {
	EmailID string `json:"emailId"`
}

type LocationJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RobotJSON struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Status         string        `json:"status"`
	BatteryLevel   int           `json:"batteryLevel"`
	Location       *LocationJSON `json:"location,omitempty"`
	LastCollection *time.Time    `json:"lastCollection,omitempty"`
	TrashCollected float64       `json:"trashCollected"`
	NextScheduled  *time.Time    `json:"nextScheduled,omitempty"`
	OwnerID        ID            `json:"ownerId,omitempty"`
	SharedBy       string        `json:"sharedBy,omitempty"`
}

func (r RobotJSON) Domain() (domain.Robot, error) {
	robot := domain.Robot{
		ID:               domain.RobotID(r.ID),
		Name:             r.Name,
		Status:           domain.RobotStatus(strings.ToLower(r.Status)),
		BatteryLevel:     r.BatteryLevel,
		TrashCollectedKg: r.TrashCollected,
		OwnerID:          domain.UserID(r.OwnerID),
		SharedBy:         r.SharedBy,
	}
	if r.Location != nil {
		robot.Location = &domain.Location{Lat: r.Location.Lat, Lng: r.Location.Lng}
	}
	if r.LastCollection != nil {
		robot.LastCollection = r.LastCollection.UTC()
	}
	if r.NextScheduled != nil {
		robot.NextScheduled = r.NextScheduled.UTC()
	}

	if err := robot.Validate(); err != nil {
		return domain.Robot{}, err
	}
	return robot, nil
}

func RobotFromDomain(robot domain.Robot) RobotJSON {
	payload := RobotJSON{
		ID:             string(robot.ID),
		Name:           robot.Name,
		Status:         string(robot.Status),
		BatteryLevel:   robot.BatteryLevel,
		TrashCollected: robot.TrashCollectedKg,
		OwnerID:        ID(robot.OwnerID),
		SharedBy:       robot.SharedBy,
	}
	if robot.Location != nil {
		payload.Location = &LocationJSON{Lat: robot.Location.Lat, Lng: robot.Location.Lng}
	}
	if !robot.LastCollection.IsZero() {
		last := robot.LastCollection
		payload.LastCollection = &last
	}
	if !robot.NextScheduled.IsZero() {
		next := robot.NextScheduled
		payload.NextScheduled = &next
	}

	return payload
}

type CommandRequest struct {
	Command string `json:"command"`
}

type CommandResponse struct {
	Success bool       `json:"success"`
	Robot   *RobotJSON `json:"robot"`
}

type StatsJSON struct {
	ActiveRobots        int     `json:"activeRobots"`
	TotalRobots         int     `json:"totalRobots"`
	TotalTrashCollected float64 `json:"totalTrashCollected"`
	AverageBatteryLevel float64 `json:"averageBatteryLevel"`
	RobotsInMaintenance int     `json:"robotsInMaintenance"`
	RobotsCharging      int     `json:"robotsCharging"`
}

func (s StatsJSON) Domain() domain.DashboardStats {
	return domain.DashboardStats{
		ActiveRobots:          s.ActiveRobots,
		TotalRobots:           s.TotalRobots,
		TotalTrashCollectedKg: s.TotalTrashCollected,
		AverageBatteryLevel:   s.AverageBatteryLevel,
		RobotsInMaintenance:   s.RobotsInMaintenance,
		RobotsCharging:        s.RobotsCharging,
	}
}

func StatsFromDomain(stats domain.DashboardStats) StatsJSON {
	return StatsJSON{
		ActiveRobots:        stats.ActiveRobots,
		TotalRobots:         stats.TotalRobots,
		TotalTrashCollected: stats.TotalTrashCollectedKg,
		AverageBatteryLevel: stats.AverageBatteryLevel,
		RobotsInMaintenance: stats.RobotsInMaintenance,
		RobotsCharging:      stats.RobotsCharging,
	}
}

type messagePayload struct {
	Message string `json:"message"`
}

func decodeRobots(op string, payload []RobotJSON) ([]domain.Robot, error) {
	robots := make([]domain.Robot, 0, len(payload))
	for _, item := range payload {
		robot, err := item.Domain()
		if err != nil {
			return nil, &domain.Error{Kind: domain.KindNetworkOrServer, Op: op, Message: err.Error(), Cause: err}
		}
		robots = append(robots, robot)
	}

	return robots, nil
}

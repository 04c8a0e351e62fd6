package domain

import (
	"fmt"
	"time"
)

type RobotID string

type RobotStatus string

const (
	RobotStatusActive      RobotStatus = "active"
	RobotStatusCharging    RobotStatus = "charging"
	RobotStatusMaintenance RobotStatus = "maintenance"
	RobotStatusIdle        RobotStatus = "idle"
)

func (s RobotStatus) Valid() bool {
	switch s {
	case RobotStatusActive, RobotStatusCharging, RobotStatusMaintenance, RobotStatusIdle:
		return true
	default:
		return false
	}
}

func (s RobotStatus) Label() string {
	switch s {
	case RobotStatusActive:
		return "Active"
	case RobotStatusCharging:
		return "Charging"
	case RobotStatusMaintenance:
		return "Maintenance"
	case RobotStatusIdle:
		return "Idle"
	default:
		return string(s)
	}
}

type Location struct {
	Lat float64
	Lng float64
}

type Robot struct {
	ID               RobotID
	Name             string
	Status           RobotStatus
	BatteryLevel     int
	Location         *Location
	LastCollection   time.Time
	TrashCollectedKg float64
	NextScheduled    time.Time
	OwnerID          UserID
	// SharedBy names the principal that shared the robot; empty for owned robots.
	SharedBy string
}

func (r Robot) Shared() bool {
	return r.SharedBy != ""
}

func (r Robot) OwnedBy(id UserID) bool {
	return !r.Shared() && r.OwnerID != "" && r.OwnerID == id
}

func (r Robot) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("robot id is required")
	}
	if !r.Status.Valid() {
		return fmt.Errorf("robot %s: unsupported status %q", r.ID, r.Status)
	}
	if r.BatteryLevel < 0 || r.BatteryLevel > 100 {
		return fmt.Errorf("robot %s: battery level %d out of range [0,100]", r.ID, r.BatteryLevel)
	}

	return nil
}

type BatteryBand string

const (
	BatteryHigh   BatteryBand = "high"
	BatteryMedium BatteryBand = "medium"
	BatteryLow    BatteryBand = "low"
)

func BatteryBandOf(level int) BatteryBand {
	switch {
	case level > 70:
		return BatteryHigh
	case level > 30:
		return BatteryMedium
	default:
		return BatteryLow
	}
}

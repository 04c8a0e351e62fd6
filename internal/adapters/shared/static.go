package shared

import (
	"context"
	"time"

	"github.com/bnema/rumble-cli/internal/domain"
)

// Static serves a fixed list of shared robots, for servers that have no sharing endpoint.
type Static struct {
	Robots []domain.Robot
}

// NewDemo returns the demo list shown when --demo-shared is set.
func NewDemo() Static {
	return Static{Robots: []domain.Robot{
		{
			ID:               "RUMBLE-101",
			Name:             "Campus Sweeper",
			Status:           domain.RobotStatusActive,
			BatteryLevel:     74,
			Location:         &domain.Location{Lat: 42.027433, Lng: -93.648712},
			LastCollection:   time.Date(2025, 1, 16, 8, 10, 0, 0, time.UTC),
			TrashCollectedKg: 19.4,
			NextScheduled:    time.Date(2025, 1, 17, 10, 0, 0, 0, time.UTC),
			SharedBy:         "Ames Parks Department",
		},
		{
			ID:               "RUMBLE-102",
			Name:             "Lakeside Collector",
			Status:           domain.RobotStatusIdle,
			BatteryLevel:     41,
			Location:         &domain.Location{Lat: 42.021870, Lng: -93.652140},
			LastCollection:   time.Date(2025, 1, 15, 14, 20, 0, 0, time.UTC),
			TrashCollectedKg: 12.8,
			NextScheduled:    time.Date(2025, 1, 18, 7, 30, 0, 0, time.UTC),
			SharedBy:         "Iowa State Sustainability Club",
		},
	}}
}

func (s Static) ListShared(_ context.Context, caller domain.Caller) ([]domain.Robot, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	robots := make([]domain.Robot, 0, len(s.Robots))
	for _, robot := range s.Robots {
		if robot.Location != nil {
			location := *robot.Location
			robot.Location = &location
		}
		robots = append(robots, robot)
	}

	return robots, nil
}

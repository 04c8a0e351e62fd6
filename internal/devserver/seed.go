package devserver

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/bnema/rumble-cli/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

type Seed struct {
	Users  []SeedUser  `yaml:"users"`
	Robots []SeedRobot `yaml:"robots"`
}

type SeedUser struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	RobotID  int    `yaml:"robotId"`
}

type SeedLocation struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

type SeedRobot struct {
	ID             string        `yaml:"id"`
	Name           string        `yaml:"name"`
	Status         string        `yaml:"status"`
	BatteryLevel   int           `yaml:"batteryLevel"`
	Location       *SeedLocation `yaml:"location"`
	LastCollection time.Time     `yaml:"lastCollection"`
	TrashCollected float64       `yaml:"trashCollected"`
	NextScheduled  time.Time     `yaml:"nextScheduled"`
	Owner          string        `yaml:"owner"`
	PairingCode    int           `yaml:"pairingCode"`
	SharedWith     []string      `yaml:"sharedWith"`
}

// LoadSeed reads fixtures from path, or the built-in fixtures when path is empty.
func LoadSeed(path string) (Seed, error) {
	raw := defaultSeed
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Seed{}, fmt.Errorf("read seed file: %w", err)
		}
		raw = content
	}

	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	return seed, nil
}

// Apply loads seed into backend. Records that already exist are left alone, so reapplying
// to a persistent backend is safe.
func (s Seed) Apply(ctx context.Context, backend Backend, hashCost int) error {
	for _, user := range s.Users {
		if _, err := backend.UserByEmail(ctx, user.Email); err == nil {
			continue
		} else if !errors.Is(err, errNotFound) {
			return fmt.Errorf("seed user %s: %w", user.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), hashCost)
		if err != nil {
			return fmt.Errorf("hash seed password for %s: %w", user.Email, err)
		}
		if _, err := backend.CreateUser(ctx, UserRecord{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			Username:     user.Username,
			PasswordHash: string(hash),
			RobotID:      user.RobotID,
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", user.Email, err)
		}
	}

	for _, robot := range s.Robots {
		if _, err := backend.Robot(ctx, domain.RobotID(robot.ID)); err == nil {
			continue
		} else if !errors.Is(err, errNotFound) {
			return fmt.Errorf("seed robot %s: %w", robot.ID, err)
		}

		record := RobotRecord{
			Robot: domain.Robot{
				ID:               domain.RobotID(robot.ID),
				Name:             robot.Name,
				Status:           domain.RobotStatus(robot.Status),
				BatteryLevel:     robot.BatteryLevel,
				LastCollection:   robot.LastCollection.UTC(),
				TrashCollectedKg: robot.TrashCollected,
				NextScheduled:    robot.NextScheduled.UTC(),
				OwnerID:          domain.UserID(robot.Owner),
			},
			PairingCode: robot.PairingCode,
			SharedWith:  robot.SharedWith,
		}
		if robot.Location != nil {
			record.Robot.Location = &domain.Location{Lat: robot.Location.Lat, Lng: robot.Location.Lng}
		}
		if err := backend.SaveRobot(ctx, record); err != nil {
			return fmt.Errorf("seed robot %s: %w", robot.ID, err)
		}
	}

	return nil
}

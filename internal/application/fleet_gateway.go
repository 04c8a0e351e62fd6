package application

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/bnema/rumble-cli/internal/domain"
	"github.com/bnema/rumble-cli/internal/ports"
)

// Dashboard is everything the dashboard screen shows in one load.
type Dashboard struct {
	Owned     []domain.Robot
	Shared    []domain.Robot
	Stats     domain.DashboardStats
	MapCenter domain.Location
}

// FleetGateway fetches robots and sends commands on behalf of a caller, keeping an in-memory
// replica of the last server-confirmed state.
//
// Every request takes a sequence number when it is issued. A response only replaces replica
// data that no later-issued response has written yet, whichever endpoint that response came from.
type FleetGateway struct {
	api    ports.FleetAPI
	shared ports.SharedRobotSource
	logger *slog.Logger

	mu           sync.Mutex
	robots       map[domain.RobotID]domain.Robot
	stats        *domain.DashboardStats
	seq          uint64
	applied      map[domain.RobotID]uint64
	statsApplied uint64
}

func NewFleetGateway(api ports.FleetAPI, shared ports.SharedRobotSource, logger *slog.Logger) *FleetGateway {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &FleetGateway{
		api:     api,
		shared:  shared,
		logger:  logger,
		robots:  map[domain.RobotID]domain.Robot{},
		applied: map[domain.RobotID]uint64{},
	}
}

func (g *FleetGateway) ListOwnedRobots(ctx context.Context, caller domain.Caller) ([]domain.Robot, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	seq := g.nextSequence()
	robots, err := g.api.ListOwnedRobots(ctx, caller)
	if err != nil {
		g.logger.Debug("list owned robots failed", "kind", domain.KindOf(err), "error", err)
		return nil, err
	}

	g.replaceSet(robots, false, seq)
	return sortedRobots(robots), nil
}

func (g *FleetGateway) ListSharedRobots(ctx context.Context, caller domain.Caller) ([]domain.Robot, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	if g.shared == nil {
		return nil, nil
	}

	seq := g.nextSequence()
	robots, err := g.shared.ListShared(ctx, caller)
	if err != nil {
		g.logger.Debug("list shared robots failed", "kind", domain.KindOf(err), "error", err)
		return nil, err
	}

	g.replaceSet(robots, true, seq)
	return sortedRobots(robots), nil
}

func (g *FleetGateway) GetRobot(ctx context.Context, caller domain.Caller, id domain.RobotID) (domain.Robot, error) {
	if err := caller.Validate(); err != nil {
		return domain.Robot{}, err
	}
	if id == "" {
		return domain.Robot{}, domain.ValidationErrors{{Field: "robotId", Message: "Robot ID is required"}}
	}

	seq := g.nextSequence()
	robot, err := g.api.GetRobot(ctx, caller, id)
	if err != nil {
		return domain.Robot{}, err
	}
	if robot.ID == "" {
		robot.ID = id
	}

	g.apply(robot, seq)
	return robot, nil
}

func (g *FleetGateway) DashboardStats(ctx context.Context, caller domain.Caller) (domain.DashboardStats, error) {
	if err := caller.Validate(); err != nil {
		return domain.DashboardStats{}, err
	}

	seq := g.nextSequence()
	stats, err := g.api.DashboardStats(ctx, caller)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	g.mu.Lock()
	if seq > g.statsApplied {
		g.statsApplied = seq
		g.stats = &stats
	} else {
		g.logger.Debug("discarded stale stats response", "seq", seq)
	}
	g.mu.Unlock()
	return stats, nil
}

// SendCommand issues command against robot id. The returned robot is the server-confirmed
// state; the replica only takes it when no newer request for the same robot has been applied.
// Stats are refreshed after a successful command; a failed refresh is logged, not returned.
func (g *FleetGateway) SendCommand(ctx context.Context, caller domain.Caller, id domain.RobotID, rawCommand string) (domain.Robot, error) {
	command, err := domain.ParseCommand(rawCommand)
	if err != nil {
		return domain.Robot{}, err
	}
	if err := caller.Validate(); err != nil {
		return domain.Robot{}, err
	}
	if id == "" {
		return domain.Robot{}, domain.ValidationErrors{{Field: "robotId", Message: "Robot ID is required"}}
	}

	seq := g.nextSequence()
	g.logger.Debug("sending command", "robot", id, "command", command, "seq", seq)

	robot, err := g.api.SendCommand(ctx, caller, id, command)
	if err != nil {
		g.logger.Info("command rejected", "robot", id, "command", command, "kind", domain.KindOf(err), "error", err)
		return domain.Robot{}, err
	}
	if robot.ID == "" {
		robot.ID = id
	}

	if !g.apply(robot, seq) {
		g.logger.Debug("discarded stale command response", "robot", id, "seq", seq)
	}

	if _, err := g.DashboardStats(ctx, caller); err != nil {
		g.logger.Warn("stats refresh after command failed", "robot", id, "error", err)
	}

	return robot, nil
}

// Dashboard loads owned robots, shared robots and stats in that order. A shared source
// that reports NotFound is treated as an empty list.
func (g *FleetGateway) Dashboard(ctx context.Context, caller domain.Caller) (Dashboard, error) {
	owned, err := g.ListOwnedRobots(ctx, caller)
	if err != nil {
		return Dashboard{}, err
	}

	shared, err := g.ListSharedRobots(ctx, caller)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return Dashboard{}, err
		}
		g.logger.Debug("shared robots unavailable", "error", err)
		shared = nil
	}

	stats, err := g.DashboardStats(ctx, caller)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Owned:     owned,
		Shared:    shared,
		Stats:     stats,
		MapCenter: domain.MapCenter(append(slices.Clone(owned), shared...), ""),
	}, nil
}

// Robots returns the replica sorted by id.
func (g *FleetGateway) Robots() []domain.Robot {
	g.mu.Lock()
	defer g.mu.Unlock()

	robots := make([]domain.Robot, 0, len(g.robots))
	for _, robot := range g.robots {
		robots = append(robots, robot)
	}
	return sortedRobots(robots)
}

func (g *FleetGateway) Robot(id domain.RobotID) (domain.Robot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	robot, ok := g.robots[id]
	return robot, ok
}

func (g *FleetGateway) Stats() (domain.DashboardStats, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stats == nil {
		return domain.DashboardStats{}, false
	}
	return *g.stats, true
}

func (g *FleetGateway) nextSequence() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	return g.seq
}

func (g *FleetGateway) apply(robot domain.Robot, seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if seq <= g.applied[robot.ID] {
		return false
	}
	g.applied[robot.ID] = seq
	g.robots[robot.ID] = robot
	return true
}

// replaceSet swaps every replica entry of one ownership class for the fetched list. Entries
// written by a request issued after seq are left alone.
func (g *FleetGateway) replaceSet(robots []domain.Robot, shared bool, seq uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for id, robot := range g.robots {
		if robot.Shared() == shared && g.applied[id] < seq {
			delete(g.robots, id)
		}
	}
	for _, robot := range robots {
		if g.applied[robot.ID] > seq {
			g.logger.Debug("kept newer robot state over list entry", "robot", robot.ID, "seq", seq)
			continue
		}
		g.applied[robot.ID] = seq
		g.robots[robot.ID] = robot
	}
}

func sortedRobots(robots []domain.Robot) []domain.Robot {
	sorted := slices.Clone(robots)
	slices.SortFunc(sorted, func(a, b domain.Robot) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}

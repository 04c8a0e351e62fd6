package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bnema/rumble-cli/internal/domain"
)

func (c Client) ListOwnedRobots(ctx context.Context, caller domain.Caller) ([]domain.Robot, error) {
	var payload []RobotJSON
	if _, err := c.doJSON(ctx, call{
		op:     "list owned robots",
		method: http.MethodGet,
		path:   "/robots",
		query:  ownerQuery(caller),
		token:  caller.Token,
	}, &payload); err != nil {
		return nil, err
	}

	return decodeRobots("list owned robots", payload)
}

// ListShared makes Client a shared-robot source backed by /robots/shared.
func (c Client) ListShared(ctx context.Context, caller domain.Caller) ([]domain.Robot, error) {
	var payload []RobotJSON
	if _, err := c.doJSON(ctx, call{
		op:     "list shared robots",
		method: http.MethodGet,
		path:   "/robots/shared",
		token:  caller.Token,
	}, &payload); err != nil {
		return nil, err
	}

	return decodeRobots("list shared robots", payload)
}

func (c Client) GetRobot(ctx context.Context, caller domain.Caller, id domain.RobotID) (domain.Robot, error) {
	var payload RobotJSON
	if _, err := c.doJSON(ctx, call{
		op:     "get robot",
		method: http.MethodGet,
		path:   "/robots/" + url.PathEscape(string(id)),
		token:  caller.Token,
	}, &payload); err != nil {
		return domain.Robot{}, err
	}

	robots, err := decodeRobots("get robot", []RobotJSON{payload})
	if err != nil {
		return domain.Robot{}, err
	}
	return robots[0], nil
}

func (c Client) SendCommand(ctx context.Context, caller domain.Caller, id domain.RobotID, command domain.Command) (domain.Robot, error) {
	var payload CommandResponse
	if _, err := c.doJSON(ctx, call{
		op:      "send command",
		method:  http.MethodPost,
		path:    "/robots/" + url.PathEscape(string(id)) + "/command",
		token:   caller.Token,
		body:    CommandRequest{Command: string(command)},
		command: true,
	}, &payload); err != nil {
		return domain.Robot{}, err
	}
	if payload.Robot == nil {
		return domain.Robot{}, &domain.Error{Kind: domain.KindNetworkOrServer, Op: "send command", Message: "command response missing robot"}
	}

	robots, err := decodeRobots("send command", []RobotJSON{*payload.Robot})
	if err != nil {
		return domain.Robot{}, err
	}
	return robots[0], nil
}

func (c Client) DashboardStats(ctx context.Context, caller domain.Caller) (domain.DashboardStats, error) {
	var payload StatsJSON
	if _, err := c.doJSON(ctx, call{
		op:     "dashboard stats",
		method: http.MethodGet,
		path:   "/robots/stats",
		query:  ownerQuery(caller),
		token:  caller.Token,
	}, &payload); err != nil {
		return domain.DashboardStats{}, err
	}

	return payload.Domain(), nil
}

package devserver

import (
	"net/http"

	"github.com/bnema/rumble-cli/internal/domain"
)

const minStartBattery = 20

type commandRejection struct {
	status  int
	message string
}

// applyCommand returns robot after command, or the reason the robot refuses it.
func applyCommand(robot domain.Robot, command domain.Command) (domain.Robot, *commandRejection) {
	switch command {
	case domain.CommandStart:
		if robot.Status == domain.RobotStatusMaintenance {
			return robot, &commandRejection{status: http.StatusConflict, message: "Robot is in maintenance"}
		}
		if robot.Status == domain.RobotStatusCharging && robot.BatteryLevel < minStartBattery {
			return robot, &commandRejection{status: http.StatusConflict, message: "Battery level too low to start operation"}
		}
		robot.Status = domain.RobotStatusActive
	case domain.CommandStop:
		robot.Status = domain.RobotStatusIdle
	case domain.CommandCharge:
		robot.Status = domain.RobotStatusCharging
	case domain.CommandMaintenance:
		robot.Status = domain.RobotStatusMaintenance
	default:
		return robot, &commandRejection{status: http.StatusBadRequest, message: "Unknown command: " + string(command)}
	}

	return robot, nil
}

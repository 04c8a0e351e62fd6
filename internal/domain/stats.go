package domain

type DashboardStats struct {
	ActiveRobots          int
	TotalRobots           int
	TotalTrashCollectedKg float64
	AverageBatteryLevel   float64
	RobotsInMaintenance   int
	RobotsCharging        int
}

// ComputeStats aggregates over the given robots; callers pass the owned set only.
func ComputeStats(robots []Robot) DashboardStats {
	stats := DashboardStats{TotalRobots: len(robots)}
	if len(robots) == 0 {
		return stats
	}

	batteryTotal := 0
	for _, robot := range robots {
		switch robot.Status {
		case RobotStatusActive:
			stats.ActiveRobots++
		case RobotStatusMaintenance:
			stats.RobotsInMaintenance++
		case RobotStatusCharging:
			stats.RobotsCharging++
		}
		stats.TotalTrashCollectedKg += robot.TrashCollectedKg
		batteryTotal += robot.BatteryLevel
	}
	stats.AverageBatteryLevel = float64(batteryTotal) / float64(len(robots))

	return stats
}

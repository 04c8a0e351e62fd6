package domain

var DefaultMapCenter = Location{Lat: 42.0308, Lng: -93.6319}

func MapCenter(robots []Robot, selected RobotID) Location {
	if selected != "" {
		for _, robot := range robots {
			if robot.ID == selected && robot.Location != nil {
				return *robot.Location
			}
		}
	}

	for _, robot := range robots {
		if robot.Location != nil {
			return *robot.Location
		}
	}

	return DefaultMapCenter
}

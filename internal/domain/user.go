package domain

type UserID string

type User struct {
	ID       UserID
	Name     string
	Email    string
	Username string
	// RobotID is the six digit pairing code of the robot assigned at signup.
	RobotID int
}

type UserUpdate struct {
	Name     string
	Email    string
	Username string
	Password string
}

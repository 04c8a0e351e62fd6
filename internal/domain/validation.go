package domain

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	PasswordMinLength  = 6
	UsernameMinLength  = 3
	RobotPairingDigits = 6
	ReservedRobotID    = "000000"

	minRobotPairingID = 100_000
	maxRobotPairingID = 999_999
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Registration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Username        string
	// RobotID zero means the pairing id is generated at signup.
	RobotID int
}

// ValidRobotPairingID reports whether id is a six digit pairing id. Pairing ids travel as
// numbers, so a leading zero would shorten them.
func ValidRobotPairingID(id int) bool {
	return id >= minRobotPairingID && id <= maxRobotPairingID
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidateCredentials(email, password string) error {
	var errs ValidationErrors
	errs = appendEmailErrors(errs, email)
	if password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	}

	return errs.OrNil()
}

func ValidatePasswordResetEmail(email string) error {
	var errs ValidationErrors
	return appendEmailErrors(errs, email).OrNil()
}

func (r Registration) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	}
	errs = appendEmailErrors(errs, r.Email)

	switch {
	case r.Password == "":
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	case len(r.Password) < PasswordMinLength:
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least " + strconv.Itoa(PasswordMinLength) + " characters"})
	}
	if r.ConfirmPassword != "" && r.ConfirmPassword != r.Password {
		errs = append(errs, FieldError{Field: "confirmPassword", Message: "Passwords don't match"})
	}

	username := strings.TrimSpace(r.Username)
	switch {
	case username == "":
		errs = append(errs, FieldError{Field: "username", Message: "Username is required"})
	case len(username) < UsernameMinLength:
		errs = append(errs, FieldError{Field: "username", Message: "Username must be at least " + strconv.Itoa(UsernameMinLength) + " characters"})
	}

	if r.RobotID != 0 && !ValidRobotPairingID(r.RobotID) {
		errs = append(errs, FieldError{Field: "robotId", Message: "Robot ID must be 6 digits"})
	}

	return errs.OrNil()
}

// ParseRobotPairingID accepts an empty value (generate one) or exactly six digits with no
// leading zero. 000000 is reserved.
func ParseRobotPairingID(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	if trimmed == ReservedRobotID {
		return 0, ValidationErrors{{Field: "robotId", Message: "Robot ID 000000 is reserved"}}
	}

	invalid := ValidationErrors{{Field: "robotId", Message: "Robot ID must be 6 digits"}}
	if len(trimmed) != RobotPairingDigits || strings.TrimLeft(trimmed, "0123456789") != "" {
		return 0, invalid
	}

	id, err := strconv.Atoi(trimmed)
	if err != nil || !ValidRobotPairingID(id) {
		return 0, invalid
	}

	return id, nil
}

func appendEmailErrors(errs ValidationErrors, email string) ValidationErrors {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return append(errs, FieldError{Field: "email", Message: "Email is required"})
	}
	if !ValidEmail(trimmed) {
		return append(errs, FieldError{Field: "email", Message: "Please enter a valid email address"})
	}

	return errs
}

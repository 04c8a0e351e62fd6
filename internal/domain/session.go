package domain

import (
	"errors"
	"strings"
	"time"
)

var errHalfSession = errors.New("session user and token must be set together")

type Session struct {
	User  *User
	Token string
	// SignedInAt is zero for sessions restored from storage written before it was recorded.
	SignedInAt time.Time
}

func NewSession(user *User, token string) (Session, error) {
	hasUser := user != nil
	hasToken := strings.TrimSpace(token) != ""
	if hasUser != hasToken {
		return Session{}, errHalfSession
	}

	return Session{User: user, Token: token}, nil
}

func (s Session) Active() bool {
	return s.User != nil && s.Token != ""
}

// Caller returns the identity robot requests are made with.
func (s Session) Caller() Caller {
	if !s.Active() {
		return Caller{}
	}

	return Caller{Token: s.Token, UserID: s.User.ID}
}

type Caller struct {
	Token  string
	UserID UserID
}

func (c Caller) Validate() error {
	token := strings.TrimSpace(c.Token)
	if token == "" {
		return NewError(KindUnauthorized, "", "missing session token")
	}
	if strings.ContainsAny(token, " \t\r\n") {
		return NewError(KindUnauthorized, "", "malformed session token")
	}

	return nil
}

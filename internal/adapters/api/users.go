package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/rumble-cli/internal/domain"
	"github.com/bnema/rumble-cli/internal/ports"
)

const registerFailureMessage = "Registration failed. Robot ID may be invalid or already assigned."

// The upstream backend answers 404 for an unknown email and 400 for a wrong password.
var loginStatusKinds = map[int]domain.ErrorKind{
	http.StatusBadRequest: domain.KindUnauthorized,
	http.StatusNotFound:   domain.KindUnauthorized,
}

func (c Client) Login(ctx context.Context, email, password string) (ports.AuthResult, error) {
	var payload UserJSON
	header, err := c.doJSON(ctx, call{
		op:          "login",
		method:      http.MethodGet,
		path:        "/users/u/" + url.PathEscape(email) + "/" + url.PathEscape(password) + "/",
		statusKinds: loginStatusKinds,
	}, &payload)
	if err != nil {
		return ports.AuthResult{}, err
	}

	return ports.AuthResult{
		User:  payload.Domain(),
		Token: strings.TrimSpace(header.Get(SessionTokenHeader)),
	}, nil
}

func (c Client) Register(ctx context.Context, registration domain.Registration) (ports.AuthResult, error) {
	request := RegisterRequest{
		Name:         registration.Name,
		EmailID:      registration.Email,
		UserPassword: registration.Password,
		Username:     registration.Username,
		RobotID:      registration.RobotID,
	}

	var payload RegisterResponse
	header, err := c.doJSON(ctx, call{
		op:     "register",
		method: http.MethodPost,
		path:   "/users/",
		body:   request,
	}, &payload)
	if err != nil {
		return ports.AuthResult{}, err
	}
	if strings.EqualFold(payload.Message, "failure") {
		return ports.AuthResult{}, &domain.Error{
			Kind:    domain.KindPreconditionFailed,
			Op:      "register",
			Message: registerFailureMessage,
		}
	}

	user := domain.User{
		ID:       domain.UserID(registration.Username),
		Name:     registration.Name,
		Email:    registration.Email,
		Username: registration.Username,
		RobotID:  registration.RobotID,
	}
	switch {
	case payload.User != nil:
		user = payload.User.Domain()
	case payload.ID != "":
		user.ID = domain.UserID(payload.ID)
	}

	return ports.AuthResult{User: user, Token: strings.TrimSpace(header.Get(SessionTokenHeader))}, nil
}

func (c Client) VerifySession(ctx context.Context, token string) error {
	_, err := c.do(ctx, call{
		op:     "verify session",
		method: http.MethodGet,
		path:   "/session/verify",
		token:  token,
	})
	return err
}

func (c Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var payload []UserJSON
	if _, err := c.doJSON(ctx, call{op: "list users", method: http.MethodGet, path: "/users/"}, &payload); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(payload))
	for _, item := range payload {
		users = append(users, item.Domain())
	}
	return users, nil
}

func (c Client) GetUser(ctx context.Context, caller domain.Caller, id domain.UserID) (domain.User, error) {
	var payload UserJSON
	if _, err := c.doJSON(ctx, call{
		op:     "get user",
		method: http.MethodGet,
		path:   "/users/" + url.PathEscape(string(id)) + "/",
		token:  caller.Token,
	}, &payload); err != nil {
		return domain.User{}, err
	}

	return payload.Domain(), nil
}

// UpdateUser changes the caller's profile. The upstream backend answers an empty body when
// the current password does not match.
func (c Client) UpdateUser(ctx context.Context, caller domain.Caller, currentPassword string, update domain.UserUpdate) (domain.User, error) {
	resp, err := c.do(ctx, call{
		op:     "update user",
		method: http.MethodPut,
		path:   "/users/" + url.PathEscape(string(caller.UserID)) + "/" + url.PathEscape(currentPassword),
		token:  caller.Token,
		body: UpdateUserRequest{
			Name:         update.Name,
			EmailID:      update.Email,
			Username:     update.Username,
			UserPassword: update.Password,
		},
	})
	if err != nil {
		return domain.User{}, err
	}

	body := bytes.TrimSpace(resp.body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return domain.User{}, &domain.Error{Kind: domain.KindUnauthorized, Op: "update user", Message: "current password is incorrect"}
	}

	var payload UserJSON
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.User{}, &domain.Error{Kind: domain.KindNetworkOrServer, Op: "update user", Message: "decode response", Cause: err}
	}

	return payload.Domain(), nil
}

func (c Client) DeleteUser(ctx context.Context, caller domain.Caller) error {
	_, err := c.do(ctx, call{
		op:     "delete user",
		method: http.MethodDelete,
		path:   "/users/" + url.PathEscape(string(caller.UserID)),
		token:  caller.Token,
	})
	return err
}

func (c Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := c.do(ctx, call{
		op:     "request password reset",
		method: http.MethodPost,
		path:   "/users/reset/",
		body:   PasswordResetRequest{EmailID: email},
	})
	return err
}

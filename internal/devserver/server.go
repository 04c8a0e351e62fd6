package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/bnema/rumble-cli/internal/adapters/api"
	"github.com/bnema/rumble-cli/internal/domain"
)

const (
	defaultSessionTTL = 24 * time.Hour
	maxRequestBytes   = 1 << 20

	messageSuccess = "success"
	messageFailure = "failure"
)

type Options struct {
	Backend Backend
	Logger  *slog.Logger
	Now     func() time.Time
	// HashCost is the bcrypt cost for new passwords; zero means bcrypt.DefaultCost.
	HashCost   int
	SessionTTL time.Duration
}

// Server is a reference implementation of the RUMBLE HTTP API for local development and tests.
type Server struct {
	backend    Backend
	logger     *slog.Logger
	now        func() time.Time
	hashCost   int
	sessionTTL time.Duration
}

type messageResponse struct {
	Message string `json:"message"`
}

func New(opts Options) *Server {
	server := &Server{
		backend:    opts.Backend,
		logger:     opts.Logger,
		now:        opts.Now,
		hashCost:   opts.HashCost,
		sessionTTL: opts.SessionTTL,
	}
	if server.backend == nil {
		server.backend = NewMemoryBackend()
	}
	if server.logger == nil {
		server.logger = slog.New(slog.DiscardHandler)
	}
	if server.now == nil {
		server.now = time.Now
	}
	if server.hashCost == 0 {
		server.hashCost = bcrypt.DefaultCost
	}
	if server.sessionTTL <= 0 {
		server.sessionTTL = defaultSessionTTL
	}
	return server
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.UseEncodedPath()
	r.Use(s.logRequests)

	r.HandleFunc("/users/", s.handleListUsers).Methods(http.MethodGet)
	r.HandleFunc("/users/", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/users/reset/", s.handlePasswordReset).Methods(http.MethodPost)
	r.HandleFunc("/users/u/{email}/{password}/", s.handleLogin).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/", s.handleGetUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/{password}", s.handleUpdateUser).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", s.handleDeleteUser).Methods(http.MethodDelete)
	r.HandleFunc("/session/verify", s.handleVerifySession).Methods(http.MethodGet)

	r.HandleFunc("/robots", s.handleListOwnedRobots).Methods(http.MethodGet)
	r.HandleFunc("/robots/shared", s.handleListSharedRobots).Methods(http.MethodGet)
	r.HandleFunc("/robots/stats", s.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/robots/{id}", s.handleGetRobot).Methods(http.MethodGet)
	r.HandleFunc("/robots/{id}/command", s.handleCommand).Methods(http.MethodPost)

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev server started", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("dev server: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("dev server shutdown: %w", err)
		}
		s.logger.Info("dev server stopped")
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// The upstream backend answers 200 with a failure message for every rejected signup.
	fail := func(reason string) {
		s.logger.Info("registration rejected", "email", req.EmailID, "reason", reason)
		writeJSON(w, http.StatusOK, messageResponse{Message: messageFailure})
	}

	if !domain.ValidRobotPairingID(req.RobotID) {
		fail("invalid robot id")
		return
	}
	if !domain.ValidEmail(strings.TrimSpace(req.EmailID)) || len(req.UserPassword) < domain.PasswordMinLength {
		fail("invalid credentials")
		return
	}

	ctx := r.Context()
	claimed, err := s.robotByPairingCode(ctx, req.RobotID)
	if err != nil && !errors.Is(err, errNotFound) {
		s.internalError(w, "find robot by pairing code", err)
		return
	}
	if err == nil && claimed.Robot.OwnerID != "" {
		fail("robot already assigned")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), s.hashCost)
	if err != nil {
		s.internalError(w, "hash password", err)
		return
	}

	user, err := s.backend.CreateUser(ctx, UserRecord{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.EmailID),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		RobotID:      req.RobotID,
	})
	if errors.Is(err, errConflict) {
		fail("email already registered")
		return
	}
	if err != nil {
		s.internalError(w, "create user", err)
		return
	}

	if claimed.Robot.ID != "" {
		claimed.Robot.OwnerID = domain.UserID(user.ID)
		if err := s.backend.SaveRobot(ctx, claimed); err != nil {
			s.internalError(w, "assign robot", err)
			return
		}
	}

	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		s.internalError(w, "issue session", err)
		return
	}

	w.Header().Set(api.SessionTokenHeader, token)
	writeJSON(w, http.StatusOK, api.RegisterResponse{Message: messageSuccess, ID: api.ID(user.ID)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	email, ok := pathVar(w, r, "email")
	if !ok {
		return
	}
	password, ok := pathVar(w, r, "password")
	if !ok {
		return
	}

	user, err := s.backend.UserByEmail(r.Context(), email)
	if errors.Is(err, errNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.internalError(w, "find user", err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		http.Error(w, "Password does not match", http.StatusBadRequest)
		return
	}

	token, err := s.issueSession(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, "issue session", err)
		return
	}

	w.Header().Set(api.SessionTokenHeader, token)
	writeJSON(w, http.StatusOK, api.UserFromDomain(user.Domain()))
}

func (s *Server) handleVerifySession(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: messageSuccess})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.backend.ListUsers(r.Context())
	if err != nil {
		s.internalError(w, "list users", err)
		return
	}

	payload := make([]api.UserJSON, 0, len(users))
	for _, user := range users {
		payload = append(payload, api.UserFromDomain(user.Domain()))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authorizeSelf(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, api.UserFromDomain(user.Domain()))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authorizeSelf(w, r)
	if !ok {
		return
	}
	password, ok := pathVar(w, r, "password")
	if !ok {
		return
	}

	var req api.UpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// A wrong current password yields an empty 200, as the upstream backend does.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if username := strings.TrimSpace(req.Username); username != "" {
		user.Username = username
	}
	if email := strings.TrimSpace(req.EmailID); email != "" {
		if !domain.ValidEmail(email) {
			http.Error(w, "Please enter a valid email address", http.StatusBadRequest)
			return
		}
		user.Email = email
	}
	if req.UserPassword != "" {
		if len(req.UserPassword) < domain.PasswordMinLength {
			http.Error(w, fmt.Sprintf("Password must be at least %d characters", domain.PasswordMinLength), http.StatusBadRequest)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), s.hashCost)
		if err != nil {
			s.internalError(w, "hash password", err)
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := s.backend.UpdateUser(r.Context(), user); err != nil {
		if errors.Is(err, errConflict) {
			http.Error(w, "Email already in use", http.StatusConflict)
			return
		}
		s.internalError(w, "update user", err)
		return
	}

	writeJSON(w, http.StatusOK, api.UserFromDomain(user.Domain()))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authorizeSelf(w, r)
	if !ok {
		return
	}

	if err := s.backend.DeleteUser(r.Context(), user.ID); err != nil {
		s.internalError(w, "delete user", err)
		return
	}
	s.logger.Info("user deleted", "user", user.ID)
	writeJSON(w, http.StatusOK, messageResponse{Message: messageSuccess})
}

func (s *Server) handlePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req api.PasswordResetRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !domain.ValidEmail(strings.TrimSpace(req.EmailID)) {
		http.Error(w, "Please enter a valid email address", http.StatusBadRequest)
		return
	}

	// Known and unknown addresses get the same answer.
	if _, err := s.backend.UserByEmail(r.Context(), req.EmailID); err == nil {
		s.logger.Info("password reset requested", "email", req.EmailID)
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: messageSuccess})
}

func (s *Server) handleListOwnedRobots(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authorizeOwnerQuery(w, r)
	if !ok {
		return
	}

	owned, err := s.ownedRobots(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, "list robots", err)
		return
	}
	writeJSON(w, http.StatusOK, robotPayloads(owned))
}

func (s *Server) handleListSharedRobots(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	records, err := s.backend.ListRobots(r.Context())
	if err != nil {
		s.internalError(w, "list robots", err)
		return
	}

	shared := make([]domain.Robot, 0)
	for _, record := range records {
		if string(record.Robot.OwnerID) == user.ID || !record.sharedWith(user.ID) {
			continue
		}
		shared = append(shared, s.asShared(r.Context(), record.Robot))
	}
	writeJSON(w, http.StatusOK, robotPayloads(shared))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authorizeOwnerQuery(w, r)
	if !ok {
		return
	}

	owned, err := s.ownedRobots(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, "list robots", err)
		return
	}
	writeJSON(w, http.StatusOK, api.StatsFromDomain(domain.ComputeStats(owned)))
}

func (s *Server) handleGetRobot(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	record, ok := s.lookupRobot(w, r)
	if !ok {
		return
	}

	switch {
	case string(record.Robot.OwnerID) == user.ID:
		writeJSON(w, http.StatusOK, api.RobotFromDomain(record.Robot))
	case record.sharedWith(user.ID):
		writeJSON(w, http.StatusOK, api.RobotFromDomain(s.asShared(r.Context(), record.Robot)))
	default:
		http.Error(w, "Robot belongs to another user", http.StatusForbidden)
	}
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req api.CommandRequest
	if !decodeBody(w, r, &req) {
		return
	}

	record, ok := s.lookupRobot(w, r)
	if !ok {
		return
	}
	if string(record.Robot.OwnerID) != user.ID {
		http.Error(w, "Robot belongs to another user", http.StatusForbidden)
		return
	}

	command, err := domain.ParseCommand(req.Command)
	if err != nil {
		http.Error(w, "Unknown command: "+req.Command, http.StatusBadRequest)
		return
	}

	updated, rejection := applyCommand(record.Robot, command)
	if rejection != nil {
		s.logger.Info("command rejected", "robot", record.Robot.ID, "command", command, "reason", rejection.message)
		http.Error(w, rejection.message, rejection.status)
		return
	}

	record.Robot = updated
	if err := s.backend.SaveRobot(r.Context(), record); err != nil {
		s.internalError(w, "save robot", err)
		return
	}

	s.logger.Info("command applied", "robot", record.Robot.ID, "command", command, "status", record.Robot.Status)
	robot := api.RobotFromDomain(record.Robot)
	writeJSON(w, http.StatusOK, api.CommandResponse{Success: true, Robot: &robot})
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (UserRecord, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return UserRecord{}, false
	}

	ctx := r.Context()
	userID, expiresAt, err := s.backend.SessionUser(ctx, token)
	if errors.Is(err, errNotFound) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return UserRecord{}, false
	}
	if err != nil {
		s.internalError(w, "find session", err)
		return UserRecord{}, false
	}
	if s.now().After(expiresAt) {
		_ = s.backend.DeleteSession(ctx, token)
		http.Error(w, "Session expired", http.StatusUnauthorized)
		return UserRecord{}, false
	}

	user, err := s.backend.UserByID(ctx, userID)
	if errors.Is(err, errNotFound) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return UserRecord{}, false
	}
	if err != nil {
		s.internalError(w, "find session user", err)
		return UserRecord{}, false
	}
	return user, true
}

func (s *Server) authorizeSelf(w http.ResponseWriter, r *http.Request) (UserRecord, bool) {
	user, ok := s.authenticate(w, r)
	if !ok {
		return UserRecord{}, false
	}
	id, ok := pathVar(w, r, "id")
	if !ok {
		return UserRecord{}, false
	}
	if id != user.ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return UserRecord{}, false
	}
	return user, true
}

func (s *Server) authorizeOwnerQuery(w http.ResponseWriter, r *http.Request) (UserRecord, bool) {
	user, ok := s.authenticate(w, r)
	if !ok {
		return UserRecord{}, false
	}
	if owner := r.URL.Query().Get("owner"); owner != "" && owner != user.ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return UserRecord{}, false
	}
	return user, true
}

func (s *Server) lookupRobot(w http.ResponseWriter, r *http.Request) (RobotRecord, bool) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return RobotRecord{}, false
	}

	record, err := s.backend.Robot(r.Context(), domain.RobotID(id))
	if errors.Is(err, errNotFound) {
		http.Error(w, "Robot not found", http.StatusNotFound)
		return RobotRecord{}, false
	}
	if err != nil {
		s.internalError(w, "find robot", err)
		return RobotRecord{}, false
	}
	return record, true
}

func (s *Server) ownedRobots(ctx context.Context, userID string) ([]domain.Robot, error) {
	records, err := s.backend.ListRobots(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]domain.Robot, 0)
	for _, record := range records {
		if string(record.Robot.OwnerID) == userID {
			owned = append(owned, record.Robot)
		}
	}
	return owned, nil
}

func (s *Server) robotByPairingCode(ctx context.Context, code int) (RobotRecord, error) {
	records, err := s.backend.ListRobots(ctx)
	if err != nil {
		return RobotRecord{}, err
	}
	for _, record := range records {
		if record.PairingCode == code {
			return record, nil
		}
	}
	return RobotRecord{}, fmt.Errorf("robot with pairing code %d: %w", code, errNotFound)
}

// asShared labels robot with its owner's email for display to someone it was shared with.
func (s *Server) asShared(ctx context.Context, robot domain.Robot) domain.Robot {
	robot.SharedBy = string(robot.OwnerID)
	if owner, err := s.backend.UserByID(ctx, string(robot.OwnerID)); err == nil {
		robot.SharedBy = owner.Email
	}
	if robot.SharedBy == "" {
		robot.SharedBy = "unknown"
	}
	return robot
}

func (s *Server) issueSession(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.backend.CreateSession(ctx, token, userID, s.now().Add(s.sessionTTL)); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", "op", op, "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests logs the route template rather than the path, which may carry credentials.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}
		s.logger.Info("request", "method", r.Method, "route", route, "status", recorder.status, "elapsed", time.Since(started))
	})
}

func robotPayloads(robots []domain.Robot) []api.RobotJSON {
	payload := make([]api.RobotJSON, 0, len(robots))
	for _, robot := range robots {
		payload = append(payload, api.RobotFromDomain(robot))
	}
	return payload
}

func pathVar(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := mux.Vars(r)[name]
	value, err := url.PathUnescape(raw)
	if err != nil || value == "" {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return "", false
	}
	return value, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(out); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package devserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/rumble-cli/internal/domain"

	_ "modernc.org/sqlite"
)

// SQLiteBackend keeps dev server state in a single SQLite file.
type SQLiteBackend struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	backend := &SQLiteBackend{db: db}
	if err := backend.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return backend, nil
}

func (b *SQLiteBackend) initSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE COLLATE NOCASE,
			username TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			robot_id INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS robots (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			status TEXT NOT NULL,
			battery_level INTEGER NOT NULL,
			lat REAL,
			lng REAL,
			last_collection TEXT NOT NULL DEFAULT '',
			trash_collected REAL NOT NULL DEFAULT 0,
			next_scheduled TEXT NOT NULL DEFAULT '',
			owner_id TEXT NOT NULL DEFAULT '',
			pairing_code INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS robot_shares (
			robot_id TEXT NOT NULL REFERENCES robots(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL,
			PRIMARY KEY (robot_id, user_id)
		);`,
	}

	for _, stmt := range stmts {
		if _, err := b.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *SQLiteBackend) CreateUser(ctx context.Context, user UserRecord) (UserRecord, error) {
	var (
		result sql.Result
		err    error
	)
	if user.ID == "" {
		result, err = b.db.ExecContext(ctx,
			`INSERT INTO users (name, email, username, password_hash, robot_id) VALUES (?, ?, ?, ?, ?)`,
			user.Name, user.Email, user.Username, user.PasswordHash, user.RobotID)
	} else {
		id, convErr := strconv.ParseInt(user.ID, 10, 64)
		if convErr != nil {
			return UserRecord{}, fmt.Errorf("user id %q must be numeric", user.ID)
		}
		result, err = b.db.ExecContext(ctx,
			`INSERT INTO users (id, name, email, username, password_hash, robot_id) VALUES (?, ?, ?, ?, ?, ?)`,
			id, user.Name, user.Email, user.Username, user.PasswordHash, user.RobotID)
	}
	if err != nil {
		return UserRecord{}, classifySQLiteError("insert user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return UserRecord{}, fmt.Errorf("insert user id: %w", err)
	}
	user.ID = strconv.FormatInt(id, 10)
	return user, nil
}

func (b *SQLiteBackend) UserByID(ctx context.Context, id string) (UserRecord, error) {
	row := b.db.QueryRowContext(ctx, `SELECT id, name, email, username, password_hash, robot_id FROM users WHERE id = ?`, id)
	return scanUser(row, "user "+id)
}

func (b *SQLiteBackend) UserByEmail(ctx context.Context, email string) (UserRecord, error) {
	row := b.db.QueryRowContext(ctx, `SELECT id, name, email, username, password_hash, robot_id FROM users WHERE email = ?`, email)
	return scanUser(row, "user "+email)
}

func (b *SQLiteBackend) ListUsers(ctx context.Context) ([]UserRecord, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT id, name, email, username, password_hash, robot_id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []UserRecord
	for rows.Next() {
		user, err := scanUser(rows, "user")
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (b *SQLiteBackend) UpdateUser(ctx context.Context, user UserRecord) error {
	result, err := b.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, username = ?, password_hash = ?, robot_id = ? WHERE id = ?`,
		user.Name, user.Email, user.Username, user.PasswordHash, user.RobotID, user.ID)
	if err != nil {
		return classifySQLiteError("update user", err)
	}
	return requireAffected(result, "user "+user.ID)
}

func (b *SQLiteBackend) DeleteUser(ctx context.Context, id string) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete user: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := requireAffected(result, "user "+id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE robots SET owner_id = '' WHERE owner_id = ?`, id); err != nil {
		return fmt.Errorf("release robots: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM robot_shares WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("delete shares: %w", err)
	}

	return tx.Commit()
}

func (b *SQLiteBackend) CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) error {
	if _, err := b.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, formatTime(expiresAt)); err != nil {
		return classifySQLiteError("insert session", err)
	}
	return nil
}

func (b *SQLiteBackend) SessionUser(ctx context.Context, token string) (string, time.Time, error) {
	var (
		userID    int64
		expiresAt string
	)
	err := b.db.QueryRowContext(ctx, `SELECT user_id, expires_at FROM sessions WHERE token = ?`, token).Scan(&userID, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, fmt.Errorf("session: %w", errNotFound)
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("select session: %w", err)
	}

	expires, err := parseTime(expiresAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return strconv.FormatInt(userID, 10), expires, nil
}

func (b *SQLiteBackend) DeleteSession(ctx context.Context, token string) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) ListRobots(ctx context.Context) ([]RobotRecord, error) {
	rows, err := b.db.QueryContext(ctx, robotSelect+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list robots: %w", err)
	}

	var robots []RobotRecord
	for rows.Next() {
		robot, err := scanRobot(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		robots = append(robots, robot)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("list robots: %w", err)
	}
	_ = rows.Close()

	for i := range robots {
		shares, err := b.shares(ctx, robots[i].Robot.ID)
		if err != nil {
			return nil, err
		}
		robots[i].SharedWith = shares
	}
	return robots, nil
}

func (b *SQLiteBackend) Robot(ctx context.Context, id domain.RobotID) (RobotRecord, error) {
	robot, err := scanRobot(b.db.QueryRowContext(ctx, robotSelect+` WHERE id = ?`, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return RobotRecord{}, fmt.Errorf("robot %s: %w", id, errNotFound)
	}
	if err != nil {
		return RobotRecord{}, err
	}

	shares, err := b.shares(ctx, id)
	if err != nil {
		return RobotRecord{}, err
	}
	robot.SharedWith = shares
	return robot, nil
}

func (b *SQLiteBackend) SaveRobot(ctx context.Context, record RobotRecord) error {
	robot := record.Robot
	if err := robot.Validate(); err != nil {
		return err
	}

	var lat, lng sql.NullFloat64
	if robot.Location != nil {
		lat = sql.NullFloat64{Float64: robot.Location.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: robot.Location.Lng, Valid: true}
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save robot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO robots (id, name, status, battery_level, lat, lng, last_collection, trash_collected, next_scheduled, owner_id, pairing_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			status = excluded.status,
			battery_level = excluded.battery_level,
			lat = excluded.lat,
			lng = excluded.lng,
			last_collection = excluded.last_collection,
			trash_collected = excluded.trash_collected,
			next_scheduled = excluded.next_scheduled,
			owner_id = excluded.owner_id,
			pairing_code = excluded.pairing_code`,
		string(robot.ID), robot.Name, string(robot.Status), robot.BatteryLevel, lat, lng,
		formatTime(robot.LastCollection), robot.TrashCollectedKg, formatTime(robot.NextScheduled),
		string(robot.OwnerID), record.PairingCode,
	); err != nil {
		return fmt.Errorf("upsert robot: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM robot_shares WHERE robot_id = ?`, string(robot.ID)); err != nil {
		return fmt.Errorf("reset robot shares: %w", err)
	}
	for _, userID := range record.SharedWith {
		if _, err := tx.ExecContext(ctx, `INSERT INTO robot_shares (robot_id, user_id) VALUES (?, ?)`, string(robot.ID), userID); err != nil {
			return fmt.Errorf("insert robot share: %w", err)
		}
	}

	return tx.Commit()
}

func (b *SQLiteBackend) shares(ctx context.Context, id domain.RobotID) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT user_id FROM robot_shares WHERE robot_id = ? ORDER BY user_id`, string(id))
	if err != nil {
		return nil, fmt.Errorf("list robot shares: %w", err)
	}
	defer rows.Close()

	var shares []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan robot share: %w", err)
		}
		shares = append(shares, userID)
	}
	return shares, rows.Err()
}

const robotSelect = `SELECT id, name, status, battery_level, lat, lng, last_collection, trash_collected, next_scheduled, owner_id, pairing_code FROM robots`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, label string) (UserRecord, error) {
	var (
		user UserRecord
		id   int64
	)
	err := row.Scan(&id, &user.Name, &user.Email, &user.Username, &user.PasswordHash, &user.RobotID)
	if errors.Is(err, sql.ErrNoRows) {
		return UserRecord{}, fmt.Errorf("%s: %w", label, errNotFound)
	}
	if err != nil {
		return UserRecord{}, fmt.Errorf("scan %s: %w", label, err)
	}

	user.ID = strconv.FormatInt(id, 10)
	return user, nil
}

func scanRobot(row rowScanner) (RobotRecord, error) {
	var (
		record                        RobotRecord
		id, status, owner             string
		lastCollection, nextScheduled string
		lat, lng                      sql.NullFloat64
	)
	if err := row.Scan(&id, &record.Robot.Name, &status, &record.Robot.BatteryLevel, &lat, &lng,
		&lastCollection, &record.Robot.TrashCollectedKg, &nextScheduled, &owner, &record.PairingCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RobotRecord{}, err
		}
		return RobotRecord{}, fmt.Errorf("scan robot: %w", err)
	}

	record.Robot.ID = domain.RobotID(id)
	record.Robot.Status = domain.RobotStatus(status)
	record.Robot.OwnerID = domain.UserID(owner)
	if lat.Valid && lng.Valid {
		record.Robot.Location = &domain.Location{Lat: lat.Float64, Lng: lng.Float64}
	}

	var err error
	if record.Robot.LastCollection, err = parseTime(lastCollection); err != nil {
		return RobotRecord{}, err
	}
	if record.Robot.NextScheduled, err = parseTime(nextScheduled); err != nil {
		return RobotRecord{}, err
	}
	return record, nil
}

func requireAffected(result sql.Result, label string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", label, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", label, errNotFound)
	}
	return nil
}

func classifySQLiteError(op string, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") || strings.Contains(err.Error(), "PRIMARY KEY") {
		return fmt.Errorf("%s: %w", op, errConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func formatTime(at time.Time) string {
	if at.IsZero() {
		return ""
	}
	return at.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", raw, err)
	}
	return parsed.UTC(), nil
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".rumble"
	envPrefix  = "RUMBLE"

	KeyAPIBaseURL     = "api.base_url"
	KeyAPITimeout     = "api.timeout"
	KeySessionBackend = "session.backend"
	KeySessionPath    = "session.path"
	KeyLogLevel       = "log.level"

	BackendTOML = "toml"
	BackendFile = "file"
	// BackendPass keeps the session in the pass password store, falling back to files
	// under session.path when pass is not installed.
	BackendPass = "pass"

	defaultBaseURL    = "http://localhost:8080"
	defaultAPITimeout = 10 * time.Second
	defaultLogLevel   = "warn"
)

type Config struct {
	APIBaseURL     string
	APITimeout     time.Duration
	SessionBackend string
	SessionPath    string
	LogLevel       slog.Level
}

// Load reads ~/.rumble/config.toml when present; RUMBLE_* environment variables win over the file.
func Load(v *viper.Viper, homeDir string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	if strings.TrimSpace(homeDir) == "" {
		return Config{}, errors.New("home directory is empty")
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(filepath.Join(homeDir, configDir))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAPIBaseURL, defaultBaseURL)
	v.SetDefault(KeyAPITimeout, defaultAPITimeout)
	v.SetDefault(KeySessionBackend, BackendTOML)
	v.SetDefault(KeySessionPath, "")
	v.SetDefault(KeyLogLevel, defaultLogLevel)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		APIBaseURL:     strings.TrimRight(strings.TrimSpace(v.GetString(KeyAPIBaseURL)), "/"),
		APITimeout:     v.GetDuration(KeyAPITimeout),
		SessionBackend: strings.ToLower(strings.TrimSpace(v.GetString(KeySessionBackend))),
		SessionPath:    strings.TrimSpace(v.GetString(KeySessionPath)),
	}

	if err := validateBaseURL(cfg.APIBaseURL); err != nil {
		return Config{}, err
	}
	if cfg.APITimeout <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", KeyAPITimeout, cfg.APITimeout)
	}

	switch cfg.SessionBackend {
	case BackendTOML:
		if cfg.SessionPath == "" {
			cfg.SessionPath = filepath.Join(homeDir, configDir, "session.toml")
		}
	case BackendFile, BackendPass:
		if cfg.SessionPath == "" {
			cfg.SessionPath = filepath.Join(homeDir, configDir, "session")
		}
	default:
		return Config{}, fmt.Errorf("unsupported %s %q (want %s, %s or %s)", KeySessionBackend, cfg.SessionBackend, BackendTOML, BackendFile, BackendPass)
	}

	level, err := ParseLogLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

func ParseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unsupported %s %q", KeyLogLevel, raw)
	}
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", KeyAPIBaseURL)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", KeyAPIBaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", KeyAPIBaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s host is required", KeyAPIBaseURL)
	}

	return nil
}

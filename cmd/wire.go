package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/rumble-cli/internal/adapters/api"
	"github.com/bnema/rumble-cli/internal/adapters/render/dashboard"
	"github.com/bnema/rumble-cli/internal/adapters/shared"
	chainstore "github.com/bnema/rumble-cli/internal/adapters/storage/chain"
	filestore "github.com/bnema/rumble-cli/internal/adapters/storage/file"
	passstore "github.com/bnema/rumble-cli/internal/adapters/storage/pass"
	tomlstore "github.com/bnema/rumble-cli/internal/adapters/storage/toml"
	"github.com/bnema/rumble-cli/internal/application"
	"github.com/bnema/rumble-cli/internal/config"
	"github.com/bnema/rumble-cli/internal/domain"
	"github.com/bnema/rumble-cli/internal/ports"
)

type app struct {
	config   config.Config
	logger   *slog.Logger
	client   api.Client
	sessions *application.SessionManager
	renderer dashboardRenderer
	now      func() time.Time

	// demoShared is bound to the --demo-shared flag, so the gateway is built after flags parse.
	demoShared bool
	fleet      *application.FleetGateway
}

type dashboardRenderer struct {
	dashboard func(*domain.User, application.Dashboard, dashboard.RenderOptions) (string, error)
	robots    func([]domain.Robot, dashboard.RenderOptions) (string, error)
	robot     func(domain.Robot, dashboard.RenderOptions) (string, error)
	stats     func(domain.DashboardStats) (string, error)
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := config.Load(viper.New(), homeDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(os.Stderr, cfg.LogLevel)

	store, err := newDurableStore(cfg)
	if err != nil {
		return nil, err
	}

	client := api.Client{
		BaseURL:        cfg.APIBaseURL,
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.APITimeout,
		Logger:         logger,
	}

	return &app{
		config:   cfg,
		logger:   logger,
		client:   client,
		sessions: application.NewSessionManager(client, store, ports.SystemClock{}, logger),
		renderer: dashboardRenderer{
			dashboard: dashboard.Render,
			robots:    dashboard.RenderRobots,
			robot:     dashboard.RenderRobot,
			stats:     dashboard.RenderStats,
		},
		now: time.Now,
	}, nil
}

func (a *app) gateway() *application.FleetGateway {
	if a.fleet != nil {
		return a.fleet
	}

	var source ports.SharedRobotSource = a.client
	if a.demoShared {
		source = shared.NewDemo()
	}
	a.fleet = application.NewFleetGateway(a.client, source, a.logger)
	return a.fleet
}

func newDurableStore(cfg config.Config) (ports.DurableStore, error) {
	switch cfg.SessionBackend {
	case config.BackendFile:
		return filestore.NewStore(cfg.SessionPath), nil
	case config.BackendPass:
		store, err := chainstore.NewPassFirstWithFileFallback(passstore.DefaultPrefix, cfg.SessionPath)
		if err != nil {
			return nil, fmt.Errorf("wire session store chain: %w", err)
		}
		return store, nil
	case config.BackendTOML:
		store, err := tomlstore.NewStore(cfg.SessionPath)
		if err != nil {
			return nil, fmt.Errorf("wire session store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported session backend %q", cfg.SessionBackend)
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

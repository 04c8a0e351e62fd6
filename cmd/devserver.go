package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/bnema/rumble-cli/internal/devserver"
)

func newDevServerCmd(app *app) *cobra.Command {
	var addr string
	var dbPath string
	var seedPath string
	var noSeed bool

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local RUMBLE API server with demo users and robots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			backend, err := openDevBackend(ctx, dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = backend.Close() }()

			if !noSeed {
				seed, err := devserver.LoadSeed(seedPath)
				if err != nil {
					return err
				}
				if err := seed.Apply(ctx, backend, bcrypt.DefaultCost); err != nil {
					return err
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "RUMBLE dev server listening on %s\n", addr)
			server := devserver.New(devserver.Options{Backend: backend, Logger: app.logger})
			return server.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default: in-memory)")
	cmd.Flags().StringVar(&seedPath, "seed", "", "YAML fixture file (default: built-in demo data)")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Start without fixtures")

	return cmd
}

func openDevBackend(ctx context.Context, dbPath string) (devserver.Backend, error) {
	if dbPath == "" {
		return devserver.NewMemoryBackend(), nil
	}

	backend, err := devserver.OpenSQLite(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open dev server database: %w", err)
	}
	return backend, nil
}

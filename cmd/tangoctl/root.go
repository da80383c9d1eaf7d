package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/tango-api/internal/config"
	"github.com/phrazzld/tango-api/internal/platform/logger"
	"github.com/phrazzld/tango-api/internal/platform/postgres"
	"github.com/phrazzld/tango-api/internal/service/auth"
	"github.com/phrazzld/tango-api/internal/store"
	"github.com/spf13/cobra"
)

// deps are the collaborators shared by every subcommand.
type deps struct {
	db       *sql.DB
	users    store.UserStore
	progress store.ProgressStore
	answers  store.AnswerStore
	jwt      auth.JWTService
	logger   *slog.Logger
}

// depsOpener builds deps and returns a function releasing them.
type depsOpener func(ctx context.Context) (*deps, func(), error)

// openDeps wires deps from the server configuration.
func openDeps(ctx context.Context) (*deps, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Keep stdout for command output.
	log := logger.New(os.Stderr, cfg.Server.LogLevel)

	db, err := postgres.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	d := &deps{
		db:       db,
		users:    postgres.NewPostgresUserStore(db, log),
		progress: postgres.NewPostgresProgressStore(db, log),
		answers:  postgres.NewPostgresAnswerStore(db, log),
		jwt:      jwtService,
		logger:   log,
	}
	return d, func() { _ = db.Close() }, nil
}

func newRootCmd(open depsOpener) *cobra.Command {
	root := &cobra.Command{
		Use:           "tangoctl",
		Short:         "Operator tool for the Tango vocabulary service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStatusCmd(open),
		newShiftCmd(open),
		newTokenCmd(open),
	)
	return root
}

// withDeps opens deps for the duration of fn.
func withDeps(cmd *cobra.Command, open depsOpener, fn func(d *deps) error) error {
	d, closeFn, err := open(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(d)
}

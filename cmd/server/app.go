package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/tango-api/internal/config"
	"github.com/phrazzld/tango-api/internal/platform/postgres"
	"github.com/phrazzld/tango-api/internal/platform/rediscache"
	"github.com/phrazzld/tango-api/internal/service"
	"github.com/phrazzld/tango-api/internal/service/auth"
	"github.com/phrazzld/tango-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	cache  io.Closer

	userStore     store.UserStore
	itemStore     store.ItemStore
	answerStore   store.AnswerStore
	progressStore store.ProgressStore

	jwtService      auth.JWTService
	learningService service.LearningService
	reportService   service.ReportService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.answerStore = postgres.NewPostgresAnswerStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)
	app.itemStore = postgres.NewPostgresItemStore(db, logger)

	if cfg.Cache.Enabled() {
		rdb, err := rediscache.NewClient(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.cache = rdb
		app.itemStore = rediscache.NewCachedItemStore(app.itemStore, rdb, cfg.Cache.SectionTTL, logger)
		logger.Info("catalog cache enabled", slog.Duration("section_ttl", cfg.Cache.SectionTTL))
	}

	app.learningService, err = service.NewLearningService(db, app.itemStore, app.answerStore, app.progressStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create learning service: %w", err)
	}

	app.reportService, err = service.NewReportService(app.userStore, app.itemStore, app.answerStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down and releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("error closing redis connection", slog.String("error", err.Error()))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}

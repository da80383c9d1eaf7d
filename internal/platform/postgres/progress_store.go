package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/platform/logger"
	"github.com/phrazzld/tango-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the ProgressStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// WithTx implements store.ProgressStore.WithTx
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{db: tx, logger: s.logger}
}

const progressSelect = `SELECT learner_id, current_section, last_advance_at FROM learner_progress WHERE learner_id = $1`

// Get implements store.ProgressStore.Get
func (s *PostgresProgressStore) Get(ctx context.Context, learnerID uuid.UUID) (*domain.Progress, error) {
	return s.get(ctx, progressSelect, learnerID)
}

// GetForUpdate implements store.ProgressStore.GetForUpdate
// The row stays locked until the surrounding transaction commits or rolls back.
func (s *PostgresProgressStore) GetForUpdate(ctx context.Context, learnerID uuid.UUID) (*domain.Progress, error) {
	return s.get(ctx, progressSelect+` FOR UPDATE`, learnerID)
}

func (s *PostgresProgressStore) get(ctx context.Context, query string, learnerID uuid.UUID) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var p domain.Progress
	var last sql.NullTime
	err := s.db.QueryRowContext(ctx, query, learnerID).Scan(&p.LearnerID, &p.CurrentSection, &last)
	if err != nil {
		mapped := mapEntityError(err, store.ErrProgressNotFound)
		if !store.IsNotFoundError(mapped) {
			log.Error("failed to get learner progress",
				slog.String("error", err.Error()),
				slog.String("learner_id", learnerID.String()))
		}
		return nil, mapped
	}
	if last.Valid {
		t := last.Time.UTC()
		p.LastAdvanceAt = &t
	}
	return &p, nil
}

// CreateIfMissing implements store.ProgressStore.CreateIfMissing
func (s *PostgresProgressStore) CreateIfMissing(ctx context.Context, progress *domain.Progress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO learner_progress (learner_id, current_section, last_advance_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (learner_id) DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query, progress.LearnerID, progress.CurrentSection, nullTime(progress.LastAdvanceAt))
	if err != nil {
		log.Error("failed to create learner progress",
			slog.String("error", err.Error()),
			slog.String("learner_id", progress.LearnerID.String()))
		return MapError(err)
	}
	if n, _ := result.RowsAffected(); n > 0 {
		log.Info("initialized learner progress",
			slog.String("learner_id", progress.LearnerID.String()))
	}
	return nil
}

// Update implements store.ProgressStore.Update
func (s *PostgresProgressStore) Update(ctx context.Context, progress *domain.Progress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE learner_progress
		SET current_section = $2, last_advance_at = $3
		WHERE learner_id = $1
	`
	result, err := s.db.ExecContext(ctx, query, progress.LearnerID, progress.CurrentSection, nullTime(progress.LastAdvanceAt))
	if err != nil {
		log.Error("failed to update learner progress",
			slog.String("error", err.Error()),
			slog.String("learner_id", progress.LearnerID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "progress"); err != nil {
		return store.ErrProgressNotFound
	}
	return nil
}

// ShiftLastAdvance implements store.ProgressStore.ShiftLastAdvance
func (s *PostgresProgressStore) ShiftLastAdvance(ctx context.Context, learnerID uuid.UUID, by time.Duration) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE learner_progress SET last_advance_at = last_advance_at + make_interval(secs => $2) WHERE learner_id = $1`,
		learnerID, by.Seconds())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to shift last advance",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "progress"); err != nil {
		return store.ErrProgressNotFound
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

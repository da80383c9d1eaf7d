package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/platform/logger"
	"github.com/phrazzld/tango-api/internal/store"
)

// PostgresAnswerStore implements the store.AnswerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAnswerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAnswerStore creates a new PostgreSQL implementation of the AnswerStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAnswerStore(db store.DBTX, logger *slog.Logger) *PostgresAnswerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAnswerStore{
		db:     db,
		logger: logger.With(slog.String("component", "answer_store")),
	}
}

// Ensure PostgresAnswerStore implements store.AnswerStore interface
var _ store.AnswerStore = (*PostgresAnswerStore)(nil)

// WithTx implements store.AnswerStore.WithTx
func (s *PostgresAnswerStore) WithTx(tx *sql.Tx) store.AnswerStore {
	return &PostgresAnswerStore{db: tx, logger: s.logger}
}

// Append implements store.AnswerStore.Append
func (s *PostgresAnswerStore) Append(ctx context.Context, answer *domain.Answer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := answer.Validate(); err != nil {
		log.Warn("answer validation failed during append",
			slog.String("error", err.Error()),
			slog.String("learner_id", answer.LearnerID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO answers (id, learner_id, item_id, correct, hint_used, answered_at, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		answer.ID,
		answer.LearnerID,
		answer.ItemID,
		answer.Correct,
		answer.HintUsed,
		answer.AnsweredAt.UTC(),
		string(answer.Category),
	)
	if err != nil {
		log.Error("failed to append answer",
			slog.String("error", err.Error()),
			slog.String("learner_id", answer.LearnerID.String()),
			slog.String("item_id", answer.ItemID.String()))
		return mapAnswerReferenceError(err)
	}

	log.Debug("answer appended",
		slog.String("answer_id", answer.ID.String()),
		slog.String("learner_id", answer.LearnerID.String()),
		slog.Bool("correct", answer.Correct),
		slog.String("category", string(answer.Category)))
	return nil
}

// List implements store.AnswerStore.List
func (s *PostgresAnswerStore) List(ctx context.Context, filter store.AnswerFilter) ([]domain.Answer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := answerWhere(filter)
	query := `
		SELECT id, learner_id, item_id, correct, hint_used, answered_at, category
		FROM answers
		WHERE ` + where + `
		ORDER BY answered_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list answers",
			slog.String("error", err.Error()),
			slog.String("learner_id", filter.LearnerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	answers := []domain.Answer{}
	for rows.Next() {
		var a domain.Answer
		var category string
		if err := rows.Scan(&a.ID, &a.LearnerID, &a.ItemID, &a.Correct, &a.HintUsed, &a.AnsweredAt, &category); err != nil {
			return nil, MapError(err)
		}
		a.AnsweredAt = a.AnsweredAt.UTC()
		a.Category = domain.Category(category)
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return answers, nil
}

// AnsweredItemIDs implements store.AnswerStore.AnsweredItemIDs
func (s *PostgresAnswerStore) AnsweredItemIDs(ctx context.Context, filter store.AnswerFilter) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := answerWhere(filter)
	query := `SELECT DISTINCT item_id FROM answers WHERE ` + where
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list answered items",
			slog.String("error", err.Error()),
			slog.String("learner_id", filter.LearnerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return ids, nil
}

// Count implements store.AnswerStore.Count
func (s *PostgresAnswerStore) Count(ctx context.Context, learnerID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM answers WHERE learner_id = $1`, learnerID).Scan(&n)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count answers",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return 0, MapError(err)
	}
	return n, nil
}

// ShiftTimestamps implements store.AnswerStore.ShiftTimestamps
func (s *PostgresAnswerStore) ShiftTimestamps(ctx context.Context, learnerID uuid.UUID, by time.Duration) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE answers SET answered_at = answered_at + make_interval(secs => $2) WHERE learner_id = $1`,
		learnerID, by.Seconds())
	if err != nil {
		log.Error("failed to shift answer timestamps",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return 0, MapError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	log.Info("shifted answer timestamps",
		slog.String("learner_id", learnerID.String()),
		slog.Duration("by", by),
		slog.Int64("rows", n))
	return n, nil
}

// answerWhere builds the WHERE clause and positional arguments for a filter.
func answerWhere(filter store.AnswerFilter) (string, []any) {
	conds := []string{"learner_id = $1"}
	args := []any{filter.LearnerID}
	if !filter.Since.IsZero() {
		args = append(args, filter.Since.UTC())
		conds = append(conds, fmt.Sprintf("answered_at >= $%d", len(args)))
	}
	if !filter.Until.IsZero() {
		args = append(args, filter.Until.UTC())
		conds = append(conds, fmt.Sprintf("answered_at < $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
)

// AnswerFilter restricts an answer ledger query. Zero times are unbounded.
type AnswerFilter struct {
	LearnerID uuid.UUID
	// Since admits answers given at or after this instant.
	Since time.Time
	// Until admits answers given strictly before this instant.
	Until time.Time
}

// AnswerStore is the append-only answer ledger. Answers are never updated or
// deleted by the learning engine.
type AnswerStore interface {
	// Append records a new answer.
	// Returns validation errors if the answer data is invalid.
	Append(ctx context.Context, answer *domain.Answer) error

	// List returns the answers matching the filter, oldest first.
	List(ctx context.Context, filter AnswerFilter) ([]domain.Answer, error)

	// AnsweredItemIDs returns the distinct item IDs with at least one answer
	// matching the filter.
	AnsweredItemIDs(ctx context.Context, filter AnswerFilter) ([]uuid.UUID, error)

	// Count returns the number of answers in a learner's ledger.
	Count(ctx context.Context, learnerID uuid.UUID) (int, error)

	// ShiftTimestamps moves every answer of a learner by the given duration.
	// It exists for operator tooling and returns the number of rows changed.
	ShiftTimestamps(ctx context.Context, learnerID uuid.UUID, by time.Duration) (int64, error)

	// WithTx returns a new AnswerStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AnswerStore
}

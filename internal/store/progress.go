package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
)

// ProgressStore defines the interface for learner section progress.
type ProgressStore interface {
	// Get retrieves a learner's progress without locking.
	// Returns ErrProgressNotFound if the learner has no progress row.
	Get(ctx context.Context, learnerID uuid.UUID) (*domain.Progress, error)

	// GetForUpdate retrieves a learner's progress with a row-level lock
	// (SELECT ... FOR UPDATE). It must run within a transaction; the lock is
	// held until the transaction ends.
	// Returns ErrProgressNotFound if the learner has no progress row.
	GetForUpdate(ctx context.Context, learnerID uuid.UUID) (*domain.Progress, error)

	// CreateIfMissing inserts initial progress for a learner unless a row
	// already exists. It never fails because of a concurrent insert.
	CreateIfMissing(ctx context.Context, progress *domain.Progress) error

	// Update persists the section and advance timestamp.
	// Returns ErrProgressNotFound if the learner has no progress row.
	Update(ctx context.Context, progress *domain.Progress) error

	// ShiftLastAdvance moves the stored advance timestamp by the given
	// duration. It exists for operator tooling.
	ShiftLastAdvance(ctx context.Context, learnerID uuid.UUID, by time.Duration) error

	// WithTx returns a new ProgressStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ProgressStore
}

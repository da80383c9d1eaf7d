package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
)

// UserStore provides read access to accounts. Account creation and
// credentials are handled by the identity service.
type UserStore interface {
	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetDependent retrieves a learner only if it belongs to the guardian.
	// Returns ErrUserNotFound both for unknown learners and for learners
	// belonging to someone else.
	GetDependent(ctx context.Context, guardianID, learnerID uuid.UUID) (*domain.User, error)

	// ListDependents returns the learners managed by a guardian, oldest first.
	ListDependents(ctx context.Context, guardianID uuid.UUID) ([]domain.User, error)
}

package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/platform/logger"
	"github.com/phrazzld/tango-api/internal/store"
)

const userColumns = `id, username, role, guardian_id, created_at`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// GetDependent implements store.UserStore.GetDependent
func (s *PostgresUserStore) GetDependent(ctx context.Context, guardianID, learnerID uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND guardian_id = $2 AND role = 'learner'`
	return s.getOne(ctx, query, learnerID, guardianID)
}

// ListDependents implements store.UserStore.ListDependents
func (s *PostgresUserStore) ListDependents(ctx context.Context, guardianID uuid.UUID) ([]domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE guardian_id = $1 AND role = 'learner' ORDER BY created_at, username`
	rows, err := s.db.QueryContext(ctx, query, guardianID)
	if err != nil {
		log.Error("failed to list dependents",
			slog.String("error", err.Error()),
			slog.String("guardian_id", guardianID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return users, nil
}

func (s *PostgresUserStore) getOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user",
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var role string
	var guardian uuid.NullUUID
	if err := row.Scan(&u.ID, &u.Username, &role, &guardian, &u.CreatedAt); err != nil {
		return nil, mapEntityError(err, store.ErrUserNotFound)
	}
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, store.NewStoreError("user", "scan", "unexpected role "+role, err)
	}
	u.Role = r
	if guardian.Valid {
		id := guardian.UUID
		u.GuardianID = &id
	}
	return &u, nil
}

package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/platform/logger"
	"github.com/phrazzld/tango-api/internal/store"
)

const itemColumns = `id, spelling, phonetic, gloss, section`

// PostgresItemStore implements the store.ItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the ItemStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore interface
var _ store.ItemStore = (*PostgresItemStore)(nil)

// GetByID implements store.ItemStore.GetByID
func (s *PostgresItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	var item domain.Item
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Spelling,
		&item.Phonetic,
		&item.Gloss,
		&item.Section,
	)
	if err != nil {
		mapped := mapEntityError(err, store.ErrItemNotFound)
		if store.IsNotFoundError(mapped) {
			log.Debug("item not found", slog.String("item_id", id.String()))
		} else {
			log.Error("failed to get item by ID",
				slog.String("error", err.Error()),
				slog.String("item_id", id.String()))
		}
		return nil, mapped
	}
	return &item, nil
}

// GetByIDs implements store.ItemStore.GetByIDs
func (s *PostgresItemStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Item, error) {
	if len(ids) == 0 {
		return []domain.Item{}, nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	params := make([]string, len(ids))
	for i, id := range ids {
		params[i] = id.String()
	}

	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ANY($1::uuid[]) ORDER BY section, spelling`
	rows, err := s.db.QueryContext(ctx, query, params)
	if err != nil {
		log.Error("failed to query items by IDs",
			slog.String("error", err.Error()),
			slog.Int("id_count", len(ids)))
		return nil, MapError(err)
	}
	return scanItems(rows)
}

// ListBySection implements store.ItemStore.ListBySection
func (s *PostgresItemStore) ListBySection(ctx context.Context, section int) ([]domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + itemColumns + ` FROM items WHERE section = $1 ORDER BY spelling`
	rows, err := s.db.QueryContext(ctx, query, section)
	if err != nil {
		log.Error("failed to query items by section",
			slog.String("error", err.Error()),
			slog.Int("section", section))
		return nil, MapError(err)
	}
	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}
	log.Debug("listed section items",
		slog.Int("section", section),
		slog.Int("count", len(items)))
	return items, nil
}

// CountBySection implements store.ItemStore.CountBySection
func (s *PostgresItemStore) CountBySection(ctx context.Context, section int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE section = $1`, section).Scan(&n)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count section items",
			slog.String("error", err.Error()),
			slog.Int("section", section))
		return 0, MapError(err)
	}
	return n, nil
}

func scanItems(rows *sql.Rows) ([]domain.Item, error) {
	defer func() { _ = rows.Close() }()

	items := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Spelling, &item.Phonetic, &item.Gloss, &item.Section); err != nil {
			return nil, MapError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return items, nil
}

package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/platform/logger"
	"github.com/phrazzld/tango-api/internal/store"
	"github.com/redis/go-redis/v9"
)

const sectionKeyPrefix = "tango:items:section:"

// CachedItemStore wraps a store.ItemStore and caches section listings in Redis.
// Cache failures are logged and the underlying store is used instead.
type CachedItemStore struct {
	next   store.ItemStore
	client Client
	ttl    time.Duration
	logger *slog.Logger
	encode func(v any) ([]byte, error)
}

// NewCachedItemStore creates a caching decorator around next.
func NewCachedItemStore(next store.ItemStore, client Client, ttl time.Duration, logger *slog.Logger) *CachedItemStore {
	if next == nil {
		panic("next cannot be nil")
	}
	if client == nil {
		panic("client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedItemStore{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "item_cache")),
		encode: json.Marshal,
	}
}

// Ensure CachedItemStore implements store.ItemStore interface
var _ store.ItemStore = (*CachedItemStore)(nil)

// GetByID implements store.ItemStore.GetByID
func (c *CachedItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return c.next.GetByID(ctx, id)
}

// GetByIDs implements store.ItemStore.GetByIDs
func (c *CachedItemStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Item, error) {
	return c.next.GetByIDs(ctx, ids)
}

// ListBySection implements store.ItemStore.ListBySection
func (c *CachedItemStore) ListBySection(ctx context.Context, section int) ([]domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)
	key := SectionKey(section)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var items []domain.Item
		if err := json.Unmarshal(raw, &items); err == nil {
			log.Debug("section cache hit", slog.Int("section", section))
			return items, nil
		}
		log.Warn("discarding malformed section cache entry", slog.String("key", key))
	case errors.Is(err, redis.Nil):
		log.Debug("section cache miss", slog.Int("section", section))
	default:
		log.Warn("section cache read failed",
			slog.String("error", err.Error()),
			slog.String("key", key))
	}

	items, err := c.next.ListBySection(ctx, section)
	if err != nil {
		return nil, err
	}

	payload, err := c.encode(items)
	if err != nil {
		log.Warn("section cache encode failed",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return items, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Warn("section cache write failed",
			slog.String("error", err.Error()),
			slog.String("key", key))
	}
	return items, nil
}

// CountBySection implements store.ItemStore.CountBySection using the cached listing.
func (c *CachedItemStore) CountBySection(ctx context.Context, section int) (int, error) {
	items, err := c.ListBySection(ctx, section)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// SectionKey returns the cache key of a section listing.
func SectionKey(section int) string {
	return fmt.Sprintf("%s%d", sectionKeyPrefix, section)
}

package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
)

// ItemStore reads the vocabulary catalog. Items are written by the catalog
// import process, so the learning engine needs no mutating methods.
type ItemStore interface {
	// GetByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// GetByIDs retrieves the items with the given IDs. Unknown IDs are
	// silently skipped, so the result may be shorter than the input.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Item, error)

	// ListBySection returns every item in the given section.
	// Returns an empty slice for a section with no items.
	ListBySection(ctx context.Context, section int) ([]domain.Item, error)

	// CountBySection returns the number of items in the given section.
	CountBySection(ctx context.Context, section int) (int, error)
}

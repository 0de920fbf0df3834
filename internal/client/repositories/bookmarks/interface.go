package bookmarks

import (
	"context"

	"github.com/dmitrijs2005/bookmarks/internal/client/models"
)

type Repository interface {
	// Put inserts or refreshes an item.
	Put(ctx context.Context, item models.Item) error
	// Delete removes an item; absent items are not an error.
	Delete(ctx context.Context, itemID int64) error
	// List returns all mirrored items ordered by id.
	List(ctx context.Context) ([]models.Item, error)
	Has(ctx context.Context, itemID int64) (bool, error)
	Clear(ctx context.Context) error
}

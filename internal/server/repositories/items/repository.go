package items

import (
	"context"

	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Item, error)
	Upsert(ctx context.Context, item models.Item) error
}

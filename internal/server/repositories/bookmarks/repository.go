package bookmarks

import (
	"context"

	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, itemID int64) error
	Delete(ctx context.Context, userID string, itemID int64) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Item, error)
}

package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// CatalogService serves the read-only item catalog and loads it from seed
// data.
type CatalogService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	storeTimeout time.Duration
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, storeTimeout time.Duration) *CatalogService {
	return &CatalogService{db: db, repomanager: m, storeTimeout: storeTimeout}
}

// List returns every item ordered by id; an empty catalog yields an empty,
// non-nil slice.
func (s *CatalogService) List(ctx context.Context) ([]models.Item, error) {
	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	items, err := s.repomanager.Items(s.db).List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

func validateItem(item models.Item) error {
	return validation.ValidateStruct(&item,
		validation.Field(&item.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&item.Title, validation.Required, validation.Length(1, 512)),
		validation.Field(&item.URL, validation.Required, is.URL),
	)
}

// Import upserts items by id in one transaction. Nothing is written when
// any item is invalid.
func (s *CatalogService) Import(ctx context.Context, items []models.Item) (int, error) {
	for i, item := range items {
		if err := validateItem(item); err != nil {
			return 0, validationError(fmt.Errorf("item %d: %w", i, err))
		}
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Items(tx)
		for _, item := range items {
			if err := repo.Upsert(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, storeError(err)
	}
	return len(items), nil
}

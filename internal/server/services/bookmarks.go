package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
)

// BookmarkService maintains the per-user bookmark ledger.
type BookmarkService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	storeTimeout time.Duration
}

func NewBookmarkService(db *sql.DB, m repomanager.RepositoryManager, storeTimeout time.Duration) *BookmarkService {
	return &BookmarkService{db: db, repomanager: m, storeTimeout: storeTimeout}
}

func validateItemID(itemID int64) error {
	if err := validation.Validate(itemID, validation.Required, validation.Min(int64(1))); err != nil {
		return validationError(err)
	}
	return nil
}

// Add bookmarks itemID for userID. A second add of the same pair returns
// common.ErrAlreadyBookmarked; an unknown item returns common.ErrorNotFound.
func (s *BookmarkService) Add(ctx context.Context, userID string, itemID int64) error {
	if err := validateItemID(itemID); err != nil {
		return err
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	return storeError(s.repomanager.Bookmarks(s.db).Create(ctx, userID, itemID))
}

// Remove deletes the pair if present. Removing an absent bookmark is not an
// error; the bool reports whether a row was deleted.
func (s *BookmarkService) Remove(ctx context.Context, userID string, itemID int64) (bool, error) {
	if err := validateItemID(itemID); err != nil {
		return false, err
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	removed, err := s.repomanager.Bookmarks(s.db).Delete(ctx, userID, itemID)
	if err != nil {
		return false, storeError(err)
	}
	return removed, nil
}

// List returns the items userID has bookmarked.
func (s *BookmarkService) List(ctx context.Context, userID string) ([]models.Item, error) {
	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	items, err := s.repomanager.Bookmarks(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

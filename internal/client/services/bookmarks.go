package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/bookmarks/internal/client/client"
	"github.com/dmitrijs2005/bookmarks/internal/client/models"
	"github.com/dmitrijs2005/bookmarks/internal/client/repositories/bookmarks"
	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
)

// BookmarkService runs bookmark operations against the server and keeps the
// local mirror in step. The mirror changes only after the server confirmed.
type BookmarkService interface {
	Items(ctx context.Context, query string) ([]models.Item, error)
	List(ctx context.Context, query string) ([]models.Item, error)
	Cached(ctx context.Context, query string) ([]models.Item, error)
	Hydrate(ctx context.Context) error
	Add(ctx context.Context, itemID int64) error
	Remove(ctx context.Context, itemID int64) error
	Toggle(ctx context.Context, itemID int64) (bool, error)
}

type bookmarkService struct {
	client client.Client
	db     *sql.DB
	auth   AuthService
}

func NewBookmarkService(client client.Client, db *sql.DB, auth AuthService) BookmarkService {
	return &bookmarkService{client: client, db: db, auth: auth}
}

func (s *bookmarkService) repo() bookmarks.Repository {
	return bookmarks.NewSQLiteRepository(s.db)
}

// Filter keeps the items whose title or url contains query, ignoring case.
// An empty query keeps everything.
func Filter(items []models.Item, query string) []models.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := []models.Item{}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Title), q) || strings.Contains(strings.ToLower(it.URL), q) {
			out = append(out, it)
		}
	}
	return out
}

// unauthorized drops the local session when the server rejected the token.
func (s *bookmarkService) unauthorized(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		if clearErr := s.auth.Logout(ctx); clearErr != nil {
			return errors.Join(err, clearErr)
		}
		return ErrSessionExpired
	}
	return err
}

func (s *bookmarkService) Items(ctx context.Context, query string) ([]models.Item, error) {
	items, err := s.client.Items(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(items, query), nil
}

func (s *bookmarkService) hydrate(ctx context.Context, sess *models.Session) error {
	items, err := s.client.Bookmarks(ctx, sess.Token)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := bookmarks.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		for _, it := range items {
			if err := repo.Put(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
}

// Hydrate replaces the mirror with the server's listing.
func (s *bookmarkService) Hydrate(ctx context.Context) error {
	sess, err := s.auth.Session(ctx)
	if err != nil {
		return err
	}
	return s.hydrate(ctx, sess)
}

// List refreshes the mirror from the server and returns it filtered.
func (s *bookmarkService) List(ctx context.Context, query string) ([]models.Item, error) {
	if err := s.Hydrate(ctx); err != nil {
		return nil, err
	}
	return s.Cached(ctx, query)
}

// Cached returns the mirror without contacting the server.
func (s *bookmarkService) Cached(ctx context.Context, query string) ([]models.Item, error) {
	items, err := s.repo().List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(items, query), nil
}

// Add bookmarks itemID. When the server already has it, the mirror is
// re-hydrated and common.ErrAlreadyBookmarked is returned.
func (s *bookmarkService) Add(ctx context.Context, itemID int64) error {
	sess, err := s.auth.Session(ctx)
	if err != nil {
		return err
	}

	if err := s.client.AddBookmark(ctx, sess.Token, itemID); err != nil {
		if errors.Is(err, common.ErrAlreadyBookmarked) {
			if hErr := s.hydrate(ctx, sess); hErr != nil {
				return errors.Join(err, hErr)
			}
		}
		return s.unauthorized(ctx, err)
	}

	// The add reply carries no item details; the listing does.
	return s.hydrate(ctx, sess)
}

func (s *bookmarkService) Remove(ctx context.Context, itemID int64) error {
	sess, err := s.auth.Session(ctx)
	if err != nil {
		return err
	}

	if err := s.client.RemoveBookmark(ctx, sess.Token, itemID); err != nil {
		return s.unauthorized(ctx, err)
	}

	return s.repo().Delete(ctx, itemID)
}

// Toggle removes itemID when the mirror has it and adds it otherwise. It
// reports whether the item ends up bookmarked.
func (s *bookmarkService) Toggle(ctx context.Context, itemID int64) (bool, error) {
	has, err := s.repo().Has(ctx, itemID)
	if err != nil {
		return false, err
	}

	if has {
		return false, s.Remove(ctx, itemID)
	}

	err = s.Add(ctx, itemID)
	if errors.Is(err, common.ErrAlreadyBookmarked) {
		return true, nil
	}
	return err == nil, err
}

// Package services contains the server-side business logic: the credential
// store and session issuer (UserService), the asynchronous login audit
// (AttemptLog), the item catalog (CatalogService) and the bookmark ledger
// (BookmarkService).
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/common"
)

// DefaultStoreTimeout bounds a persistence call when no timeout is configured.
const DefaultStoreTimeout = 3 * time.Second

// withStoreTimeout derives the context every repository call runs under.
func withStoreTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, d)
}

// passThrough lists the repository errors that carry domain meaning and are
// returned unchanged.
var passThrough = []error{
	common.ErrDuplicateUsername,
	common.ErrAlreadyBookmarked,
	common.ErrorNotFound,
	common.ErrValidation,
}

// storeError classifies a repository error: domain sentinels pass through,
// anything else becomes common.ErrStoreUnavailable with the cause kept in the
// chain.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range passThrough {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", common.ErrValidation, err)
}

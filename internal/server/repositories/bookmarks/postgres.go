// Package bookmarks is the bookmark ledger store. The (user_id, item_id)
// primary key and the foreign keys to users and items are the correctness
// backstop; no existence pre-checks are issued.
package bookmarks

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create returns common.ErrAlreadyBookmarked for a duplicate pair and
// common.ErrorNotFound when the item (or user) does not exist.
func (r *PostgresRepository) Create(ctx context.Context, userID string, itemID int64) error {
	query := `INSERT INTO bookmarks (user_id, item_id) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, userID, itemID); err != nil {
		switch {
		case dbx.IsUniqueViolation(err):
			return common.ErrAlreadyBookmarked
		case dbx.IsForeignKeyViolation(err):
			return fmt.Errorf("%w: %s", common.ErrorNotFound, dbx.ConstraintName(err))
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete reports whether a row was removed.
func (r *PostgresRepository) Delete(ctx context.Context, userID string, itemID int64) (bool, error) {
	query := `DELETE FROM bookmarks WHERE user_id = $1 AND item_id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, itemID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

// ListByUser joins the caller's bookmarks with the catalog.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Item, error) {
	query :=
		`SELECT items.id, items.title, items.url
		 FROM bookmarks
		 JOIN items ON bookmarks.item_id = items.id
		 WHERE bookmarks.user_id = $1
		 ORDER BY items.id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Item, 0)
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Title, &it.URL); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

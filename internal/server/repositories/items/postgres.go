// Package items is the item catalog store.
package items

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the whole catalog ordered by id. An empty catalog yields an
// empty, non-nil slice.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Item, error) {
	query := `SELECT id, title, url FROM items ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
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

func (r *PostgresRepository) Upsert(ctx context.Context, item models.Item) error {
	query :=
		`INSERT INTO items (id, title, url)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, url = EXCLUDED.url
		 `

	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Title, item.URL); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

package bookmarks

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookmarks/internal/client/models"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Put(ctx context.Context, item models.Item) error {
	query := `INSERT INTO bookmarks (item_id, title, url) VALUES (?, ?, ?)
			ON CONFLICT(item_id) DO UPDATE SET title = excluded.title, url = excluded.url`
	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Title, item.URL); err != nil {
		return fmt.Errorf("failed to put bookmark: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, itemID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE item_id = ?`, itemID); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT item_id, title, url FROM bookmarks ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select bookmarks: %w", err)
	}
	defer rows.Close()

	result := []models.Item{}
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Title, &it.URL); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Has(ctx context.Context, itemID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookmarks WHERE item_id = ?`, itemID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to look up bookmark: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks`); err != nil {
		return fmt.Errorf("failed to clear bookmarks: %w", err)
	}
	return nil
}

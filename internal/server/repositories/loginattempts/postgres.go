// Package loginattempts stores the append-only login audit trail.
package loginattempts

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

// Create appends attempt and fills in its generated ID. A nil UserID is
// stored as NULL.
func (r *PostgresRepository) Create(ctx context.Context, attempt *models.LoginAttempt) error {
	query :=
		`INSERT INTO login_attempts (user_id, attempted_at, status)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	var userID any
	if attempt.UserID != nil {
		userID = *attempt.UserID
	}

	err := r.db.QueryRowContext(ctx, query, userID, attempt.AttemptedAt, string(attempt.Status)).Scan(&attempt.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

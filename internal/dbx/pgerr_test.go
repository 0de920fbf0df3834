package dbx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"}

	assert.True(t, IsUniqueViolation(pgErr))
	assert.True(t, IsUniqueViolation(fmt.Errorf("db error: %w", pgErr)), "must see through wrapping")
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}

	assert.True(t, IsForeignKeyViolation(fmt.Errorf("wrapped: %w", pgErr)))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
}

func TestConstraintName(t *testing.T) {
	assert.Equal(t, "bookmarks_item_id_fkey",
		ConstraintName(fmt.Errorf("x: %w", &pgconn.PgError{ConstraintName: "bookmarks_item_id_fkey"})))
	assert.Empty(t, ConstraintName(errors.New("plain")))
}

package bookmarks

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+bookmarks\s*\(user_id,\s*item_id\)\s*VALUES\s*\(\$1,\s*\$2\)$`
	deleteQuery = `(?s)^DELETE\s+FROM\s+bookmarks\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+item_id\s*=\s*\$2$`
	listQuery   = `(?s)^SELECT\s+items\.id,\s*items\.title,\s*items\.url\s+FROM\s+bookmarks\s+JOIN\s+items\s+ON\s+bookmarks\.item_id\s*=\s*items\.id\s+WHERE\s+bookmarks\.user_id\s*=\s*\$1\s+ORDER\s+BY\s+items\.id\s*$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQuery).WithArgs("u-1", int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), "u-1", 5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQuery).WithArgs("u-1", int64(5)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "bookmarks_pkey"})

	err := repo.Create(context.Background(), "u-1", 5)
	assert.ErrorIs(t, err, common.ErrAlreadyBookmarked)
}

func TestCreate_UnknownItem(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQuery).WithArgs("u-1", int64(999)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "bookmarks_item_id_fkey"})

	err := repo.Create(context.Background(), "u-1", 999)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, err.Error(), "bookmarks_item_id_fkey")
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQuery).WillReturnError(errors.New("timeout"))

	err := repo.Create(context.Background(), "u-1", 5)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrAlreadyBookmarked)
	assert.Contains(t, err.Error(), "db error: timeout")
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "removed", affected: 1, want: true},
		{name: "absent", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			mock.ExpectExec(deleteQuery).WithArgs("u-1", int64(5)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			got, err := repo.Delete(context.Background(), "u-1", 5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDelete_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteQuery).WillReturnError(sql.ErrConnDone)

	_, err := repo.Delete(context.Background(), "u-1", 5)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).WithArgs("u-1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "title", "url"}).AddRow(int64(5), "Postgres", "postgresql.org"),
	)

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, []models.Item{{ID: 5, Title: "Postgres", URL: "postgresql.org"}}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).WithArgs("u-2").WillReturnRows(sqlmock.NewRows([]string{"id", "title", "url"}))

	got, err := repo.ListByUser(context.Background(), "u-2")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUser_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).WithArgs("u-1").WillReturnError(errors.New("db down"))

	_, err := repo.ListByUser(context.Background(), "u-1")
	require.Error(t, err)
}

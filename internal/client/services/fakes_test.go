package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/client/client"
	"github.com/dmitrijs2005/bookmarks/internal/client/models"
	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeClient is an in-memory server: one catalog, bookmarks per token.
type fakeClient struct {
	mu        sync.Mutex
	catalog   []models.Item
	bookmarks map[string][]int64
	token     string
	userID    string
	err       error
	calls     []string
}

func newFakeClient(t *testing.T) *fakeClient {
	return &fakeClient{
		catalog: []models.Item{
			{ID: 1, Title: "Go Blog", URL: "https://go.dev/blog"},
			{ID: 2, Title: "SQLite", URL: "https://sqlite.org"},
			{ID: 3, Title: "Postgres Docs", URL: "https://www.postgresql.org/docs"},
		},
		bookmarks: map[string][]int64{},
		token:     signToken(t, time.Now().Add(time.Hour)),
		userID:    "user-1",
	}
}

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func (f *fakeClient) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeClient) authorized(token string) error {
	if token != f.token {
		return client.ErrUnauthorized
	}
	return nil
}

func (f *fakeClient) Register(ctx context.Context, username string, password []byte) error {
	return f.record("register")
}

func (f *fakeClient) Login(ctx context.Context, username string, password []byte) (*client.LoginResult, error) {
	if err := f.record("login"); err != nil {
		return nil, err
	}
	if string(password) != "pw" {
		return nil, common.ErrInvalidCredentials
	}
	return &client.LoginResult{Token: f.token, UserID: f.userID}, nil
}

func (f *fakeClient) Items(ctx context.Context) ([]models.Item, error) {
	if err := f.record("items"); err != nil {
		return nil, err
	}
	return f.catalog, nil
}

func (f *fakeClient) Bookmarks(ctx context.Context, token string) ([]models.Item, error) {
	if err := f.record("bookmarks"); err != nil {
		return nil, err
	}
	if err := f.authorized(token); err != nil {
		return nil, err
	}
	out := []models.Item{}
	for _, id := range f.bookmarks[token] {
		for _, it := range f.catalog {
			if it.ID == id {
				out = append(out, it)
			}
		}
	}
	return out, nil
}

func (f *fakeClient) AddBookmark(ctx context.Context, token string, itemID int64) error {
	if err := f.record("add"); err != nil {
		return err
	}
	if err := f.authorized(token); err != nil {
		return err
	}
	for _, id := range f.bookmarks[token] {
		if id == itemID {
			return common.ErrAlreadyBookmarked
		}
	}
	f.bookmarks[token] = append(f.bookmarks[token], itemID)
	return nil
}

func (f *fakeClient) RemoveBookmark(ctx context.Context, token string, itemID int64) error {
	if err := f.record("remove"); err != nil {
		return err
	}
	if err := f.authorized(token); err != nil {
		return err
	}
	ids := f.bookmarks[token][:0]
	for _, id := range f.bookmarks[token] {
		if id != itemID {
			ids = append(ids, id)
		}
	}
	f.bookmarks[token] = ids
	return nil
}

func (f *fakeClient) WhoAmI(ctx context.Context, token string) (string, error) {
	if err := f.record("whoami"); err != nil {
		return "", err
	}
	return f.userID, f.authorized(token)
}

func (f *fakeClient) Ping(ctx context.Context) error {
	return f.record("ping")
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

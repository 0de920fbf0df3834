package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	bookmarksrepo "github.com/dmitrijs2005/bookmarks/internal/server/repositories/bookmarks"
	itemsrepo "github.com/dmitrijs2005/bookmarks/internal/server/repositories/items"
	attemptsrepo "github.com/dmitrijs2005/bookmarks/internal/server/repositories/loginattempts"
	usersrepo "github.com/dmitrijs2005/bookmarks/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

type fakeUsersRepo struct {
	mu      sync.Mutex
	byName  map[string]*models.User
	err     error
	created int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrDuplicateUsername
	}
	cp := *u
	f.byName[u.UserName] = &cp
	f.created++
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeItemsRepo struct {
	items     []models.Item
	listErr   error
	upsertErr error
	upserted  []models.Item
}

func (f *fakeItemsRepo) List(context.Context) ([]models.Item, error) {
	return f.items, f.listErr
}

func (f *fakeItemsRepo) Upsert(_ context.Context, item models.Item) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, item)
	return nil
}

type pair struct {
	userID string
	itemID int64
}

type fakeBookmarksRepo struct {
	known map[int64]models.Item
	set   map[pair]bool
	err   error
}

func newFakeBookmarksRepo(items ...models.Item) *fakeBookmarksRepo {
	f := &fakeBookmarksRepo{known: map[int64]models.Item{}, set: map[pair]bool{}}
	for _, it := range items {
		f.known[it.ID] = it
	}
	return f
}

func (f *fakeBookmarksRepo) Create(_ context.Context, userID string, itemID int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.known[itemID]; !ok {
		return common.ErrorNotFound
	}
	p := pair{userID, itemID}
	if f.set[p] {
		return common.ErrAlreadyBookmarked
	}
	f.set[p] = true
	return nil
}

func (f *fakeBookmarksRepo) Delete(_ context.Context, userID string, itemID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	p := pair{userID, itemID}
	ok := f.set[p]
	delete(f.set, p)
	return ok, nil
}

func (f *fakeBookmarksRepo) ListByUser(_ context.Context, userID string) ([]models.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Item
	for p := range f.set {
		if p.userID == userID {
			out = append(out, f.known[p.itemID])
		}
	}
	return out, nil
}

type fakeAttemptsRepo struct {
	mu      sync.Mutex
	written []models.LoginAttempt
	err     error
	block   chan struct{}
}

func (f *fakeAttemptsRepo) Create(_ context.Context, a *models.LoginAttempt) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	a.ID = int64(len(f.written) + 1)
	f.written = append(f.written, *a)
	return nil
}

func (f *fakeAttemptsRepo) snapshot() []models.LoginAttempt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.LoginAttempt(nil), f.written...)
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	i *fakeItemsRepo
	b *fakeBookmarksRepo
	a *fakeAttemptsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository            { return m.u }
func (m *fakeRepoManager) Items(dbx.DBTX) itemsrepo.Repository            { return m.i }
func (m *fakeRepoManager) Bookmarks(dbx.DBTX) bookmarksrepo.Repository    { return m.b }
func (m *fakeRepoManager) LoginAttempts(dbx.DBTX) attemptsrepo.Repository { return m.a }

// recorder captures Record calls synchronously.
type recorder struct {
	mu    sync.Mutex
	calls []models.LoginAttempt
}

func (r *recorder) Record(_ context.Context, userID *string, status models.AttemptStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, models.LoginAttempt{UserID: userID, Status: status})
}

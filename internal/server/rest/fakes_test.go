package rest

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	bookmarksrepo "github.com/dmitrijs2005/bookmarks/internal/server/repositories/bookmarks"
	itemsrepo "github.com/dmitrijs2005/bookmarks/internal/server/repositories/items"
	attemptsrepo "github.com/dmitrijs2005/bookmarks/internal/server/repositories/loginattempts"
	usersrepo "github.com/dmitrijs2005/bookmarks/internal/server/repositories/users"
)

// memStore is an in-memory stand-in for the PostgreSQL repositories that
// honours the same uniqueness and foreign-key rules.
type memStore struct {
	mu        sync.Mutex
	users     map[string]*models.User
	items     map[int64]models.Item
	bookmarks map[string]map[int64]bool
	failWith  error
}

func newMemStore(items ...models.Item) *memStore {
	m := &memStore{
		users:     map[string]*models.User{},
		items:     map[int64]models.Item{},
		bookmarks: map[string]map[int64]bool{},
	}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *memStore) Users(dbx.DBTX) usersrepo.Repository            { return memUsers{m} }
func (m *memStore) Items(dbx.DBTX) itemsrepo.Repository            { return memItems{m} }
func (m *memStore) Bookmarks(dbx.DBTX) bookmarksrepo.Repository    { return memBookmarks{m} }
func (m *memStore) LoginAttempts(dbx.DBTX) attemptsrepo.Repository { return nil }

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWith != nil {
		return nil, r.m.failWith
	}
	if _, ok := r.m.users[u.UserName]; ok {
		return nil, common.ErrDuplicateUsername
	}
	cp := *u
	r.m.users[u.UserName] = &cp
	return u, nil
}

func (r memUsers) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWith != nil {
		return nil, r.m.failWith
	}
	u, ok := r.m.users[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type memItems struct{ m *memStore }

func (r memItems) List(context.Context) ([]models.Item, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWith != nil {
		return nil, r.m.failWith
	}
	out := make([]models.Item, 0, len(r.m.items))
	for _, it := range r.m.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memItems) Upsert(_ context.Context, item models.Item) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.items[item.ID] = item
	return nil
}

type memBookmarks struct{ m *memStore }

func (r memBookmarks) Create(_ context.Context, userID string, itemID int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWith != nil {
		return r.m.failWith
	}
	if _, ok := r.m.items[itemID]; !ok {
		return common.ErrorNotFound
	}
	set := r.m.bookmarks[userID]
	if set == nil {
		set = map[int64]bool{}
		r.m.bookmarks[userID] = set
	}
	if set[itemID] {
		return common.ErrAlreadyBookmarked
	}
	set[itemID] = true
	return nil
}

func (r memBookmarks) Delete(_ context.Context, userID string, itemID int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWith != nil {
		return false, r.m.failWith
	}
	existed := r.m.bookmarks[userID][itemID]
	delete(r.m.bookmarks[userID], itemID)
	return existed, nil
}

func (r memBookmarks) ListByUser(_ context.Context, userID string) ([]models.Item, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWith != nil {
		return nil, r.m.failWith
	}
	var out []models.Item
	for id := range r.m.bookmarks[userID] {
		out = append(out, r.m.items[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, *string, models.AttemptStatus) {}

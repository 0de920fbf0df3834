package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/bookmarks"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/items"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/loginattempts"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so that services can
// run them against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
	Bookmarks(db dbx.DBTX) bookmarks.Repository
	LoginAttempts(db dbx.DBTX) loginattempts.Repository
}

package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bookmarks/internal/client/client"
	"github.com/dmitrijs2005/bookmarks/internal/client/config"
	"github.com/dmitrijs2005/bookmarks/internal/client/models"
	"github.com/dmitrijs2005/bookmarks/internal/client/services"

	_ "modernc.org/sqlite"
)

type App struct {
	config          *config.Config
	db              *sql.DB
	authService     services.AuthService
	bookmarkService services.BookmarkService
	session         *models.Session
	reader          *bufio.Reader
	out             io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, c.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db)
	bs := services.NewBookmarkService(apiClient, db, as)

	return &App{
		config:          c,
		db:              db,
		authService:     as,
		bookmarkService: bs,
		reader:          bufio.NewReader(os.Stdin),
		out:             os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	if a.db != nil {
		defer a.db.Close()
	}

	fmt.Fprintln(a.out, "Welcome to the bookmarks CLI (type 'help' for commands)")

	a.restoreSession(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

// restoreSession picks up a session saved by a previous run.
func (a *App) restoreSession(ctx context.Context) {
	sess, err := a.authService.Session(ctx)
	if err != nil {
		if !errors.Is(err, services.ErrNotLoggedIn) {
			a.report(err)
		}
		return
	}
	a.session = sess
	a.refreshMirror(ctx)
}

// refreshMirror re-hydrates the mirror; failures only warn since the cached
// copy stays usable.
func (a *App) refreshMirror(ctx context.Context) {
	if err := a.bookmarkService.Hydrate(ctx); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			fmt.Fprintln(a.out, "Server unavailable, using cached bookmarks")
			return
		}
		a.report(err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) getStatus() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.session.UserName)
}

// report prints err in user terms and drops the in-memory session when the
// stored one is gone.
func (a *App) report(err error) {
	switch {
	case errors.Is(err, services.ErrSessionExpired):
		a.session = nil
		fmt.Fprintln(a.out, err.Error())
	case errors.Is(err, services.ErrNotLoggedIn):
		a.session = nil
		fmt.Fprintln(a.out, "Please log in first")
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	case errors.Is(err, client.ErrRateLimited):
		fmt.Fprintln(a.out, "Too many requests, slow down")
	default:
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
	}
}

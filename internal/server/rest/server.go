// Package rest exposes the bookmarks services over HTTP+JSON.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// UserService is the part of services.UserService the transport needs.
type UserService interface {
	Register(ctx context.Context, creds services.Credentials) (*models.User, error)
	Login(ctx context.Context, creds services.Credentials) (*services.Session, error)
	Authenticate(token string) (string, error)
}

type CatalogService interface {
	List(ctx context.Context) ([]models.Item, error)
}

type BookmarkService interface {
	Add(ctx context.Context, userID string, itemID int64) error
	Remove(ctx context.Context, userID string, itemID int64) (bool, error)
	List(ctx context.Context, userID string) ([]models.Item, error)
}

// RateLimit is the fixed-window budget applied per client address under /api.
type RateLimit struct {
	Requests           int64
	Window             time.Duration
	TrustForwardHeader bool
}

type HTTPServer struct {
	address   string
	users     UserService
	catalog   CatalogService
	bookmarks BookmarkService
	logger    logging.Logger
	rateLimit RateLimit
}

func NewHTTPServer(a string, l logging.Logger, us UserService, cs CatalogService, bs BookmarkService, rl RateLimit) *HTTPServer {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		catalog:   cs,
		bookmarks: bs,
		rateLimit: rl,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}

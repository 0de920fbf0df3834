package client

import (
	"context"

	"github.com/dmitrijs2005/bookmarks/internal/client/models"
)

// LoginResult is the server's reply to a successful login.
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type Client interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (*LoginResult, error)
	Items(ctx context.Context) ([]models.Item, error)
	Bookmarks(ctx context.Context, token string) ([]models.Item, error)
	AddBookmark(ctx context.Context, token string, itemID int64) error
	RemoveBookmark(ctx context.Context, token string, itemID int64) error
	WhoAmI(ctx context.Context, token string) (string, error)
	Ping(ctx context.Context) error
}

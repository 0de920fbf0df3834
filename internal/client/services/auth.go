// Package services contains application services for the bookmarks CLI:
// the session lifecycle (AuthService) and the bookmark operations that keep
// the local mirror in step with the server (BookmarkService).
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/client/client"
	"github.com/dmitrijs2005/bookmarks/internal/client/models"
	"github.com/dmitrijs2005/bookmarks/internal/client/repositories/bookmarks"
	"github.com/dmitrijs2005/bookmarks/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
)

const (
	keyToken    = "session_token"
	keyUserID   = "session_user_id"
	keyUserName = "session_username"
)

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// AuthService manages the caller's session.
//
// Contract:
//   - Register: create an account on the server.
//   - Login: authenticate, persist the session locally and return it.
//   - Session: load the stored session; an expired one is cleared.
//   - Logout: forget the session and the bookmark mirror.
//   - WhoAmI: ask the server which user the stored token belongs to.
//   - Ping: check server liveness.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (*models.Session, error)
	Session(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	now    func() time.Time
}

func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db, now: time.Now}
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	return a.client.Register(ctx, username, password)
}

// Login stores the new session, replacing any previous one together with
// the previous user's mirror.
func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.Session, error) {
	res, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	sess, err := models.NewSession(res.Token, res.UserID, username)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := bookmarks.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		meta := metadata.NewSQLiteRepository(tx)
		if err := meta.Set(ctx, keyToken, []byte(sess.Token)); err != nil {
			return err
		}
		if err := meta.Set(ctx, keyUserID, []byte(sess.UserID)); err != nil {
			return err
		}
		return meta.Set(ctx, keyUserName, []byte(sess.UserName))
	})
	if err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	return sess, nil
}

func (a *authService) Session(ctx context.Context) (*models.Session, error) {
	meta := metadata.NewSQLiteRepository(a.db)

	token, err := meta.Get(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrNotLoggedIn
	}
	userID, err := meta.Get(ctx, keyUserID)
	if err != nil {
		return nil, err
	}
	userName, err := meta.Get(ctx, keyUserName)
	if err != nil {
		return nil, err
	}

	sess, err := models.NewSession(string(token), string(userID), string(userName))
	if err != nil || sess.Expired(a.now()) {
		if clearErr := a.Logout(ctx); clearErr != nil {
			return nil, clearErr
		}
		return nil, ErrSessionExpired
	}

	return sess, nil
}

// Logout is local only: tokens are stateless and simply expire.
func (a *authService) Logout(ctx context.Context) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		meta := metadata.NewSQLiteRepository(tx)
		for _, k := range []string{keyToken, keyUserID, keyUserName} {
			if err := meta.Delete(ctx, k); err != nil {
				return err
			}
		}
		return bookmarks.NewSQLiteRepository(tx).Clear(ctx)
	})
}

func (a *authService) WhoAmI(ctx context.Context) (string, error) {
	sess, err := a.Session(ctx)
	if err != nil {
		return "", err
	}

	userID, err := a.client.WhoAmI(ctx, sess.Token)
	if errors.Is(err, client.ErrUnauthorized) {
		if clearErr := a.Logout(ctx); clearErr != nil {
			return "", errors.Join(err, clearErr)
		}
		return "", ErrSessionExpired
	}
	return userID, err
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

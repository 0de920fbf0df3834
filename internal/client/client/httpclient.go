package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/client/models"
	"github.com/dmitrijs2005/bookmarks/internal/netx"
)

// HTTPClient talks to the bookmarks server's JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient validates baseURL (scheme and host are required) and
// applies timeout to every request.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("server address: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("server address %q: want http(s)://host[:port]", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type itemRequest struct {
	ItemID int64 `json:"itemId"`
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	resp, err := netx.DoJSON(ctx, c.http, method, c.baseURL+path, token, in)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if !resp.OK() {
		apiErr := &APIError{Status: resp.Status}
		var body struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(resp.Body, &body) == nil {
			apiErr.Code, apiErr.Message = body.Code, body.Error
		}
		return apiErr
	}

	if out != nil {
		return resp.Decode(out)
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, username string, password []byte) error {
	return c.do(ctx, http.MethodPost, "/api/register", "",
		credentials{Username: username, Password: string(password)}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (*LoginResult, error) {
	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/api/login", "",
		credentials{Username: username, Password: string(password)}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Items(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.do(ctx, http.MethodGet, "/api/items", "", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) Bookmarks(ctx context.Context, token string) ([]models.Item, error) {
	var res struct {
		Bookmarks []models.Item `json:"bookmarks"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/bookmarks", token, nil, &res); err != nil {
		return nil, err
	}
	return res.Bookmarks, nil
}

func (c *HTTPClient) AddBookmark(ctx context.Context, token string, itemID int64) error {
	return c.do(ctx, http.MethodPost, "/api/bookmarks", token, itemRequest{ItemID: itemID}, nil)
}

func (c *HTTPClient) RemoveBookmark(ctx context.Context, token string, itemID int64) error {
	return c.do(ctx, http.MethodDelete, "/api/bookmarks", token, itemRequest{ItemID: itemID}, nil)
}

func (c *HTTPClient) WhoAmI(ctx context.Context, token string) (string, error) {
	var res struct {
		UserID string `json:"userId"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/protected", token, nil, &res); err != nil {
		return "", err
	}
	return res.UserID, nil
}

// Ping checks that the server is reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := netx.DoJSON(ctx, c.http, http.MethodGet, c.baseURL+"/ping", "", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: ping returned %d", ErrUnavailable, resp.Status)
	}
	return nil
}

package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/bookmarks/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limited")
)

// APIError is an error reply from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Message
}

// Unwrap maps the reply to a sentinel, by code first and by status when the
// code is unknown.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "DuplicateUsername":
		return common.ErrDuplicateUsername
	case "ValidationFailed":
		return common.ErrValidation
	case "InvalidCredentials":
		return common.ErrInvalidCredentials
	case "Unauthorized":
		return ErrUnauthorized
	case "NotFound":
		return common.ErrorNotFound
	case "AlreadyBookmarked":
		return common.ErrAlreadyBookmarked
	case "RateLimited":
		return ErrRateLimited
	case "StoreUnavailable":
		return common.ErrStoreUnavailable
	}

	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrAlreadyBookmarked
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return common.ErrValidation
	}
	return common.ErrorInternal
}

package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/server/services"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

type bookmarkRequest struct {
	ItemID int64 `json:"itemId"`
}

type bookmarksResponse struct {
	Bookmarks any `json:"bookmarks"`
}

type protectedResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}

func (s *HTTPServer) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *HTTPServer) Register(w http.ResponseWriter, r *http.Request) {
	var req services.Credentials
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Malformed request body")
		return
	}

	user, err := s.users.Register(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", user.UserName, "user_id", user.ID)
	writeJSON(w, http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

func (s *HTTPServer) Login(w http.ResponseWriter, r *http.Request) {
	var req services.Credentials
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Malformed request body")
		return
	}

	sess, err := s.users.Login(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

func (s *HTTPServer) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.List(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) AddBookmark(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req bookmarkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Malformed request body")
		return
	}

	if err := s.bookmarks.Add(r.Context(), userID, req.ItemID); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "bookmark added", "user_id", userID, "item_id", req.ItemID)
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Bookmark added successfully"})
}

func (s *HTTPServer) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	items, err := s.bookmarks.List(r.Context(), userID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmarksResponse{Bookmarks: items})
}

func (s *HTTPServer) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req bookmarkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Malformed request body")
		return
	}

	removed, err := s.bookmarks.Remove(r.Context(), userID, req.ItemID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "bookmark removed", "user_id", userID, "item_id", req.ItemID, "existed", removed)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Bookmark removed successfully"})
}

func (s *HTTPServer) Protected(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	writeJSON(w, http.StatusOK, protectedResponse{
		Message: "Protected data accessed successfully",
		UserID:  userID,
	})
}

// handleError maps a service error to its status and code. Internal causes
// are logged, never sent to the client.
func (s *HTTPServer) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
	case errors.Is(err, common.ErrDuplicateUsername):
		writeError(w, http.StatusBadRequest, codeDuplicateUsername, "Username already exists")
	case errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Access denied")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "Item not found")
	case errors.Is(err, common.ErrAlreadyBookmarked):
		writeError(w, http.StatusConflict, codeAlreadyBookmarked, "Bookmark already exists")
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeStoreUnavailable, "Internal error")
	}
}

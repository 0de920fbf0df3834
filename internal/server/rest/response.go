package rest

import (
	"encoding/json"
	"net/http"
)

// Error codes carried in the "code" field of error bodies.
const (
	codeDuplicateUsername  = "DuplicateUsername"
	codeValidationFailed   = "ValidationFailed"
	codeInvalidCredentials = "InvalidCredentials"
	codeUnauthorized       = "Unauthorized"
	codeNotFound           = "NotFound"
	codeAlreadyBookmarked  = "AlreadyBookmarked"
	codeRateLimited        = "RateLimited"
	codeMethodNotAllowed   = "MethodNotAllowed"
	codeStoreUnavailable   = "StoreUnavailable"
)

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

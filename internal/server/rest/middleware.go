package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// userIDFromContext returns the id stored by accessTokenMiddleware.
func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// accessTokenMiddleware rejects the request with 401 before the handler (and
// the body) is touched unless it carries a valid bearer token.
func (s *HTTPServer) accessTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.TokenFromHeader(r.Header.Get(common.AuthorizationHeaderName))
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "Access denied")
			return
		}

		userID, err := s.users.Authenticate(token)
		if err != nil {
			s.logger.Debug(r.Context(), "token rejected", "error", err)
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// recoveryLogger routes gorilla/handlers panic reports into our logger.
type recoveryLogger struct {
	s *HTTPServer
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.s.logger.Error(context.Background(), "panic recovered", "panic", v)
}

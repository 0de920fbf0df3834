package rest

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/ulule/limiter/v3"
	limitermw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const apiPrefix = "/api"

// Handler builds the routing tree:
//
//	/ping                     liveness, not rate limited
//	/api/register, /api/login, /api/items
//	/api/bookmarks, /api/protected   bearer token required
//
// Everything under /api, matched or not, counts against the rate limit.
func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()

	r.Handle("/ping", byMethod{http.MethodGet: http.HandlerFunc(s.Ping)})

	authed := func(h http.HandlerFunc) http.Handler { return s.accessTokenMiddleware(h) }

	api := r.PathPrefix(apiPrefix).Subrouter()
	api.Handle("/register", byMethod{http.MethodPost: http.HandlerFunc(s.Register)})
	api.Handle("/login", byMethod{http.MethodPost: http.HandlerFunc(s.Login)})
	api.Handle("/items", byMethod{http.MethodGet: http.HandlerFunc(s.ListItems)})
	api.Handle("/bookmarks", byMethod{
		http.MethodPost:   authed(s.AddBookmark),
		http.MethodGet:    authed(s.ListBookmarks),
		http.MethodDelete: authed(s.RemoveBookmark),
	})
	api.Handle("/protected", byMethod{http.MethodGet: authed(s.Protected)})

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{s}))(
		cors(s.requestLogger(s.limitAPI(r))),
	)
}

// byMethod dispatches on the request method; other methods get 405 with an
// Allow header.
type byMethod map[string]http.Handler

func (m byMethod) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.Method]; ok {
		h.ServeHTTP(w, r)
		return
	}

	allowed := make([]string, 0, len(m))
	for method := range m {
		allowed = append(allowed, method)
	}
	sort.Strings(allowed)
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	methodNotAllowed(w, r)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed")
}

// limitAPI applies the rate limit to every request under /api before the
// router sees it.
func (s *HTTPServer) limitAPI(next http.Handler) http.Handler {
	limited := s.rateLimiter()(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == apiPrefix || strings.HasPrefix(r.URL.Path, apiPrefix+"/") {
			limited.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) rateLimiter() func(http.Handler) http.Handler {
	rate := limiter.Rate{Period: s.rateLimit.Window, Limit: s.rateLimit.Requests}
	instance := limiter.New(memory.NewStore(), rate,
		limiter.WithTrustForwardHeader(s.rateLimit.TrustForwardHeader))

	mw := limitermw.NewMiddleware(instance,
		limitermw.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusTooManyRequests, codeRateLimited, "Too many requests, please try again later")
		}),
		limitermw.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			s.logger.Error(r.Context(), "rate limiter failed", "error", err)
			writeError(w, http.StatusInternalServerError, codeStoreUnavailable, "Internal error")
		}),
	)
	return mw.Handler
}

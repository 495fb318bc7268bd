package server

import (
	"net/http"

	"github.com/agentstation/bookshelf/internal/server/handlers"
	"github.com/agentstation/bookshelf/internal/server/middleware"
	"github.com/agentstation/bookshelf/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.app,
		s.cache,
		s.hub,
		s.upgrader,
		s.logger,
	)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health endpoints
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	// Books
	mux.HandleFunc("GET "+prefix+"/books", h.HandleListBooks)
	mux.HandleFunc("POST "+prefix+"/books", h.HandleCreateBook)
	mux.HandleFunc("GET "+prefix+"/books/{isbn}", withParams(h.HandleGetBook, "isbn"))
	mux.HandleFunc("DELETE "+prefix+"/books/{isbn}", withParams(h.HandleDeleteBook, "isbn"))
	mux.HandleFunc("GET "+prefix+"/books/{isbn}/availability", withParams(h.HandleBookAvailability, "isbn"))

	// Users
	mux.HandleFunc("GET "+prefix+"/users", h.HandleListUsers)
	mux.HandleFunc("POST "+prefix+"/users", h.HandleCreateUser)
	mux.HandleFunc("GET "+prefix+"/users/{id}", withParams(h.HandleGetUser, "id"))
	mux.HandleFunc("DELETE "+prefix+"/users/{id}", withParams(h.HandleDeleteUser, "id"))
	mux.HandleFunc("GET "+prefix+"/users/{id}/books", withParams(h.HandleUserBooks, "id"))

	// Lending
	mux.HandleFunc("POST "+prefix+"/users/{id}/borrow/{isbn}", withTwoParams(h.HandleBorrow, "id", "isbn"))
	mux.HandleFunc("POST "+prefix+"/users/{id}/return/{isbn}", withTwoParams(h.HandleReturn, "id", "isbn"))

	// Real-time endpoints
	mux.HandleFunc("GET "+prefix+"/updates/ws", h.HandleWebSocket)

	// Everything else under the prefix answers with the JSON envelope
	mux.HandleFunc(prefix+"/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not found", "No route for "+r.Method+" "+r.URL.Path)
	})
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	if s.config.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(s.config.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = s.config.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	)(handler)
}

// withParams adapts a handler taking one path value.
func withParams(fn func(http.ResponseWriter, *http.Request, string), name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(w, r, r.PathValue(name))
	}
}

// withTwoParams adapts a handler taking two path values.
func withTwoParams(fn func(http.ResponseWriter, *http.Request, string, string), first, second string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(w, r, r.PathValue(first), r.PathValue(second))
	}
}

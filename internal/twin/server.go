// Package twin is an in-memory stand-in for the Petstore Pet API. It serves
// the same routes, media types and auth checks as the real service so the
// client and the watch pipeline can run end to end without network access.
package twin

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/samvad-hq/petstore-client/internal/logger"
)

// Options controls which credentials the twin accepts. Empty fields accept any non-empty value.
type Options struct {
	BearerTokens []string
	APIKey       string
}

// Server holds twin state and handlers.
type Server struct {
	store *Store
	opts  Options
	log   logger.Logger
}

// New creates a twin server backed by store.
func New(store *Store, opts Options, log logger.Logger) *Server {
	if store == nil {
		store = NewStore()
	}
	return &Server{store: store, opts: opts, log: logger.OrNop(log)}
}

// Store exposes the backing store, mostly for tests and seeding.
func (s *Server) Store() *Store { return s.store }

// Handler returns the full router with the API mounted under /v2.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLog)
	r.Route("/v2", s.Routes)
	return r
}

// Routes mounts the Pet endpoints.
func (s *Server) Routes(r chi.Router) {
	r.With(s.requireAPIKey).Get("/pet/{petId}", s.getPetByID)

	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)
		r.Post("/pet", s.addPet)
		r.Put("/pet", s.updatePet)
		r.Get("/pet/findByStatus", s.findPetsByStatus)
		r.Get("/pet/findByTags", s.findPetsByTags)
		r.Post("/pet/{petId}", s.updatePetWithForm)
		r.Delete("/pet/{petId}", s.deletePet)
		r.Post("/pet/{petId}/uploadImage", s.uploadFile)
	})
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, r, http.StatusUnauthorized, "bearer token required")
			return
		}
		if len(s.opts.BearerTokens) > 0 && !slices.Contains(s.opts.BearerTokens, token) {
			writeError(w, r, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("api_key")
		if key == "" {
			writeError(w, r, http.StatusUnauthorized, "api_key header required")
			return
		}
		if s.opts.APIKey != "" && key != s.opts.APIKey {
			writeError(w, r, http.StatusUnauthorized, "invalid api_key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.DebugObj("twin request", "twin_request", map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  chimw.GetReqID(r.Context()),
		})
	})
}

// Package server implements the HTTP API for group computations.
//
// The API exposes the core queries over JSON: group order, membership
// testing and orbits, plus a catalog of named groups. Order results are
// cached by generator list. Routes are mounted under /v1; a /healthz
// endpoint serves liveness probes.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/schreier/pkg/cache"
	"github.com/matzehuels/schreier/pkg/catalog"
)

// Options configures a Server. Zero-value fields get working defaults:
// a null cache, an in-memory catalog and the default logger.
type Options struct {
	Cache   cache.Cache
	Catalog catalog.Store
	Logger  *log.Logger
}

// Server handles the HTTP API.
type Server struct {
	cache   cache.Cache
	catalog catalog.Store
	keyer   cache.Keyer
	logger  *log.Logger
}

// New creates a server with the given options.
func New(opts Options) *Server {
	s := &Server{
		cache:   opts.Cache,
		catalog: opts.Catalog,
		keyer:   cache.NewDefaultKeyer(),
		logger:  opts.Logger,
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.catalog == nil {
		s.catalog = catalog.NewMemoryStore()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/order", s.handleOrder)
		r.Post("/membership", s.handleMembership)
		r.Post("/orbit", s.handleOrbit)

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", s.handleGroupSave)
			r.Get("/", s.handleGroupList)
			r.Get("/{name}", s.handleGroupGet)
			r.Delete("/{name}", s.handleGroupDelete)
		})
	})

	return r
}

// logRequests logs one line per request with method, path, status and
// duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

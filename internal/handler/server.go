// Package handler implements the HTTP handlers for the Loo Map API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (loo.go, dump.go, health.go) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/loo-map/backend/internal/domain"
)

// LooServicer defines the business operations the loo handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type LooServicer interface {
	Create(ctx context.Context, loo domain.Loo, contributor string) (domain.Loo, error)
	Upsert(ctx context.Context, id string, loo domain.Loo, contributor string) (domain.Loo, bool, error)
	GetByID(ctx context.Context, id string) (domain.Loo, error)
	List(ctx context.Context, active *bool, p domain.PaginationParams) ([]domain.Loo, int64, error)
}

// DumpServicer defines the export operation the dump handler depends on.
type DumpServicer interface {
	Export(ctx context.Context) ([]domain.DumpRow, error)
}

// Server holds the handlers' dependencies for all API endpoints.
type Server struct {
	loos LooServicer
	dump DumpServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(loos LooServicer, dump DumpServicer) *Server {
	return &Server{loos: loos, dump: dump}
}

// Routes mounts every API endpoint on a fresh router.
//
// requireAuth guards the mutating routes and must place the verified
// contributor identity in the request context. Read routes stay outside it;
// in particular the dump is publicly cacheable and must not vary with
// authentication.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/loos", func(r chi.Router) {
		r.Get("/", s.ListLoos)
		r.Get("/dump", s.GetDump)
		r.Get("/{id}", s.GetLoo)

		r.With(requireAuth).Post("/", s.CreateLoo)
		r.With(requireAuth).Put("/{id}", s.UpsertLoo)
	})

	return r
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/loo-map/backend/internal/domain"
	"github.com/pkordes/loo-map/backend/internal/middleware"
)

// looRequest is the write-path request body for POST /loos and PUT /loos/{id}.
// The embedded Flags decode the amenity attributes in place; any flag left
// out of the body stays unknown (nil), which is distinct from false.
type looRequest struct {
	ID       string           `json:"id,omitempty"`
	Name     string           `json:"name"`
	Location *domain.Location `json:"location"`
	Active   *bool            `json:"active"`
	Notes    string           `json:"notes"`
	domain.Flags
}

// CreateLoo handles POST /loos.
// With no ID in the body the server mints one; a supplied ID must be unused.
func (s *Server) CreateLoo(w http.ResponseWriter, r *http.Request) {
	contributor := middleware.ContributorFromContext(r.Context())
	if contributor == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	loo, err := decodeLoo(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	created, err := s.loos.Create(r.Context(), loo, contributor)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusBadRequest, "validation_error", unwrapMessage(err))
		case errors.Is(err, domain.ErrConflict):
			writeError(w, http.StatusConflict, "conflict", "loo already exists")
		default:
			writeInternalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpsertLoo handles PUT /loos/{id}: create if absent (201), replace if
// present (200). The path ID always wins over any ID in the body.
func (s *Server) UpsertLoo(w http.ResponseWriter, r *http.Request) {
	contributor := middleware.ContributorFromContext(r.Context())
	if contributor == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	loo, err := decodeLoo(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	result, created, err := s.loos.Upsert(r.Context(), chi.URLParam(r, "id"), loo, contributor)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, "validation_error", unwrapMessage(err))
			return
		}
		writeInternalError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, result)
}

// GetLoo handles GET /loos/{id}. Inactive records are returned here even
// though listings and the dump hide them.
func (s *Server) GetLoo(w http.ResponseWriter, r *http.Request) {
	loo, err := s.loos.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "loo not found")
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loo)
}

// listResponse is the GET /loos envelope.
type listResponse struct {
	Data       []domain.Loo `json:"data"`
	Pagination pagination   `json:"pagination"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// ListLoos handles GET /loos.
// Supports ?active= (tri-state, defaults to active-only), ?page= and ?limit=.
func (s *Server) ListLoos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	active := domain.ParseActiveFilter(q.Get("active"))
	params := domain.NewPaginationParams(q.Get("page"), q.Get("limit"))

	loos, total, err := s.loos.List(r.Context(), active, params)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if loos == nil {
		loos = []domain.Loo{} // always a JSON array, never null
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data: loos,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// decodeLoo parses and minimally shapes a write-path request body.
// Type-level problems (malformed JSON, wrong field types) all collapse into
// one generic message; field-level rules live in the service.
func decodeLoo(r *http.Request) (domain.Loo, error) {
	var body looRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return domain.Loo{}, errors.New("invalid loo body")
	}
	if body.Location == nil {
		return domain.Loo{}, errors.New("location is required")
	}

	loo := domain.Loo{
		ID:       body.ID,
		Name:     body.Name,
		Location: *body.Location,
		Active:   true, // new records are visible unless explicitly deactivated
		Flags:    body.Flags,
		Notes:    body.Notes,
	}
	if body.Active != nil {
		loo.Active = *body.Active
	}
	return loo, nil
}

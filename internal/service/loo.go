// Package service contains the business logic for the Loo Map API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pkordes/loo-map/backend/internal/domain"
	"github.com/pkordes/loo-map/backend/internal/repo"
)

// LooService implements the create-vs-upsert logic for loo records.
//
// The two write paths differ deliberately:
//
//   - Create mints an ID when the caller supplies none, and treats a
//     caller-supplied duplicate as a conflict; it never falls back to
//     updating someone else's record.
//   - Upsert takes the ID from the request path, creates the record if it
//     is absent, and fully replaces it if present.
//
// Both paths validate before touching persistence and append the acting
// contributor to the record's trail. The contributor is an opaque string
// supplied by the authentication layer; the service never inspects it.
type LooService struct {
	repo repo.LooRepo
}

// NewLooService constructs a LooService backed by the provided LooRepo.
func NewLooService(r repo.LooRepo) *LooService {
	return &LooService{repo: r}
}

// Create persists a new loo. If loo.ID is empty a fresh 24-character ID is
// minted; a supplied ID must be well-formed or the request fails validation
// before any lookup. A supplied ID that already exists surfaces as
// domain.ErrConflict and leaves the existing record untouched.
func (s *LooService) Create(ctx context.Context, loo domain.Loo, contributor string) (domain.Loo, error) {
	if loo.ID == "" {
		loo.ID = domain.NewLooID()
	} else if !domain.ValidateLooID(loo.ID) {
		// On this route a malformed supplied ID is just a bad body; the
		// dedicated 24-character message belongs to the upsert path only.
		return domain.Loo{}, fmt.Errorf("service.LooService.Create: %w: invalid loo body", domain.ErrValidation)
	}

	if err := validateLoo(loo); err != nil {
		return domain.Loo{}, fmt.Errorf("service.LooService.Create: %w", err)
	}

	created, err := s.repo.CreateWithID(ctx, loo, contributor)
	if err != nil {
		return domain.Loo{}, fmt.Errorf("service.LooService.Create: %w", err)
	}
	return created, nil
}

// Upsert creates or fully replaces the loo identified by the path ID and
// reports which happened (created=true means the record did not exist).
//
// The ID is validated before any persistence access; the exact error message
// for a malformed ID is part of the API contract (domain.ErrIDLength).
// On replacement every non-identifier attribute is overwritten by the
// candidate, not a partial merge, and the contributor is appended
// to the existing trail.
func (s *LooService) Upsert(ctx context.Context, id string, loo domain.Loo, contributor string) (domain.Loo, bool, error) {
	if !domain.ValidateLooID(id) {
		return domain.Loo{}, false, fmt.Errorf("service.LooService.Upsert: %w", domain.ErrIDLength)
	}
	loo.ID = id

	if err := validateLoo(loo); err != nil {
		return domain.Loo{}, false, fmt.Errorf("service.LooService.Upsert: %w", err)
	}

	_, err := s.repo.GetByID(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		created, err := s.repo.CreateWithID(ctx, loo, contributor)
		if err != nil {
			return domain.Loo{}, false, fmt.Errorf("service.LooService.Upsert: %w", err)
		}
		return created, true, nil
	case err != nil:
		return domain.Loo{}, false, fmt.Errorf("service.LooService.Upsert: %w", err)
	}

	replaced, err := s.repo.Replace(ctx, loo, contributor)
	if err != nil {
		return domain.Loo{}, false, fmt.Errorf("service.LooService.Upsert: %w", err)
	}
	return replaced, false, nil
}

// GetByID returns a single loo by ID, active or not.
func (s *LooService) GetByID(ctx context.Context, id string) (domain.Loo, error) {
	loo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Loo{}, fmt.Errorf("service.LooService.GetByID: %w", err)
	}
	return loo, nil
}

// List returns one page of loos for the given tri-state active filter.
func (s *LooService) List(ctx context.Context, active *bool, p domain.PaginationParams) ([]domain.Loo, int64, error) {
	loos, total, err := s.repo.List(ctx, active, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.LooService.List: %w", err)
	}
	return loos, total, nil
}

// validateLoo enforces the body-level business rules shared by both write
// paths. ID validation is handled separately because the two routes report
// it differently.
func validateLoo(loo domain.Loo) error {
	if strings.TrimSpace(loo.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if loo.Location.Lat < -90 || loo.Location.Lat > 90 {
		return fmt.Errorf("%w: lat must be between -90 and 90", domain.ErrValidation)
	}
	if loo.Location.Lng < -180 || loo.Location.Lng > 180 {
		return fmt.Errorf("%w: lng must be between -180 and 180", domain.ErrValidation)
	}
	return nil
}

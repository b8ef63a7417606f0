package service

import (
	"context"
	"fmt"

	"github.com/mmcloughlin/geohash"

	"github.com/pkordes/loo-map/backend/internal/domain"
	"github.com/pkordes/loo-map/backend/internal/repo"
)

// dumpGeohashPrecision is the character length of geohashes in the dump.
// Nine characters resolve to roughly ±2.4m, more than enough to place a
// toilet on a map while keeping rows short.
const dumpGeohashPrecision = 9

// DumpService assembles the compact public export of active loos.
// The export is unconditionally active-only: no caller-supplied filter can
// widen it, so a deactivated record disappears from the dump immediately
// (cache permitting) while staying retrievable by direct lookup.
type DumpService struct {
	repo repo.LooRepo
}

// NewDumpService constructs a DumpService backed by the provided LooRepo.
func NewDumpService(r repo.LooRepo) *DumpService {
	return &DumpService{repo: r}
}

// Export returns one DumpRow per active loo, in the repo's ID order.
// Side-effect free: identical data sets yield identical row sequences,
// which is what makes the response cacheable byte-for-byte.
func (s *DumpService) Export(ctx context.Context) ([]domain.DumpRow, error) {
	loos, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DumpService.Export: %w", err)
	}

	rows := make([]domain.DumpRow, 0, len(loos))
	for _, loo := range loos {
		rows = append(rows, domain.DumpRow{
			ID:      loo.ID,
			Geohash: geohash.EncodeWithPrecision(loo.Location.Lat, loo.Location.Lng, dumpGeohashPrecision),
			Mask:    domain.EncodeFlags(loo.Flags),
		})
	}
	return rows, nil
}

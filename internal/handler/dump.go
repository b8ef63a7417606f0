package handler

import (
	"net/http"

	"github.com/pkordes/loo-map/backend/internal/domain"
)

// dumpCacheControl lets shared caches hold the export for one hour.
// The dump is the heaviest read on the API; pushing repeat traffic to CDN
// and proxy caches is the intended load-shedding mechanism, so this value
// is part of the endpoint's contract rather than a tunable.
const dumpCacheControl = "public, max-age=3600"

// dumpResponse is the GET /loos/dump envelope: a row count and the compact
// [id, geohash, bitmask] triples.
type dumpResponse struct {
	Count int              `json:"count"`
	Data  []domain.DumpRow `json:"data"`
}

// GetDump handles GET /loos/dump.
//
// The response is identical for authenticated and unauthenticated callers:
// nothing about the request may vary the body, or shared caches would serve
// the wrong representation. Active-only filtering is unconditional; no query
// parameter widens it.
func (s *Server) GetDump(w http.ResponseWriter, r *http.Request) {
	rows, err := s.dump.Export(r.Context())
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if rows == nil {
		rows = []domain.DumpRow{}
	}

	w.Header().Set("Cache-Control", dumpCacheControl)
	writeJSON(w, http.StatusOK, dumpResponse{Count: len(rows), Data: rows})
}

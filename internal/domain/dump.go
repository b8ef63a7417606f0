package domain

import "encoding/json"

// DumpRow is a single row in the compact public export: one active loo
// reduced to its ID, the geohash of its location, and the amenity bitmask.
// It is a projection computed at export time, never persisted.
type DumpRow struct {
	ID      string
	Geohash string
	Mask    uint32
}

// MarshalJSON encodes the row as the positional triple ["id","geohash",mask].
// The array form (rather than an object) is what keeps the bulk dump compact;
// consumers index by position.
func (r DumpRow) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.ID, r.Geohash, r.Mask})
}

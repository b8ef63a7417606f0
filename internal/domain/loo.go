// Package domain contains the core data types for the Loo Map application.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Location is a geographic coordinate pair.
// It is stored as-is and converted to a geohash only for the dump export.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Loo represents a single public toilet location.
// The ID is a 24-character lowercase hex string, assigned once and immutable.
//
// Contributors is the append-only audit trail of everyone who has created or
// modified the record: the last entry is always the most recent author. It is
// never reordered or deduplicated.
//
// Records are never physically deleted; Active=false is the only
// destructive-equivalent state, and such records stay retrievable by ID.
type Loo struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location Location `json:"location"`
	Active   bool     `json:"active"`
	Flags
	Notes        string    `json:"notes,omitempty"`
	Contributors []string  `json:"contributors"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

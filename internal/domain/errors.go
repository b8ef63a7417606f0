package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing name, malformed ID, out-of-range coordinate).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a caller-supplied ID already exists on a
// create (non-upsert) path. The existing record is left untouched.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("already exists")

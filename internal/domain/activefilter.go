package domain

import "strings"

// ParseActiveFilter normalizes the textual "active" query parameter into a
// tri-state listing filter:
//
//	*true  for only active records (the safe default)
//	*false for only inactive records
//	nil    for no filter, list everything
//
// Matching is case-insensitive and ignores surrounding whitespace.
// Any unrecognized non-empty value falls back to active-only rather than
// erroring; an inactive record must never leak because of a typo in a
// query string. Total function, never fails.
func ParseActiveFilter(raw string) *bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "false":
		return boolPtr(false)
	case "any", "all":
		return nil
	default:
		// "", "true", and everything else.
		return boolPtr(true)
	}
}

func boolPtr(v bool) *bool { return &v }

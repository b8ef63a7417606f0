package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/loo-map/backend/internal/domain"
)

// TestParseActiveFilter covers every documented literal input exhaustively.
// The silent active-only fallback for unrecognized values is intentional and
// load-bearing: a malformed query must never expose inactive records.
func TestParseActiveFilter(t *testing.T) {
	onlyActive := true
	onlyInactive := false

	cases := []struct {
		name string
		in   string
		want *bool
	}{
		{"absent", "", &onlyActive},
		{"true", "true", &onlyActive},
		{"false", "false", &onlyInactive},
		{"any", "any", nil},
		{"all", "all", nil},
		{"garbage", "garbage", &onlyActive},
		{"mixed case true", "TrUe", &onlyActive},
		{"mixed case false", "FALSE", &onlyInactive},
		{"mixed case any", "Any", nil},
		{"padded all", "  all ", nil},
		{"padded false", " false\t", &onlyInactive},
		{"numeric", "1", &onlyActive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ParseActiveFilter(tc.in)

			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

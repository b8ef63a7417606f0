package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/loo-map/backend/internal/domain"
)

// TestDumpRow_MarshalJSON verifies the positional triple encoding that dump
// consumers index into: [id, geohash, mask].
func TestDumpRow_MarshalJSON(t *testing.T) {
	row := domain.DumpRow{
		ID:      "5f1c2a3b4d5e6f7a8b9c0d1e",
		Geohash: "gcpvj0e5u",
		Mask:    11,
	}

	b, err := json.Marshal(row)

	require.NoError(t, err)
	assert.JSONEq(t, `["5f1c2a3b4d5e6f7a8b9c0d1e","gcpvj0e5u",11]`, string(b))
}

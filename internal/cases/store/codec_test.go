package store

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacttrace/pkg/platform/sentinel"
)

func TestEncodeEntry(t *testing.T) {
	at := time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, `["2023-01-01T10:00:00Z","fever"]`, EncodeEntry(at, "fever"))

	t.Run("offset is rendered in UTC", func(t *testing.T) {
		local := time.Date(2023, 1, 1, 12, 0, 0, 500, time.FixedZone("x", 2*3600))
		assert.Equal(t, `["2023-01-01T10:00:00.0000005Z","fever"]`, EncodeEntry(local, "fever"))
	})
}

func TestEntryRoundTrip(t *testing.T) {
	labels := []string{"fever", "", `quote " and \ slash`, "toux sèche", "咳", "[\"nested\"]"}
	rng := rand.New(rand.NewPCG(1, 2))
	lo := time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	hi := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC).Unix()

	for i := 0; i < 2000; i++ {
		at := time.Unix(lo+rng.Int64N(hi-lo), rng.Int64N(int64(time.Second))).UTC()
		label := labels[i%len(labels)]

		got, err := DecodeEntry(EncodeEntry(at, label))
		require.NoError(t, err)
		require.True(t, at.Equal(got.At), "instant %s decoded as %s", at, got.At)
		require.Equal(t, label, got.Label)
	}
}

func TestDecodeEntryMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "fever"},
		{name: "object", raw: `{"ts":"2023-01-01T10:00:00Z","symptom":"fever"}`},
		{name: "one field", raw: `["2023-01-01T10:00:00Z"]`},
		{name: "three fields", raw: `["2023-01-01T10:00:00Z","fever","x"]`},
		{name: "non-string fields", raw: `[1,2]`},
		{name: "bad timestamp", raw: `["yesterday","fever"]`},
		{name: "empty", raw: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEntry(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, sentinel.ErrSerialization)
		})
	}
}

func TestCaseKey(t *testing.T) {
	assert.Equal(t, "case:abc", CaseKey("abc"))
}

package nuvei_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzabara/nuvei-gateway/internal/gateway/nuvei"
)

func TestSign_ReferenceVector(t *testing.T) {
	// Known-good digest verified against the processor's algorithm.
	got := nuvei.Sign("6491002", "100", "49.99", "29-08-2026:11:22:33:444", "topsecret")
	assert.Equal(t, "9eefee9599e425d405bac4eb61cc5ca9", got)
}

func TestSign_Deterministic(t *testing.T) {
	a := nuvei.Sign("TERM1", "42", "10.00", "01-01-2026:00:00:00:000", "secret")
	b := nuvei.Sign("TERM1", "42", "10.00", "01-01-2026:00:00:00:000", "secret")
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
	assert.Regexp(t, "^[0-9a-f]{32}$", a)
}

func TestSign_EveryFieldChangesDigest(t *testing.T) {
	base := nuvei.Sign("TERM1", "42", "10.00", "01-01-2026:00:00:00:000", "secret")

	variants := map[string]string{
		"terminal":  nuvei.Sign("TERM2", "42", "10.00", "01-01-2026:00:00:00:000", "secret"),
		"order":     nuvei.Sign("TERM1", "43", "10.00", "01-01-2026:00:00:00:000", "secret"),
		"amount":    nuvei.Sign("TERM1", "42", "10.01", "01-01-2026:00:00:00:000", "secret"),
		"timestamp": nuvei.Sign("TERM1", "42", "10.00", "01-01-2026:00:00:00:001", "secret"),
		"secret":    nuvei.Sign("TERM1", "42", "10.00", "01-01-2026:00:00:00:000", "Secret"),
	}
	for field, digest := range variants {
		assert.NotEqual(t, base, digest, "changing %s must change the digest", field)
	}
}

func TestTimestamp_Format(t *testing.T) {
	ts := time.Date(2026, 8, 29, 11, 22, 33, 444*int(time.Millisecond), time.UTC)
	assert.Equal(t, "29-08-2026:11:22:33:444", nuvei.Timestamp(ts))

	// Single-digit components are zero-padded.
	ts = time.Date(2026, 1, 2, 3, 4, 5, 6*int(time.Millisecond), time.UTC)
	assert.Equal(t, "02-01-2026:03:04:05:006", nuvei.Timestamp(ts))
}

func TestParseTimestamp_RoundTrip(t *testing.T) {
	orig := time.Date(2026, 8, 29, 11, 22, 33, 444*int(time.Millisecond), time.UTC)
	parsed, err := nuvei.ParseTimestamp(nuvei.Timestamp(orig))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(orig))
}

func TestParseTimestamp_NoMillis(t *testing.T) {
	parsed, err := nuvei.ParseTimestamp("29-08-2026:11:22:33")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 29, 11, 22, 33, 0, time.UTC), parsed)
}

func TestParseTimestamp_Invalid(t *testing.T) {
	_, err := nuvei.ParseTimestamp("not-a-timestamp")
	assert.Error(t, err)
}

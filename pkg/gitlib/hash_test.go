package gitlib_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codefolio/pkg/gitlib"
)

func TestParseHash(t *testing.T) {
	t.Parallel()

	const hex = "0123456789abcdef0123456789abcdef01234567"

	h, err := gitlib.ParseHash(hex)
	require.NoError(t, err)
	assert.Equal(t, hex, h.String())
	assert.False(t, h.IsZero())
	assert.Equal(t, h, gitlib.HashFromOid(h.ToOid()))

	upper, err := gitlib.ParseHash("0123456789ABCDEF0123456789ABCDEF01234567")
	require.NoError(t, err)
	assert.Equal(t, h, upper)

	for _, bad := range []string{"", "abc", "zz23456789abcdef0123456789abcdef01234567"} {
		_, err = gitlib.ParseHash(bad)
		require.ErrorIs(t, err, gitlib.ErrBadHash, bad)
	}

	assert.True(t, gitlib.Hash{}.IsZero())
	assert.True(t, gitlib.HashFromOid(nil).IsZero())
}

func TestFormatOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		offset int
		want   string
	}{
		{offset: 0, want: "+00:00"},
		{offset: -8 * 3600, want: "-08:00"},
		{offset: 5*3600 + 30*60, want: "+05:30"},
		{offset: -(3*3600 + 30*60), want: "-03:30"},
	}

	for _, tt := range tests {
		ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.FixedZone("", tt.offset))
		assert.Equal(t, tt.want, gitlib.FormatOffset(ts))
	}
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	got, err := gitlib.ParseTime("2025-02-04", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC), got)

	got, err = gitlib.ParseTime("2025-02-04T17:05:00-08:00", nil)
	require.NoError(t, err)
	assert.Equal(t, 17, got.Hour())

	got, err = gitlib.ParseTime("24h", nil)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), got, time.Minute)

	_, err = gitlib.ParseTime("yesterday", nil)
	require.ErrorIs(t, err, gitlib.ErrInvalidTimeFormat)
}

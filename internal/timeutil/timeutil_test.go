package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocation(t *testing.T) {
	loc, fallback := ResolveLocation("America/New_York")
	assert.False(t, fallback)
	assert.Equal(t, "America/New_York", loc.String())

	loc, fallback = ResolveLocation("")
	assert.True(t, fallback)
	assert.Equal(t, time.UTC, loc)

	loc, fallback = ResolveLocation("Mars/Olympus_Mons")
	assert.True(t, fallback)
	assert.Equal(t, time.UTC, loc)
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("14:30")
	require.NoError(t, err)
	assert.Equal(t, 14, h)
	assert.Equal(t, 30, m)

	_, _, err = ParseClock("2pm")
	assert.Error(t, err)

	_, _, err = ParseClock("24:00")
	assert.Error(t, err)
}

func TestCombine(t *testing.T) {
	got, fallback, err := Combine("2026-10-15", "15:00", "America/Los_Angeles")
	require.NoError(t, err)
	assert.False(t, fallback)
	assert.Equal(t, "2026-10-15T15:00:00-07:00", got.Format(time.RFC3339))

	got, _, err = Combine("2026-10-15", "", "America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 0, got.Minute())

	got, fallback, err = Combine("2026-10-15", "08:05", "")
	require.NoError(t, err)
	assert.True(t, fallback)
	assert.Equal(t, "2026-10-15T08:05:00Z", got.Format(time.RFC3339))

	_, _, err = Combine("15/10/2026", "08:05", "UTC")
	assert.Error(t, err)

	_, _, err = Combine("", "08:05", "UTC")
	assert.Error(t, err)

	_, _, err = Combine("2026-10-15", "8 o'clock", "UTC")
	assert.Error(t, err)
}

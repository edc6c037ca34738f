package timeparse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var declineAll = LibraryParserFunc(func(string, time.Time) (time.Time, error) {
	return time.Time{}, errors.New("declined")
})

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestParser_ResolveDate_Patterns(t *testing.T) {
	p := New(WithClock(fixedClock(wednesdayNoon)), WithLibrary(declineAll))
	ctx := context.Background()

	got, ok := p.ResolveDate(ctx, "today")
	require.True(t, ok)
	assert.Equal(t, "2026-10-14", got)

	got, ok = p.ResolveDate(ctx, "tomorrow")
	require.True(t, ok)
	assert.Equal(t, "2026-10-15", got)

	plain, ok := p.ResolveDate(ctx, "monday")
	require.True(t, ok)
	prefixed, ok := p.ResolveDate(ctx, "next monday")
	require.True(t, ok)
	assert.Equal(t, plain, prefixed)
}

func TestParser_ResolveDate_SamplesClockPerCall(t *testing.T) {
	now := wednesdayNoon
	p := New(WithClock(func() time.Time { return now }), WithLibrary(declineAll))

	got, _ := p.ResolveDate(context.Background(), "today")
	assert.Equal(t, "2026-10-14", got)

	now = now.AddDate(0, 0, 1)
	got, _ = p.ResolveDate(context.Background(), "today")
	assert.Equal(t, "2026-10-15", got)
}

func TestParser_ResolveDate_LibraryBeforeModel(t *testing.T) {
	lib := LibraryParserFunc(func(text string, now time.Time) (time.Time, error) {
		if text == "in a fortnight" {
			return now.AddDate(0, 0, 14), nil
		}
		return time.Time{}, errors.New("declined")
	})
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, BuildDatePrompt("whenever")).Return("2027-01-01", nil)

	p := New(
		WithClock(fixedClock(wednesdayNoon)),
		WithLibrary(lib),
		WithModel(completer, NewLRUCache(8, 0)),
	)

	got, ok := p.ResolveDate(context.Background(), "in a fortnight")
	require.True(t, ok)
	assert.Equal(t, "2026-10-28", got)
	completer.AssertNotCalled(t, "Complete", mock.Anything, BuildDatePrompt("in a fortnight"))

	got, ok = p.ResolveDate(context.Background(), "whenever")
	require.True(t, ok)
	assert.Equal(t, "2027-01-01", got)
}

func TestParser_ResolveDate_ModelIdempotentAcrossClockChanges(t *testing.T) {
	now := wednesdayNoon
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Return("2026-12-24", nil).Once()

	p := New(
		WithClock(func() time.Time { return now }),
		WithLibrary(declineAll),
		WithModel(completer, nil),
	)

	first, ok := p.ResolveDate(context.Background(), "the usual party day")
	require.True(t, ok)

	now = now.AddDate(0, 2, 0)
	second, ok := p.ResolveDate(context.Background(), "the usual party day")
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, p.Cache().Len())
	completer.AssertNumberOfCalls(t, "Complete", 1)
}

func TestParser_ResolveDate_ModelReceivesContext(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "request-1")

	completer := new(mockCompleter)
	completer.On("Complete", mock.MatchedBy(func(c context.Context) bool {
		return c.Value(ctxKey{}) == "request-1"
	}), mock.Anything).Return("2026-12-24", nil)

	p := New(WithClock(fixedClock(wednesdayNoon)), WithLibrary(declineAll), WithModel(completer, nil))

	_, ok := p.ResolveDate(ctx, "whenever")
	assert.True(t, ok)
	completer.AssertExpectations(t)
}

func TestParser_PanickingStagesAreAbsent(t *testing.T) {
	lib := LibraryParserFunc(func(string, time.Time) (time.Time, error) {
		panic("boom")
	})
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).Panic("model exploded")

	p := New(WithClock(fixedClock(wednesdayNoon)), WithLibrary(lib), WithModel(completer, nil))

	assert.NotPanics(t, func() {
		_, ok := p.ResolveDate(context.Background(), "whenever")
		assert.False(t, ok)
		assert.Equal(t, Components{}, p.ExtractComponents("whenever"))
	})
}

func TestParser_UnparseableInputIsAbsentEverywhere(t *testing.T) {
	p := New(WithClock(fixedClock(wednesdayNoon)))

	assert.NotPanics(t, func() {
		_, ok := p.ResolveDate(context.Background(), "zzz")
		assert.False(t, ok)

		_, ok = p.ResolveTime("zzz")
		assert.False(t, ok)

		assert.Equal(t, Components{}, p.ExtractComponents("zzz"))
	})
	assert.Nil(t, p.Cache())
}

func TestParser_ResolveTime(t *testing.T) {
	p := New()
	for input, expected := range map[string]string{
		"2pm":    "14:00",
		"2:30pm": "14:30",
		"14:00":  "14:00",
		"1400":   "14:00",
	} {
		got, ok := p.ResolveTime(input)
		require.True(t, ok, input)
		assert.Equal(t, expected, got, input)
	}
}

func TestParser_ExtractComponents_WholeTextParse(t *testing.T) {
	p := New(WithClock(fixedClock(wednesdayNoon)), WithLibrary(NewWhenParser()))

	got := p.ExtractComponents("tomorrow 3pm PST")
	assert.Equal(t, Components{
		Date:     "2026-10-15",
		Time:     "15:00",
		Timezone: ZonePacific,
	}, got)
}

func TestParser_DefaultLibraries(t *testing.T) {
	p := New(WithClock(fixedClock(wednesdayNoon)))
	ctx := context.Background()

	t.Run("resolve date", func(t *testing.T) {
		tests := []struct {
			input    string
			expected string
			ok       bool
		}{
			{input: "tomorrow", expected: "2026-10-15", ok: true},
			{input: "tomorrow at 1400", expected: "2026-10-15", ok: true},
			{input: "in 2 days from now", expected: "2026-10-16", ok: true},
			{input: "1400", ok: false},
			{input: "zzz", ok: false},
		}
		for _, tt := range tests {
			got, ok := p.ResolveDate(ctx, tt.input)
			assert.Equal(t, tt.ok, ok, tt.input)
			assert.Equal(t, tt.expected, got, tt.input)
		}
	})

	t.Run("extract components", func(t *testing.T) {
		tests := []struct {
			input    string
			expected Components
		}{
			{
				input:    "tomorrow 3pm PST",
				expected: Components{Date: "2026-10-15", Time: "15:00", Timezone: ZonePacific},
			},
			{
				input:    "tomorrow at 1400",
				expected: Components{Date: "2026-10-15", Time: "14:00"},
			},
			{
				input:    "1400",
				expected: Components{Time: "14:00"},
			},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.expected, p.ExtractComponents(tt.input), tt.input)
		}
	})
}

func TestParser_ExtractComponents_IndependentResolution(t *testing.T) {
	p := New(WithClock(fixedClock(wednesdayNoon)), WithLibrary(declineAll))

	tests := []struct {
		input    string
		expected Components
	}{
		{
			input:    "friday 9:30am EST",
			expected: Components{Date: "2026-10-16", Time: "09:30", Timezone: ZoneEastern},
		},
		{
			input:    "tomorrow",
			expected: Components{Date: "2026-10-15"},
		},
		{
			input:    "at 1400 utc",
			expected: Components{Time: "14:00", Timezone: ZoneUTC},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.ExtractComponents(tt.input))
		})
	}
}

func TestParser_WithLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 20:00 UTC on Wednesday is already Thursday in Tokyo.
	utcEvening := time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)
	p := New(WithClock(fixedClock(utcEvening)), WithLocation(loc), WithLibrary(declineAll))

	got, ok := p.ResolveDate(context.Background(), "today")
	require.True(t, ok)
	assert.Equal(t, "2026-10-15", got)
}

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

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func TestBuildDatePrompt(t *testing.T) {
	prompt := BuildDatePrompt("the day after the party")

	assert.Contains(t, prompt, `"the day after the party"`)
	assert.Contains(t, prompt, "YYYY-MM-DD")
	assert.Contains(t, prompt, `"next Monday" -> 2025-07-21`)
	assert.Contains(t, prompt, `"Friday afternoon" -> 2025-07-25`)
	assert.Contains(t, prompt, `"tomorrow morning" -> 2025-07-21`)
	assert.Contains(t, prompt, `"in 2 hours" -> 2025-07-20`)
}

func TestModelResolver_ValidatesAndCaches(t *testing.T) {
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, BuildDatePrompt("after the review")).
		Return("  2026-11-02\n", nil).Once()

	cache := NewLRUCache(8, 0)
	r := NewModelResolver(completer, cache, nil)

	got, ok := r.ResolveDate(context.Background(), "after the review", wednesdayNoon)
	require.True(t, ok)
	assert.Equal(t, "2026-11-02", got.Format(DateLayout))

	cached, ok := cache.Get("after the review")
	require.True(t, ok)
	assert.Equal(t, "2026-11-02", cached)

	// Served from cache even though the reference instant moved.
	got, ok = r.ResolveDate(context.Background(), "after the review", wednesdayNoon.AddDate(0, 1, 0))
	require.True(t, ok)
	assert.Equal(t, "2026-11-02", got.Format(DateLayout))

	completer.AssertNumberOfCalls(t, "Complete", 1)
}

func TestModelResolver_CacheKeyIsVerbatim(t *testing.T) {
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, BuildDatePrompt("After The Review")).
		Return("2026-11-03", nil).Once()

	cache := NewLRUCache(8, 0)
	cache.Add("after the review", "2026-11-02")
	r := NewModelResolver(completer, cache, nil)

	got, ok := r.ResolveDate(context.Background(), "After The Review", wednesdayNoon)
	require.True(t, ok)
	assert.Equal(t, "2026-11-03", got.Format(DateLayout))
	completer.AssertExpectations(t)
}

func TestModelResolver_RejectsMalformedReplies(t *testing.T) {
	replies := []string{
		"November 2nd",
		"2026-11-02 is the date",
		"2026-11-2",
		"2026-02-30",
		"",
	}

	for _, reply := range replies {
		t.Run(reply, func(t *testing.T) {
			completer := new(mockCompleter)
			completer.On("Complete", mock.Anything, mock.Anything).Return(reply, nil)

			cache := NewLRUCache(8, 0)
			r := NewModelResolver(completer, cache, nil)

			_, ok := r.ResolveDate(context.Background(), "someday", wednesdayNoon)
			assert.False(t, ok)
			assert.Equal(t, 0, cache.Len())
		})
	}
}

func TestModelResolver_BackendErrorIsAbsent(t *testing.T) {
	completer := new(mockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("connection refused")).Twice()

	r := NewModelResolver(completer, nil, nil)

	_, ok := r.ResolveDate(context.Background(), "someday", wednesdayNoon)
	assert.False(t, ok)

	// Failures are not cached, so the next call asks again.
	_, ok = r.ResolveDate(context.Background(), "someday", wednesdayNoon)
	assert.False(t, ok)
	completer.AssertExpectations(t)
}

func TestModelResolver_NilCompleter(t *testing.T) {
	r := NewModelResolver(nil, nil, nil)
	_, ok := r.ResolveDate(context.Background(), "someday", wednesdayNoon)
	assert.False(t, ok)
}

func TestLRUCache_Bounded(t *testing.T) {
	cache := NewLRUCache(2, 0)
	cache.Add("a", "2026-01-01")
	cache.Add("b", "2026-01-02")
	cache.Add("c", "2026-01-03")

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get("a")
	assert.False(t, ok)

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestLRUCache_Expires(t *testing.T) {
	cache := NewLRUCache(4, 20*time.Millisecond)
	cache.Add("a", "2026-01-01")

	_, ok := cache.Get("a")
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := cache.Get("a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

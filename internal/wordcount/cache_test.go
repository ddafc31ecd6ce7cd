package wordcount

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/filesystem"
)

// countingCounter records how often the wrapped counter actually runs.
type countingCounter struct {
	next  WordCounter
	calls atomic.Int32
}

func (c *countingCounter) CountWords(path, target string) (Result, error) {
	c.calls.Add(1)
	return c.next.CountWords(path, target)
}

func TestResultCache_NilIsDisabled(t *testing.T) {
	cache, err := NewResultCache(0)
	require.NoError(t, err)
	assert.Nil(t, cache)

	cache.Add("k", Result{TotalWords: 1})
	_, ok := cache.Get("k")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
	cache.Purge()
}

func TestResultCache_Evicts(t *testing.T) {
	cache, err := NewResultCache(2)
	require.NoError(t, err)

	cache.Add("a", Result{TotalWords: 1})
	cache.Add("b", Result{TotalWords: 2})
	cache.Add("c", Result{TotalWords: 3})

	_, ok := cache.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	got, ok := cache.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3, got.TotalWords)
	assert.Equal(t, 2, cache.Len())
}

func TestCachingCounter(t *testing.T) {
	mfs := filesystem.NewMemFS("/")
	mfs.AddFile("/notes.txt", []byte("coffee Coffee tea"))

	inner := &countingCounter{next: NewCounter(mfs, nil)}
	cache, err := NewResultCache(8)
	require.NoError(t, err)
	cc := NewCachingCounter(mfs, inner, cache)

	first, err := cc.CountWords("/notes.txt", "coffee")
	require.NoError(t, err)
	second, err := cc.CountWords("/notes.txt", "COFFEE")
	require.NoError(t, err)

	assert.Equal(t, Result{TotalWords: 3, MatchCount: 2}, first)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, inner.calls.Load(), "case-only target change should hit")

	// A rewritten file changes size, so the entry misses.
	mfs.AddFile("/notes.txt", []byte("coffee coffee coffee coffee"))
	third, err := cc.CountWords("/notes.txt", "coffee")
	require.NoError(t, err)
	assert.Equal(t, Result{TotalWords: 4, MatchCount: 4}, third)
	assert.EqualValues(t, 2, inner.calls.Load())
}

func TestCachingCounter_ErrorsAreNotCached(t *testing.T) {
	mfs := filesystem.NewMemFS("/")
	inner := &countingCounter{next: NewCounter(mfs, nil)}
	cache, err := NewResultCache(8)
	require.NoError(t, err)
	cc := NewCachingCounter(mfs, inner, cache)

	_, err = cc.CountWords("/missing.txt", "x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cc.CountWords("/missing.txt", "x")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.EqualValues(t, 2, inner.calls.Load())
	assert.Zero(t, cache.Len())
}

package wordcount

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/filesystem"
)

// ResultCache is a bounded LRU of successful results. A nil *ResultCache is
// valid and never hits.
type ResultCache struct {
	lru *lru.Cache[string, Result]
}

// NewResultCache returns a cache holding up to size results, or nil when
// size is zero or negative.
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New[string, Result](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	return &ResultCache{lru: c}, nil
}

// Get returns the cached result for key.
func (c *ResultCache) Get(key string) (Result, bool) {
	if c == nil {
		return Result{}, false
	}
	return c.lru.Get(key)
}

// Add stores res under key, evicting the least recently used entry when full.
func (c *ResultCache) Add(key string, res Result) {
	if c == nil {
		return
	}
	c.lru.Add(key, res)
}

// Len reports the number of cached results.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// Purge drops every entry.
func (c *ResultCache) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

// TargetKey normalizes a target the same way CountText compares it, so
// "Coffee" and "coffee" share an entry.
func TargetKey(target string) string {
	return foldCase(target)
}

// CachingCounter serves repeated counts of an unchanged file from a
// ResultCache. Entries are keyed by absolute path, size, modification time
// and target, so a rewritten file misses.
type CachingCounter struct {
	fs    filesystem.Filesystem
	next  WordCounter
	cache *ResultCache
}

// NewCachingCounter wraps next. fsys must be the filesystem next reads from.
func NewCachingCounter(fsys filesystem.Filesystem, next WordCounter, cache *ResultCache) *CachingCounter {
	return &CachingCounter{fs: fsys, next: next, cache: cache}
}

func (c *CachingCounter) CountWords(path, target string) (Result, error) {
	key, ok := c.fileKey(path, target)
	if ok {
		if res, hit := c.cache.Get(key); hit {
			return res, nil
		}
	}

	res, err := c.next.CountWords(path, target)
	if err != nil {
		return Result{}, err
	}
	if ok {
		c.cache.Add(key, res)
	}
	return res, nil
}

// fileKey returns false when the file cannot be stat'ed; next then reports
// the proper error.
func (c *CachingCounter) fileKey(path, target string) (string, bool) {
	if c.cache == nil {
		return "", false
	}
	info, err := c.fs.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	abs, err := c.fs.Abs(path)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s|%d|%d|%s", abs, info.Size(), info.ModTime().UnixNano(), TargetKey(target)), true
}

package timeparse

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache stores model-resolved dates keyed by the verbatim expression text.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (string, bool)
	Add(key, value string)
	Len() int
	Purge()
}

// DefaultCacheSize bounds the cache when a non-positive size is configured.
const DefaultCacheSize = 256

// LRUCache is a size-bounded cache whose entries expire after a TTL.
type LRUCache struct {
	lru *expirable.LRU[string, string]
}

// NewLRUCache creates a cache holding at most size entries.
// A ttl of zero keeps entries until they are evicted by size.
func NewLRUCache(size int, ttl time.Duration) *LRUCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl < 0 {
		ttl = 0
	}
	return &LRUCache{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

// Get returns the cached value for key.
func (c *LRUCache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

// Add stores value under key, evicting the least recently used entry if full.
func (c *LRUCache) Add(key, value string) {
	c.lru.Add(key, value)
}

// Len returns the number of live entries.
func (c *LRUCache) Len() int {
	return c.lru.Len()
}

// Purge removes every entry.
func (c *LRUCache) Purge() {
	c.lru.Purge()
}

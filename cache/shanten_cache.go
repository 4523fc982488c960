// Package cache wires a process-local ristretto cache for the one
// computation in this engine expensive enough to warrant memoizing:
// shanten/tenpai evaluation over a 34-type hand array.
package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// ShantenCache memoizes shanten results keyed by the caller-supplied string
// key (typically a serialized Hand34 + meld-count tuple).
type ShantenCache struct {
	cache *ristretto.Cache
}

// NewShantenCache builds a cache sized for the small, high-churn key space
// hand-shape lookups produce during a round (a handful of kilobytes of
// entries, but looked up on every available-action computation).
func NewShantenCache() (*ShantenCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     1 << 24, // 16 MiB
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: failed to build shanten cache: %w", err)
	}
	return &ShantenCache{cache: c}, nil
}

// Get returns a memoized shanten value for key, if present.
func (c *ShantenCache) Get(key string) (int, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

// Set stores a shanten value for key.
func (c *ShantenCache) Set(key string, shanten int) {
	c.cache.Set(key, shanten, 1)
}

// Close releases the cache's background goroutines.
func (c *ShantenCache) Close() { c.cache.Close() }

// Wait blocks until every Set call issued so far has been applied.
// ristretto's Set is processed through an async buffer; callers that need a
// Get to observe a just-issued Set (tests, warm-up passes) must Wait first.
func (c *ShantenCache) Wait() { c.cache.Wait() }

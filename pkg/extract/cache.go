package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// ResultCache memoizes remote extraction results so byte-identical uploads
// don't trigger redundant paid calls. Entries are keyed by extractor kind plus
// a digest of the raw bytes: the same payload classified down two different
// paths must never return the other path's output.
//
// The cache is best effort. It lives for the process lifetime, holds at most
// capacity entries and evicts the oldest-inserted entry first. A miss always
// falls through to the real extraction path.
type ResultCache struct {
	mu       sync.Mutex
	store    *gocache.Cache
	order    []string
	capacity int
}

func NewResultCache(capacity int) *ResultCache {
	if capacity < 1 {
		capacity = 1
	}
	return &ResultCache{
		// Entries never expire on their own; eviction is purely capacity-driven.
		store:    gocache.New(gocache.NoExpiration, 0),
		order:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

// CacheKey derives the content-addressed key for one extractor kind.
func CacheKey(kind string, data []byte) string {
	sum := sha256.Sum256(data)
	return kind + ":" + hex.EncodeToString(sum[:])
}

func (c *ResultCache) Get(key string) (string, bool) {
	if v, found := c.store.Get(key); found {
		return v.(string), true
	}
	return "", false
}

func (c *ResultCache) Put(key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store.Get(key); exists {
		c.store.Set(key, text, gocache.NoExpiration)
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.store.Delete(oldest)
	}

	c.store.Set(key, text, gocache.NoExpiration)
	c.order = append(c.order, key)
}

// Len reports the number of live entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

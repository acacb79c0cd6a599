// In file: internal/pattern/cache.go
package pattern

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
)

// DefaultCacheCapacity bounds the analysis cache when no capacity is
// configured.
const DefaultCacheCapacity = 100

// CacheKey creates a stable, fixed-length SHA256 hash of the normalized
// requirement text. Normalization (trim + lowercase) means trivially
// reformatted requirements share a cache entry.
func CacheKey(text string) string {
	hasher := sha256.New()
	hasher.Write([]byte(strings.ToLower(strings.TrimSpace(text))))
	return hex.EncodeToString(hasher.Sum(nil))
}

// analysisCache is a bounded, mutex-guarded LRU of finished recommendations.
//
// Eviction is recency-based, not insertion-order: a cache hit moves the entry
// to the front, and the least-recently-used entry is dropped at capacity.
// Eviction order is observable behavior and is covered by tests.
type analysisCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List               // front = most recently used
	entries  map[string]*list.Element // key -> element whose Value is *cacheEntry
}

type cacheEntry struct {
	key            string
	recommendation Recommendation
}

func newAnalysisCache(capacity int) *analysisCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &analysisCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

// get returns the cached recommendation for key, refreshing its recency.
func (c *analysisCache) get(key string) (Recommendation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	element, found := c.entries[key]
	if !found {
		return Recommendation{}, false
	}
	c.order.MoveToFront(element)
	return element.Value.(*cacheEntry).recommendation, true
}

// put stores a recommendation, evicting the least-recently-used entry when the
// cache is at capacity.
func (c *analysisCache) put(key string, rec Recommendation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if element, exists := c.entries[key]; exists {
		element.Value.(*cacheEntry).recommendation = rec
		c.order.MoveToFront(element)
		return
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, recommendation: rec})
}

// contains reports whether key is cached, without touching recency. Exists for
// tests and instrumentation.
func (c *analysisCache) contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, found := c.entries[key]
	return found
}

// len reports the number of cached entries.
func (c *analysisCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

package ingest

import (
	"fmt"
	"sync"

	"github.com/patrickmn/go-cache"
)

// ResolutionCache remembers natural key → entity id mappings for the
// duration of one run. It is discarded at run end.
type ResolutionCache interface {
	Get(key string) (string, bool)
	Set(key, id string)
	Stats() CacheStats
}

type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

type runCache struct {
	cache *cache.Cache
	mu    sync.Mutex
	stats CacheStats
}

// NewResolutionCache creates a run-scoped cache with no expiration.
func NewResolutionCache() ResolutionCache {
	return &runCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (c *runCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if data, found := c.cache.Get(key); found {
		if id, ok := data.(string); ok {
			c.stats.Hits++
			return id, true
		}
	}

	c.stats.Misses++
	return "", false
}

func (c *runCache) Set(key, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Set(key, id, cache.NoExpiration)
}

func (c *runCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Size = c.cache.ItemCount()
	return c.stats
}

// CacheKey builds the cache key for an entity kind and its natural key.
func CacheKey(kind, naturalKey string) string {
	return fmt.Sprintf("%s:%s", kind, naturalKey)
}

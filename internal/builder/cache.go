package builder

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/piwi3910/PrismCut/internal/mesh"
)

// CacheStats reports memo cache traffic.
type CacheStats struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
}

// Cache memoizes built cores by the content hash of (element key, specs key).
// Built meshes are immutable, so entries are shared by reference. Cache is
// safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*mesh.Core
	stats   CacheStats
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*mesh.Core)}
}

// Get looks up a built core by key.
func (c *Cache) Get(key string) (*mesh.Core, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	core, ok := c.entries[key]
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return core, ok
}

// Put stores a built core under its key.
func (c *Cache) Put(key string, core *mesh.Core) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = core
}

// Len returns the number of cached builds.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the hit and miss counts.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// cacheKey hashes an element key and a specs key into a fixed-size token.
func cacheKey(elementKey, specsKey string) string {
	payload, _ := json.Marshal(struct {
		Element string `json:"element"`
		Specs   string `json:"specs"`
	}{elementKey, specsKey})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

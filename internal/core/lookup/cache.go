package lookup

import (
	"sort"
	"sync"

	"github.com/agenthands/tether/internal/core/model"
)

// Cache memoizes candidate lists by lookup key. Inserts are idempotent
// overwrites of the same key, so a reader-writer lock is enough even under
// concurrent requests. Entries never expire; Clear is the only eviction.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]model.Candidate
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string][]model.Candidate)}
}

func (c *Cache) Get(key string) ([]model.Candidate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	candidates, ok := c.entries[key]
	return candidates, ok
}

func (c *Cache) Put(key string, candidates []model.Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = candidates
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]model.Candidate)
}

// Stats returns the entry count and sorted keys.
func (c *Cache) Stats() (int, []string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return len(c.entries), keys
}

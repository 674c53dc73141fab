package inmemory

import (
	"sync"
	"time"
)

// CategoriesCache is a single-value TTL cache for the distinct event
// category listing.
type CategoriesCache struct {
	mu        sync.RWMutex
	value     []string
	expiresAt time.Time
}

func NewCategoriesCache() *CategoriesCache {
	return &CategoriesCache{}
}

func (c *CategoriesCache) Get() ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.value == nil || !c.expiresAt.After(time.Now()) {
		return nil, false
	}

	result := make([]string, len(c.value))
	copy(result, c.value)
	return result, true
}

func (c *CategoriesCache) Set(categories []string, ttl time.Duration) {
	value := make([]string, len(categories))
	copy(value, categories)

	c.mu.Lock()
	c.value = value
	c.expiresAt = time.Now().Add(ttl)
	c.mu.Unlock()
}

func (c *CategoriesCache) Invalidate() {
	c.mu.Lock()
	c.value = nil
	c.mu.Unlock()
}

package event

import "time"

// CategoriesCache caches the distinct-category listing, the one event read
// that is hot and tolerant of staleness.
type CategoriesCache interface {
	Get() ([]string, bool)
	Set(categories []string, ttl time.Duration)
	Invalidate()
}

type noopCategoriesCache struct{}

func (noopCategoriesCache) Get() ([]string, bool)        { return nil, false }
func (noopCategoriesCache) Set([]string, time.Duration)  {}
func (noopCategoriesCache) Invalidate()                  {}

package inmemory

import (
	"testing"
	"time"
)

func TestCategoriesCacheRoundTrip(t *testing.T) {
	cache := NewCategoriesCache()

	if _, ok := cache.Get(); ok {
		t.Fatalf("empty cache must miss")
	}

	cache.Set([]string{"sports", "music"}, time.Minute)
	got, ok := cache.Get()
	if !ok || len(got) != 2 {
		t.Fatalf("expected cached value, got %v ok=%v", got, ok)
	}

	// The caller must not be able to mutate the cached slice.
	got[0] = "mutated"
	again, _ := cache.Get()
	if again[0] != "sports" {
		t.Fatalf("cached value was mutated: %v", again)
	}

	cache.Invalidate()
	if _, ok := cache.Get(); ok {
		t.Fatalf("invalidated cache must miss")
	}
}

func TestCategoriesCacheExpiry(t *testing.T) {
	cache := NewCategoriesCache()

	cache.Set([]string{"sports"}, -time.Second)
	if _, ok := cache.Get(); ok {
		t.Fatalf("expired entry must miss")
	}
}

package cache

import (
	"errors"
	"testing"

	"github.com/penwyp/go-lineup-timeline/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSpan = model.YearSpan{Start: 1981, End: 2024}

func sampleEntry() *MemoryCacheEntry {
	return &MemoryCacheEntry{
		Sections: []model.RoleInterval{
			{Roles: []string{"Bass"}, Years: []model.YearInterval{{Start: 1992, End: 1995}}},
		},
	}
}

func TestKey(t *testing.T) {
	a := Key("Bass (1992-present)", testSpan, 2024)
	assert.Equal(t, a, Key("Bass (1992-present)", testSpan, 2024))
	assert.NotEqual(t, a, Key("Bass (1992-present)", testSpan, 2025))
	assert.NotEqual(t, a, Key("Bass (1992-present)", model.YearSpan{Start: 1980, End: 2024}, 2024))
	assert.NotEqual(t, a, Key("Bass (1992-1995)", testSpan, 2024))
}

func TestMemoryCacheSetAndGet(t *testing.T) {
	cache := NewMemoryCache()
	key := Key("Bass (1992-1995)", testSpan, 2024)

	_, ok := cache.Get(key)
	assert.False(t, ok)

	cache.Set(key, sampleEntry())
	entry, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "Bass", entry.Sections[0].Roles[0])
	assert.Equal(t, int64(1), entry.Hits)
	assert.NotZero(t, entry.LastAccessed)

	hits, misses := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, 1, cache.Len())
}

func TestMemoryCacheStoresErrors(t *testing.T) {
	cache := NewMemoryCache()
	parseErr := errors.New("boom")
	cache.Set("k", &MemoryCacheEntry{Err: parseErr})

	entry, ok := cache.Get("k")
	require.True(t, ok)
	assert.ErrorIs(t, entry.Err, parseErr)
}

func TestMemoryCachePrune(t *testing.T) {
	cache := NewMemoryCache()
	cache.Set("fresh", sampleEntry())
	cache.Set("stale", sampleEntry())

	cache.mu.Lock()
	cache.entries["stale"].LastAccessed -= 3600
	cache.mu.Unlock()

	assert.Equal(t, 1, cache.Prune(60))
	_, ok := cache.Get("stale")
	assert.False(t, ok)
	_, ok = cache.Get("fresh")
	assert.True(t, ok)
}

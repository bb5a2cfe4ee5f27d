package cache

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/penwyp/go-lineup-timeline/internal/core/model"
	"github.com/penwyp/go-lineup-timeline/internal/util"
)

// MemoryCacheEntry is the memoised outcome of parsing one role string.
type MemoryCacheEntry struct {
	Sections     []model.RoleInterval
	Dropped      string
	Err          error
	LastAccessed int64
	Hits         int64
}

// MemoryCache memoises role string parses. Band pages repeat the same role
// strings across lineups and the watch command re-parses unchanged files.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*MemoryCacheEntry

	hits   int64
	misses int64
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*MemoryCacheEntry),
	}
}

// Key identifies a parse. The current year is part of it because "present"
// resolves to it.
func Key(raw string, span model.YearSpan, currentYear int) string {
	return span.String() + "|" + strconv.Itoa(currentYear) + "|" + raw
}

func (mc *MemoryCache) Set(key string, entry *MemoryCacheEntry) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if entry != nil {
		entry.LastAccessed = time.Now().Unix()
	}
	mc.entries[key] = entry
}

func (mc *MemoryCache) Get(key string) (*MemoryCacheEntry, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	entry, ok := mc.entries[key]
	if !ok || entry == nil {
		mc.misses++
		return nil, false
	}

	mc.hits++
	entry.Hits++
	entry.LastAccessed = time.Now().Unix()
	return entry, true
}

// Len returns the number of live entries.
func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.entries)
}

// Stats returns the lookup counters since creation.
func (mc *MemoryCache) Stats() (hits, misses int64) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.hits, mc.misses
}

// Prune drops entries not accessed within maxAge seconds and returns how
// many were removed.
func (mc *MemoryCache) Prune(maxAge int64) int {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	cutoff := time.Now().Unix() - maxAge
	removed := 0
	for key, entry := range mc.entries {
		if entry == nil || entry.LastAccessed < cutoff {
			delete(mc.entries, key)
			removed++
		}
	}
	if removed > 0 {
		util.LogDebug(fmt.Sprintf("MemoryCache: Pruned %d idle entries", removed))
	}
	return removed
}

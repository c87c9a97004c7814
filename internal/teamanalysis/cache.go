package teamanalysis

import (
	"sync"

	"github.com/arcanefeed/riftwatch/internal/advice"
	"github.com/arcanefeed/riftwatch/internal/analysis"
)

// StatsCache holds computed PlayerMatchStats keyed by perspective and
// display name — a player can legitimately have two cached entries at
// once (e.g. seen as an ally in one session, an enemy in another), per
// the perspective-plurality design: the cache never stores advice,
// only the perspective-agnostic stats it was computed alongside.
//
// Single writer (the Builder), many readers; guarded by a sync.RWMutex
// following the same owner+lock shape as the rest of the package's
// shared caches.
type StatsCache struct {
	mu    sync.RWMutex
	stats map[string]analysis.PlayerMatchStats
}

// NewStatsCache builds an empty cache.
func NewStatsCache() *StatsCache {
	return &StatsCache{stats: make(map[string]analysis.PlayerMatchStats)}
}

func cacheKey(perspective advice.Perspective, displayName string) string {
	return string(perspective) + "|" + displayName
}

func (c *StatsCache) get(perspective advice.Perspective, displayName string) (analysis.PlayerMatchStats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats, ok := c.stats[cacheKey(perspective, displayName)]
	return stats, ok
}

func (c *StatsCache) put(perspective advice.Perspective, displayName string, stats analysis.PlayerMatchStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats[cacheKey(perspective, displayName)] = stats
}

// Len reports the number of cached entries, mostly useful for logging.
func (c *StatsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stats)
}

// Invalidate drops every cached entry. Called whenever a champion-select
// session ends (transition away from ChampSelect), per the decision
// recorded for the source's unhandled "same name on both sides across
// sessions" case.
func (c *StatsCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = make(map[string]analysis.PlayerMatchStats)
}

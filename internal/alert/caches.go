package alert

import (
	"context"

	"github.com/krfshft/PoeHud-Sunbeam/internal/observe"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/game"
)

// ─── Sound dedup ─────────────────────────────────────────────────────────────

// SoundCache remembers which entities already sounded an alert during the
// current area visit. The zero value is ready to use.
type SoundCache struct {
	ids map[int64]struct{}
}

// Contains reports whether id has sounded during this visit.
func (c *SoundCache) Contains(id int64) bool {
	_, ok := c.ids[id]
	return ok
}

// Add marks id as sounded.
func (c *SoundCache) Add(id int64) {
	if c.ids == nil {
		c.ids = make(map[int64]struct{})
	}
	c.ids[id] = struct{}{}
}

// ClearAll forgets every entity.
func (c *SoundCache) ClearAll() {
	clear(c.ids)
}

// Len returns the number of remembered entities.
func (c *SoundCache) Len() int { return len(c.ids) }

// ─── Ground labels ───────────────────────────────────────────────────────────

// LabelCache maps entity addresses to ground-label snapshots. It is filled
// lazily: a lookup miss in [LabelCache.Resolve] rebuilds the whole cache from
// the source, never patches a single entry.
type LabelCache struct {
	source  game.GroundLabels
	labels  map[int64]game.GroundLabel
	metrics *observe.Metrics

	rebuilds int
}

// NewLabelCache returns an empty cache fed by source. metrics may be nil.
func NewLabelCache(source game.GroundLabels, metrics *observe.Metrics) *LabelCache {
	return &LabelCache{
		source:  source,
		labels:  make(map[int64]game.GroundLabel),
		metrics: metrics,
	}
}

// Lookup returns the cached snapshot for address without touching the source.
func (c *LabelCache) Lookup(address int64) (game.GroundLabel, bool) {
	l, ok := c.labels[address]
	return l, ok
}

// Resolve returns the snapshot for address, rebuilding the cache once on a
// miss and retrying.
func (c *LabelCache) Resolve(address int64) (game.GroundLabel, bool) {
	if l, ok := c.labels[address]; ok {
		return l, true
	}
	c.Rebuild()
	l, ok := c.labels[address]
	return l, ok
}

// Rebuild replaces every entry with the source's current labels.
func (c *LabelCache) Rebuild() {
	labels := c.source.GroundLabels()
	next := make(map[int64]game.GroundLabel, len(labels))
	for _, l := range labels {
		next[l.EntityAddress] = l
	}
	c.labels = next
	c.rebuilds++
	if c.metrics != nil {
		c.metrics.LabelRebuilds.Add(context.Background(), 1)
	}
}

// Remove drops the entry for address, if any.
func (c *LabelCache) Remove(address int64) {
	delete(c.labels, address)
}

// Clear drops every entry. The next Resolve miss rebuilds.
func (c *LabelCache) Clear() {
	clear(c.labels)
}

// Len returns the number of cached snapshots.
func (c *LabelCache) Len() int { return len(c.labels) }

// Rebuilds returns how many times the cache has been rebuilt.
func (c *LabelCache) Rebuilds() int { return c.rebuilds }

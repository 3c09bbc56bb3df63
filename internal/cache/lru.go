// Package cache provides a small LRU for built neighborhoods, keyed by the
// (k, metric) pair of the query. Building a neighborhood is by far the most
// expensive operation in the module; multiple features requesting the same
// neighborhood size must not repeat the k-NN pass.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/pointgo/distance"
	"github.com/hupe1980/pointgo/neighborhood"
)

// Key identifies one neighborhood build.
type Key struct {
	K      int
	Metric distance.Metric
}

// LRU is a mutex-guarded LRU cache of immutable neighborhoods. Cached values
// are shared across callers; they must never be mutated.
type LRU struct {
	mu        sync.Mutex
	capacity  int
	items     map[Key]*list.Element
	evictList *list.List

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	key   Key
	value *neighborhood.Neighborhood
}

// NewLRU creates a cache holding up to capacity neighborhoods.
func NewLRU(capacity int) *LRU {
	return &LRU{
		capacity:  capacity,
		items:     make(map[Key]*list.Element),
		evictList: list.New(),
	}
}

// Get returns the cached neighborhood for key, if any.
func (c *LRU) Get(key Key) (*neighborhood.Neighborhood, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(ent)
		return ent.Value.(*entry).value, true
	}
	c.misses.Add(1)
	return nil, false
}

// Set caches a neighborhood, evicting the least recently used entry when the
// cache is full.
func (c *LRU) Set(key Key, nb *neighborhood.Neighborhood) {
	if c.capacity <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*entry).value = nb
		return
	}

	for c.evictList.Len() >= c.capacity {
		back := c.evictList.Back()
		if back == nil {
			break
		}
		delete(c.items, back.Value.(*entry).key)
		c.evictList.Remove(back)
	}
	c.items[key] = c.evictList.PushFront(&entry{key: key, value: nb})
}

// Stats returns hit and miss counts.
func (c *LRU) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached neighborhoods.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

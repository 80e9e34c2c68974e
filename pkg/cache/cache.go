// Package cache is a bounded lookup cache with hit-count eviction: when
// full, the entry with the fewest hits (ties broken by key order) is
// evicted. Backed by ordered maps from gods.
package cache

import (
	"cmp"

	"github.com/emirpasic/gods/maps/treemap"
)

type entry[T cmp.Ordered, C any] struct {
	hits uint64
	key  T
	val  C
}

type Cache[T cmp.Ordered, C any] struct {
	size    int
	items   *treemap.Map
	byHits  *treemap.Map
	onEvict func(key T, val C)
}

// New creates a cache holding at most size entries. onEvict may be nil.
func New[T cmp.Ordered, C any](size int, onEvict func(key T, val C)) *Cache[T, C] {
	return &Cache[T, C]{
		size:    size,
		onEvict: onEvict,

		items: treemap.NewWith(func(a, b interface{}) int {
			return cmp.Compare(a.(T), b.(T))
		}),
		byHits: treemap.NewWith(func(a, b interface{}) int {
			ae, be := a.(entry[T, C]), b.(entry[T, C])
			if res := cmp.Compare(ae.hits, be.hits); res != 0 {
				return res
			}
			return cmp.Compare(ae.key, be.key)
		}),
	}
}

// Add stores val under key. Re-adding a present key is a no-op.
func (c *Cache[T, C]) Add(key T, val C) {
	if _, ok := c.items.Get(key); ok {
		return
	}

	if c.byHits.Size() >= c.size {
		coldest, _ := c.byHits.Min()
		c.evict(coldest.(entry[T, C]))
	}

	e := entry[T, C]{hits: 1, key: key, val: val}
	c.byHits.Put(e, struct{}{})
	c.items.Put(key, e)
}

// Get returns the cached value and bumps its hit count.
func (c *Cache[T, C]) Get(key T) (C, bool) {
	val, ok := c.items.Get(key)
	if !ok {
		var zero C
		return zero, false
	}

	e := val.(entry[T, C])
	c.byHits.Remove(e)
	e.hits++
	c.byHits.Put(e, struct{}{})
	c.items.Put(e.key, e)
	return e.val, true
}

// Del drops key without invoking the eviction callback.
func (c *Cache[T, C]) Del(key T) {
	val, ok := c.items.Get(key)
	if !ok {
		return
	}

	c.byHits.Remove(val.(entry[T, C]))
	c.items.Remove(key)
}

// Clear drops every entry without invoking the eviction callback.
func (c *Cache[T, C]) Clear() {
	c.items.Clear()
	c.byHits.Clear()
}

// Flush evicts every entry through the callback.
func (c *Cache[T, C]) Flush() {
	for _, e := range c.byHits.Keys() {
		c.evict(e.(entry[T, C]))
	}
	c.Clear()
}

func (c *Cache[T, C]) Len() int {
	return c.items.Size()
}

func (c *Cache[T, C]) evict(e entry[T, C]) {
	c.byHits.Remove(e)
	if c.onEvict != nil {
		c.onEvict(e.key, e.val)
	}
	c.items.Remove(e.key)
}

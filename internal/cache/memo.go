package cache

import "sync"

// Memo is a write-once, read-many map. The first value computed for a key is
// kept forever; there is no eviction. Reads do not take a lock.
type Memo[K comparable, V any] struct {
	m sync.Map
}

// Get returns the value stored for key, computing it with compute on a miss.
// Concurrent misses may each call compute, but all callers observe the value
// that was stored first.
func (c *Memo[K, V]) Get(key K, compute func(K) V) V {
	if v, ok := c.m.Load(key); ok {
		return v.(V)
	}
	v, _ := c.m.LoadOrStore(key, compute(key))
	return v.(V)
}

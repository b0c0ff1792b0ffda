package web

import "sync"

type cacheEntry struct {
	hash uint64
	data []byte
}

// cache is a fixed size ring of encoded frames, keyed by their
// hash. Clients hold a mirror of the cache, so a frame seen
// recently is sent as its index instead of its data.
type cache struct {
	cache   []*cacheEntry
	idx     int
	enabled bool
	size    int
	sync.RWMutex
}

func newCache(size int) *cache {
	c := &cache{
		cache:   make([]*cacheEntry, size),
		size:    size,
		enabled: true,
	}
	for i := 0; i < size; i++ {
		c.cache[i] = &cacheEntry{
			hash: 0,
			data: []byte{},
		}
	}

	return c
}

// add stores output under hash, evicting the oldest entry, and
// returns the index it was stored at.
func (c *cache) add(hash uint64, output []byte) int {
	i := c.idx
	c.cache[i].data = output
	c.cache[i].hash = hash

	c.idx = (c.idx + 1) % c.size
	return i
}

// index returns the index of hash, or -1 if it is not cached (or
// the cache is disabled).
func (c *cache) index(hash uint64) int {
	if !c.enabled {
		return -1
	}
	for i, e := range c.cache {
		if len(e.data) > 0 && e.hash == hash {
			return i
		}
	}

	return -1
}

package rulesource

import (
	"bytes"
	"container/list"
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	key      string
	data     []byte
	loadedAt time.Time
}

// CachedSource keeps the most recently loaded documents of another source in
// an LRU. Returned slices are copies; callers may modify them.
type CachedSource struct {
	src      Source
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	items    map[string]*list.Element
	eviction *list.List
}

// CachedOption configures Cached.
type CachedOption func(*CachedSource)

// WithTTL expires entries older than ttl. Zero keeps entries until evicted.
func WithTTL(ttl time.Duration) CachedOption {
	return func(c *CachedSource) { c.ttl = ttl }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CachedOption {
	return func(c *CachedSource) { c.now = now }
}

// Cached wraps src with an LRU of the given capacity. The capacity must be
// positive, otherwise it panics.
func Cached(src Source, capacity int, opts ...CachedOption) *CachedSource {
	if capacity <= 0 {
		panic("rulesource: cache capacity must be positive")
	}
	c := &CachedSource{
		src:      src,
		capacity: capacity,
		now:      time.Now,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load serves key from the cache, loading it from the wrapped source on a
// miss. Errors are not cached.
func (c *CachedSource) Load(ctx context.Context, key string) ([]byte, error) {
	if data, ok := c.get(key); ok {
		return data, nil
	}

	data, err := c.src.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	c.put(key, data)
	return bytes.Clone(data), nil
}

// Invalidate drops key so the next Load reaches the wrapped source.
func (c *CachedSource) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}
}

// Purge empties the cache.
func (c *CachedSource) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.eviction.Init()
}

func (c *CachedSource) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

func (c *CachedSource) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*cacheEntry)
	if c.ttl > 0 && c.now().Sub(entry.loadedAt) > c.ttl {
		c.removeElement(elem)
		return nil, false
	}
	c.eviction.MoveToFront(elem)
	return bytes.Clone(entry.data), true
}

func (c *CachedSource) put(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cacheEntry{key: key, data: bytes.Clone(data), loadedAt: c.now()}
	if elem, ok := c.items[key]; ok {
		elem.Value = entry
		c.eviction.MoveToFront(elem)
		return
	}
	c.items[key] = c.eviction.PushFront(entry)
	if c.eviction.Len() > c.capacity {
		c.removeElement(c.eviction.Back())
	}
}

// Must be called with lock held.
func (c *CachedSource) removeElement(elem *list.Element) {
	c.eviction.Remove(elem)
	delete(c.items, elem.Value.(*cacheEntry).key)
}

// Package plancache keeps recently generated plans so identical requests are
// answered without re-running the engine.
package plancache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/upskill/internal/domain/model"
)

// DefaultMaxSize is the number of plans kept when no size is configured.
const DefaultMaxSize = 1024

// Cache stores plans by profile key. Cached plans are shared between callers
// and must be treated as read-only.
type Cache interface {
	// Get returns the plan stored for key and marks it recently used.
	Get(ctx context.Context, key Key) (model.Plan, bool)
	// Put stores plan under key, evicting the least recently used entry when full.
	Put(ctx context.Context, key Key, plan model.Plan)
	// Purge drops every entry, e.g. after the catalog changes.
	Purge(ctx context.Context)
	Size() int64
}

// node is an entry in the recency list.
type node struct {
	key        Key
	plan       model.Plan
	prev, next *node
}

func (n *node) reset() {
	n.key = Key{}
	n.plan = model.Plan{}
	n.prev = nil
	n.next = nil
}

// lruCache is a bounded LRU. head is the most recently used entry.
type lruCache struct {
	mu       sync.Mutex
	entries  map[uint64]*node
	head     *node
	tail     *node
	maxSize  int
	size     atomic.Int64
	nodePool sync.Pool
}

// New creates an in-memory LRU plan cache.
func New(opts ...Option) Cache {
	c := &lruCache{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = make(map[uint64]*node)
	c.nodePool = sync.Pool{
		New: func() interface{} {
			return &node{}
		},
	}
	return c
}

func (c *lruCache) Get(_ context.Context, key Key) (model.Plan, bool) {
	if c.maxSize <= 0 {
		return model.Plan{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key.hash]
	if !ok || n.key.canon != key.canon {
		return model.Plan{}, false
	}
	c.moveToFront(n)
	return n.plan, true
}

func (c *lruCache) Put(_ context.Context, key Key, plan model.Plan) {
	if c.maxSize <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key.hash]; ok {
		// Same hash: refresh, or replace a colliding profile.
		n.key = key
		n.plan = plan
		c.moveToFront(n)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictLRU()
	}

	n := c.nodePool.Get().(*node)
	n.key = key
	n.plan = plan
	c.pushFront(n)
	c.entries[key.hash] = n
	c.size.Add(1)
}

func (c *lruCache) Purge(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for n := c.head; n != nil; {
		next := n.next
		n.reset()
		c.nodePool.Put(n)
		n = next
	}
	c.entries = make(map[uint64]*node)
	c.head, c.tail = nil, nil
	c.size.Store(0)
}

func (c *lruCache) Size() int64 {
	return c.size.Load()
}

// Must be called with c.mu held.
func (c *lruCache) pushFront(n *node) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

// Must be called with c.mu held.
func (c *lruCache) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// Must be called with c.mu held.
func (c *lruCache) moveToFront(n *node) {
	if c.head == n {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

// evictLRU drops the tail entry. Must be called with c.mu held.
func (c *lruCache) evictLRU() {
	n := c.tail
	if n == nil {
		return
	}
	c.unlink(n)
	delete(c.entries, n.key.hash)
	n.reset()
	c.nodePool.Put(n)
	c.size.Add(-1)
}

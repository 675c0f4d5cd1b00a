// Package cache holds per-user dashboard summaries so repeated
// dashboard reads skip three ledger scans. Entries are invalidated on
// every ledger write and expire on their own after the TTL.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type Cache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[int64]*list.Element
	lru     *list.List
}

type entry[T any] struct {
	userID    int64
	data      T
	expiresAt time.Time
}

// New creates a cache keyed by user id with TTL and LRU eviction.
func New[T any](maxSize int, ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[int64]*list.Element),
		lru:     list.New(),
	}
}

// Get returns the cached value for the user, if fresh.
func (c *Cache[T]) Get(userID int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.items[userID]
	if !ok {
		return zero, false
	}

	e := elem.Value.(*entry[T])
	if time.Now().After(e.expiresAt) {
		c.remove(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return e.data, true
}

// Set stores the user's value, evicting the least recently used entry
// when over capacity.
func (c *Cache[T]) Set(userID int64, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[T]{userID: userID, data: data, expiresAt: time.Now().Add(c.ttl)}
	if elem, ok := c.items[userID]; ok {
		elem.Value = e
		c.lru.MoveToFront(elem)
		return
	}

	c.items[userID] = c.lru.PushFront(e)
	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

// Invalidate drops the user's entry. Called after every ledger write.
func (c *Cache[T]) Invalidate(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[userID]; ok {
		c.remove(elem)
	}
}

// Size returns the current number of cached users.
func (c *Cache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cache[T]) remove(elem *list.Element) {
	e := elem.Value.(*entry[T])
	delete(c.items, e.userID)
	c.lru.Remove(elem)
}

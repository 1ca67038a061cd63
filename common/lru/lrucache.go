package lru

// Modified by https://github.com/die-net/lrucache

import (
	"sync"

	list "github.com/bahlo/generic-list-go"
	"github.com/samber/lo"
)

// Option is part of Functional Options Pattern
type Option[K comparable, V any] func(*LruCache[K, V])

// WithSize defined max length of LruCache
func WithSize[K comparable, V any](maxSize int) Option[K, V] {
	return func(l *LruCache[K, V]) {
		l.maxSize = maxSize
	}
}

// LruCache is a least-recently-used cache with a fixed capacity
type LruCache[K comparable, V any] struct {
	maxSize int
	mu      sync.Mutex
	cache   map[K]*list.Element[*entry[K, V]]
	lru     *list.List[*entry[K, V]] // Front is least recent
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates an LruCache
func New[K comparable, V any](options ...Option[K, V]) *LruCache[K, V] {
	lc := &LruCache[K, V]{
		lru:   list.New[*entry[K, V]](),
		cache: make(map[K]*list.Element[*entry[K, V]]),
	}

	for _, option := range options {
		option(lc)
	}

	return lc
}

// Get returns any representation of a cached response and a bool
// set to true if the key was found.
func (c *LruCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	le, ok := c.cache[key]
	if !ok {
		return lo.Empty[V](), false
	}
	c.lru.MoveToBack(le)
	return le.Value.value, true
}

// Set stores any representation of a response for a given key.
func (c *LruCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if le, ok := c.cache[key]; ok {
		c.lru.MoveToBack(le)
		le.Value.value = value
	} else {
		e := &entry[K, V]{key: key, value: value}
		c.cache[key] = c.lru.PushBack(e)

		if c.maxSize > 0 {
			for c.lru.Len() > c.maxSize {
				c.deleteElement(c.lru.Front())
			}
		}
	}
}

// Delete removes the value associated with a key.
func (c *LruCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if le, ok := c.cache[key]; ok {
		c.deleteElement(le)
	}
}

// Clear drops every cached entry
func (c *LruCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[K]*list.Element[*entry[K, V]])
	c.lru.Init()
}

// Len returns the number of cached entries
func (c *LruCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}

func (c *LruCache[K, V]) deleteElement(le *list.Element[*entry[K, V]]) {
	c.lru.Remove(le)
	delete(c.cache, le.Value.key)
}

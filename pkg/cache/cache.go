package cache

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrKeyExists = errors.New("key already exists in cache")

// Cache is a weight bounded LRU cache. It is safe for concurrent use.
type Cache[V any] struct {
	log *logrus.Entry

	mu     sync.Mutex
	head   *node[V]
	tail   *node[V]
	lookup map[string]*node[V]
	weight int
	budget int
}

type node[V any] struct {
	next   *node[V]
	prev   *node[V]
	key    string
	value  V
	weight int
}

// New returns an empty cache holding at most budget total weight.
func New[V any](name string, budget int) *Cache[V] {
	return &Cache[V]{
		log:    logrus.StandardLogger().WithFields(logrus.Fields{"type": "cache", "cache": name}),
		lookup: make(map[string]*node[V]),
		budget: budget,
	}
}

func (c *Cache[V]) Weight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weight
}

func (c *Cache[V]) Budget() int {
	return c.budget
}

// Insert adds value under key, evicting least recently used entries until the
// total weight fits the budget. Existing keys are not replaced.
func (c *Cache[V]) Insert(key string, value V, weight int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lookup[key]; ok {
		return ErrKeyExists
	}

	n := &node[V]{
		key:    key,
		value:  value,
		weight: weight,
		next:   c.head,
	}
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}

	c.lookup[key] = n
	c.weight += weight

	for c.weight > c.budget && c.tail != nil {
		evicted := c.tail
		c.unlink(evicted)
		c.weight -= evicted.weight
		delete(c.lookup, evicted.key)

		c.log.WithFields(logrus.Fields{
			"key":    evicted.key,
			"weight": evicted.weight,
			"spare":  c.budget - c.weight,
		}).Trace("evicted")
	}

	return nil
}

// Retrieve returns the value for key and marks it as most recently used.
func (c *Cache[V]) Retrieve(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.lookup[key]
	if !ok {
		var zero V
		return zero, false
	}

	if n != c.head {
		c.unlink(n)
		n.next = c.head
		c.head.prev = n
		c.head = n
	}

	return n.value, true
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.head = nil
	c.tail = nil
	c.lookup = make(map[string]*node[V])
	c.weight = 0
}

func (c *Cache[V]) unlink(n *node[V]) {
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
	n.next = nil
	n.prev = nil
}

package memory

import (
	"sync"
	"time"
)

const defaultCleanupInterval = 5 * time.Minute

type item struct {
	value     interface{}
	expiresAt time.Time
}

// Cache - in-memory кеш с TTL и фоновой очисткой.
type Cache struct {
	mu       sync.RWMutex
	items    map[string]item
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

func New() *Cache {
	return NewWithInterval(defaultCleanupInterval)
}

// NewWithInterval задаёт период фоновой очистки (в основном для тестов).
func NewWithInterval(interval time.Duration) *Cache {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}

	c := &Cache{
		items:    make(map[string]item),
		interval: interval,
		stopChan: make(chan struct{}),
	}
	go c.cleanup()
	return c
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[key]
	if !ok || time.Now().After(it.expiresAt) {
		return nil, false
	}
	return it.value, true
}

func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.items[key] = item{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *Cache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
}

func (c *Cache) cleanup() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, it := range c.items {
		if now.After(it.expiresAt) {
			delete(c.items, k)
		}
	}
}

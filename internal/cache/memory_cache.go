package cache

import (
	"context"
	"path"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

type memoryItem struct {
	value      []byte
	members    map[string]struct{} // non-nil for set entries
	expiration time.Time
}

func (i *memoryItem) expired(now time.Time) bool {
	return !i.expiration.IsZero() && now.After(i.expiration)
}

func (i *memoryItem) size(key string) int64 {
	size := int64(len(key) + len(i.value))
	for m := range i.members {
		size += int64(len(m))
	}
	return size
}

// MemoryCache implements the Cache interface using in-process storage.
// It is the default backend for single-instance deployments and tests.
type MemoryCache struct {
	mutex         sync.Mutex
	items         map[string]*memoryItem
	maxMemory     int64
	currentMemory int64
	hits          int64
	misses        int64
	evictions     int64
	cleanupDone   chan struct{}
	closed        bool
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(config *CacheConfig) *MemoryCache {
	if config == nil {
		config = DefaultCacheConfig()
	}

	c := &MemoryCache{
		items:       make(map[string]*memoryItem),
		maxMemory:   config.MaxMemory,
		cleanupDone: make(chan struct{}),
	}

	interval := config.CleanupInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go c.cleanupLoop(interval)

	return c
}

func (c *MemoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.cleanupDone:
			return
		}
	}
}

func (c *MemoryCache) removeExpired() {
	now := time.Now()
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for key, item := range c.items {
		if item.expired(now) {
			c.deleteLocked(key, item)
		}
	}
}

// deleteLocked removes an item; caller must hold the mutex.
func (c *MemoryCache) deleteLocked(key string, item *memoryItem) {
	delete(c.items, key)
	c.currentMemory -= item.size(key)
}

// evictLocked frees room for `need` bytes by dropping arbitrary entries.
// Caller must hold the mutex.
func (c *MemoryCache) evictLocked(need int64) {
	for key, item := range c.items {
		if c.maxMemory <= 0 || c.currentMemory+need <= c.maxMemory {
			return
		}
		c.deleteLocked(key, item)
		atomic.AddInt64(&c.evictions, 1)
	}
}

// Get retrieves a value from cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return nil, ErrCacheDisabled
	}

	item, exists := c.items[key]
	if !exists || item.members != nil {
		atomic.AddInt64(&c.misses, 1)
		return nil, ErrKeyNotFound
	}
	if item.expired(time.Now()) {
		c.deleteLocked(key, item)
		atomic.AddInt64(&c.misses, 1)
		return nil, ErrKeyNotFound
	}

	atomic.AddInt64(&c.hits, 1)
	result := make([]byte, len(item.value))
	copy(result, item.value)
	return result, nil
}

// Set stores a value in cache with expiration
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return ErrCacheDisabled
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	item := &memoryItem{value: valueCopy}
	if ttl > 0 {
		item.expiration = time.Now().Add(ttl)
	}

	if old, exists := c.items[key]; exists {
		c.deleteLocked(key, old)
	}
	c.evictLocked(item.size(key))

	c.items[key] = item
	c.currentMemory += item.size(key)
	return nil
}

// Delete removes a value from cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return ErrCacheDisabled
	}
	if item, exists := c.items[key]; exists {
		c.deleteLocked(key, item)
	}
	return nil
}

// DeletePattern removes all keys matching the given glob pattern
func (c *MemoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return ErrCacheDisabled
	}
	for key, item := range c.items {
		if ok, _ := path.Match(pattern, key); ok {
			c.deleteLocked(key, item)
		}
	}
	return nil
}

// Exists checks if a key exists in cache
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return false, ErrCacheDisabled
	}
	item, exists := c.items[key]
	if !exists {
		return false, nil
	}
	if item.expired(time.Now()) {
		c.deleteLocked(key, item)
		return false, nil
	}
	return true, nil
}

// Increment atomically increments a numeric value stored at key
func (c *MemoryCache) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return 0, ErrCacheDisabled
	}

	var current int64
	if item, exists := c.items[key]; exists && !item.expired(time.Now()) && item.members == nil {
		parsed, err := strconv.ParseInt(string(item.value), 10, 64)
		if err != nil {
			return 0, ErrInvalidKey
		}
		current = parsed
		c.deleteLocked(key, item)
	}

	current += delta
	item := &memoryItem{value: []byte(strconv.FormatInt(current, 10))}
	c.items[key] = item
	c.currentMemory += item.size(key)
	return current, nil
}

// SetAdd adds a member to the set stored at key.
func (c *MemoryCache) SetAdd(ctx context.Context, key string, member string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return ErrCacheDisabled
	}

	item, exists := c.items[key]
	if !exists || item.members == nil || item.expired(time.Now()) {
		if exists {
			c.deleteLocked(key, item)
		}
		item = &memoryItem{members: make(map[string]struct{})}
		c.items[key] = item
	}
	c.currentMemory -= item.size(key)
	item.members[member] = struct{}{}
	c.currentMemory += item.size(key)
	return nil
}

// SetIsMember reports whether member is part of the set stored at key.
func (c *MemoryCache) SetIsMember(ctx context.Context, key string, member string) (bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return false, ErrCacheDisabled
	}
	item, exists := c.items[key]
	if !exists || item.members == nil || item.expired(time.Now()) {
		return false, nil
	}
	_, ok := item.members[member]
	return ok, nil
}

// SetRemove removes a member from the set stored at key.
func (c *MemoryCache) SetRemove(ctx context.Context, key string, member string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return ErrCacheDisabled
	}
	if item, exists := c.items[key]; exists && item.members != nil {
		c.currentMemory -= item.size(key)
		delete(item.members, member)
		c.currentMemory += item.size(key)
	}
	return nil
}

// Close stops the cleanup goroutine and drops all entries
func (c *MemoryCache) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.cleanupDone)
	c.items = make(map[string]*memoryItem)
	c.currentMemory = 0
	return nil
}

// Stats returns cache statistics
func (c *MemoryCache) Stats() CacheStats {
	c.mutex.Lock()
	keys := int64(len(c.items))
	memory := c.currentMemory
	c.mutex.Unlock()

	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	var ratio float64
	if hits+misses > 0 {
		ratio = float64(hits) / float64(hits+misses)
	}

	return CacheStats{
		Hits:        hits,
		Misses:      misses,
		HitRatio:    ratio,
		Keys:        keys,
		MemoryUsage: memory,
		Evictions:   atomic.LoadInt64(&c.evictions),
	}
}

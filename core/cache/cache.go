package cache

import (
	"sync"
	"time"
)

// Cache is a thread-safe in-process key-value store with optional expiry
// and tag-based invalidation.
type Cache struct {
	m        sync.Map // string -> item
	tagIndex sync.Map // tag -> *sync.Map of keys
	now      func() time.Time
}

var (
	once     sync.Once
	instance *Cache
)

// GetInstance returns the process-wide cache.
func GetInstance() *Cache {
	once.Do(func() {
		instance = New()
	})
	return instance
}

func New() *Cache {
	return &Cache{now: time.Now}
}

// NewWithClock builds a cache whose expiry is measured against now.
func NewWithClock(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{now: now}
}

type item struct {
	value     any
	expiresAt time.Time // zero means no expiration
}

func (i item) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// Set stores value under key. A ttl of 0 never expires.
func (c *Cache) Set(key string, value any, ttl time.Duration, tags ...string) {
	it := item{value: value}
	if ttl > 0 {
		it.expiresAt = c.now().Add(ttl)
	}
	c.m.Store(key, it)
	if len(tags) > 0 {
		c.TagKey(key, tags...)
	}
}

// Get returns the value for key if present and not expired.
func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	it := v.(item)
	if it.expired(c.now()) {
		c.m.Delete(key)
		return nil, false
	}
	return it.value, true
}

func (c *Cache) GetOrDefault(key string, def any) any {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

func (c *Cache) Delete(key string) {
	c.m.Delete(key)
}

func (c *Cache) DeleteMany(keys ...string) {
	for _, k := range keys {
		c.m.Delete(k)
	}
}

// Len counts live entries.
func (c *Cache) Len() int {
	n := 0
	now := c.now()
	c.m.Range(func(_, v any) bool {
		if !v.(item).expired(now) {
			n++
		}
		return true
	})
	return n
}

// Purge drops every expired entry and reports how many went.
func (c *Cache) Purge() int {
	n := 0
	now := c.now()
	c.m.Range(func(k, v any) bool {
		if v.(item).expired(now) {
			c.m.Delete(k)
			n++
		}
		return true
	})
	return n
}

// TagKey assigns tags to key.
func (c *Cache) TagKey(key string, tags ...string) {
	for _, tag := range tags {
		val, _ := c.tagIndex.LoadOrStore(tag, &sync.Map{})
		val.(*sync.Map).Store(key, struct{}{})
	}
}

// GetKeysByTag lists keys assigned to tag.
func (c *Cache) GetKeysByTag(tag string) []string {
	var keys []string
	if val, ok := c.tagIndex.Load(tag); ok {
		val.(*sync.Map).Range(func(k, _ any) bool {
			keys = append(keys, k.(string))
			return true
		})
	}
	return keys
}

// DeleteByTag deletes every entry assigned to tag.
func (c *Cache) DeleteByTag(tag string) {
	val, ok := c.tagIndex.LoadAndDelete(tag)
	if !ok {
		return
	}
	val.(*sync.Map).Range(func(k, _ any) bool {
		c.m.Delete(k)
		return true
	})
}

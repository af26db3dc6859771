package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Cache is a thread-safe in-process key-value store with optional
// per-entry TTL and tag-based invalidation.
type Cache struct {
	m sync.Map
	// tagIndex maps tag to *sync.Map of keys
	tagIndex sync.Map
	now      func() time.Time
}

var (
	once     sync.Once
	instance *Cache
)

// GetInstance returns the process-wide cache.
func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

func NewCache() *Cache {
	return &Cache{now: time.Now}
}

type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // unix nanos; 0 means no expiration
	Tags      []string
}

func (i cacheItem) expired(now time.Time) bool {
	return i.ExpiresAt > 0 && now.UnixNano() > i.ExpiresAt
}

// Set stores value under key. ttl is in seconds; 0 means no expiration.
func (c *Cache) Set(key, value interface{}, ttl int64, tags []string) {
	c.SetTTL(key, value, time.Duration(ttl)*time.Second, tags)
}

// SetTTL is Set with a time.Duration TTL.
func (c *Cache) SetTTL(key, value interface{}, ttl time.Duration, tags []string) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = c.now().Add(ttl).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt, Tags: tags})
	if len(tags) > 0 {
		c.TagKey(key, tags)
	}
}

// Get returns (value, true) if key is present and not expired.
func (c *Cache) Get(key interface{}) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(cacheItem)
	if item.expired(c.now()) {
		c.Delete(key)
		return nil, false
	}
	return item.Value, true
}

func (c *Cache) GetOrDefault(key, defaultValue interface{}) interface{} {
	if v, ok := c.Get(key); ok {
		return v
	}
	return defaultValue
}

// Delete removes key and its tag memberships.
func (c *Cache) Delete(key interface{}) {
	v, ok := c.m.LoadAndDelete(key)
	if !ok {
		return
	}
	c.UntagKey(key, v.(cacheItem).Tags)
}

func (c *Cache) DeleteMany(keys ...interface{}) {
	for _, key := range keys {
		c.Delete(key)
	}
}

func makeCompositeKey(keys ...interface{}) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%v", k)
	}
	return strings.Join(parts, "|")
}

// SetN stores value under the composite key built from keys.
func (c *Cache) SetN(keys []interface{}, value interface{}, ttl int64, tags []string) {
	c.Set(makeCompositeKey(keys...), value, ttl, tags)
}

func (c *Cache) GetN(keys ...interface{}) (interface{}, bool) {
	return c.Get(makeCompositeKey(keys...))
}

func (c *Cache) DeleteN(keys ...interface{}) {
	c.Delete(makeCompositeKey(keys...))
}

// GetMany returns values for keys; missing or expired keys yield nil.
func (c *Cache) GetMany(keys ...interface{}) []interface{} {
	results := make([]interface{}, len(keys))
	for i, key := range keys {
		results[i], _ = c.Get(key)
	}
	return results
}

// IterateFilter returns the live values for which filter returns true.
func (c *Cache) IterateFilter(filter func(key, value interface{}) bool) []interface{} {
	now := c.now()
	var results []interface{}
	c.m.Range(func(key, v interface{}) bool {
		item := v.(cacheItem)
		if item.expired(now) {
			return true
		}
		if filter(key, item.Value) {
			results = append(results, item.Value)
		}
		return true
	})
	return results
}

// Sweep deletes every expired entry and returns how many were removed.
func (c *Cache) Sweep() int {
	now := c.now()
	var expired []interface{}
	c.m.Range(func(key, v interface{}) bool {
		if v.(cacheItem).expired(now) {
			expired = append(expired, key)
		}
		return true
	})
	c.DeleteMany(expired...)
	return len(expired)
}

// TagKey assigns tags to key.
func (c *Cache) TagKey(key interface{}, tags []string) {
	for _, tag := range tags {
		val, _ := c.tagIndex.LoadOrStore(tag, &sync.Map{})
		val.(*sync.Map).Store(key, struct{}{})
	}
}

func (c *Cache) UntagKey(key interface{}, tags []string) {
	for _, tag := range tags {
		if val, ok := c.tagIndex.Load(tag); ok {
			val.(*sync.Map).Delete(key)
		}
	}
}

func (c *Cache) GetKeysByTag(tag string) []interface{} {
	var keys []interface{}
	if val, ok := c.tagIndex.Load(tag); ok {
		val.(*sync.Map).Range(func(key, _ interface{}) bool {
			keys = append(keys, key)
			return true
		})
	}
	return keys
}

// DeleteByTag deletes all entries carrying tag.
func (c *Cache) DeleteByTag(tag string) {
	for _, key := range c.GetKeysByTag(tag) {
		c.Delete(key)
	}
	c.tagIndex.Delete(tag)
}

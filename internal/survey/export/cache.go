package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// CachedSource keeps the bytes of recently opened assets in memory. The
// letterhead and signature are read for every report, so a remote source is
// only hit once per TTL. Failed opens are not cached.
type CachedSource struct {
	source AssetSource
	ttl    time.Duration
	now    func() time.Time

	mu      sync.RWMutex
	data    map[string]*cacheEntry
	cleanup *time.Ticker
	done    chan struct{}
	once    sync.Once
}

type cacheEntry struct {
	value      []byte
	expiration time.Time
}

// NewCachedSource wraps source. Call Close to stop the eviction loop.
func NewCachedSource(source AssetSource, ttl time.Duration) *CachedSource {
	c := &CachedSource{
		source:  source,
		ttl:     ttl,
		now:     time.Now,
		data:    make(map[string]*cacheEntry),
		cleanup: time.NewTicker(time.Minute),
		done:    make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

func (c *CachedSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := cleanAssetPath(name)
	if data, ok := c.get(key); ok {
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	rc, err := c.source.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	c.set(key, data)
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (c *CachedSource) get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.data[key]
	if !ok || c.now().After(entry.expiration) {
		return nil, false
	}
	return entry.value, true
}

func (c *CachedSource) set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = &cacheEntry{value: value, expiration: c.now().Add(c.ttl)}
}

// Len returns the number of cached assets, expired or not.
func (c *CachedSource) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func (c *CachedSource) cleanupLoop() {
	for {
		select {
		case <-c.cleanup.C:
			c.evictExpired()
		case <-c.done:
			return
		}
	}
}

func (c *CachedSource) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.data {
		if now.After(entry.expiration) {
			delete(c.data, key)
		}
	}
}

// Close stops the eviction loop. It is safe to call more than once.
func (c *CachedSource) Close() error {
	c.once.Do(func() {
		c.cleanup.Stop()
		close(c.done)
	})
	return nil
}

// internal/cache/cache.go
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"semantix-api/internal/models"
)

// Cache stores completed analysis documents keyed by the digest of the input
// text. A nil Cache pointer is never used; the handler holds a nil interface
// when caching is disabled. Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (*models.AnalysisResponse, error)
	Set(ctx context.Context, key string, resp *models.AnalysisResponse, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key derives the cache key for a product description.
func Key(originalText string) string {
	sum := sha256.Sum256([]byte(originalText))
	return hex.EncodeToString(sum[:])
}

type memoryEntry struct {
	resp      models.AnalysisResponse
	expiresAt time.Time
}

// MemoryCache is an in-process cache for tests and single-node deployments.
type MemoryCache struct {
	data map[string]memoryEntry
	mu   sync.RWMutex
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*models.AnalysisResponse, error) {
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		_ = c.Delete(context.Background(), key)
		return nil, nil
	}

	resp := entry.resp
	return &resp, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, resp *models.AnalysisResponse, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = memoryEntry{
		resp:      *resp,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)
	return nil
}

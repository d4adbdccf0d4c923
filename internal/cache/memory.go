// Package cache stores movement profiles per user.
package cache

import (
	"context"
	"sync"

	"github.com/anshc022/suraksha-ai-service/internal/metrics"
	"github.com/anshc022/suraksha-ai-service/internal/models"
)

// MemoryProfileCache is a process-local profile store. Entries never expire.
type MemoryProfileCache struct {
	mu       sync.RWMutex
	profiles map[string]models.MovementProfile
}

// NewMemoryProfileCache returns an empty cache.
func NewMemoryProfileCache() *MemoryProfileCache {
	return &MemoryProfileCache{profiles: make(map[string]models.MovementProfile)}
}

// Get returns the profile for userID if present.
func (c *MemoryProfileCache) Get(_ context.Context, userID string) (models.MovementProfile, bool) {
	c.mu.RLock()
	p, ok := c.profiles[userID]
	c.mu.RUnlock()
	metrics.RecordProfileLookup("memory", ok)
	return p, ok
}

// Set stores the profile for userID, replacing any previous one.
func (c *MemoryProfileCache) Set(_ context.Context, userID string, profile models.MovementProfile) {
	c.mu.Lock()
	c.profiles[userID] = profile
	c.mu.Unlock()
}

// Len returns the number of cached users.
func (c *MemoryProfileCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.profiles)
}

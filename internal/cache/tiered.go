package cache

import (
	"context"

	"github.com/anshc022/suraksha-ai-service/internal/models"
)

// ProfileStore is the per-tier contract.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (models.MovementProfile, bool)
	Set(ctx context.Context, userID string, profile models.MovementProfile)
}

// TieredProfileCache reads tiers in order and back-fills earlier tiers on a hit.
type TieredProfileCache struct {
	tiers []ProfileStore
}

// NewTieredProfileCache orders tiers from fastest to slowest.
func NewTieredProfileCache(tiers ...ProfileStore) *TieredProfileCache {
	return &TieredProfileCache{tiers: tiers}
}

// Get returns the first hit and copies it into the faster tiers.
func (c *TieredProfileCache) Get(ctx context.Context, userID string) (models.MovementProfile, bool) {
	for i, tier := range c.tiers {
		p, ok := tier.Get(ctx, userID)
		if !ok {
			continue
		}
		for _, faster := range c.tiers[:i] {
			faster.Set(ctx, userID, p)
		}
		return p, true
	}
	return models.MovementProfile{}, false
}

// Set writes to every tier.
func (c *TieredProfileCache) Set(ctx context.Context, userID string, profile models.MovementProfile) {
	for _, tier := range c.tiers {
		tier.Set(ctx, userID, profile)
	}
}

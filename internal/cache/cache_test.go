package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/anshc022/suraksha-ai-service/internal/models"
)

func TestMemoryProfileCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryProfileCache()

	if _, ok := c.Get(ctx, "u1"); ok {
		t.Fatal("empty cache reported a hit")
	}

	p := models.DefaultMovementProfile()
	p.AvgSpeed = 42
	c.Set(ctx, "u1", p)

	got, ok := c.Get(ctx, "u1")
	if !ok || got.AvgSpeed != 42 {
		t.Errorf("Get() = %+v, %v", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d", c.Len())
	}
}

func TestMemoryProfileCacheConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryProfileCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		user := fmt.Sprintf("user-%d", i%10)
		go func() {
			defer wg.Done()
			c.Set(ctx, user, models.DefaultMovementProfile())
		}()
		go func() {
			defer wg.Done()
			c.Get(ctx, user)
		}()
	}
	wg.Wait()

	if c.Len() != 10 {
		t.Errorf("Len() = %d, want 10", c.Len())
	}
}

func TestRedisProfileCacheDisabled(t *testing.T) {
	ctx := context.Background()
	c := NewRedisProfileCache(nil, time.Minute)

	c.Set(ctx, "u1", models.DefaultMovementProfile())
	if _, ok := c.Get(ctx, "u1"); ok {
		t.Error("nil client should always miss")
	}
}

func TestTieredProfileCacheBackfill(t *testing.T) {
	ctx := context.Background()
	fast := NewMemoryProfileCache()
	slow := NewMemoryProfileCache()
	c := NewTieredProfileCache(fast, slow)

	p := models.DefaultMovementProfile()
	p.MaxSpeed = 99
	slow.Set(ctx, "u1", p)

	got, ok := c.Get(ctx, "u1")
	if !ok || got.MaxSpeed != 99 {
		t.Fatalf("Get() = %+v, %v", got, ok)
	}
	if _, ok := fast.Get(ctx, "u1"); !ok {
		t.Error("fast tier was not back-filled")
	}

	c.Set(ctx, "u2", p)
	if fast.Len() != 2 || slow.Len() != 2 {
		t.Errorf("Set did not write all tiers: fast=%d slow=%d", fast.Len(), slow.Len())
	}
}

func TestProfileKey(t *testing.T) {
	if got := profileKey("abc"); got != "suraksha:profile:abc" {
		t.Errorf("profileKey() = %q", got)
	}
}

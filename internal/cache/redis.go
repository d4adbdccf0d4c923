package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	json "github.com/goccy/go-json"

	"github.com/anshc022/suraksha-ai-service/internal/logging"
	"github.com/anshc022/suraksha-ai-service/internal/metrics"
	"github.com/anshc022/suraksha-ai-service/internal/models"
)

const profileKeyPrefix = "suraksha:profile:"

// RedisProfileCache shares profiles between service instances.
// Errors are logged and reported as misses.
type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOptions configures NewRedisClient.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     20,
		MinIdleConns: 2,
		MaxRetries:   3,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// NewRedisProfileCache wraps client. A nil client yields a cache that always misses.
func NewRedisProfileCache(client *redis.Client, ttl time.Duration) *RedisProfileCache {
	return &RedisProfileCache{client: client, ttl: ttl}
}

func profileKey(userID string) string {
	return profileKeyPrefix + userID
}

// Get fetches and decodes the profile for userID.
func (c *RedisProfileCache) Get(ctx context.Context, userID string) (models.MovementProfile, bool) {
	var p models.MovementProfile
	if c.client == nil {
		return p, false
	}

	data, err := c.client.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("redis profile read failed")
		}
		metrics.RecordProfileLookup("redis", false)
		return p, false
	}

	if err := json.Unmarshal(data, &p); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("discarding undecodable cached profile")
		metrics.RecordProfileLookup("redis", false)
		return p, false
	}

	metrics.RecordProfileLookup("redis", true)
	return p, true
}

// Set encodes and stores the profile with the configured TTL.
func (c *RedisProfileCache) Set(ctx context.Context, userID string, profile models.MovementProfile) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(profile)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("failed to marshal profile")
		return
	}
	if err := c.client.Set(ctx, profileKey(userID), data, c.ttl).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("redis profile write failed")
	}
}

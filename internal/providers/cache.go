package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// ProfileCache is a read-through cache for provider profiles. Redis
// failures degrade to the database; they are logged, never surfaced.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, ttl: ttl}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("provider:profile:%d", id)
}

func (c *ProfileCache) Get(ctx context.Context, id int64) (*Profile, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("providers: cache read for %d failed: %v", id, err)
		}
		return nil, false
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		log.Printf("providers: cache entry for %d is corrupt, dropping: %v", id, err)
		c.client.Del(ctx, cacheKey(id))
		return nil, false
	}

	return &profile, true
}

func (c *ProfileCache) Set(ctx context.Context, profile *Profile) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, cacheKey(profile.ID), data, c.ttl).Err(); err != nil {
		log.Printf("providers: cache write for %d failed: %v", profile.ID, err)
	}
}

func (c *ProfileCache) Invalidate(ctx context.Context, id int64) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		log.Printf("providers: cache invalidation for %d failed: %v", id, err)
	}
}

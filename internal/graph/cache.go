package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	recKeyPrefix      = "rec:"    // Cached ranking result: rec:{user_id}:{type}:{limit}
	recIndexKeyPrefix = "recidx:" // Set of cached keys per user, for invalidation: recidx:{user_id}
)

// Cache keeps ranking results in Redis for a short TTL. Ranking reads are
// advisory, so serving a result up to one TTL old is acceptable; writes
// drop the affected users' entries as a courtesy, not a guarantee.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Cache{client: client, ttl: ttl}
}

func recommendationKey(userID, kind string, limit int) string {
	return fmt.Sprintf("%s%s:%s:%d", recKeyPrefix, userID, kind, limit)
}

func (c *Cache) get(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("[warn] operation=cache.get key=%s error=%v", key, err)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("[warn] operation=cache.get key=%s error=%v", key, err)
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key, userID string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("[warn] operation=cache.set key=%s error=%v", key, err)
		return
	}

	indexKey := recIndexKeyPrefix + userID

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, indexKey, key)
	pipe.Expire(ctx, indexKey, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[warn] operation=cache.set key=%s error=%v", key, err)
	}
}

// invalidateUser drops every cached ranking for the given user.
func (c *Cache) invalidateUser(ctx context.Context, userID string) {
	indexKey := recIndexKeyPrefix + userID

	keys, err := c.client.SMembers(ctx, indexKey).Result()
	if err != nil && err != redis.Nil {
		log.Printf("[warn] operation=cache.invalidate user=%s error=%v", userID, err)
		return
	}

	keys = append(keys, indexKey)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[warn] operation=cache.invalidate user=%s error=%v", userID, err)
	}
}

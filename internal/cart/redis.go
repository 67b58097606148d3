package cart

import (
	"context"
	"time"

	"github.com/loopstackhq/loopstack-backend/pkg/redis"
)

// RedisStorage persists cart records in Redis, one key per shopper session.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorage binds a namespaced Redis client. Records expire after ttl;
// every write refreshes the expiry.
func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, ttl: ttl}
}

func (r *RedisStorage) Get(ctx context.Context, sessionID string) (string, bool, error) {
	payload, err := r.client.Get(ctx, r.client.CartKey(sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return payload, true, nil
}

func (r *RedisStorage) Set(ctx context.Context, sessionID, payload string) error {
	return r.client.Set(ctx, r.client.CartKey(sessionID), payload, r.ttl)
}

func (r *RedisStorage) Remove(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.client.CartKey(sessionID))
}

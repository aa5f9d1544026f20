// Package dedupe claims webhook delivery ids so a redelivered event is only
// reconciled once within the TTL window.
package dedupe

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store interface {
	// Claim returns false when id was already claimed.
	Claim(ctx context.Context, id string) (bool, error)
	// Release drops a claim so the delivery can be retried.
	Release(ctx context.Context, id string) error
}

const keyPrefix = "prhook:delivery:"

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Claim(ctx context.Context, id string) (bool, error) {
	return s.rdb.SetNX(ctx, keyPrefix+id, time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
}

func (s *RedisStore) Release(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, keyPrefix+id).Err()
}

package cache

import (
	"context"
	"errors"
	"time"

	"order_management/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idemp:"

// RedisIdempotencyStore keeps Idempotency-Key locks and replayable responses in Redis.
//
//   - idemp:<scope>:<key>      lock, set with SETNX by the first request
//   - idemp:map:<scope>:<key>  the response to replay

type RedisIdempotencyStore struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

var _ interfaces.IIdempotencyStore = (*RedisIdempotencyStore)(nil)

func NewRedisIdempotencyStore(rdb redis.UniversalClient, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl}
}

func lockKey(scope, key string) string {
	return keyPrefix + scope + ":" + key
}

func resultKey(scope, key string) string {
	return keyPrefix + "map:" + scope + ":" + key
}

func (s *RedisIdempotencyStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	return s.rdb.SetNX(ctx, lockKey(scope, key), "1", s.ttl).Result()
}

func (s *RedisIdempotencyStore) Remember(ctx context.Context, scope, key, value string) error {
	return s.rdb.Set(ctx, resultKey(scope, key), value, s.ttl).Err()
}

func (s *RedisIdempotencyStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, resultKey(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Release drops the lock so a failed request can be retried with the same key.
func (s *RedisIdempotencyStore) Release(ctx context.Context, scope, key string) error {
	return s.rdb.Del(ctx, lockKey(scope, key)).Err()
}

// NewRedisClient connects and pings; callers treat an error as "idempotency disabled".
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

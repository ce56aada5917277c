package redissvc

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

func (a *RedisService) Rdb() *redis.Client {
	return a.rdb
}

func (a *RedisService) Ctx() context.Context {
	return a.ctx
}

// GetCached returns the cached value for key, or ok=false on a miss (or any
// redis error; callers fall back to the source of truth).
func (a *RedisService) GetCached(key string) (string, bool) {
	val, err := a.rdb.Get(a.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (a *RedisService) SetCached(key, value string, ttl time.Duration) error {
	return a.rdb.Set(a.ctx, key, value, ttl).Err()
}

func (a *RedisService) Invalidate(keys ...string) error {
	return a.rdb.Del(a.ctx, keys...).Err()
}

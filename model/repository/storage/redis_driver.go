package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type RedisDriver struct {
	rdb *redis.Client
}

func NewRedisDriver(rdb *redis.Client) *RedisDriver {
	return &RedisDriver{rdb: rdb}
}

func (d *RedisDriver) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := d.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set writes without expiry; the record lives until Remove.
func (d *RedisDriver) Set(ctx context.Context, key string, value []byte) error {
	return d.rdb.Set(ctx, key, value, 0).Err()
}

func (d *RedisDriver) Remove(ctx context.Context, key string) error {
	return d.rdb.Del(ctx, key).Err()
}

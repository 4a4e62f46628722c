// Package storage is the durable key-value channel the cart persists to.
// Each driver stores opaque bytes under a single named key.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Driver interface {
	// Get reports ok=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

const (
	KindDB     = "db"
	KindRedis  = "redis"
	KindMemory = "memory"
)

var ErrUnknownDriver = errors.New("storage: unknown driver")

// Open builds the driver named by kind.
func Open(kind string, db *gorm.DB, rdb *redis.Client) (Driver, error) {
	switch kind {
	case KindDB, "":
		if db == nil {
			return nil, fmt.Errorf("storage: db driver needs a database")
		}
		return NewGormDriver(db), nil
	case KindRedis:
		if rdb == nil {
			return nil, fmt.Errorf("storage: redis driver needs REDIS_ADDR")
		}
		return NewRedisDriver(rdb), nil
	case KindMemory:
		return NewMemoryDriver(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, kind)
}

package storage

import (
	"context"

	"mixtape.GO/core/cache"
)

// MemoryDriver keeps records in a process-local cache. Nothing survives a restart.
type MemoryDriver struct {
	c *cache.Cache
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{c: cache.New()}
}

func (d *MemoryDriver) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := d.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b := v.([]byte)
	return append([]byte(nil), b...), true, nil
}

func (d *MemoryDriver) Set(_ context.Context, key string, value []byte) error {
	d.c.Set(key, append([]byte(nil), value...), 0)
	return nil
}

func (d *MemoryDriver) Remove(_ context.Context, key string) error {
	d.c.Delete(key)
	return nil
}

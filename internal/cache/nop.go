package cache

import (
	"context"
	"time"
)

// NopCache is used when no Redis is configured; every Get misses
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, error) { return nil, ErrCacheMiss }

func (NopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NopCache) Delete(context.Context, string) error { return nil }

func (NopCache) DeletePattern(context.Context, string) (int, error) { return 0, nil }

func (NopCache) Ping(context.Context) error { return nil }

func (NopCache) Close() error { return nil }

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clearance/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache defines the interface for a caching implementation
type Cache interface {
	// Get retrieves a value from the cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key from the cache
	Delete(ctx context.Context, key string) error

	// DeletePattern removes every key matching a glob pattern, returning the count
	DeletePattern(ctx context.Context, pattern string) (int, error)

	// Ping tests the connection to the cache
	Ping(ctx context.Context) error

	// Close releases resources used by the cache
	Close() error
}

// ErrCacheMiss is returned when a key is not found in the cache
var ErrCacheMiss = fmt.Errorf("cache miss")

const scanBatch = 200

// RedisCache implements the Cache interface using Redis
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to Redis and verifies the connection
func NewRedisCache(config config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("address", config.Address).Msg("Failed to connect to Redis")
		return nil, err
	}

	log.Info().
		Str("address", config.Address).
		Str("prefix", config.Prefix).
		Int("db", config.DB).
		Msg("Redis cache initialized")

	return &RedisCache{
		client: client,
		prefix: config.Prefix,
	}, nil
}

// formatKey adds the prefix to the key
func (c *RedisCache) formatKey(key string) string {
	return c.prefix + ":" + key
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	formattedKey := c.formatKey(key)

	result, err := c.client.Get(ctx, formattedKey).Bytes()
	if errors.Is(err, redis.Nil) {
		log.Debug().Str("key", formattedKey).Msg("Cache miss")
		return nil, ErrCacheMiss
	}
	if err != nil {
		log.Error().Err(err).Str("key", formattedKey).Msg("Error getting value from Redis")
		return nil, err
	}

	log.Debug().Str("key", formattedKey).Int("size", len(result)).Msg("Cache hit")
	return result, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	formattedKey := c.formatKey(key)

	if err := c.client.Set(ctx, formattedKey, value, ttl).Err(); err != nil {
		log.Error().
			Err(err).
			Str("key", formattedKey).
			Int("size", len(value)).
			Dur("ttl", ttl).
			Msg("Error setting value in Redis")
		return err
	}

	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	formattedKey := c.formatKey(key)

	if err := c.client.Del(ctx, formattedKey).Err(); err != nil {
		log.Error().Err(err).Str("key", formattedKey).Msg("Error deleting key from Redis")
		return err
	}

	return nil
}

// DeletePattern walks the keyspace with SCAN and deletes matches in batches
func (c *RedisCache) DeletePattern(ctx context.Context, pattern string) (int, error) {
	formattedPattern := c.formatKey(pattern)
	start := time.Now()

	deleted := 0
	batch := make([]string, 0, scanBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := c.client.Del(ctx, batch...).Result()
		deleted += int(n)
		batch = batch[:0]
		return err
	}

	iter := c.client.Scan(ctx, 0, formattedPattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) < scanBatch {
			continue
		}
		if err := flush(); err != nil {
			log.Error().Err(err).Str("pattern", formattedPattern).Msg("Error deleting keys from Redis")
			return deleted, err
		}
	}
	if err := iter.Err(); err != nil {
		log.Error().Err(err).Str("pattern", formattedPattern).Msg("Error scanning Redis keys")
		return deleted, err
	}
	if err := flush(); err != nil {
		log.Error().Err(err).Str("pattern", formattedPattern).Msg("Error deleting keys from Redis")
		return deleted, err
	}

	log.Debug().
		Str("pattern", formattedPattern).
		Int("deleted", deleted).
		Dur("duration", time.Since(start)).
		Msg("Deleted keys by pattern")

	return deleted, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("Error pinging Redis")
		return err
	}
	return nil
}

func (c *RedisCache) Close() error {
	log.Info().Msg("Closing Redis cache connection")
	return c.client.Close()
}

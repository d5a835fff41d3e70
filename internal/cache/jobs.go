package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clearance/internal/model"
)

// ListingCache stores fully ordered job listings under
// jobs:<partition>:<year>:<query key>
type ListingCache struct {
	cache Cache
	ttl   time.Duration
}

func NewListingCache(cache Cache, ttl time.Duration) *ListingCache {
	return &ListingCache{cache: cache, ttl: ttl}
}

func listingKey(partition, year, queryKey string) string {
	return fmt.Sprintf("jobs:%s:%s:%s", partition, year, queryKey)
}

// YearPattern matches every cached listing of one partition and year
func YearPattern(partition, year string) string {
	return fmt.Sprintf("jobs:%s:%s:*", partition, year)
}

// Get returns a cached ordered listing or ErrCacheMiss
func (c *ListingCache) Get(ctx context.Context, partition, year, queryKey string) ([]model.ShipmentJob, error) {
	data, err := c.cache.Get(ctx, listingKey(partition, year, queryKey))
	if err != nil {
		return nil, err
	}

	var jobs []model.ShipmentJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("decode cached listing: %w", err)
	}
	return jobs, nil
}

// Put caches an ordered listing for the configured TTL
func (c *ListingCache) Put(ctx context.Context, partition, year, queryKey string, jobs []model.ShipmentJob) error {
	data, err := json.Marshal(jobs)
	if err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}
	return c.cache.Set(ctx, listingKey(partition, year, queryKey), data, c.ttl)
}

// InvalidateYear drops every cached listing of one partition and year
func (c *ListingCache) InvalidateYear(ctx context.Context, partition, year string) (int, error) {
	return c.cache.DeletePattern(ctx, YearPattern(partition, year))
}

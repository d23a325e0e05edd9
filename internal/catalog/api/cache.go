package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/productdesk/internal/catalog"
)

const (
	listVersionKey = "catalog:products:version"
	listKeyPrefix  = "catalog:products:list"
)

// ListCache keeps the serialised product list in Redis under a versioned key.
// Every mutation bumps the version so stale lists simply expire.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache instantiates the cache helper. A nil client disables caching.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{client: client, ttl: ttl}
}

func (c *ListCache) enabled() bool {
	return c != nil && c.client != nil
}

// Version returns the current list version, initialising when missing.
func (c *ListCache) Version(ctx context.Context) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, listVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, listVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, listVersionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// Products returns the cached list or populates it using the loader.
func (c *ListCache) Products(ctx context.Context, loader func(context.Context) ([]catalog.Product, error)) ([]catalog.Product, error) {
	if loader == nil {
		return nil, errors.New("cache: loader required")
	}
	if !c.enabled() {
		return loader(ctx)
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s:%d", listKeyPrefix, ver)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached []catalog.Product
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	products, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// Invalidate bumps the list version.
func (c *ListCache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Incr(ctx, listVersionKey).Err()
}

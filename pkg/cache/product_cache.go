package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ProductCacheTTL is the time-to-live for the cached catalog snapshot.
	// The feed refresh workflow rewrites the key well before expiry.
	ProductCacheTTL = 30 * time.Minute

	productCacheKey = "catalog:products"
)

// CachedProduct is the denormalized catalog read model stored in Redis.
// The whole catalog is one JSON document because the filter pipeline always
// operates on the full list in feed order.
type CachedProduct struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	ImageURL         string         `json:"image_url"`
	AdditionalImages []string       `json:"additional_images,omitempty"`
	Price            int64          `json:"price"`
	Category         string         `json:"category"`
	Collection       string         `json:"collection,omitempty"`
	IsNew            bool           `json:"is_new"`
	SizeStock        map[string]int `json:"size_stock,omitempty"`
}

// ProductCache stores the catalog snapshot for read-through serving.
type ProductCache struct {
	client *RedisClient
}

// NewProductCache creates a ProductCache backed by the given RedisClient.
func NewProductCache(r *RedisClient) *ProductCache {
	return &ProductCache{client: r}
}

// Get retrieves the cached catalog snapshot in feed order.
// Returns redis.Nil error when no snapshot is cached or it has expired.
func (c *ProductCache) Get(ctx context.Context) ([]CachedProduct, error) {
	raw, err := c.client.Client().Get(ctx, productCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var products []CachedProduct
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return products, nil
}

// Set replaces the cached catalog snapshot.
func (c *ProductCache) Set(ctx context.Context, products []CachedProduct) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, productCacheKey, raw, ProductCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot so the next read falls through to Postgres.
func (c *ProductCache) Invalidate(ctx context.Context) error {
	if err := c.client.Client().Del(ctx, productCacheKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

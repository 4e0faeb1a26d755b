// Package redis persists wishlists as one redis set per shopper. Like the
// cart, a wishlist that cannot be read is treated as empty rather than
// blocking the storefront.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/atelier/pkg/logger"
)

const keyPrefix = "wishlist:"

// WishlistRepository stores product IDs in the set at wishlist:<shopperID>.
type WishlistRepository struct {
	client *redis.Client
	log    logger.Logger
}

func NewWishlistRepository(client *redis.Client, log logger.Logger) *WishlistRepository {
	return &WishlistRepository{client: client, log: log}
}

func (r *WishlistRepository) Add(ctx context.Context, shopperID, productID string) error {
	if err := r.client.SAdd(ctx, keyPrefix+shopperID, productID).Err(); err != nil {
		return fmt.Errorf("add to wishlist: %w", err)
	}
	return nil
}

func (r *WishlistRepository) Remove(ctx context.Context, shopperID, productID string) error {
	if err := r.client.SRem(ctx, keyPrefix+shopperID, productID).Err(); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}
	return nil
}

func (r *WishlistRepository) Contains(ctx context.Context, shopperID, productID string) bool {
	ok, err := r.client.SIsMember(ctx, keyPrefix+shopperID, productID).Result()
	if err != nil {
		if err != redis.Nil {
			r.log.WarnContext(ctx, "wishlist membership check failed", "shopper_id", shopperID, "error", err)
		}
		return false
	}
	return ok
}

func (r *WishlistRepository) List(ctx context.Context, shopperID string) []string {
	ids, err := r.client.SMembers(ctx, keyPrefix+shopperID).Result()
	if err != nil {
		if err != redis.Nil {
			r.log.WarnContext(ctx, "wishlist load failed, returning empty", "shopper_id", shopperID, "error", err)
		}
		return []string{}
	}
	return ids
}

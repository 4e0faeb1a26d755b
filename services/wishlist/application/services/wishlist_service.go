package services

import (
	"context"
	"sort"

	"github.com/ghuser/atelier/pkg/logger"
	"github.com/ghuser/atelier/services/wishlist/domain/repositories"
)

// WishlistService manages the per-shopper set of wishlisted products.
// Entries are product-level: wishing for a ring says nothing about its size.
type WishlistService struct {
	repo repositories.WishlistRepository
	log  logger.Logger
}

func NewWishlistService(repo repositories.WishlistRepository, log logger.Logger) *WishlistService {
	return &WishlistService{repo: repo, log: log}
}

// Toggle flips a product's wishlist membership and reports the new state:
// true when the product is now wishlisted. Storage failures are logged and
// leave membership unchanged.
func (s *WishlistService) Toggle(ctx context.Context, shopperID, productID string) bool {
	if s.repo.Contains(ctx, shopperID, productID) {
		if err := s.repo.Remove(ctx, shopperID, productID); err != nil {
			s.log.WarnContext(ctx, "wishlist remove failed", "shopper_id", shopperID, "product_id", productID, "error", err)
			return true
		}
		return false
	}
	if err := s.repo.Add(ctx, shopperID, productID); err != nil {
		s.log.WarnContext(ctx, "wishlist add failed", "shopper_id", shopperID, "product_id", productID, "error", err)
		return false
	}
	return true
}

// Contains reports whether the product is wishlisted.
func (s *WishlistService) Contains(ctx context.Context, shopperID, productID string) bool {
	return s.repo.Contains(ctx, shopperID, productID)
}

// List returns the shopper's wishlisted product IDs, sorted for a stable
// response (redis sets are unordered).
func (s *WishlistService) List(ctx context.Context, shopperID string) []string {
	ids := s.repo.List(ctx, shopperID)
	sort.Strings(ids)
	return ids
}

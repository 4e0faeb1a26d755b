package repositories

import "context"

// WishlistRepository persists the set of wishlisted product IDs per shopper.
// Membership is size-agnostic: a product is wished for or it is not.
type WishlistRepository interface {
	Add(ctx context.Context, shopperID, productID string) error
	Remove(ctx context.Context, shopperID, productID string) error

	// Contains reports membership. Storage failures degrade to false.
	Contains(ctx context.Context, shopperID, productID string) bool

	// List returns the wishlisted product IDs. A missing or unreadable
	// set yields an empty slice, never an error.
	List(ctx context.Context, shopperID string) []string
}

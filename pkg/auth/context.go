package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const shopperIDKey contextKey = "shopper_id"

// ErrShopperNotFound is returned when no shopper identity exists in the
// request context. Handlers behind WithShopper never see this.
var ErrShopperNotFound = errors.New("shopper not found in context")

// ShopperIDFromCtx extracts the shopper identity from the request context.
// Returns uuid.Nil and ErrShopperNotFound if no shopper is set.
func ShopperIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(shopperIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrShopperNotFound
	}
	return id, nil
}

// WithShopperID returns a new context with the given shopper ID attached.
// Used by the WithShopper middleware after resolving the session.
func WithShopperID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, shopperIDKey, id)
}

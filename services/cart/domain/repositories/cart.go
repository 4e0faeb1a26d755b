package repositories

import (
	"context"

	"github.com/ghuser/atelier/services/cart/domain/models"
)

// CartRepository persists cart lines per shopper. Panel state and the undo
// record are session-scoped and deliberately not stored.
type CartRepository interface {
	// Load returns the shopper's lines. A missing or unreadable record
	// yields an empty slice, never an error: the cart must always open.
	Load(ctx context.Context, shopperID string) []models.Line

	// Save writes the shopper's lines, replacing any previous record.
	Save(ctx context.Context, shopperID string, lines []models.Line) error
}

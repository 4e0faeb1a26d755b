package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for cart activity. Consumers use them for merchandising
// signals (what gets added, what gets abandoned); nothing on the purchase
// path depends on them.
const (
	TopicLineAdded   = "cart.line_added"
	TopicLineRemoved = "cart.line_removed"
)

// LineAddedEvent is published after a unit is added to a shopper's cart.
type LineAddedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ShopperID  string    `json:"shopper_id"`
	ProductID  string    `json:"product_id"`
	Size       string    `json:"size,omitempty"`
	Quantity   int       `json:"quantity"` // resulting line quantity
	OccurredAt time.Time `json:"occurred_at"`
}

// LineRemovedEvent is published after a line leaves a shopper's cart.
type LineRemovedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ShopperID  string    `json:"shopper_id"`
	ProductID  string    `json:"product_id"`
	Size       string    `json:"size,omitempty"`
	Quantity   int       `json:"quantity"` // quantity at removal time
	OccurredAt time.Time `json:"occurred_at"`
}

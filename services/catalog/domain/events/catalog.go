package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicCatalogRefreshed is the Watermill topic published after a feed refresh
// replaces the catalog read model.
const TopicCatalogRefreshed = "catalog.refreshed"

// CatalogRefreshedEvent is published after the catalog read model is rebuilt
// from the upstream feed. Consumers warm the product cache from it.
type CatalogRefreshedEvent struct {
	EventID      uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version      int       `json:"version"`  // Schema version; increment on breaking changes
	ProductCount int       `json:"product_count"`
	OccurredAt   time.Time `json:"occurred_at"`
}

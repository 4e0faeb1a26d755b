// Package redis persists cart lines as a single JSON record per shopper.
// Carts are a convenience, not a ledger: a record that cannot be read is
// treated as an empty cart so the storefront never blocks on it.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/atelier/pkg/logger"
	"github.com/ghuser/atelier/services/cart/domain/models"
)

const keyPrefix = "cart:"

// CartTTL caps how long an abandoned guest cart survives.
const CartTTL = 30 * 24 * time.Hour

type cartRecord struct {
	Lines []models.Line `json:"lines"`
}

// CartRepository stores one JSON record per shopper at cart:<shopperID>.
type CartRepository struct {
	client *redis.Client
	log    logger.Logger
}

func NewCartRepository(client *redis.Client, log logger.Logger) *CartRepository {
	return &CartRepository{client: client, log: log}
}

// Load reads a shopper's lines. Missing keys and corrupt payloads both
// resolve to an empty cart; corruption is logged and the record is left
// for the next Save to overwrite.
func (r *CartRepository) Load(ctx context.Context, shopperID string) []models.Line {
	raw, err := r.client.Get(ctx, keyPrefix+shopperID).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.WarnContext(ctx, "cart load failed, starting empty", "shopper_id", shopperID, "error", err)
		}
		return []models.Line{}
	}

	var rec cartRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		r.log.WarnContext(ctx, "cart record corrupt, starting empty", "shopper_id", shopperID, "error", err)
		return []models.Line{}
	}
	if rec.Lines == nil {
		return []models.Line{}
	}
	return rec.Lines
}

// Save replaces the shopper's record with the given lines.
func (r *CartRepository) Save(ctx context.Context, shopperID string, lines []models.Line) error {
	raw, err := json.Marshal(cartRecord{Lines: lines})
	if err != nil {
		return fmt.Errorf("marshal cart record: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+shopperID, raw, CartTTL).Err(); err != nil {
		return fmt.Errorf("save cart record: %w", err)
	}
	return nil
}

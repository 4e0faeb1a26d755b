package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/atelier/pkg/cache"
	"github.com/ghuser/atelier/pkg/events"
	"github.com/ghuser/atelier/pkg/logger"
	domainevents "github.com/ghuser/atelier/services/catalog/domain/events"
	"github.com/ghuser/atelier/services/catalog/domain/models"
	"github.com/ghuser/atelier/services/catalog/domain/repositories"
	domainsvcs "github.com/ghuser/atelier/services/catalog/domain/services"
)

// FeedSource fetches the upstream catalog feed.
type FeedSource interface {
	Fetch(ctx context.Context) ([]models.Product, error)
}

// CatalogService orchestrates feed refreshes and catalog reads.
// Reads are served from the Redis snapshot cache when available, falling
// back to the Postgres read model.
type CatalogService struct {
	repo  repositories.ProductRepository
	cache *pkgcache.ProductCache
	feed  FeedSource
	bus   *events.EventBus
	log   logger.Logger
}

// NewCatalogService returns a CatalogService wired with the given collaborators.
// cache and bus may be nil (worker-side refresh still works without them).
func NewCatalogService(
	repo repositories.ProductRepository,
	cache *pkgcache.ProductCache,
	feed FeedSource,
	bus *events.EventBus,
	log logger.Logger,
) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, feed: feed, bus: bus, log: log}
}

// Refresh fetches the feed, replaces the read model, rewrites the snapshot
// cache and publishes catalog.refreshed. Returns the product count.
func (s *CatalogService) Refresh(ctx context.Context) (int, error) {
	products, err := s.feed.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch feed: %w", err)
	}

	if err := s.repo.ReplaceAll(ctx, products); err != nil {
		return 0, fmt.Errorf("replace catalog: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, toCached(products)); err != nil {
			// Readers fall back to Postgres; drop the stale snapshot so
			// they do not keep serving the pre-refresh catalog.
			s.log.WarnContext(ctx, "catalog cache rewrite failed", "error", err)
			if err := s.cache.Invalidate(ctx); err != nil {
				s.log.WarnContext(ctx, "catalog cache invalidate failed", "error", err)
			}
		}
	}

	s.publishRefreshed(ctx, len(products))
	return len(products), nil
}

// Browse returns the catalog filtered by spec, in feed order.
func (s *CatalogService) Browse(ctx context.Context, spec domainsvcs.FilterSpec) ([]models.Product, error) {
	products, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	return domainsvcs.Filter(products, spec), nil
}

// Collections returns the distinct collection names for the filter controls.
func (s *CatalogService) Collections(ctx context.Context) ([]string, error) {
	products, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	return domainsvcs.Collections(products), nil
}

// GetProduct retrieves one product by ID for the detail view.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// list serves the full catalog using a read-through cache pattern:
//  1. Check the Redis snapshot first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *CatalogService) list(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil {
			return fromCached(cached), nil
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "catalog cache read failed, falling back to postgres", "error", err)
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	if s.cache != nil {
		snapshot := toCached(products)
		go func() {
			_ = s.cache.Set(context.Background(), snapshot)
		}()
	}

	return products, nil
}

func (s *CatalogService) publishRefreshed(ctx context.Context, count int) {
	if s.bus == nil {
		return
	}
	evt := domainevents.CatalogRefreshedEvent{
		EventID:      uuid.New(),
		Version:      1,
		ProductCount: count,
		OccurredAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		s.log.ErrorContext(ctx, "encode catalog.refreshed event", "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.bus.Publish(ctx, domainevents.TopicCatalogRefreshed, msg); err != nil {
		s.log.WarnContext(ctx, "publish catalog.refreshed failed", "error", err)
	}
}

func toCached(products []models.Product) []pkgcache.CachedProduct {
	out := make([]pkgcache.CachedProduct, len(products))
	for i, p := range products {
		out[i] = pkgcache.CachedProduct{
			ID:               p.ID,
			Name:             p.Name,
			Description:      p.Description,
			ImageURL:         p.ImageURL,
			AdditionalImages: p.AdditionalImages,
			Price:            p.Price,
			Category:         p.Category,
			Collection:       p.Collection,
			IsNew:            p.IsNew,
			SizeStock:        p.SizeStock,
		}
	}
	return out
}

func fromCached(cached []pkgcache.CachedProduct) []models.Product {
	out := make([]models.Product, len(cached))
	for i, c := range cached {
		stock := c.SizeStock
		if stock == nil {
			stock = map[string]int{}
		}
		out[i] = models.Product{
			ID:               c.ID,
			Name:             c.Name,
			Description:      c.Description,
			ImageURL:         c.ImageURL,
			AdditionalImages: c.AdditionalImages,
			Price:            c.Price,
			Category:         c.Category,
			Collection:       c.Collection,
			IsNew:            c.IsNew,
			SizeStock:        stock,
		}
	}
	return out
}

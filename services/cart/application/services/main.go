package services

import (
	"context"

	"github.com/ghuser/atelier/pkg/app"
	"github.com/ghuser/atelier/pkg/config"
	"github.com/ghuser/atelier/services/cart/infrastructure/persistence/redis"
	catalogservices "github.com/ghuser/atelier/services/catalog/application/services"
	catalogmodels "github.com/ghuser/atelier/services/catalog/domain/models"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Cart *CartService
}

// New wires the cart application services. The catalog service is injected
// rather than rebuilt so both contexts share one read path.
func New(a *app.Application, _ *config.Config, catalog *catalogservices.CatalogService) *Services {
	repo := redis.NewCartRepository(a.Redis.Client(), a.Logger)
	return &Services{
		Cart: NewCartService(repo, &catalogLookup{catalog: catalog}, a.EventBus, a.Logger),
	}
}

// catalogLookup adapts the catalog service to the narrow ProductLookup the
// cart depends on. Any lookup failure degrades to absence: a product the
// cart cannot see is a product it cannot sell.
type catalogLookup struct {
	catalog *catalogservices.CatalogService
}

func (l *catalogLookup) Lookup(ctx context.Context, productID string) (catalogmodels.Product, bool) {
	product, err := l.catalog.GetProduct(ctx, productID)
	if err != nil {
		return catalogmodels.Product{}, false
	}
	return product, true
}

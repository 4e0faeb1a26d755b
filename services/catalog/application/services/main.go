package services

import (
	"net/http"
	"time"

	"github.com/ghuser/atelier/pkg/app"
	"github.com/ghuser/atelier/pkg/cache"
	"github.com/ghuser/atelier/pkg/config"
	"github.com/ghuser/atelier/services/catalog/infrastructure/feed"
	"github.com/ghuser/atelier/services/catalog/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Catalog *CatalogService
}

// New wires all catalog application services with infrastructure from the
// Application container.
func New(a *app.Application, cfg *config.Config) *Services {
	repo := postgres.NewProductRepository(a.Db)
	productCache := cache.NewProductCache(a.Redis)
	feedClient := feed.NewClient(
		&http.Client{Timeout: time.Duration(cfg.CatalogFeedTimeout) * time.Second},
		cfg.CatalogFeedURL,
		a.Logger,
	)
	return &Services{
		Catalog: NewCatalogService(repo, productCache, feedClient, a.EventBus, a.Logger),
	}
}

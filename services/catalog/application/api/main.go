package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/atelier/pkg/app"
	"github.com/ghuser/atelier/pkg/config"
	"github.com/ghuser/atelier/services/catalog/application/handlers"
	appsvcs "github.com/ghuser/atelier/services/catalog/application/services"
)

// CatalogRoutes registers catalog endpoints on the provided chi router.
// The wired service container is returned so other contexts (the cart's
// stock and price lookups) can share the same read path.
func CatalogRoutes(r chi.Router, a *app.Application, cfg *config.Config) *appsvcs.Services {
	svcs := appsvcs.New(a, cfg)
	r.Group(func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", handlers.NewGetCatalogHandler(svcs).Execute)
			r.Get("/collections", handlers.NewGetCollectionsHandler(svcs).Execute)
			r.Get("/products/{id}", handlers.NewGetProductHandler(svcs).Execute)
			r.Post("/refresh", handlers.NewPostRefreshHandler(svcs).Execute)
		})
	})
	return svcs
}

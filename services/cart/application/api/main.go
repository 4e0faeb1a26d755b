package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/atelier/pkg/app"
	"github.com/ghuser/atelier/pkg/auth"
	"github.com/ghuser/atelier/pkg/config"
	"github.com/ghuser/atelier/services/cart/application/handlers"
	appsvcs "github.com/ghuser/atelier/services/cart/application/services"
	catalogservices "github.com/ghuser/atelier/services/catalog/application/services"
)

// CartRoutes registers cart endpoints on the provided chi router. All cart
// routes sit behind the shopper session middleware: a guest identity is
// minted on first contact.
func CartRoutes(r chi.Router, a *app.Application, cfg *config.Config, catalog *catalogservices.CatalogService) {
	svcs := appsvcs.New(a, cfg, catalog)
	r.Group(func(r chi.Router) {
		r.Use(auth.WithShopper(a.SessionStore, a.Logger))
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", handlers.NewGetCartHandler(svcs).Execute)
			r.Post("/lines", handlers.NewPostLineHandler(svcs).Execute)
			r.Patch("/lines", handlers.NewPatchLineHandler(svcs).Execute)
			r.Delete("/lines", handlers.NewDeleteLineHandler(svcs).Execute)
			r.Post("/undo", handlers.NewPostUndoHandler(svcs).Execute)
			r.Post("/dismiss", handlers.NewPostDismissHandler(svcs).Execute)
			r.Post("/toggle", handlers.NewPostToggleHandler(svcs).Execute)
		})
	})
}

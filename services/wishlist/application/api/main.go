package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/atelier/pkg/app"
	"github.com/ghuser/atelier/pkg/auth"
	"github.com/ghuser/atelier/pkg/config"
	"github.com/ghuser/atelier/services/wishlist/application/handlers"
	appsvcs "github.com/ghuser/atelier/services/wishlist/application/services"
)

// WishlistRoutes registers wishlist endpoints on the provided chi router,
// behind the shopper session middleware.
func WishlistRoutes(r chi.Router, a *app.Application, cfg *config.Config) {
	svcs := appsvcs.New(a, cfg)
	r.Group(func(r chi.Router) {
		r.Use(auth.WithShopper(a.SessionStore, a.Logger))
		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", handlers.NewGetWishlistHandler(svcs).Execute)
			r.Post("/toggle", handlers.NewPostToggleHandler(svcs).Execute)
		})
	})
}

package services

import (
	"github.com/ghuser/atelier/pkg/app"
	"github.com/ghuser/atelier/pkg/config"
	"github.com/ghuser/atelier/services/wishlist/infrastructure/persistence/redis"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Wishlist *WishlistService
}

// New wires the wishlist application services with infrastructure from the
// Application container.
func New(a *app.Application, _ *config.Config) *Services {
	repo := redis.NewWishlistRepository(a.Redis.Client(), a.Logger)
	return &Services{
		Wishlist: NewWishlistService(repo, a.Logger),
	}
}

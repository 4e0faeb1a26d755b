package repositories

import (
	"context"

	"github.com/ghuser/atelier/services/catalog/domain/models"
)

// ProductRepository is the persistence interface for the catalog read model.
// The domain layer owns this interface; infrastructure implements it.
type ProductRepository interface {
	// ReplaceAll atomically swaps the stored catalog for the given snapshot,
	// preserving feed order.
	ReplaceAll(ctx context.Context, products []models.Product) error

	// List returns the full catalog in feed order.
	List(ctx context.Context) ([]models.Product, error)

	// GetByID retrieves one product. Returns ErrProductNotFound if absent.
	GetByID(ctx context.Context, id string) (models.Product, error)
}

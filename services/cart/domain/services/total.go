package services

import "github.com/ghuser/atelier/services/cart/domain/models"

// TotalPrice computes the cart total in minor currency units from current
// lines. It is always derived, never stored. priceOf resolves a product's
// unit price; products it cannot resolve (stale references) contribute zero.
func TotalPrice(cart models.Cart, priceOf func(productID string) (int64, bool)) int64 {
	var total int64
	for _, l := range cart.Lines {
		price, ok := priceOf(l.ProductID)
		if !ok {
			continue
		}
		total += price * int64(l.Quantity)
	}
	return total
}

package handlers

import (
	"net/http"

	"github.com/ghuser/atelier/pkg/auth"
	"github.com/ghuser/atelier/pkg/errhttp"
	"github.com/ghuser/atelier/pkg/httpx"
	appsvcs "github.com/ghuser/atelier/services/wishlist/application/services"
)

// WishlistResponse lists the shopper's wishlisted product IDs.
type WishlistResponse struct {
	ProductIDs []string `json:"product_ids"`
} // @name WishlistResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"authentication required"`
} // @name ErrorResponse

// GetWishlistHandler handles GET /wishlist requests.
type GetWishlistHandler struct {
	svc *appsvcs.Services
}

// NewGetWishlistHandler returns a GetWishlistHandler backed by the given services.
func NewGetWishlistHandler(svc *appsvcs.Services) *GetWishlistHandler {
	return &GetWishlistHandler{svc: svc}
}

// Execute returns the shopper's wishlist.
//
//	@Summary		Get wishlist
//	@Description	Returns the current shopper's wishlisted product IDs
//	@Tags			wishlist
//	@Produce		json
//	@Success		200	{object}	WishlistResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/wishlist [get]
func (h *GetWishlistHandler) Execute(w http.ResponseWriter, r *http.Request) {
	shopperID, err := auth.ShopperIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	ids := h.svc.Wishlist.List(r.Context(), shopperID.String())
	httpx.JSON(w, http.StatusOK, WishlistResponse{ProductIDs: ids})
}

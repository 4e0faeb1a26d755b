package handlers

import (
	"net/http"

	"github.com/ghuser/atelier/pkg/auth"
	"github.com/ghuser/atelier/pkg/errhttp"
	"github.com/ghuser/atelier/pkg/httpx"
	pkgvalidator "github.com/ghuser/atelier/pkg/validator"
	appsvcs "github.com/ghuser/atelier/services/wishlist/application/services"
)

// ToggleWishlistRequest is the request body for POST /wishlist/toggle.
type ToggleWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required,min=1,max=255" example:"product-aurora-ring"`
} // @name ToggleWishlistRequest

// ToggleWishlistResponse reports the product's membership after the toggle.
type ToggleWishlistResponse struct {
	ProductID  string `json:"product_id" example:"product-aurora-ring"`
	Wishlisted bool   `json:"wishlisted" example:"true"`
} // @name ToggleWishlistResponse

// PostToggleHandler handles POST /wishlist/toggle requests.
type PostToggleHandler struct {
	svc *appsvcs.Services
}

// NewPostToggleHandler returns a PostToggleHandler backed by the given services.
func NewPostToggleHandler(svc *appsvcs.Services) *PostToggleHandler {
	return &PostToggleHandler{svc: svc}
}

// Execute flips a product's wishlist membership.
//
//	@Summary		Toggle wishlist
//	@Description	Adds the product if absent, removes it if present
//	@Tags			wishlist
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ToggleWishlistRequest	true	"Product to toggle"
//	@Success		200		{object}	ToggleWishlistResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/wishlist/toggle [post]
func (h *PostToggleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	shopperID, err := auth.ShopperIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ToggleWishlistRequest](w, r)
	if !ok {
		return
	}

	wishlisted := h.svc.Wishlist.Toggle(r.Context(), shopperID.String(), req.ProductID)
	httpx.JSON(w, http.StatusOK, ToggleWishlistResponse{ProductID: req.ProductID, Wishlisted: wishlisted})
}

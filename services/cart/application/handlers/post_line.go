package handlers

import (
	"net/http"

	"github.com/ghuser/atelier/pkg/auth"
	"github.com/ghuser/atelier/pkg/errhttp"
	"github.com/ghuser/atelier/pkg/httpx"
	pkgvalidator "github.com/ghuser/atelier/pkg/validator"
	appsvcs "github.com/ghuser/atelier/services/cart/application/services"
)

// AddLineRequest is the request body for POST /cart/lines.
type AddLineRequest struct {
	ProductID string `json:"product_id" validate:"required,min=1,max=255" example:"product-aurora-ring"`
	Size      string `json:"size" validate:"omitempty,max=16" example:"7"`
} // @name AddLineRequest

// PostLineHandler handles POST /cart/lines requests.
type PostLineHandler struct {
	svc *appsvcs.Services
}

// NewPostLineHandler returns a PostLineHandler backed by the given services.
func NewPostLineHandler(svc *appsvcs.Services) *PostLineHandler {
	return &PostLineHandler{svc: svc}
}

// Execute adds one unit of a product variant to the cart.
//
//	@Summary		Add to cart
//	@Description	Adds one unit of (product, size); increments are capped at stock
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AddLineRequest	true	"Line to add"
//	@Success		200		{object}	CartResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/cart/lines [post]
func (h *PostLineHandler) Execute(w http.ResponseWriter, r *http.Request) {
	shopperID, err := auth.ShopperIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[AddLineRequest](w, r)
	if !ok {
		return
	}

	view := h.svc.Cart.AddItem(r.Context(), shopperID.String(), req.ProductID, req.Size)
	httpx.JSON(w, http.StatusOK, toCartResponse(view))
}

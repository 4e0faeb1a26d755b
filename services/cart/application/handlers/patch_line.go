package handlers

import (
	"net/http"

	"github.com/ghuser/atelier/pkg/auth"
	"github.com/ghuser/atelier/pkg/errhttp"
	"github.com/ghuser/atelier/pkg/httpx"
	pkgvalidator "github.com/ghuser/atelier/pkg/validator"
	appsvcs "github.com/ghuser/atelier/services/cart/application/services"
)

// SetQuantityRequest is the request body for PATCH /cart/lines.
// A quantity of zero removes the line.
type SetQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required,min=1,max=255" example:"product-aurora-ring"`
	Size      string `json:"size" validate:"omitempty,max=16" example:"7"`
	Quantity  int    `json:"quantity" validate:"min=0,max=999" example:"3"`
} // @name SetQuantityRequest

// PatchLineHandler handles PATCH /cart/lines requests.
type PatchLineHandler struct {
	svc *appsvcs.Services
}

// NewPatchLineHandler returns a PatchLineHandler backed by the given services.
func NewPatchLineHandler(svc *appsvcs.Services) *PatchLineHandler {
	return &PatchLineHandler{svc: svc}
}

// Execute sets the quantity of an existing cart line, clamped to stock.
//
//	@Summary		Set line quantity
//	@Description	Sets the quantity of an existing line; zero removes it
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SetQuantityRequest	true	"Line and target quantity"
//	@Success		200		{object}	CartResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/cart/lines [patch]
func (h *PatchLineHandler) Execute(w http.ResponseWriter, r *http.Request) {
	shopperID, err := auth.ShopperIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[SetQuantityRequest](w, r)
	if !ok {
		return
	}

	view := h.svc.Cart.SetQuantity(r.Context(), shopperID.String(), req.ProductID, req.Size, req.Quantity)
	httpx.JSON(w, http.StatusOK, toCartResponse(view))
}

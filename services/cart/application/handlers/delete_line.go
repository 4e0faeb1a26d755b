package handlers

import (
	"net/http"

	"github.com/ghuser/atelier/pkg/auth"
	"github.com/ghuser/atelier/pkg/errhttp"
	"github.com/ghuser/atelier/pkg/httpx"
	pkgvalidator "github.com/ghuser/atelier/pkg/validator"
	appsvcs "github.com/ghuser/atelier/services/cart/application/services"
)

// RemoveLineRequest is the request body for DELETE /cart/lines.
type RemoveLineRequest struct {
	ProductID string `json:"product_id" validate:"required,min=1,max=255" example:"product-aurora-ring"`
	Size      string `json:"size" validate:"omitempty,max=16" example:"7"`
} // @name RemoveLineRequest

// DeleteLineHandler handles DELETE /cart/lines requests.
type DeleteLineHandler struct {
	svc *appsvcs.Services
}

// NewDeleteLineHandler returns a DeleteLineHandler backed by the given services.
func NewDeleteLineHandler(svc *appsvcs.Services) *DeleteLineHandler {
	return &DeleteLineHandler{svc: svc}
}

// Execute removes a cart line. The response carries the removed record; the
// client offers undo for a short window and then posts either /cart/undo or
// /cart/dismiss with that record.
//
//	@Summary		Remove line
//	@Description	Removes a line and returns it as an undoable record
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RemoveLineRequest	true	"Line to remove"
//	@Success		200		{object}	CartResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/cart/lines [delete]
func (h *DeleteLineHandler) Execute(w http.ResponseWriter, r *http.Request) {
	shopperID, err := auth.ShopperIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[RemoveLineRequest](w, r)
	if !ok {
		return
	}

	view := h.svc.Cart.RemoveItem(r.Context(), shopperID.String(), req.ProductID, req.Size)
	httpx.JSON(w, http.StatusOK, toCartResponse(view))
}

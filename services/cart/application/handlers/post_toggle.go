package handlers

import (
	"net/http"

	"github.com/ghuser/atelier/pkg/auth"
	"github.com/ghuser/atelier/pkg/errhttp"
	"github.com/ghuser/atelier/pkg/httpx"
	pkgvalidator "github.com/ghuser/atelier/pkg/validator"
	appsvcs "github.com/ghuser/atelier/services/cart/application/services"
)

// ToggleRequest is the request body for POST /cart/toggle. The client sends
// its current panel state; the response carries the flipped state.
type ToggleRequest struct {
	IsOpen bool `json:"is_open" example:"false"`
} // @name ToggleRequest

// PostToggleHandler handles POST /cart/toggle requests.
type PostToggleHandler struct {
	svc *appsvcs.Services
}

// NewPostToggleHandler returns a PostToggleHandler backed by the given services.
func NewPostToggleHandler(svc *appsvcs.Services) *PostToggleHandler {
	return &PostToggleHandler{svc: svc}
}

// Execute flips the cart panel visibility.
//
//	@Summary		Toggle cart panel
//	@Description	Flips the panel open/closed from the client-reported state
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ToggleRequest	true	"Current panel state"
//	@Success		200		{object}	CartResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/cart/toggle [post]
func (h *PostToggleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	shopperID, err := auth.ShopperIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ToggleRequest](w, r)
	if !ok {
		return
	}

	view := h.svc.Cart.ToggleOpen(r.Context(), shopperID.String(), req.IsOpen)
	httpx.JSON(w, http.StatusOK, toCartResponse(view))
}

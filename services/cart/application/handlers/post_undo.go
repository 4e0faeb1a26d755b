package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/atelier/pkg/auth"
	"github.com/ghuser/atelier/pkg/errhttp"
	"github.com/ghuser/atelier/pkg/httpx"
	pkgvalidator "github.com/ghuser/atelier/pkg/validator"
	appsvcs "github.com/ghuser/atelier/services/cart/application/services"
)

// UndoRequest is the request body for POST /cart/undo and POST /cart/dismiss:
// the removed record previously returned by DELETE /cart/lines, echoed back.
type UndoRequest struct {
	ProductID string    `json:"product_id" validate:"required,min=1,max=255" example:"product-aurora-ring"`
	Size      string    `json:"size" validate:"omitempty,max=16" example:"7"`
	Quantity  int       `json:"quantity" validate:"required,min=1,max=999" example:"2"`
	RemovedAt time.Time `json:"removed_at" example:"2026-08-01T12:00:00Z"`
} // @name UndoRequest

// PostUndoHandler handles POST /cart/undo requests.
type PostUndoHandler struct {
	svc *appsvcs.Services
}

// NewPostUndoHandler returns a PostUndoHandler backed by the given services.
func NewPostUndoHandler(svc *appsvcs.Services) *PostUndoHandler {
	return &PostUndoHandler{svc: svc}
}

// Execute restores a removed line, clamped to current stock.
//
//	@Summary		Undo removal
//	@Description	Restores the removed line from its record, capped at current stock
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UndoRequest	true	"Removed record to restore"
//	@Success		200		{object}	CartResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/cart/undo [post]
func (h *PostUndoHandler) Execute(w http.ResponseWriter, r *http.Request) {
	shopperID, err := auth.ShopperIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UndoRequest](w, r)
	if !ok {
		return
	}

	removed := toRemovedLine(RemovedLineResponse{
		Line:      LineResponse{ProductID: req.ProductID, Size: req.Size, Quantity: req.Quantity},
		RemovedAt: req.RemovedAt,
	})
	view := h.svc.Cart.UndoRemove(r.Context(), shopperID.String(), removed)
	httpx.JSON(w, http.StatusOK, toCartResponse(view))
}

// PostDismissHandler handles POST /cart/dismiss requests.
type PostDismissHandler struct {
	svc *appsvcs.Services
}

// NewPostDismissHandler returns a PostDismissHandler backed by the given services.
func NewPostDismissHandler(svc *appsvcs.Services) *PostDismissHandler {
	return &PostDismissHandler{svc: svc}
}

// Execute discards a removed record without restoring it. Undo is final
// after this.
//
//	@Summary		Dismiss removal
//	@Description	Discards the removed record; the line cannot be restored afterwards
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UndoRequest	true	"Removed record to discard"
//	@Success		200		{object}	CartResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/cart/dismiss [post]
func (h *PostDismissHandler) Execute(w http.ResponseWriter, r *http.Request) {
	shopperID, err := auth.ShopperIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UndoRequest](w, r)
	if !ok {
		return
	}

	removed := toRemovedLine(RemovedLineResponse{
		Line:      LineResponse{ProductID: req.ProductID, Size: req.Size, Quantity: req.Quantity},
		RemovedAt: req.RemovedAt,
	})
	view := h.svc.Cart.DismissRemoved(r.Context(), shopperID.String(), removed)
	httpx.JSON(w, http.StatusOK, toCartResponse(view))
}

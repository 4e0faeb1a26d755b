package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/atelier/pkg/auth"
	"github.com/ghuser/atelier/pkg/errhttp"
	"github.com/ghuser/atelier/pkg/httpx"
	appsvcs "github.com/ghuser/atelier/services/cart/application/services"
	"github.com/ghuser/atelier/services/cart/domain/models"
)

// LineResponse is one cart line in API responses.
type LineResponse struct {
	ProductID string `json:"product_id" example:"product-aurora-ring"`
	Size      string `json:"size,omitempty" example:"7"`
	Quantity  int    `json:"quantity" example:"2"`
} // @name LineResponse

// RemovedLineResponse is the pending undo record. The client echoes it back
// verbatim on POST /cart/undo or POST /cart/dismiss.
type RemovedLineResponse struct {
	Line      LineResponse `json:"line"`
	RemovedAt time.Time    `json:"removed_at" example:"2026-08-01T12:00:00Z"`
} // @name RemovedLineResponse

// CartResponse is the full cart state returned by every cart endpoint.
type CartResponse struct {
	Lines      []LineResponse       `json:"lines"`
	IsOpen     bool                 `json:"is_open"`
	Removed    *RemovedLineResponse `json:"removed,omitempty"`
	TotalPrice int64                `json:"total_price" example:"29000"`
} // @name CartResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"authentication required"`
} // @name ErrorResponse

func toCartResponse(view appsvcs.CartView) CartResponse {
	lines := make([]LineResponse, len(view.Lines))
	for i, l := range view.Lines {
		lines[i] = LineResponse{ProductID: l.ProductID, Size: l.Size, Quantity: l.Quantity}
	}
	resp := CartResponse{Lines: lines, IsOpen: view.IsOpen, TotalPrice: view.TotalPrice}
	if view.Removed != nil {
		resp.Removed = &RemovedLineResponse{
			Line: LineResponse{
				ProductID: view.Removed.Line.ProductID,
				Size:      view.Removed.Line.Size,
				Quantity:  view.Removed.Line.Quantity,
			},
			RemovedAt: view.Removed.RemovedAt,
		}
	}
	return resp
}

func toRemovedLine(r RemovedLineResponse) models.RemovedLine {
	return models.RemovedLine{
		Line: models.Line{
			ProductID: r.Line.ProductID,
			Size:      r.Line.Size,
			Quantity:  r.Line.Quantity,
		},
		RemovedAt: r.RemovedAt,
	}
}

// GetCartHandler handles GET /cart requests.
type GetCartHandler struct {
	svc *appsvcs.Services
}

// NewGetCartHandler returns a GetCartHandler backed by the given services.
func NewGetCartHandler(svc *appsvcs.Services) *GetCartHandler {
	return &GetCartHandler{svc: svc}
}

// Execute returns the shopper's cart with its derived total.
//
//	@Summary		Get cart
//	@Description	Returns the current shopper's cart lines and total
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CartResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/cart [get]
func (h *GetCartHandler) Execute(w http.ResponseWriter, r *http.Request) {
	shopperID, err := auth.ShopperIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	view := h.svc.Cart.Get(r.Context(), shopperID.String())
	httpx.JSON(w, http.StatusOK, toCartResponse(view))
}

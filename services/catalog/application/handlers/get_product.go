package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/atelier/pkg/errhttp"
	"github.com/ghuser/atelier/pkg/httpx"
	appsvcs "github.com/ghuser/atelier/services/catalog/application/services"
)

// GetProductHandler handles GET /catalog/products/{id} requests.
type GetProductHandler struct {
	svc *appsvcs.Services
}

// NewGetProductHandler returns a GetProductHandler backed by the given services.
func NewGetProductHandler(svc *appsvcs.Services) *GetProductHandler {
	return &GetProductHandler{svc: svc}
}

// Execute returns one product for the detail view.
//
//	@Summary		Get product
//	@Description	Returns a single product by its stable identifier
//	@Tags			catalog
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	ProductResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/catalog/products/{id} [get]
func (h *GetProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.Catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponse(product))
}

package handlers

import (
	"net/http"

	"github.com/ghuser/atelier/pkg/errhttp"
	"github.com/ghuser/atelier/pkg/httpx"
	appsvcs "github.com/ghuser/atelier/services/catalog/application/services"
)

// RefreshResponse is returned after a successful feed refresh.
type RefreshResponse struct {
	ProductCount int `json:"product_count" example:"24"`
} // @name RefreshResponse

// PostRefreshHandler handles POST /catalog/refresh requests.
// The scheduled Temporal workflow covers routine refreshes; this endpoint
// exists for operators who need one immediately.
type PostRefreshHandler struct {
	svc *appsvcs.Services
}

// NewPostRefreshHandler returns a PostRefreshHandler backed by the given services.
func NewPostRefreshHandler(svc *appsvcs.Services) *PostRefreshHandler {
	return &PostRefreshHandler{svc: svc}
}

// Execute refetches the feed and rebuilds the catalog read model.
//
//	@Summary		Refresh catalog
//	@Description	Fetches the upstream feed and replaces the catalog read model
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	RefreshResponse
//	@Failure		502	{object}	ErrorResponse
//	@Router			/catalog/refresh [post]
func (h *PostRefreshHandler) Execute(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Catalog.Refresh(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, RefreshResponse{ProductCount: count})
}

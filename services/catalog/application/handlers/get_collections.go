package handlers

import (
	"net/http"

	"github.com/ghuser/atelier/pkg/errhttp"
	"github.com/ghuser/atelier/pkg/httpx"
	appsvcs "github.com/ghuser/atelier/services/catalog/application/services"
)

// CollectionsResponse lists the distinct collection names.
type CollectionsResponse struct {
	Collections []string `json:"collections" example:"Aurora,Tide"`
} // @name CollectionsResponse

// GetCollectionsHandler handles GET /catalog/collections requests.
type GetCollectionsHandler struct {
	svc *appsvcs.Services
}

// NewGetCollectionsHandler returns a GetCollectionsHandler backed by the given services.
func NewGetCollectionsHandler(svc *appsvcs.Services) *GetCollectionsHandler {
	return &GetCollectionsHandler{svc: svc}
}

// Execute lists the distinct collection names for the filter controls.
//
//	@Summary		List collections
//	@Description	Returns the distinct, non-empty collection names present in the catalog
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	CollectionsResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/catalog/collections [get]
func (h *GetCollectionsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	collections, err := h.svc.Catalog.Collections(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, CollectionsResponse{Collections: collections})
}

package handlers

import (
	"net/http"

	"github.com/ghuser/atelier/pkg/errhttp"
	"github.com/ghuser/atelier/pkg/httpx"
	appsvcs "github.com/ghuser/atelier/services/catalog/application/services"
	"github.com/ghuser/atelier/services/catalog/domain/models"
	domainsvcs "github.com/ghuser/atelier/services/catalog/domain/services"
)

// ProductResponse is the catalog view of one product.
type ProductResponse struct {
	ID               string         `json:"id"               example:"product-gold-ring"`
	Name             string         `json:"name"             example:"Gold Ring"`
	Description      string         `json:"description"      example:"Beautiful ring from our collection"`
	ImageURL         string         `json:"image_url"        example:"https://img.example.com/gold-ring.jpg"`
	AdditionalImages []string       `json:"additional_images,omitempty"`
	Price            int64          `json:"price"            example:"12500"`
	Category         string         `json:"category"         example:"ring"`
	Collection       string         `json:"collection,omitempty" example:"Aurora"`
	IsNew            bool           `json:"is_new"`
	SizeStock        map[string]int `json:"size_stock,omitempty"`
	Purchasable      bool           `json:"purchasable"`
} // @name ProductResponse

// CatalogResponse is returned by the catalog browse endpoint.
type CatalogResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total" example:"24"`
} // @name CatalogResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"product not found"`
} // @name ErrorResponse

// GetCatalogHandler handles GET /catalog requests.
type GetCatalogHandler struct {
	svc *appsvcs.Services
}

// NewGetCatalogHandler returns a GetCatalogHandler backed by the given services.
func NewGetCatalogHandler(svc *appsvcs.Services) *GetCatalogHandler {
	return &GetCatalogHandler{svc: svc}
}

// Execute lists the catalog filtered by category, collection and search text.
//
//	@Summary		Browse catalog
//	@Description	Lists products filtered by category, collection and free-text search
//	@Tags			catalog
//	@Produce		json
//	@Param			category	query		string	false	"Category filter; 'all' or empty passes everything, 'new' keeps new arrivals"
//	@Param			collection	query		string	false	"Collection filter"
//	@Param			q			query		string	false	"Free-text search across name, description, category and collection"
//	@Success		200			{object}	CatalogResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/catalog [get]
func (h *GetCatalogHandler) Execute(w http.ResponseWriter, r *http.Request) {
	spec := domainsvcs.FilterSpec{
		Category:   r.URL.Query().Get("category"),
		Collection: r.URL.Query().Get("collection"),
		Search:     r.URL.Query().Get("q"),
	}

	products, err := h.svc.Catalog.Browse(r.Context(), spec)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, CatalogResponse{
		Products: toProductResponses(products),
		Total:    len(products),
	})
}

func toProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		ImageURL:         p.ImageURL,
		AdditionalImages: p.AdditionalImages,
		Price:            p.Price,
		Category:         p.Category,
		Collection:       p.Collection,
		IsNew:            p.IsNew,
		SizeStock:        p.SizeStock,
		Purchasable:      p.Purchasable(),
	}
}

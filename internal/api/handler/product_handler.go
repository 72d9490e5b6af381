package handler

import (
	"net/http"
	"strconv"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/dto"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/response"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalogService service.ICatalogService
}

func NewProductHandler(catalogService service.ICatalogService) *ProductHandler {
	if catalogService == nil {
		panic("catalogService cannot be nil")
	}
	return &ProductHandler{
		catalogService: catalogService,
	}
}

// ListProducts GET /products?category=&search=
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	products, err := h.catalogService.ListProducts(r.Context(), service.ProductFilter{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.NewProductDTOs(products))
}

// GetProduct GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, errInvalidProductID.Error(), nil)
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.NewProductDTO(*product))
}

// ListCategories GET /categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.SuccessJSON(w, categories)
}

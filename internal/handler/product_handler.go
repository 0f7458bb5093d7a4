package handler

import (
	"net/http"

	"chowline/internal/model"
	"chowline/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product and category HTTP requests.
type ProductHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.CatalogService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/v1/products requests. Supports ?categories=a,b
// and ?featured=true filters.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	var categoryIDs []string
	if raw := r.URL.Query().Get("categories"); raw != "" {
		categoryIDs = splitCSV(raw)
	}
	featuredOnly := r.URL.Query().Get("featured") == "true"

	products, err := h.service.Products(r.Context(), categoryIDs, featuredOnly, true)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/v1/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	product, err := h.service.Product(r.Context(), id)
	if err != nil {
		if err == model.ErrProductNotFound {
			writeError(w, http.StatusNotFound, model.ErrCodeNotFound, "product not found", h.logger)
			return
		}
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/v1/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if !decodeJSON(w, r, &product, h.logger) {
		return
	}

	if err := h.service.CreateProduct(r.Context(), &product); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/v1/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var product model.Product
	if !decodeJSON(w, r, &product, h.logger) {
		return
	}
	product.ID = id

	if err := h.service.UpdateProduct(r.Context(), &product); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/v1/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"chowline/internal/model"
	"chowline/internal/service"

	"github.com/rs/zerolog"
)

// CategoryHandler handles category HTTP requests.
type CategoryHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CatalogService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// GetAll handles GET /api/v1/category requests.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// Create handles POST /api/v1/category requests.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var category model.Category
	if !decodeJSON(w, r, &category, h.logger) {
		return
	}

	if err := h.service.CreateCategory(r.Context(), &category); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// Update handles PUT /api/v1/category/{id} requests.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var category model.Category
	if !decodeJSON(w, r, &category, h.logger) {
		return
	}
	category.ID = id

	if err := h.service.UpdateCategory(r.Context(), &category); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /api/v1/category/{id} requests.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

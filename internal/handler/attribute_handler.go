package handler

import (
	"encoding/json"
	"net/http"

	"chowline/internal/model"
	"chowline/internal/service"

	"github.com/rs/zerolog"
)

// AttributeHandler handles size-variant HTTP requests.
type AttributeHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewAttributeHandler creates a new attribute handler.
func NewAttributeHandler(service service.CatalogService, logger zerolog.Logger) *AttributeHandler {
	return &AttributeHandler{
		service: service,
		logger:  logger.With().Str("handler", "attribute").Logger(),
	}
}

// GetAll handles GET /api/v1/attributes requests. Supports ?product={id}
// to scope the listing to one product's variants.
func (h *AttributeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if productID := r.URL.Query().Get("product"); productID != "" {
		attrs, err := h.service.AttributesByProduct(r.Context(), productID)
		if err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, attrs)
		return
	}

	attrs, err := h.service.Attributes(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, attrs)
}

// GetByID handles GET /api/v1/attributes/{id} requests.
func (h *AttributeHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	attr, err := h.service.Attribute(r.Context(), id)
	if err != nil {
		if err == model.ErrAttributeNotFound {
			writeError(w, http.StatusNotFound, model.ErrCodeNotFound, "attribute not found", h.logger)
			return
		}
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, attr)
}

// Create handles POST /api/v1/attributes requests. The body may be one
// attribute or an array of them.
func (h *AttributeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if !decodeJSON(w, r, &raw, h.logger) {
		return
	}

	if len(raw) > 0 && raw[0] == '[' {
		var attrs []model.Attribute
		if err := json.Unmarshal(raw, &attrs); err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
			return
		}
		if err := h.service.CreateAttributes(r.Context(), attrs); err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusCreated, attrs)
		return
	}

	var attr model.Attribute
	if err := json.Unmarshal(raw, &attr); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if err := h.service.CreateAttribute(r.Context(), &attr); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, attr)
}

// Update handles PUT /api/v1/attributes/{id} requests.
func (h *AttributeHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var attr model.Attribute
	if !decodeJSON(w, r, &attr, h.logger) {
		return
	}
	attr.ID = id

	if err := h.service.UpdateAttribute(r.Context(), &attr); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, attr)
}

// Delete handles DELETE /api/v1/attributes/{id} requests.
func (h *AttributeHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteAttribute(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

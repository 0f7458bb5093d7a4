package handler

import (
	"net/http"

	"chowline/internal/model"
	"chowline/internal/service"

	"github.com/rs/zerolog"
)

// RestaurantHandler handles branch HTTP requests.
type RestaurantHandler struct {
	service service.RestaurantService
	logger  zerolog.Logger
}

// NewRestaurantHandler creates a new restaurant handler.
func NewRestaurantHandler(service service.RestaurantService, logger zerolog.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		logger:  logger.With().Str("handler", "restaurant").Logger(),
	}
}

// GetAll handles GET /api/v1/restaurants requests. Inactive branches are
// included only with ?all=true.
func (h *RestaurantHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"

	restaurants, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, restaurants)
}

// GetByID handles GET /api/v1/restaurants/{id} requests.
func (h *RestaurantHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	restaurant, err := h.service.Get(r.Context(), id)
	if err != nil {
		if err == model.ErrRestaurantNotFound {
			writeError(w, http.StatusNotFound, model.ErrCodeNotFound, "restaurant not found", h.logger)
			return
		}
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, restaurant)
}

// Create handles POST /api/v1/restaurants requests.
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var restaurant model.Restaurant
	if !decodeJSON(w, r, &restaurant, h.logger) {
		return
	}

	if err := h.service.Create(r.Context(), &restaurant); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, restaurant)
}

// Update handles PUT /api/v1/restaurants/{id} requests.
func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var restaurant model.Restaurant
	if !decodeJSON(w, r, &restaurant, h.logger) {
		return
	}
	restaurant.ID = id

	if err := h.service.Update(r.Context(), &restaurant); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, restaurant)
}

// Delete handles DELETE /api/v1/restaurants/{id} requests.
func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Nearest handles POST /api/v1/restaurants/nearest requests.
func (h *RestaurantHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	var req model.NearestRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	nearest, err := h.service.Nearest(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, nearest)
}

package handler

import (
	"net/http"

	"chowline/internal/model"
	"chowline/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/v1/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetAll handles GET /api/v1/orders requests. Supports ?status= filtering.
func (h *OrderHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/v1/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// GetByUser handles GET /api/v1/orders/user/{id} requests.
func (h *OrderHandler) GetByUser(w http.ResponseWriter, r *http.Request, userID string) {
	orders, err := h.service.ListByUser(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/v1/orders/{id} requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, id string) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid order ID format", h.logger)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /api/v1/orders/{id} requests.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid order ID format", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), orderID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Sales handles GET /api/v1/orders/sales requests. Supports
// ?groupBy=day|week|month, defaulting to day.
func (h *OrderHandler) Sales(w http.ResponseWriter, r *http.Request) {
	groupBy := r.URL.Query().Get("groupBy")
	if groupBy == "" {
		groupBy = "day"
	}
	if groupBy != "day" && groupBy != "week" && groupBy != "month" {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "groupBy must be day, week or month", h.logger)
		return
	}

	buckets, err := h.service.SalesReport(r.Context(), groupBy)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, buckets)
}

// Profit handles GET /api/v1/orders/profit requests. An ?ids=a,b filter
// narrows the report; without it every order is included.
func (h *OrderHandler) Profit(w http.ResponseWriter, r *http.Request) {
	var ids []uuid.UUID
	if raw := r.URL.Query().Get("ids"); raw != "" {
		for _, s := range splitCSV(raw) {
			id, err := uuid.Parse(s)
			if err != nil {
				writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid order ID in ids filter", h.logger)
				return
			}
			ids = append(ids, id)
		}
	}

	profits, err := h.service.Profit(r.Context(), ids)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, profits)
}

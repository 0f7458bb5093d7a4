package handler

import (
	"net/http"

	"chowline/internal/middleware"
	"chowline/internal/model"
	"chowline/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles account and cart HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /api/v1/users/register requests.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/v1/users/login requests.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetAll handles GET /api/v1/users requests.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetByID handles GET /api/v1/users/{id} requests.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		if err == model.ErrUserNotFound {
			writeError(w, http.StatusNotFound, model.ErrCodeNotFound, "user not found", h.logger)
			return
		}
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// GetCart handles GET /api/v1/users/{id}/cart requests.
func (h *UserHandler) GetCart(w http.ResponseWriter, r *http.Request, userID string) {
	if !h.cartAccessAllowed(w, r, userID) {
		return
	}

	cart, err := h.service.Cart(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// AddCartItem handles POST /api/v1/users/{id}/cart requests.
func (h *UserHandler) AddCartItem(w http.ResponseWriter, r *http.Request, userID string) {
	if !h.cartAccessAllowed(w, r, userID) {
		return
	}

	var item model.CartItem
	if !decodeJSON(w, r, &item, h.logger) {
		return
	}

	cart, err := h.service.AddCartItem(r.Context(), userID, item)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, cart)
}

// UpdateCartItem handles PUT /api/v1/users/{id}/cart/{itemId} requests.
func (h *UserHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request, userID, itemID string) {
	if !h.cartAccessAllowed(w, r, userID) {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	cart, err := h.service.UpdateCartItem(r.Context(), userID, itemID, req.Quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// RemoveCartItem handles DELETE /api/v1/users/{id}/cart/{itemId} requests.
func (h *UserHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request, userID, itemID string) {
	if !h.cartAccessAllowed(w, r, userID) {
		return
	}

	cart, err := h.service.RemoveCartItem(r.Context(), userID, itemID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// ClearCart handles DELETE /api/v1/users/{id}/cart requests.
func (h *UserHandler) ClearCart(w http.ResponseWriter, r *http.Request, userID string) {
	if !h.cartAccessAllowed(w, r, userID) {
		return
	}

	if err := h.service.ClearCart(r.Context(), userID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// cartAccessAllowed enforces that a non-admin caller can only touch their
// own cart. The route table lets any authenticated identity through to
// cart paths; ownership is checked here where the path user is known.
func (h *UserHandler) cartAccessAllowed(w http.ResponseWriter, r *http.Request, userID string) bool {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "authentication required", h.logger)
		return false
	}
	if !claims.IsAdmin && claims.UserID != userID {
		writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "cannot access another user's cart", h.logger)
		return false
	}
	return true
}

package handler

import (
	"net/http"

	"chowline/internal/model"
	"chowline/internal/payment"
	"chowline/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentHandler handles payment-link and webhook HTTP requests.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// CreateLink handles POST /api/v1/payments requests.
func (h *PaymentHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID   string `json:"orderId"`
		ReturnURL string `json:"returnUrl"`
		CancelURL string `json:"cancelUrl"`
	}
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid order ID format", h.logger)
		return
	}

	link, err := h.service.CreateLink(r.Context(), orderID, req.ReturnURL, req.CancelURL)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

// LinkInfo handles GET /api/v1/payments/{id} requests.
func (h *PaymentHandler) LinkInfo(w http.ResponseWriter, r *http.Request, id string) {
	link, err := h.service.LinkInfo(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, link)
}

// CancelLink handles PUT /api/v1/payments/{id}/cancel requests.
func (h *PaymentHandler) CancelLink(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Reason string `json:"cancellationReason"`
	}
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	link, err := h.service.CancelLink(r.Context(), id, req.Reason)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, link)
}

// Webhook handles POST /api/v1/payments/webhook requests from the payment
// gateway. The response body mirrors the gateway's success envelope.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var payload payment.WebhookPayload
	if !decodeJSON(w, r, &payload, h.logger) {
		return
	}

	if err := h.service.HandleWebhook(r.Context(), payload); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

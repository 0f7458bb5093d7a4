package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"chowline/internal/model"
	"chowline/internal/payment"
	"chowline/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// paymentService implements PaymentService.
type paymentService struct {
	gateway         payment.Gateway
	verifier        *payment.Verifier
	orderRepo       repository.OrderRepository
	transactionRepo repository.TransactionRepository
	logger          zerolog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	gateway payment.Gateway,
	verifier *payment.Verifier,
	orderRepo repository.OrderRepository,
	transactionRepo repository.TransactionRepository,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		gateway:         gateway,
		verifier:        verifier,
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		logger:          logger.With().Str("service", "payment").Logger(),
	}
}

// CreateLink requests a checkout link for an order and records the
// gateway order code on it. Order codes are derived from the current
// clock; the gateway requires them unique per merchant, not sequential.
func (s *paymentService) CreateLink(ctx context.Context, orderID uuid.UUID, returnURL, cancelURL string) (*payment.PaymentLink, error) {
	order, _, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.Status != model.OrderStatusPending {
		return nil, model.NewDomainError(model.ErrCodeConflict, "Order is not awaiting payment")
	}

	orderCode := order.OrderCode
	if orderCode == 0 {
		orderCode = time.Now().UnixMilli()
	}

	link, err := s.gateway.CreatePaymentLink(ctx, payment.CreateLinkRequest{
		OrderCode:   orderCode,
		Amount:      int64(math.Round(order.TotalPrice)),
		Description: fmt.Sprintf("Order %s", shortOrderRef(orderID)),
		ReturnURL:   returnURL,
		CancelURL:   cancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}

	if order.OrderCode == 0 {
		if err := s.orderRepo.SetOrderCode(ctx, orderID, orderCode); err != nil {
			return nil, fmt.Errorf("failed to record order code: %w", err)
		}
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Int64("order_code", orderCode).
		Msg("payment link created")

	return link, nil
}

// LinkInfo fetches the state of a payment link.
func (s *paymentService) LinkInfo(ctx context.Context, id string) (*payment.PaymentLink, error) {
	return s.gateway.GetPaymentLinkInformation(ctx, id)
}

// CancelLink cancels a pending payment link.
func (s *paymentService) CancelLink(ctx context.Context, id, reason string) (*payment.PaymentLink, error) {
	return s.gateway.CancelPaymentLink(ctx, id, reason)
}

// HandleWebhook verifies the payload signature, records the reported bank
// transaction and settles the order the payload references. An invalid
// signature is Unauthorised; a payload for an unknown order code is
// accepted silently so the gateway's connectivity probe passes.
func (s *paymentService) HandleWebhook(ctx context.Context, payload payment.WebhookPayload) error {
	if !s.verifier.Verify(payload) {
		s.logger.Warn().Str("code", payload.Code).Msg("webhook signature mismatch")
		return model.NewDomainError(model.ErrCodeUnauthorised, "Invalid webhook signature")
	}

	orderCode := asInt64(payload.Data["orderCode"])
	if orderCode == 0 {
		return model.NewDomainError(model.ErrCodeValidation, "Webhook payload missing orderCode")
	}

	order, err := s.orderRepo.GetByOrderCode(ctx, orderCode)
	if err != nil {
		return fmt.Errorf("failed to look up order: %w", err)
	}
	if order == nil {
		s.logger.Info().Int64("order_code", orderCode).Msg("webhook for unknown order code ignored")
		return nil
	}

	txn := transactionFromWebhook(order, orderCode, payload.Data)
	if err := s.transactionRepo.Create(ctx, txn); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	status := model.OrderStatusCancel
	if payload.Success && payload.Code == "00" {
		status = model.OrderStatusSuccess
	}
	if _, err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return fmt.Errorf("failed to settle order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int64("order_code", orderCode).
		Str("status", status).
		Msg("webhook processed")

	return nil
}

// transactionFromWebhook maps the gateway's loosely typed data section to
// a transaction record.
func transactionFromWebhook(order *model.Order, orderCode int64, data map[string]interface{}) *model.Transaction {
	txn := &model.Transaction{
		ID:                   uuid.NewString(),
		OrderID:              order.ID,
		OrderCode:            orderCode,
		Reference:            asString(data["reference"]),
		AccountNumber:        asString(data["accountNumber"]),
		Amount:               asFloat64(data["amount"]),
		CounterAccountBankID: asString(data["counterAccountBankId"]),
		CounterAccountName:   asString(data["counterAccountName"]),
		CounterAccountNumber: asString(data["counterAccountNumber"]),
		Description:          asString(data["description"]),
		TransactionDateTime:  time.Now(),
	}

	if raw := asString(data["transactionDateTime"]); raw != "" {
		if t, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
			txn.TransactionDateTime = t
		} else if t, err := time.Parse(time.RFC3339, raw); err == nil {
			txn.TransactionDateTime = t
		}
	}

	return txn
}

func shortOrderRef(id uuid.UUID) string {
	s := id.String()
	return s[:8]
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

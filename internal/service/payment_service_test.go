package service

import (
	"context"
	"testing"

	"chowline/internal/model"
	"chowline/internal/payment"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGateway is a mock implementation of payment.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreatePaymentLink(ctx context.Context, req payment.CreateLinkRequest) (*payment.PaymentLink, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentLink), args.Error(1)
}

func (m *MockGateway) GetPaymentLinkInformation(ctx context.Context, id string) (*payment.PaymentLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentLink), args.Error(1)
}

func (m *MockGateway) CancelPaymentLink(ctx context.Context, id, reason string) (*payment.PaymentLink, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentLink), args.Error(1)
}

const testChecksumKey = "test-checksum-key"

func newPaymentServiceForTest() (PaymentService, *MockGateway, *MockOrderRepository, *MockTransactionRepository) {
	gateway := new(MockGateway)
	orderRepo := new(MockOrderRepository)
	transactionRepo := new(MockTransactionRepository)

	svc := NewPaymentService(gateway, payment.NewVerifier(testChecksumKey), orderRepo, transactionRepo, zerolog.Nop())
	return svc, gateway, orderRepo, transactionRepo
}

func signedWebhook(data map[string]interface{}) payment.WebhookPayload {
	return payment.WebhookPayload{
		Code:      "00",
		Desc:      "success",
		Success:   true,
		Data:      data,
		Signature: payment.Sign(data, testChecksumKey),
	}
}

func TestPaymentService_CreateLink(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	svc, gateway, orderRepo, _ := newPaymentServiceForTest()

	order := &model.Order{ID: orderID, Status: model.OrderStatusPending, TotalPrice: 150000}
	orderRepo.On("GetByID", ctx, orderID).Return(order, []model.OrderItem{}, nil)
	orderRepo.On("SetOrderCode", ctx, orderID, mock.AnythingOfType("int64")).Return(nil)
	gateway.On("CreatePaymentLink", ctx, mock.MatchedBy(func(req payment.CreateLinkRequest) bool {
		return req.Amount == 150000 && req.OrderCode != 0
	})).Return(&payment.PaymentLink{ID: "link-1", CheckoutURL: "https://pay/link-1"}, nil)

	link, err := svc.CreateLink(ctx, orderID, "https://ret", "https://cancel")

	require.NoError(t, err)
	assert.Equal(t, "link-1", link.ID)
	orderRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestPaymentService_CreateLink_OrderNotPending(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	svc, gateway, orderRepo, _ := newPaymentServiceForTest()

	order := &model.Order{ID: orderID, Status: model.OrderStatusSuccess, TotalPrice: 150000}
	orderRepo.On("GetByID", ctx, orderID).Return(order, []model.OrderItem{}, nil)

	link, err := svc.CreateLink(ctx, orderID, "https://ret", "https://cancel")

	require.Error(t, err)
	assert.Nil(t, link)
	gateway.AssertNotCalled(t, "CreatePaymentLink")
}

func TestPaymentService_HandleWebhook_SettlesOrder(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	svc, _, orderRepo, transactionRepo := newPaymentServiceForTest()

	data := map[string]interface{}{
		"orderCode":     float64(1234),
		"amount":        float64(150000),
		"reference":     "FT-1",
		"accountNumber": "0001",
		"description":   "order payment",
	}
	payload := signedWebhook(data)

	order := &model.Order{ID: orderID, Status: model.OrderStatusPending, OrderCode: 1234}
	orderRepo.On("GetByOrderCode", ctx, int64(1234)).Return(order, nil)
	transactionRepo.On("Create", ctx, mock.MatchedBy(func(txn *model.Transaction) bool {
		return txn.OrderID == orderID && txn.OrderCode == 1234 && txn.Amount == 150000 && txn.Reference == "FT-1"
	})).Return(nil)
	orderRepo.On("UpdateStatus", ctx, orderID, model.OrderStatusSuccess).
		Return(&model.Order{ID: orderID, Status: model.OrderStatusSuccess}, nil)

	err := svc.HandleWebhook(ctx, payload)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	transactionRepo.AssertExpectations(t)
}

func TestPaymentService_HandleWebhook_FailureCodeCancelsOrder(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	svc, _, orderRepo, transactionRepo := newPaymentServiceForTest()

	data := map[string]interface{}{
		"orderCode": float64(55),
		"amount":    float64(90000),
	}
	payload := signedWebhook(data)
	payload.Code = "01"
	payload.Success = false

	order := &model.Order{ID: orderID, Status: model.OrderStatusPending, OrderCode: 55}
	orderRepo.On("GetByOrderCode", ctx, int64(55)).Return(order, nil)
	transactionRepo.On("Create", ctx, mock.AnythingOfType("*model.Transaction")).Return(nil)
	orderRepo.On("UpdateStatus", ctx, orderID, model.OrderStatusCancel).
		Return(&model.Order{ID: orderID, Status: model.OrderStatusCancel}, nil)

	err := svc.HandleWebhook(ctx, payload)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestPaymentService_HandleWebhook_BadSignature(t *testing.T) {
	ctx := context.Background()

	svc, _, orderRepo, transactionRepo := newPaymentServiceForTest()

	data := map[string]interface{}{"orderCode": float64(1)}
	payload := payment.WebhookPayload{
		Code:      "00",
		Success:   true,
		Data:      data,
		Signature: "0000000000000000000000000000000000000000000000000000000000000000",
	}

	err := svc.HandleWebhook(ctx, payload)

	require.Error(t, err)
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeUnauthorised, domainErr.Code)

	orderRepo.AssertNotCalled(t, "GetByOrderCode")
	transactionRepo.AssertNotCalled(t, "Create")
}

func TestPaymentService_HandleWebhook_TamperedDataRejected(t *testing.T) {
	ctx := context.Background()

	svc, _, orderRepo, _ := newPaymentServiceForTest()

	data := map[string]interface{}{
		"orderCode": float64(9),
		"amount":    float64(100),
	}
	payload := signedWebhook(data)
	payload.Data["amount"] = float64(1) // mutate after signing

	err := svc.HandleWebhook(ctx, payload)

	require.Error(t, err)
	orderRepo.AssertNotCalled(t, "GetByOrderCode")
}

func TestPaymentService_HandleWebhook_UnknownOrderCodeIgnored(t *testing.T) {
	ctx := context.Background()

	svc, _, orderRepo, transactionRepo := newPaymentServiceForTest()

	data := map[string]interface{}{"orderCode": float64(404)}
	payload := signedWebhook(data)

	orderRepo.On("GetByOrderCode", ctx, int64(404)).Return(nil, nil)

	err := svc.HandleWebhook(ctx, payload)

	require.NoError(t, err)
	transactionRepo.AssertNotCalled(t, "Create")
	orderRepo.AssertNotCalled(t, "UpdateStatus")
}

package payment

import (
	"context"
	"fmt"

	"chowline/internal/config"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Gateway is the outbound contract with the payment provider. The provider
// itself is an external collaborator; this client only shapes requests,
// signs them, and decodes responses.
type Gateway interface {
	// CreatePaymentLink requests a hosted checkout link for an order.
	CreatePaymentLink(ctx context.Context, req CreateLinkRequest) (*PaymentLink, error)

	// GetPaymentLinkInformation fetches the current state of a payment link.
	GetPaymentLinkInformation(ctx context.Context, id string) (*PaymentLink, error)

	// CancelPaymentLink cancels a pending payment link.
	CancelPaymentLink(ctx context.Context, id, reason string) (*PaymentLink, error)
}

// CreateLinkRequest is the payload for creating a payment link.
type CreateLinkRequest struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReturnURL   string `json:"returnUrl"`
	CancelURL   string `json:"cancelUrl"`
	Signature   string `json:"signature,omitempty"`
}

// PaymentLink is the gateway's representation of a checkout link.
type PaymentLink struct {
	ID            string `json:"id"`
	OrderCode     int64  `json:"orderCode"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	CheckoutURL   string `json:"checkoutUrl"`
	QRCode        string `json:"qrCode,omitempty"`
	PaymentLinkID string `json:"paymentLinkId,omitempty"`
}

// envelope is the gateway's response wrapper.
type envelope struct {
	Code string       `json:"code"`
	Desc string       `json:"desc"`
	Data *PaymentLink `json:"data"`
}

// client implements Gateway over the provider's REST API.
type client struct {
	http        *resty.Client
	checksumKey string
	logger      zerolog.Logger
}

// NewClient creates a payment gateway client from configuration.
func NewClient(cfg config.PaymentConfig, logger zerolog.Logger) Gateway {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("x-client-id", cfg.ClientID).
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	if cfg.PartnerCode != "" {
		httpClient.SetHeader("x-partner-code", cfg.PartnerCode)
	}

	return &client{
		http:        httpClient,
		checksumKey: cfg.ChecksumKey,
		logger:      logger.With().Str("component", "payment-gateway").Logger(),
	}
}

// CreatePaymentLink requests a hosted checkout link, signing the request
// over the canonicalized amount/cancelUrl/description/orderCode/returnUrl
// fields with the checksum key.
func (c *client) CreatePaymentLink(ctx context.Context, req CreateLinkRequest) (*PaymentLink, error) {
	req.Signature = Sign(map[string]interface{}{
		"amount":      float64(req.Amount),
		"cancelUrl":   req.CancelURL,
		"description": req.Description,
		"orderCode":   float64(req.OrderCode),
		"returnUrl":   req.ReturnURL,
	}, c.checksumKey)

	var out envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/v2/payment-requests")
	if err != nil {
		c.logger.Error().Err(err).Int64("order_code", req.OrderCode).Msg("create payment link failed")
		return nil, fmt.Errorf("create payment link: %w", err)
	}

	return c.unwrap(resp, &out)
}

// GetPaymentLinkInformation fetches the current state of a payment link.
func (c *client) GetPaymentLinkInformation(ctx context.Context, id string) (*PaymentLink, error) {
	var out envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/v2/payment-requests/" + id)
	if err != nil {
		c.logger.Error().Err(err).Str("link_id", id).Msg("get payment link failed")
		return nil, fmt.Errorf("get payment link: %w", err)
	}

	return c.unwrap(resp, &out)
}

// CancelPaymentLink cancels a pending payment link.
func (c *client) CancelPaymentLink(ctx context.Context, id, reason string) (*PaymentLink, error) {
	var out envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"cancellationReason": reason}).
		SetResult(&out).
		Post("/v2/payment-requests/" + id + "/cancel")
	if err != nil {
		c.logger.Error().Err(err).Str("link_id", id).Msg("cancel payment link failed")
		return nil, fmt.Errorf("cancel payment link: %w", err)
	}

	return c.unwrap(resp, &out)
}

func (c *client) unwrap(resp *resty.Response, out *envelope) (*PaymentLink, error) {
	if resp.IsError() {
		return nil, fmt.Errorf("payment gateway returned %s: %s", resp.Status(), resp.String())
	}
	if out.Data == nil {
		return nil, fmt.Errorf("payment gateway error %s: %s", out.Code, out.Desc)
	}
	return out.Data, nil
}

package service

import (
	"context"

	"chowline/internal/model"
	"chowline/internal/payment"

	"github.com/google/uuid"
)

// OrderService defines operations for order management, including the
// pricing pipeline that turns a cart into a persisted order.
type OrderService interface {
	// CreateOrder validates every reference in the request, prices each
	// line, and persists the order with its items in one transaction.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order with its lines, attributes and products
	// populated.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// List retrieves orders, optionally filtered by status.
	List(ctx context.Context, status string) ([]model.Order, error)

	// ListByUser retrieves a user's orders, optionally filtered by status.
	ListByUser(ctx context.Context, userID, status string) ([]model.Order, error)

	// UpdateStatus sets an order's status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)

	// Delete removes an order and its items.
	Delete(ctx context.Context, id uuid.UUID) error

	// SalesReport aggregates Success orders by day, week or month.
	SalesReport(ctx context.Context, groupBy string) ([]model.SalesBucket, error)

	// Profit computes per-order profit; an empty id list means all orders.
	Profit(ctx context.Context, ids []uuid.UUID) ([]model.OrderProfit, error)
}

// CatalogService defines operations over products, attributes and
// categories.
type CatalogService interface {
	Products(ctx context.Context, categoryIDs []string, featuredOnly, activeOnly bool) ([]model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, p *model.Product) error
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id string) error

	Attributes(ctx context.Context) ([]model.Attribute, error)
	Attribute(ctx context.Context, id string) (*model.Attribute, error)
	AttributesByProduct(ctx context.Context, productID string) ([]model.Attribute, error)
	CreateAttribute(ctx context.Context, a *model.Attribute) error
	CreateAttributes(ctx context.Context, attrs []model.Attribute) error
	UpdateAttribute(ctx context.Context, a *model.Attribute) error
	DeleteAttribute(ctx context.Context, id string) error

	Categories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) error
	UpdateCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// UserService defines account and embedded-cart operations.
type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)

	Cart(ctx context.Context, userID string) ([]model.CartItem, error)
	AddCartItem(ctx context.Context, userID string, item model.CartItem) ([]model.CartItem, error)
	UpdateCartItem(ctx context.Context, userID, itemID string, quantity int) ([]model.CartItem, error)
	RemoveCartItem(ctx context.Context, userID, itemID string) ([]model.CartItem, error)
	ClearCart(ctx context.Context, userID string) error
}

// RestaurantService defines branch operations.
type RestaurantService interface {
	List(ctx context.Context, activeOnly bool) ([]model.Restaurant, error)
	Get(ctx context.Context, id string) (*model.Restaurant, error)
	Create(ctx context.Context, r *model.Restaurant) error
	Update(ctx context.Context, r *model.Restaurant) error
	Delete(ctx context.Context, id string) error
	Nearest(ctx context.Context, req model.NearestRequest) ([]model.NearestRestaurant, error)
}

// PaymentService ties the payment gateway to order state.
type PaymentService interface {
	// CreateLink requests a checkout link for an order and records the
	// gateway order code on it.
	CreateLink(ctx context.Context, orderID uuid.UUID, returnURL, cancelURL string) (*payment.PaymentLink, error)

	// LinkInfo fetches the state of a payment link.
	LinkInfo(ctx context.Context, id string) (*payment.PaymentLink, error)

	// CancelLink cancels a pending payment link.
	CancelLink(ctx context.Context, id, reason string) (*payment.PaymentLink, error)

	// HandleWebhook verifies a webhook payload, records the transaction
	// and settles the order it references.
	HandleWebhook(ctx context.Context, payload payment.WebhookPayload) error
}

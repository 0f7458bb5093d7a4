package repository

import (
	"context"

	"chowline/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves products, optionally filtered by category ids and
	// restricted to featured/active ones.
	GetAll(ctx context.Context, categoryIDs []string, featuredOnly, activeOnly bool) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products keyed by ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update replaces the mutable fields of a product.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id string) error
}

// AttributeRepository defines the interface for attribute (size/price
// variant) data access operations.
type AttributeRepository interface {
	// GetAll retrieves all attributes.
	GetAll(ctx context.Context) ([]model.Attribute, error)

	// GetByID retrieves a single attribute by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.Attribute, error)

	// GetByIDs retrieves multiple attributes keyed by ID. Missing ids are
	// simply absent from the result map.
	GetByIDs(ctx context.Context, ids []string) (map[string]model.Attribute, error)

	// GetByProduct retrieves the attributes of one product.
	GetByProduct(ctx context.Context, productID string) ([]model.Attribute, error)

	// Create inserts a new attribute.
	Create(ctx context.Context, a *model.Attribute) error

	// CreateMany inserts several attributes at once.
	CreateMany(ctx context.Context, attrs []model.Attribute) error

	// Update replaces the mutable fields of an attribute.
	Update(ctx context.Context, a *model.Attribute) error

	// Delete removes an attribute.
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository defines the interface for order data access operations.
// Order creation is transactional: the caller validates references first,
// then writes the order and all its items inside one transaction.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// List retrieves orders, optionally filtered by status, newest first.
	List(ctx context.Context, status string) ([]model.Order, error)

	// ListByUser retrieves a user's orders, optionally filtered by status.
	ListByUser(ctx context.Context, userID, status string) ([]model.Order, error)

	// GetItems retrieves the items of one order.
	GetItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)

	// UpdateStatus sets the status of an order. Returns the updated order,
	// or nil when the order does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)

	// SetOrderCode attaches the payment-gateway order code to an order.
	SetOrderCode(ctx context.Context, id uuid.UUID, orderCode int64) error

	// GetByOrderCode retrieves the order carrying a payment order code.
	GetByOrderCode(ctx context.Context, orderCode int64) (*model.Order, error)

	// Delete removes an order and its items. Reports whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// SalesReport aggregates Success orders into day/week/month buckets.
	SalesReport(ctx context.Context, groupBy string) ([]model.SalesBucket, error)

	// ProfitByIDs computes per-order profit for the given ids; an empty id
	// list means all orders.
	ProfitByIDs(ctx context.Context, ids []uuid.UUID) ([]model.OrderProfit, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// GetByID retrieves a user by ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List retrieves all users.
	List(ctx context.Context) ([]model.User, error)

	// Create inserts a new user.
	Create(ctx context.Context, u *model.User) error

	// UpdateCart atomically replaces a user's embedded cart. Reports
	// whether the user existed.
	UpdateCart(ctx context.Context, userID string, cart []model.CartItem) (bool, error)
}

// RestaurantRepository defines the interface for restaurant data access.
type RestaurantRepository interface {
	// GetAll retrieves restaurants, optionally only active ones.
	GetAll(ctx context.Context, activeOnly bool) ([]model.Restaurant, error)

	// GetByID retrieves a restaurant by ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.Restaurant, error)

	// Create inserts a new restaurant.
	Create(ctx context.Context, r *model.Restaurant) error

	// Update replaces the mutable fields of a restaurant.
	Update(ctx context.Context, r *model.Restaurant) error

	// Delete removes a restaurant.
	Delete(ctx context.Context, id string) error

	// Nearest retrieves the closest active restaurants to a point.
	Nearest(ctx context.Context, lat, lng float64, limit int) ([]model.NearestRestaurant, error)
}

// TransactionRepository records bank transactions reported by the payment
// gateway webhook.
type TransactionRepository interface {
	// Create inserts a transaction record.
	Create(ctx context.Context, t *model.Transaction) error

	// ListByOrder retrieves the transactions attached to an order.
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Transaction, error)
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Status is free text on the wire with Pending as the
// default; these are the values the backend itself writes.
const (
	OrderStatusPending = "Pending"
	OrderStatusSuccess = "Success"
	OrderStatusCancel  = "Cancel"
)

// Accepted payment methods.
var PaymentMethods = []string{"Credit Card", "PayPal", "Bank Transfer", "Cash"}

// ValidPaymentMethod reports whether method is one of the accepted values.
func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Order is the persisted purchase aggregate. TotalPrice and TotalCost are
// always recomputed by the pricing pipeline, never taken from the caller.
type Order struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ShippingAddress string    `json:"shippingAddress" db:"shipping_address"`
	Status          string    `json:"status" db:"status"`
	PaymentMethod   string    `json:"paymentMethod" db:"payment_method"`
	TotalPrice      float64   `json:"totalPrice" db:"total_price"`
	TotalCost       float64   `json:"totalCost" db:"total_cost"`
	UserID          string    `json:"user" db:"user_id"`
	RestaurantID    string    `json:"restaurant" db:"restaurant_id"`
	TransactionID   string    `json:"transactionId" db:"transaction_id"`
	OrderCode       int64     `json:"orderCode,omitempty" db:"order_code"`
	DateOrdered     time.Time `json:"dateOrdered" db:"date_ordered"`
}

// OrderItem is one line of an order. Attributes are captured by reference
// and the owning product is denormalised at creation time. Lines are
// immutable once the order exists.
type OrderItem struct {
	ID           uuid.UUID `json:"id" db:"id"`
	OrderID      uuid.UUID `json:"-" db:"order_id"`
	Quantity     int       `json:"quantity" db:"quantity"`
	Excluded     []string  `json:"excluded" db:"excluded"`
	Drink        string    `json:"drink" db:"drink"`
	AttributeIDs []string  `json:"attribute" db:"attribute_ids"`
	ProductID    string    `json:"product" db:"product_id"`
}

// OrderRequest is the payload for POST /api/v1/orders.
type OrderRequest struct {
	OrderItems      []OrderItemRequest `json:"orderItems"`
	ShippingAddress string             `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	Restaurant      string             `json:"restaurant"`
	UserID          string             `json:"userId"`
	Status          string             `json:"status,omitempty"`
}

// OrderItemRequest is a single line in an order request.
type OrderItemRequest struct {
	Quantity int           `json:"quantity"`
	Excluded []string      `json:"excluded,omitempty"`
	Drink    string        `json:"drink,omitempty"`
	Attrs    AttributeRefs `json:"attribute,omitempty"`
	Product  string        `json:"product,omitempty"`
}

// OrderLineDetail is an order item with its resolved attribute and product
// records, used in order read responses.
type OrderLineDetail struct {
	OrderItem
	Attributes []Attribute `json:"attributes"`
	ProductRef *Product    `json:"productDetail,omitempty"`
}

// OrderResponse is an order together with its populated lines.
type OrderResponse struct {
	Order
	Items []OrderLineDetail `json:"orderItems"`
}

// SalesBucket is one row of the aggregated sales report.
type SalesBucket struct {
	Period     string  `json:"period"`
	TotalSales float64 `json:"totalSales"`
	TotalCost  float64 `json:"totalCost"`
	Profit     float64 `json:"profit"`
}

// OrderProfit is the per-order profit breakdown.
type OrderProfit struct {
	OrderID    uuid.UUID `json:"orderId"`
	TotalPrice float64   `json:"totalPrice"`
	TotalCost  float64   `json:"totalCost"`
	Profit     float64   `json:"profit"`
}

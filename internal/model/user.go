package model

import "time"

// User is a customer or administrator account. The cart lives on the user
// record as an embedded document, mirroring how the mobile clients sync it.
type User struct {
	ID           string     `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Phone        string     `json:"phone" db:"phone"`
	IsAdmin      bool       `json:"isAdmin" db:"is_admin"`
	IsVerified   bool       `json:"isVerified" db:"is_verified"`
	IsActive     bool       `json:"isActive" db:"is_active"`
	Cart         []CartItem `json:"cart" db:"cart"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// CartItem is one entry of a user's embedded cart. It has the same shape as
// an order line so checkout can forward the cart as-is.
type CartItem struct {
	ID           string   `json:"id"`
	Quantity     int      `json:"quantity"`
	Excluded     []string `json:"excluded,omitempty"`
	Drink        string   `json:"drink,omitempty"`
	AttributeIDs []string `json:"attribute"`
	ProductID    string   `json:"product,omitempty"`
}

// RegisterRequest is the payload for POST /api/v1/users/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest is the payload for POST /api/v1/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed access token for an authenticated user.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

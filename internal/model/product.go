package model

import "time"

// Product represents a menu product in the catalogue. A product's price is
// optional; sized products carry their prices on attributes instead, and a
// missing price always deserialises to 0, never to NaN.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Image       string    `json:"image" db:"image"`
	CategoryID  string    `json:"category" db:"category_id"`
	Price       float64   `json:"price" db:"price"`
	Cost        float64   `json:"defaultPrice" db:"cost"`
	IsFeatured  bool      `json:"isFeatured" db:"is_featured"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"dateCreated" db:"created_at"`
}

// Category groups products on the menu.
type Category struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Icon  string `json:"icon" db:"icon"`
	Color string `json:"color" db:"color"`
}

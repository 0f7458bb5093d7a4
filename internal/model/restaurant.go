package model

import "time"

// Restaurant is a branch that fulfils orders.
type Restaurant struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Image     string    `json:"image" db:"image"`
	Address   string    `json:"address" db:"address"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// NearestRequest is the payload for the nearest-branch lookup.
type NearestRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NearestRestaurant is a restaurant with its distance from the caller in
// kilometres.
type NearestRestaurant struct {
	Restaurant
	DistanceKm float64 `json:"distanceKm"`
}

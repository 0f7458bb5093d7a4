package repository

import (
	"context"
	"fmt"

	"chowline/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type restaurantRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRestaurantRepository creates a new PostgreSQL-backed restaurant repository.
func NewRestaurantRepository(pool *pgxpool.Pool, logger zerolog.Logger) RestaurantRepository {
	return &restaurantRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "restaurant").Logger(),
	}
}

const restaurantColumns = `id, name, image, address, latitude, longitude, is_active, created_at`

// GetAll retrieves restaurants, optionally only active ones.
func (r *restaurantRepository) GetAll(ctx context.Context, activeOnly bool) ([]model.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query restaurants")
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []model.Restaurant
	for rows.Next() {
		var rest model.Restaurant
		err := rows.Scan(&rest.ID, &rest.Name, &rest.Image, &rest.Address,
			&rest.Latitude, &rest.Longitude, &rest.IsActive, &rest.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, rest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}

	return restaurants, nil
}

// GetByID retrieves a restaurant by ID.
func (r *restaurantRepository) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	var rest model.Restaurant
	err := r.pool.QueryRow(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id).Scan(
		&rest.ID, &rest.Name, &rest.Image, &rest.Address,
		&rest.Latitude, &rest.Longitude, &rest.IsActive, &rest.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("restaurant_id", id).Msg("failed to query restaurant")
		return nil, fmt.Errorf("failed to query restaurant: %w", err)
	}

	return &rest, nil
}

// Create inserts a new restaurant.
func (r *restaurantRepository) Create(ctx context.Context, rest *model.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name, image, address, latitude, longitude, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		rest.ID, rest.Name, rest.Image, rest.Address,
		rest.Latitude, rest.Longitude, rest.IsActive, rest.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", rest.ID).Msg("failed to create restaurant")
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	return nil
}

// Update replaces the mutable fields of a restaurant.
func (r *restaurantRepository) Update(ctx context.Context, rest *model.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $2, image = $3, address = $4, latitude = $5, longitude = $6, is_active = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		rest.ID, rest.Name, rest.Image, rest.Address,
		rest.Latitude, rest.Longitude, rest.IsActive,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", rest.ID).Msg("failed to update restaurant")
		return fmt.Errorf("failed to update restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRestaurantNotFound
	}

	return nil
}

// Delete removes a restaurant.
func (r *restaurantRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", id).Msg("failed to delete restaurant")
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRestaurantNotFound
	}

	return nil
}

// Nearest retrieves the closest active restaurants to a point using the
// haversine distance over the stored coordinates.
func (r *restaurantRepository) Nearest(ctx context.Context, lat, lng float64, limit int) ([]model.NearestRestaurant, error) {
	if limit < 1 {
		limit = 1
	}

	query := `
		SELECT ` + restaurantColumns + `,
		       6371 * 2 * asin(sqrt(
		           power(sin(radians(latitude - $1) / 2), 2) +
		           cos(radians($1)) * cos(radians(latitude)) *
		           power(sin(radians(longitude - $2) / 2), 2)
		       )) AS distance_km
		FROM restaurants
		WHERE is_active
		ORDER BY distance_km
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, lat, lng, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query nearest restaurants")
		return nil, fmt.Errorf("failed to query nearest restaurants: %w", err)
	}
	defer rows.Close()

	var nearest []model.NearestRestaurant
	for rows.Next() {
		var n model.NearestRestaurant
		err := rows.Scan(&n.ID, &n.Name, &n.Image, &n.Address,
			&n.Latitude, &n.Longitude, &n.IsActive, &n.CreatedAt, &n.DistanceKm)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nearest restaurant: %w", err)
		}
		nearest = append(nearest, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nearest restaurants: %w", err)
	}

	return nearest, nil
}

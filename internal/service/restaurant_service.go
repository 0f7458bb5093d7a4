package service

import (
	"context"
	"fmt"
	"strings"

	"chowline/internal/model"
	"chowline/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// nearestLimit caps how many branches a nearest lookup returns.
const nearestLimit = 5

// restaurantService implements RestaurantService.
type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
	logger         zerolog.Logger
}

// NewRestaurantService creates a new restaurant service.
func NewRestaurantService(restaurantRepo repository.RestaurantRepository, logger zerolog.Logger) RestaurantService {
	return &restaurantService{
		restaurantRepo: restaurantRepo,
		logger:         logger.With().Str("service", "restaurant").Logger(),
	}
}

func (s *restaurantService) List(ctx context.Context, activeOnly bool) ([]model.Restaurant, error) {
	restaurants, err := s.restaurantRepo.GetAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return restaurants, nil
}

func (s *restaurantService) Get(ctx context.Context, id string) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, model.ErrRestaurantNotFound
	}
	return restaurant, nil
}

func (s *restaurantService) Create(ctx context.Context, r *model.Restaurant) error {
	if err := validateRestaurant(r); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if err := s.restaurantRepo.Create(ctx, r); err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	s.logger.Info().Str("restaurant_id", r.ID).Str("name", r.Name).Msg("restaurant created")
	return nil
}

func (s *restaurantService) Update(ctx context.Context, r *model.Restaurant) error {
	if err := validateRestaurant(r); err != nil {
		return err
	}
	if err := s.restaurantRepo.Update(ctx, r); err != nil {
		return fmt.Errorf("failed to update restaurant: %w", err)
	}
	return nil
}

func (s *restaurantService) Delete(ctx context.Context, id string) error {
	if err := s.restaurantRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	s.logger.Info().Str("restaurant_id", id).Msg("restaurant deleted")
	return nil
}

// Nearest returns active branches ordered by distance from the caller.
func (s *restaurantService) Nearest(ctx context.Context, req model.NearestRequest) ([]model.NearestRestaurant, error) {
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Coordinates out of range")
	}

	nearest, err := s.restaurantRepo.Nearest(ctx, req.Latitude, req.Longitude, nearestLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find nearest restaurants: %w", err)
	}
	return nearest, nil
}

func validateRestaurant(r *model.Restaurant) error {
	if r == nil || strings.TrimSpace(r.Name) == "" {
		return model.NewDomainError(model.ErrCodeValidation, "Restaurant name is required")
	}
	if r.Latitude < -90 || r.Latitude > 90 || r.Longitude < -180 || r.Longitude > 180 {
		return model.NewDomainError(model.ErrCodeValidation, "Coordinates out of range")
	}
	return nil
}

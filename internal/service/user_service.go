package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chowline/internal/auth"
	"chowline/internal/model"
	"chowline/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	issuer   *auth.Issuer
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, issuer *auth.Issuer, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		issuer:   issuer,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Register creates an account with a bcrypt-hashed password.
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := validateRegister(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		IsAdmin:      false,
		IsActive:     true,
		Cart:         []model.CartItem{},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login verifies credentials and returns the user with a signed token.
// A wrong password and an unknown email fail identically.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("user_id", user.ID).Msg("failed login attempt")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.IsAdmin, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.LoginResponse{User: *user, Token: token}, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) Cart(ctx context.Context, userID string) ([]model.CartItem, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Cart == nil {
		return []model.CartItem{}, nil
	}
	return user.Cart, nil
}

// AddCartItem appends an item to the user's cart, merging quantity when
// an identical line already exists.
func (s *userService) AddCartItem(ctx context.Context, userID string, item model.CartItem) ([]model.CartItem, error) {
	if item.Quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}
	if item.ProductID == "" && len(item.AttributeIDs) == 0 {
		return nil, model.ErrMissingAttribute
	}

	cart, err := s.Cart(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart {
		if sameCartLine(cart[i], item) {
			cart[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		cart = append(cart, item)
	}

	return s.saveCart(ctx, userID, cart)
}

func (s *userService) UpdateCartItem(ctx context.Context, userID, itemID string, quantity int) ([]model.CartItem, error) {
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	cart, err := s.Cart(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart {
		if cart[i].ID == itemID {
			cart[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, model.ErrCartItemNotFound
	}

	return s.saveCart(ctx, userID, cart)
}

func (s *userService) RemoveCartItem(ctx context.Context, userID, itemID string) ([]model.CartItem, error) {
	cart, err := s.Cart(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := cart[:0]
	found := false
	for _, line := range cart {
		if line.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return nil, model.ErrCartItemNotFound
	}

	return s.saveCart(ctx, userID, kept)
}

func (s *userService) ClearCart(ctx context.Context, userID string) error {
	_, err := s.saveCart(ctx, userID, []model.CartItem{})
	return err
}

func (s *userService) saveCart(ctx context.Context, userID string, cart []model.CartItem) ([]model.CartItem, error) {
	updated, err := s.userRepo.UpdateCart(ctx, userID, cart)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}
	if !updated {
		return nil, model.ErrUserNotFound
	}
	return cart, nil
}

// sameCartLine reports whether two cart lines describe the same
// configuration of the same product.
func sameCartLine(a, b model.CartItem) bool {
	if a.ProductID != b.ProductID || a.Drink != b.Drink {
		return false
	}
	if len(a.AttributeIDs) != len(b.AttributeIDs) || len(a.Excluded) != len(b.Excluded) {
		return false
	}
	for i := range a.AttributeIDs {
		if a.AttributeIDs[i] != b.AttributeIDs[i] {
			return false
		}
	}
	for i := range a.Excluded {
		if a.Excluded[i] != b.Excluded[i] {
			return false
		}
	}
	return true
}

func validateRegister(req *model.RegisterRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeValidation, "Registration request is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.NewDomainError(model.ErrCodeValidation, "Name is required")
	}
	if !strings.Contains(req.Email, "@") {
		return model.NewDomainError(model.ErrCodeValidation, "A valid email is required")
	}
	if len(req.Password) < 6 {
		return model.NewDomainError(model.ErrCodeValidation, "Password must be at least 6 characters")
	}
	return nil
}

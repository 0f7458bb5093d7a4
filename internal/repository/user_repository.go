package repository

import (
	"context"
	"fmt"

	"chowline/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements UserRepository using PostgreSQL. The embedded
// cart is a jsonb column; replacing it is a single-row update, which is the
// only atomicity the cart needs.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

const userColumns = `id, name, email, password_hash, phone, is_admin, is_verified, is_active, cart, created_at`

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone,
		&u.IsAdmin, &u.IsVerified, &u.IsActive, &u.Cart, &u.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// List retrieves all users.
func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone,
			&u.IsAdmin, &u.IsVerified, &u.IsActive, &u.Cart, &u.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, phone, is_admin, is_verified, is_active, cart, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	cart := u.Cart
	if cart == nil {
		cart = []model.CartItem{}
	}

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Phone,
		u.IsAdmin, u.IsVerified, u.IsActive, cart, u.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", u.ID).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// UpdateCart atomically replaces a user's embedded cart.
func (r *userRepository) UpdateCart(ctx context.Context, userID string, cart []model.CartItem) (bool, error) {
	if cart == nil {
		cart = []model.CartItem{}
	}

	tag, err := r.pool.Exec(ctx, `UPDATE users SET cart = $2 WHERE id = $1`, userID, cart)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to update cart")
		return false, fmt.Errorf("failed to update cart: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

package repository

import (
	"context"
	"fmt"

	"chowline/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, icon, color FROM categories ORDER BY name`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	err := r.pool.QueryRow(ctx, `SELECT id, name, icon, color FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Icon, &c.Color)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO categories (id, name, icon, color) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Icon, c.Color,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", c.ID).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, c *model.Category) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE categories SET name = $2, icon = $3, color = $4 WHERE id = $1`,
		c.ID, c.Name, c.Icon, c.Color,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", c.ID).Msg("failed to update category")
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

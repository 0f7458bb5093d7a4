package repository

import (
	"context"
	"fmt"

	"chowline/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements ProductRepository using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// Price and cost are nullable in the schema; COALESCE keeps every missing
// numeric term a plain 0 for the pricing pipeline.
const productColumns = `id, name, description, image, category_id, COALESCE(price, 0), COALESCE(cost, 0), is_featured, is_active, created_at`

// GetAll retrieves products with optional category/featured/active filters.
func (r *productRepository) GetAll(ctx context.Context, categoryIDs []string, featuredOnly, activeOnly bool) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}

	if len(categoryIDs) > 0 {
		args = append(args, categoryIDs)
		query += fmt.Sprintf(" AND category_id = ANY($%d)", len(args))
	}
	if featuredOnly {
		query += " AND is_featured"
	}
	if activeOnly {
		query += " AND is_active"
	}
	query += " ORDER BY name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Image, &p.CategoryID,
		&p.Price, &p.Cost, &p.IsFeatured, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products keyed by ID.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) (map[string]model.Product, error) {
	result := make(map[string]model.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("id_count", len(ids)).Msg("failed to query products by ids")
		return nil, fmt.Errorf("failed to query products by ids: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (id, name, description, image, category_id, price, cost, is_featured, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Image, p.CategoryID,
		p.Price, p.Cost, p.IsFeatured, p.IsActive, p.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update replaces the mutable fields of a product.
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, image = $4, category_id = $5,
		    price = $6, cost = $7, is_featured = $8, is_active = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Image, p.CategoryID,
		p.Price, p.Cost, p.IsFeatured, p.IsActive,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// scanProducts collects product rows.
func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Image, &p.CategoryID,
			&p.Price, &p.Cost, &p.IsFeatured, &p.IsActive, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

package repository

import (
	"context"
	"fmt"

	"chowline/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// attributeRepository implements AttributeRepository using PostgreSQL.
type attributeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAttributeRepository creates a new PostgreSQL-backed attribute repository.
func NewAttributeRepository(pool *pgxpool.Pool, logger zerolog.Logger) AttributeRepository {
	return &attributeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "attribute").Logger(),
	}
}

const attributeColumns = `id, size, COALESCE(price, 0), COALESCE(cost, 0), product_id, is_active`

// GetAll retrieves all attributes.
func (r *attributeRepository) GetAll(ctx context.Context) ([]model.Attribute, error) {
	query := `SELECT ` + attributeColumns + ` FROM attributes ORDER BY product_id, size`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query attributes")
		return nil, fmt.Errorf("failed to query attributes: %w", err)
	}
	defer rows.Close()

	return scanAttributes(rows)
}

// GetByID retrieves a single attribute by its ID.
func (r *attributeRepository) GetByID(ctx context.Context, id string) (*model.Attribute, error) {
	query := `SELECT ` + attributeColumns + ` FROM attributes WHERE id = $1`

	var a model.Attribute
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Size, &a.Price, &a.Cost, &a.ProductID, &a.IsActive)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("attribute_id", id).Msg("attribute not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("attribute_id", id).Msg("failed to query attribute")
		return nil, fmt.Errorf("failed to query attribute: %w", err)
	}

	return &a, nil
}

// GetByIDs retrieves multiple attributes keyed by ID.
func (r *attributeRepository) GetByIDs(ctx context.Context, ids []string) (map[string]model.Attribute, error) {
	result := make(map[string]model.Attribute, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + attributeColumns + ` FROM attributes WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("id_count", len(ids)).Msg("failed to query attributes by ids")
		return nil, fmt.Errorf("failed to query attributes by ids: %w", err)
	}
	defer rows.Close()

	attrs, err := scanAttributes(rows)
	if err != nil {
		return nil, err
	}

	for _, a := range attrs {
		result[a.ID] = a
	}
	return result, nil
}

// GetByProduct retrieves the attributes of one product.
func (r *attributeRepository) GetByProduct(ctx context.Context, productID string) ([]model.Attribute, error) {
	query := `SELECT ` + attributeColumns + ` FROM attributes WHERE product_id = $1 ORDER BY size`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query attributes by product")
		return nil, fmt.Errorf("failed to query attributes by product: %w", err)
	}
	defer rows.Close()

	return scanAttributes(rows)
}

// Create inserts a new attribute.
func (r *attributeRepository) Create(ctx context.Context, a *model.Attribute) error {
	query := `
		INSERT INTO attributes (id, size, price, cost, product_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, a.ID, a.Size, a.Price, a.Cost, a.ProductID, a.IsActive)
	if err != nil {
		r.logger.Error().Err(err).Str("attribute_id", a.ID).Msg("failed to create attribute")
		return fmt.Errorf("failed to create attribute: %w", err)
	}

	return nil
}

// CreateMany inserts several attributes at once.
func (r *attributeRepository) CreateMany(ctx context.Context, attrs []model.Attribute) error {
	if len(attrs) == 0 {
		return nil
	}

	query := `
		INSERT INTO attributes (id, size, price, cost, product_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, a := range attrs {
		batch.Queue(query, a.ID, a.Size, a.Price, a.Cost, a.ProductID, a.IsActive)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(attrs); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().Err(err).Str("attribute_id", attrs[i].ID).Msg("failed to create attribute")
			return fmt.Errorf("failed to create attribute: %w", err)
		}
	}

	return nil
}

// Update replaces the mutable fields of an attribute.
func (r *attributeRepository) Update(ctx context.Context, a *model.Attribute) error {
	query := `
		UPDATE attributes
		SET size = $2, price = $3, cost = $4, product_id = $5, is_active = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, a.ID, a.Size, a.Price, a.Cost, a.ProductID, a.IsActive)
	if err != nil {
		r.logger.Error().Err(err).Str("attribute_id", a.ID).Msg("failed to update attribute")
		return fmt.Errorf("failed to update attribute: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAttributeNotFound
	}

	return nil
}

// Delete removes an attribute.
func (r *attributeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM attributes WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("attribute_id", id).Msg("failed to delete attribute")
		return fmt.Errorf("failed to delete attribute: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAttributeNotFound
	}

	return nil
}

// scanAttributes collects attribute rows.
func scanAttributes(rows pgx.Rows) ([]model.Attribute, error) {
	var attrs []model.Attribute
	for rows.Next() {
		var a model.Attribute
		if err := rows.Scan(&a.ID, &a.Size, &a.Price, &a.Cost, &a.ProductID, &a.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan attribute: %w", err)
		}
		attrs = append(attrs, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attributes: %w", err)
	}

	return attrs, nil
}

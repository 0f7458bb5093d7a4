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

// catalogService implements CatalogService.
type catalogService struct {
	productRepo   repository.ProductRepository
	attributeRepo repository.AttributeRepository
	categoryRepo  repository.CategoryRepository
	logger        zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	attributeRepo repository.AttributeRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		productRepo:   productRepo,
		attributeRepo: attributeRepo,
		categoryRepo:  categoryRepo,
		logger:        logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) Products(ctx context.Context, categoryIDs []string, featuredOnly, activeOnly bool) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx, categoryIDs, featuredOnly, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *catalogService) Product(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if p.CategoryID != "" {
		category, err := s.categoryRepo.GetByID(ctx, p.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to resolve category: %w", err)
		}
		if category == nil {
			return model.ErrCategoryNotFound
		}
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.productRepo.Update(ctx, p); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *catalogService) Attributes(ctx context.Context) ([]model.Attribute, error) {
	attrs, err := s.attributeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attributes: %w", err)
	}
	return attrs, nil
}

func (s *catalogService) Attribute(ctx context.Context, id string) (*model.Attribute, error) {
	attr, err := s.attributeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get attribute: %w", err)
	}
	if attr == nil {
		return nil, model.ErrAttributeNotFound
	}
	return attr, nil
}

func (s *catalogService) AttributesByProduct(ctx context.Context, productID string) ([]model.Attribute, error) {
	attrs, err := s.attributeRepo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product attributes: %w", err)
	}
	return attrs, nil
}

func (s *catalogService) CreateAttribute(ctx context.Context, a *model.Attribute) error {
	if err := s.prepareAttribute(ctx, a); err != nil {
		return err
	}
	if err := s.attributeRepo.Create(ctx, a); err != nil {
		return fmt.Errorf("failed to create attribute: %w", err)
	}

	s.logger.Info().Str("attribute_id", a.ID).Str("size", a.Size).Msg("attribute created")
	return nil
}

// CreateAttributes inserts a batch of size variants in one round trip,
// typically when a product is seeded with its full size range.
func (s *catalogService) CreateAttributes(ctx context.Context, attrs []model.Attribute) error {
	if len(attrs) == 0 {
		return model.NewDomainError(model.ErrCodeValidation, "At least one attribute is required")
	}
	for i := range attrs {
		if err := s.prepareAttribute(ctx, &attrs[i]); err != nil {
			return err
		}
	}
	if err := s.attributeRepo.CreateMany(ctx, attrs); err != nil {
		return fmt.Errorf("failed to create attributes: %w", err)
	}

	s.logger.Info().Int("count", len(attrs)).Msg("attributes created")
	return nil
}

func (s *catalogService) UpdateAttribute(ctx context.Context, a *model.Attribute) error {
	if strings.TrimSpace(a.Size) == "" {
		return model.NewDomainError(model.ErrCodeValidation, "Attribute size is required")
	}
	if err := s.attributeRepo.Update(ctx, a); err != nil {
		return fmt.Errorf("failed to update attribute: %w", err)
	}
	return nil
}

func (s *catalogService) DeleteAttribute(ctx context.Context, id string) error {
	if err := s.attributeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attribute: %w", err)
	}
	return nil
}

func (s *catalogService) Categories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, c *model.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return model.NewDomainError(model.ErrCodeValidation, "Category name is required")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, c *model.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return model.NewDomainError(model.ErrCodeValidation, "Category name is required")
	}
	if err := s.categoryRepo.Update(ctx, c); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// prepareAttribute validates an attribute, verifies its owning product
// and fills defaults before insert. A zero cost falls back to the house
// default unit cost.
func (s *catalogService) prepareAttribute(ctx context.Context, a *model.Attribute) error {
	if strings.TrimSpace(a.Size) == "" {
		return model.NewDomainError(model.ErrCodeValidation, "Attribute size is required")
	}
	if a.ProductID == "" {
		return model.NewDomainError(model.ErrCodeValidation, "Attribute productId is required")
	}

	product, err := s.productRepo.GetByID(ctx, a.ProductID)
	if err != nil {
		return fmt.Errorf("failed to resolve product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Cost == 0 {
		a.Cost = model.DefaultAttributeCost
	}
	return nil
}

func validateProduct(p *model.Product) error {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return model.NewDomainError(model.ErrCodeValidation, "Product name is required")
	}
	if p.Price < 0 {
		return model.NewDomainError(model.ErrCodeValidation, "Product price must not be negative")
	}
	return nil
}

package service

import (
	"context"
	"testing"

	"chowline/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogServiceForTest() (CatalogService, *MockProductRepository, *MockAttributeRepository, *MockCategoryRepository) {
	productRepo := new(MockProductRepository)
	attributeRepo := new(MockAttributeRepository)
	categoryRepo := new(MockCategoryRepository)
	svc := NewCatalogService(productRepo, attributeRepo, categoryRepo, zerolog.Nop())
	return svc, productRepo, attributeRepo, categoryRepo
}

func TestCatalogService_Product_NotFound(t *testing.T) {
	svc, productRepo, _, _ := newCatalogServiceForTest()
	productRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.Product(context.Background(), "missing")

	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCatalogService_CreateProduct_GeneratesID(t *testing.T) {
	svc, productRepo, _, categoryRepo := newCatalogServiceForTest()
	categoryRepo.On("GetByID", mock.Anything, "cat-1").Return(&model.Category{ID: "cat-1", Name: "Pizza"}, nil)
	productRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	product := &model.Product{Name: "Margherita", CategoryID: "cat-1", Price: 5}
	err := svc.CreateProduct(context.Background(), product)

	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	productRepo.AssertExpectations(t)
}

func TestCatalogService_CreateProduct_UnknownCategory(t *testing.T) {
	svc, productRepo, _, categoryRepo := newCatalogServiceForTest()
	categoryRepo.On("GetByID", mock.Anything, "nope").Return(nil, nil)

	err := svc.CreateProduct(context.Background(), &model.Product{Name: "Margherita", CategoryID: "nope"})

	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	svc, _, _, _ := newCatalogServiceForTest()

	tests := []struct {
		name    string
		product *model.Product
	}{
		{"missing name", &model.Product{Price: 5}},
		{"negative price", &model.Product{Name: "Margherita", Price: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateProduct(context.Background(), tt.product)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
		})
	}
}

func TestCatalogService_CreateAttribute_DefaultsCost(t *testing.T) {
	svc, productRepo, attributeRepo, _ := newCatalogServiceForTest()
	productRepo.On("GetByID", mock.Anything, "prod-1").Return(&model.Product{ID: "prod-1", Name: "Margherita"}, nil)
	attributeRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	attr := &model.Attribute{Size: "L", Price: 50000, ProductID: "prod-1"}
	err := svc.CreateAttribute(context.Background(), attr)

	require.NoError(t, err)
	assert.NotEmpty(t, attr.ID)
	assert.Equal(t, float64(model.DefaultAttributeCost), attr.Cost)
}

func TestCatalogService_CreateAttribute_UnknownProduct(t *testing.T) {
	svc, productRepo, attributeRepo, _ := newCatalogServiceForTest()
	productRepo.On("GetByID", mock.Anything, "nope").Return(nil, nil)

	err := svc.CreateAttribute(context.Background(), &model.Attribute{Size: "L", ProductID: "nope"})

	assert.ErrorIs(t, err, model.ErrProductNotFound)
	attributeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_CreateAttributes_EmptyBatch(t *testing.T) {
	svc, _, _, _ := newCatalogServiceForTest()

	err := svc.CreateAttributes(context.Background(), nil)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
}

func TestCatalogService_CreateAttributes_PreparesEachVariant(t *testing.T) {
	svc, productRepo, attributeRepo, _ := newCatalogServiceForTest()
	productRepo.On("GetByID", mock.Anything, "prod-1").Return(&model.Product{ID: "prod-1", Name: "Margherita"}, nil)
	attributeRepo.On("CreateMany", mock.Anything, mock.Anything).Return(nil)

	attrs := []model.Attribute{
		{Size: "S", Price: 30000, ProductID: "prod-1"},
		{Size: "L", Price: 50000, ProductID: "prod-1"},
	}
	err := svc.CreateAttributes(context.Background(), attrs)

	require.NoError(t, err)
	assert.NotEmpty(t, attrs[0].ID)
	assert.NotEmpty(t, attrs[1].ID)
	attributeRepo.AssertExpectations(t)
}

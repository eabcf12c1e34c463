package service

import (
	"testing"

	"github.com/nexora/nexora-backend/internal/app/model"
	"github.com/nexora/nexora-backend/internal/app/repository"
	"github.com/nexora/nexora-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductServiceTest(t *testing.T) ProductService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	productRepo := repository.NewProductRepository(testDB)
	return NewProductService(productRepo)
}

func TestProductService_CreateProduct(t *testing.T) {
	productService := setupProductServiceTest(t)

	product, err := productService.CreateProduct(CreateProductInput{
		Name:          "Smart Speaker 2nd Gen",
		Description:   "Voice controlled speaker",
		Price:         89.99,
		Category:      model.CategoryElectronics,
		StockQuantity: 50,
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "smart-speaker-2nd-gen", product.Slug)

	// Same generated slug collides
	_, err = productService.CreateProduct(CreateProductInput{
		Name:     "Smart Speaker 2nd Gen",
		Price:    99.99,
		Category: model.CategoryElectronics,
	})
	assert.ErrorIs(t, err, ErrProductSlugExists)
}

func TestProductService_GetProduct(t *testing.T) {
	productService := setupProductServiceTest(t)

	created, err := productService.CreateProduct(CreateProductInput{
		Name:     "Smart Speaker",
		Price:    89.99,
		Category: model.CategoryElectronics,
	})
	require.NoError(t, err)

	byID, err := productService.GetProductByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Slug, byID.Slug)

	bySlug, err := productService.GetProductBySlug(created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = productService.GetProductByID(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = productService.GetProductBySlug("missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_UpdateProduct(t *testing.T) {
	productService := setupProductServiceTest(t)

	created, err := productService.CreateProduct(CreateProductInput{
		Name:     "Smart Speaker",
		Price:    89.99,
		Category: model.CategoryElectronics,
	})
	require.NoError(t, err)

	newPrice := 79.99
	newStock := 10
	updated, err := productService.UpdateProduct(created.ID, UpdateProductInput{
		Price:         &newPrice,
		StockQuantity: &newStock,
	})
	require.NoError(t, err)
	assert.Equal(t, 79.99, updated.Price)
	assert.Equal(t, 10, updated.StockQuantity)
	assert.Equal(t, "Smart Speaker", updated.Name)

	_, err = productService.UpdateProduct(9999, UpdateProductInput{Price: &newPrice})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_ListProducts(t *testing.T) {
	productService := setupProductServiceTest(t)

	inputs := []CreateProductInput{
		{Name: "Smart Speaker", Price: 89.99, Category: model.CategoryElectronics},
		{Name: "Desk Lamp", Price: 24.99, Category: model.CategoryHome},
		{Name: "Yoga Mat", Price: 19.99, Category: model.CategorySports},
	}
	for _, input := range inputs {
		_, err := productService.CreateProduct(input)
		require.NoError(t, err)
	}

	all, total, err := productService.ListProducts(ProductListOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	category := model.CategoryHome
	filtered, total, err := productService.ListProducts(ProductListOptions{Category: &category})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "desk-lamp", filtered[0].Slug)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Smart Speaker", "smart-speaker"},
		{"  USB-C  Charger!! ", "usb-c-charger"},
		{"100% Cotton T-Shirt", "100-cotton-t-shirt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in))
	}
}

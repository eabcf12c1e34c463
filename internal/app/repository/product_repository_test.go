package repository

import (
	"testing"

	"github.com/nexora/nexora-backend/internal/app/model"
	"github.com/nexora/nexora-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewProductRepository(testDB)
	return testDB, repo
}

func TestProductRepository_Create(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:          "Wireless Headphones",
		Slug:          "wireless-headphones",
		Description:   "Over-ear noise cancelling headphones",
		Price:         199.99,
		Category:      model.CategoryElectronics,
		StockQuantity: 25,
		ImageURL:      "https://example.com/headphones.jpg",
	}

	err := repo.Create(product)
	assert.NoError(t, err)
	assert.NotZero(t, product.ID)
}

func TestProductRepository_FindAll(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	products := []model.Product{
		{
			Name:          "Wireless Headphones",
			Slug:          "wireless-headphones",
			Price:         199.99,
			Category:      model.CategoryElectronics,
			StockQuantity: 25,
		},
		{
			Name:          "Cotton T-Shirt",
			Slug:          "cotton-t-shirt",
			Price:         19.99,
			Category:      model.CategoryClothing,
			StockQuantity: 100,
		},
	}

	for i := range products {
		err := repo.Create(&products[i])
		require.NoError(t, err)
	}

	found, err := repo.FindAll()
	assert.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestProductRepository_FindByID(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:          "Wireless Headphones",
		Slug:          "wireless-headphones",
		Price:         199.99,
		Category:      model.CategoryElectronics,
		StockQuantity: 25,
	}
	err := repo.Create(product)
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      uint
		wantErr bool
	}{
		{
			name:    "Existing product",
			id:      product.ID,
			wantErr: false,
		},
		{
			name:    "Non-existing product",
			id:      9999,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindByID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, found)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, product.Name, found.Name)
			}
		})
	}
}

func TestProductRepository_FindBySlug(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:     "Wireless Headphones",
		Slug:     "wireless-headphones",
		Price:    199.99,
		Category: model.CategoryElectronics,
	}
	require.NoError(t, repo.Create(product))

	found, err := repo.FindBySlug("wireless-headphones")
	assert.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	_, err = repo.FindBySlug("no-such-product")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_FindWithFilter(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	products := []model.Product{
		{Name: "Wireless Headphones", Slug: "wireless-headphones", Price: 199.99, Category: model.CategoryElectronics, Rating: 4.5},
		{Name: "USB-C Charger", Slug: "usb-c-charger", Price: 29.99, Category: model.CategoryElectronics, Rating: 3.2},
		{Name: "Cotton T-Shirt", Slug: "cotton-t-shirt", Price: 19.99, Category: model.CategoryClothing, Rating: 4.8},
	}
	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
	}

	t.Run("Filter by category", func(t *testing.T) {
		category := model.CategoryElectronics
		found, total, err := repo.FindWithFilter(ProductFilter{Category: &category})
		assert.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, found, 2)
	})

	t.Run("Filter by search term", func(t *testing.T) {
		found, total, err := repo.FindWithFilter(ProductFilter{Search: "Headphones"})
		assert.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, "wireless-headphones", found[0].Slug)
	})

	t.Run("Filter by min rating", func(t *testing.T) {
		minRating := 4.0
		_, total, err := repo.FindWithFilter(ProductFilter{MinRating: &minRating})
		assert.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("Sort by price ascending", func(t *testing.T) {
		found, _, err := repo.FindWithFilter(ProductFilter{SortBy: ProductSortPrice, SortAscending: true})
		assert.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, "cotton-t-shirt", found[0].Slug)
		assert.Equal(t, "wireless-headphones", found[2].Slug)
	})

	t.Run("Pagination", func(t *testing.T) {
		found, total, err := repo.FindWithFilter(ProductFilter{Limit: 2, Offset: 2, SortBy: ProductSortPrice, SortAscending: true})
		assert.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, found, 1)
	})
}

func TestProductRepository_UpdateRating(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:     "Wireless Headphones",
		Slug:     "wireless-headphones",
		Price:    199.99,
		Category: model.CategoryElectronics,
	}
	require.NoError(t, repo.Create(product))

	err := repo.UpdateRating(product.ID, 4.3, 7)
	assert.NoError(t, err)

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.3, found.Rating)
	assert.Equal(t, 7, found.NumReviews)

	// Zero values must be persisted too
	err = repo.UpdateRating(product.ID, 0, 0)
	assert.NoError(t, err)

	found, err = repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Zero(t, found.Rating)
	assert.Zero(t, found.NumReviews)
}

func TestProductRepository_UpdateRating_NotFound(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	err := repo.UpdateRating(9999, 4.0, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_Delete(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:     "Wireless Headphones",
		Slug:     "wireless-headphones",
		Price:    199.99,
		Category: model.CategoryElectronics,
	}
	require.NoError(t, repo.Create(product))

	err := repo.Delete(product.ID)
	assert.NoError(t, err)

	_, err = repo.FindByID(product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

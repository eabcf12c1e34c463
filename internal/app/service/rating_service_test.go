package service

import (
	"testing"

	"github.com/nexora/nexora-backend/internal/app/model"
	"github.com/nexora/nexora-backend/internal/app/repository"
	"github.com/nexora/nexora-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRatingServiceTest(t *testing.T) (*gorm.DB, RatingService, repository.ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	reviewRepo := repository.NewReviewRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	return testDB, NewRatingService(reviewRepo, productRepo), productRepo
}

func seedReview(t *testing.T, testDB *gorm.DB, userEmail string, productID uint, rating int, status model.ReviewStatus) {
	user := &model.User{Email: userEmail, PasswordHash: "h", Name: "Seed User"}
	require.NoError(t, testDB.Create(user).Error)
	review := &model.Review{
		UserID:    user.ID,
		ProductID: productID,
		Rating:    rating,
		Comment:   "Seeded review body.",
		Status:    status,
	}
	require.NoError(t, testDB.Create(review).Error)
}

func TestRatingService_Recompute(t *testing.T) {
	testDB, rating, productRepo := setupRatingServiceTest(t)

	product := &model.Product{Name: "Blender", Slug: "blender", Price: 39.99, Category: model.CategoryHome}
	require.NoError(t, testDB.Create(product).Error)

	seedReview(t, testDB, "a@example.com", product.ID, 5, model.ReviewStatusApproved)
	seedReview(t, testDB, "b@example.com", product.ID, 2, model.ReviewStatusApproved)
	seedReview(t, testDB, "c@example.com", product.ID, 1, model.ReviewStatusPending)
	seedReview(t, testDB, "d@example.com", product.ID, 1, model.ReviewStatusRejected)

	require.NoError(t, rating.Recompute(product.ID))

	found, err := productRepo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.5, found.Rating)
	assert.Equal(t, 2, found.NumReviews)
}

func TestRatingService_Recompute_EmptyApprovedSet(t *testing.T) {
	testDB, rating, productRepo := setupRatingServiceTest(t)

	// Stale aggregate values must be cleared, not left behind
	product := &model.Product{Name: "Blender", Slug: "blender", Price: 39.99, Category: model.CategoryHome, Rating: 4.7, NumReviews: 12}
	require.NoError(t, testDB.Create(product).Error)

	seedReview(t, testDB, "a@example.com", product.ID, 1, model.ReviewStatusPending)

	require.NoError(t, rating.Recompute(product.ID))

	found, err := productRepo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Zero(t, found.Rating)
	assert.Zero(t, found.NumReviews)
}

func TestRatingService_ReconcileAll(t *testing.T) {
	testDB, rating, productRepo := setupRatingServiceTest(t)

	blender := &model.Product{Name: "Blender", Slug: "blender", Price: 39.99, Category: model.CategoryHome}
	kettle := &model.Product{Name: "Kettle", Slug: "kettle", Price: 29.99, Category: model.CategoryHome}
	require.NoError(t, testDB.Create(blender).Error)
	require.NoError(t, testDB.Create(kettle).Error)

	seedReview(t, testDB, "a@example.com", blender.ID, 4, model.ReviewStatusApproved)
	seedReview(t, testDB, "b@example.com", kettle.ID, 5, model.ReviewStatusApproved)
	seedReview(t, testDB, "c@example.com", kettle.ID, 4, model.ReviewStatusApproved)

	// Simulate drift left by a crash between write and recompute
	require.NoError(t, testDB.Model(&model.Product{}).Where("id = ?", kettle.ID).
		Updates(map[string]interface{}{"rating": 1.0, "num_reviews": 9}).Error)

	require.NoError(t, rating.ReconcileAll())

	found, err := productRepo.FindByID(blender.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, found.Rating)
	assert.Equal(t, 1, found.NumReviews)

	found, err = productRepo.FindByID(kettle.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, found.Rating)
	assert.Equal(t, 2, found.NumReviews)
}

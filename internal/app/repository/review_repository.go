package repository

import (
	"github.com/nexora/nexora-backend/internal/app/model"

	"gorm.io/gorm"
)

// ReviewFilter narrows review listings. Nil fields are ignored.
type ReviewFilter struct {
	ProductID *uint
	UserID    *uint
	Status    *model.ReviewStatus
	Reported  *bool
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) CreateReview(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) GetReviewByID(id uint) (*model.Review, error) {
	var review model.Review
	err := r.db.Preload("User").Preload("Product").First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) GetReviewByUserAndProduct(userID, productID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListReviews returns a filtered page of reviews plus the total count.
func (r *ReviewRepository) ListReviews(filter ReviewFilter, offset, limit int, sortBy, sortOrder string) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	query := r.db.Model(&model.Review{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Reported != nil {
		query = query.Where("reported = ?", *filter.Reported)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := sortBy + " " + sortOrder
	if sortBy == "" {
		orderClause = "created_at DESC"
	}

	err := query.Preload("User").Preload("Product").
		Order(orderClause).
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *ReviewRepository) UpdateReview(review *model.Review) error {
	return r.db.Save(review).Error
}

// UpdateReviewFields applies a partial update. Callers whitelist columns.
func (r *ReviewRepository) UpdateReviewFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&model.Review{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ReviewRepository) DeleteReview(id uint) error {
	return r.db.Delete(&model.Review{}, id).Error
}

// IncrementHelpful bumps the helpful counter atomically.
func (r *ReviewRepository) IncrementHelpful(id uint) error {
	result := r.db.Model(&model.Review{}).Where("id = ?", id).
		UpdateColumn("helpful", gorm.Expr("helpful + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkReported flags a review as reported. Returns true only for the
// first transition so concurrent reports trigger a single notification.
func (r *ReviewRepository) MarkReported(id uint) (bool, error) {
	result := r.db.Model(&model.Review{}).
		Where("id = ? AND reported = ?", id, false).
		UpdateColumn("reported", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetApprovedStats returns the approved review count and average rating
// for a product. Average is 0 when no approved reviews exist.
func (r *ReviewRepository) GetApprovedStats(productID uint) (int64, float64, error) {
	var count int64
	err := r.db.Model(&model.Review{}).
		Where("product_id = ? AND status = ?", productID, model.ReviewStatusApproved).
		Count(&count).Error
	if err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	var avg float64
	err = r.db.Model(&model.Review{}).
		Where("product_id = ? AND status = ?", productID, model.ReviewStatusApproved).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, 0, err
	}
	return count, avg, nil
}

// GetRatingDistribution returns approved review counts per star value.
func (r *ReviewRepository) GetRatingDistribution(productID uint) (map[int]int64, error) {
	type bucket struct {
		Rating int
		Count  int64
	}
	var buckets []bucket

	err := r.db.Model(&model.Review{}).
		Where("product_id = ? AND status = ?", productID, model.ReviewStatusApproved).
		Select("rating, COUNT(*) as count").
		Group("rating").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}

	distribution := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, b := range buckets {
		distribution[b.Rating] = b.Count
	}
	return distribution, nil
}

// GetReviewedProductIDs returns distinct product IDs that have at least
// one review. The reconciliation sweep walks this set.
func (r *ReviewRepository) GetReviewedProductIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Review{}).
		Distinct("product_id").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

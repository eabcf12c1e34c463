package service

import (
	"math"

	"github.com/nexora/nexora-backend/internal/app/repository"
	"github.com/nexora/nexora-backend/pkg/logger"
)

// RatingService keeps each product's rating columns in sync with its
// approved review set. The aggregate is always recomputed from a full
// scan rather than adjusted incrementally, so a recompute after any
// event converges on the right value.
type RatingService interface {
	Recompute(productID uint) error
	ReconcileAll() error
}

type ratingService struct {
	reviewRepo  *repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewRatingService(reviewRepo *repository.ReviewRepository, productRepo repository.ProductRepository) RatingService {
	return &ratingService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// Recompute recalculates a product's rating and review count from its
// approved reviews. Both columns reset to zero when the approved set is
// empty. The average is rounded to one decimal place.
func (s *ratingService) Recompute(productID uint) error {
	count, avg, err := s.reviewRepo.GetApprovedStats(productID)
	if err != nil {
		logger.Error("Failed to compute review stats", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	rating := math.Round(avg*10) / 10
	if count == 0 {
		rating = 0
	}

	if err := s.productRepo.UpdateRating(productID, rating, int(count)); err != nil {
		logger.Error("Failed to update product rating", err, map[string]interface{}{
			"product_id": productID,
			"rating":     rating,
		})
		return err
	}

	logger.Debug("Product rating recomputed", map[string]interface{}{
		"product_id":  productID,
		"rating":      rating,
		"num_reviews": count,
	})
	return nil
}

// ReconcileAll recomputes the aggregate for every product that has at
// least one review. The scheduler runs this nightly to repair any drift
// left by crashes between a moderation write and its recompute.
func (s *ratingService) ReconcileAll() error {
	productIDs, err := s.reviewRepo.GetReviewedProductIDs()
	if err != nil {
		return err
	}

	var failed int
	for _, productID := range productIDs {
		if err := s.Recompute(productID); err != nil {
			failed++
		}
	}

	logger.Info("Rating reconciliation sweep finished", map[string]interface{}{
		"products": len(productIDs),
		"failed":   failed,
	})
	return nil
}

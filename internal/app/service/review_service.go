package service

import (
	"errors"
	"time"

	"github.com/nexora/nexora-backend/internal/app/model"
	"github.com/nexora/nexora-backend/internal/app/repository"
	apperrors "github.com/nexora/nexora-backend/internal/errors"
	"github.com/nexora/nexora-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrAlreadyReviewed     = errors.New("user has already reviewed this product")
	ErrReviewForbidden     = errors.New("not allowed to modify this review")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrInvalidReviewStatus = errors.New("status must be approved or rejected")
)

type SubmitReviewInput struct {
	ProductID uint                `json:"product_id" binding:"required"`
	Rating    int                 `json:"rating" binding:"required,min=1,max=5"`
	Title     string              `json:"title"`
	Comment   string              `json:"comment" binding:"required,min=10"`
	Images    []model.ReviewImage `json:"images"`
}

// UpdateReviewInput carries an author edit. Only these three fields are
// editable; anything else in the request body is dropped before it gets
// here.
type UpdateReviewInput struct {
	Rating  *int                 `json:"rating"`
	Comment *string              `json:"comment"`
	Images  *[]model.ReviewImage `json:"images"`
}

type ModerateReviewInput struct {
	Status   model.ReviewStatus `json:"status" binding:"required"`
	Response string             `json:"response"`
}

type ProductReviewStats struct {
	Rating       float64       `json:"rating"`
	NumReviews   int64         `json:"num_reviews"`
	Distribution map[int]int64 `json:"distribution"`
}

type ReviewService interface {
	Submit(userID uint, input SubmitReviewInput) (*model.Review, error)
	Get(id uint) (*model.Review, error)
	List(filter repository.ReviewFilter, page, pageSize int, sortBy, sortOrder string) ([]model.Review, int64, error)
	GetProductReviews(productID uint, page, pageSize int) ([]model.Review, int64, error)
	GetProductStats(productID uint) (*ProductReviewStats, error)
	Update(reviewID, actorID uint, actorRole model.UserRole, input UpdateReviewInput) (*model.Review, error)
	Delete(reviewID, actorID uint, actorRole model.UserRole) error
	Moderate(reviewID, moderatorID uint, input ModerateReviewInput) (*model.Review, error)
	Report(reviewID uint) error
	MarkHelpful(reviewID uint) (*model.Review, error)
}

type reviewService struct {
	reviewRepo  *repository.ReviewRepository
	productRepo repository.ProductRepository
	rating      RatingService
	notifier    Notifier
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	productRepo repository.ProductRepository,
	rating RatingService,
	notifier Notifier,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		rating:      rating,
		notifier:    notifier,
	}
}

// Submit creates a pending review. The unique index on (user, product)
// is the authority on duplicates, so two concurrent submissions race at
// the database and exactly one wins.
func (s *reviewService) Submit(userID uint, input SubmitReviewInput) (*model.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.productRepo.FindByID(input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	review := &model.Review{
		UserID:    userID,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Title:     input.Title,
		Comment:   input.Comment,
		Images:    input.Images,
		Status:    model.ReviewStatusPending,
	}

	if err := s.reviewRepo.CreateReview(review); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrAlreadyReviewed
		}
		logger.Error("Failed to create review", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": input.ProductID,
		})
		return nil, err
	}

	loaded, err := s.reviewRepo.GetReviewByID(review.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Review submitted", map[string]interface{}{
		"review_id":  loaded.ID,
		"user_id":    userID,
		"product_id": input.ProductID,
		"rating":     input.Rating,
	})

	s.notifier.ReviewSubmitted(loaded)
	return loaded, nil
}

func (s *reviewService) Get(id uint) (*model.Review, error) {
	review, err := s.reviewRepo.GetReviewByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) List(filter repository.ReviewFilter, page, pageSize int, sortBy, sortOrder string) ([]model.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize
	return s.reviewRepo.ListReviews(filter, offset, pageSize, sortBy, sortOrder)
}

// GetProductReviews returns the approved reviews shown on a product
// page, newest first.
func (s *reviewService) GetProductReviews(productID uint, page, pageSize int) ([]model.Review, int64, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrProductNotFound
		}
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 5
	}

	status := model.ReviewStatusApproved
	filter := repository.ReviewFilter{ProductID: &productID, Status: &status}
	offset := (page - 1) * pageSize
	return s.reviewRepo.ListReviews(filter, offset, pageSize, "", "")
}

func (s *reviewService) GetProductStats(productID uint) (*ProductReviewStats, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	count, avg, err := s.reviewRepo.GetApprovedStats(productID)
	if err != nil {
		return nil, err
	}

	distribution, err := s.reviewRepo.GetRatingDistribution(productID)
	if err != nil {
		return nil, err
	}

	rating := float64(int(avg*10+0.5)) / 10
	if count == 0 {
		rating = 0
	}

	return &ProductReviewStats{
		Rating:       rating,
		NumReviews:   count,
		Distribution: distribution,
	}, nil
}

// Update applies a content edit to rating, comment or images. The
// author may edit their own review at any moderation status; moderators
// may edit anyone's. A rating change on an approved review moves the
// published aggregate, so it triggers a recompute.
func (s *reviewService) Update(reviewID, actorID uint, actorRole model.UserRole, input UpdateReviewInput) (*model.Review, error) {
	review, err := s.Get(reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != actorID && !actorRole.IsModerator() {
		return nil, ErrReviewForbidden
	}

	ratingChanged := false

	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, ErrInvalidRating
		}
		if *input.Rating != review.Rating {
			ratingChanged = true
		}
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}
	if input.Images != nil {
		review.Images = *input.Images
	}

	if err := s.reviewRepo.UpdateReview(review); err != nil {
		return nil, err
	}

	if ratingChanged && review.Status == model.ReviewStatusApproved {
		if err := s.rating.Recompute(review.ProductID); err != nil {
			return nil, err
		}
	}

	return s.reviewRepo.GetReviewByID(reviewID)
}

// Delete removes a review permanently. The author may delete their own
// review; moderators may delete any. Removing an approved review drops
// it from the product aggregate immediately.
func (s *reviewService) Delete(reviewID, actorID uint, actorRole model.UserRole) error {
	review, err := s.Get(reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actorID && !actorRole.IsModerator() {
		return ErrReviewForbidden
	}

	if err := s.reviewRepo.DeleteReview(reviewID); err != nil {
		return err
	}

	logger.Info("Review deleted", map[string]interface{}{
		"review_id": reviewID,
		"actor_id":  actorID,
	})

	if review.Status == model.ReviewStatusApproved {
		return s.rating.Recompute(review.ProductID)
	}
	return nil
}

// Moderate applies an approve or reject decision. The product aggregate
// is recomputed whenever the review enters or leaves the approved set,
// including approved-to-approved rating corrections and rejections of a
// previously approved review.
func (s *reviewService) Moderate(reviewID, moderatorID uint, input ModerateReviewInput) (*model.Review, error) {
	if input.Status != model.ReviewStatusApproved && input.Status != model.ReviewStatusRejected {
		return nil, ErrInvalidReviewStatus
	}

	review, err := s.Get(reviewID)
	if err != nil {
		return nil, err
	}

	oldStatus := review.Status
	now := time.Now()
	review.Status = input.Status
	review.Response = model.ModeratorResponse{
		Comment:   input.Response,
		UserID:    &moderatorID,
		CreatedAt: &now,
	}

	if err := s.reviewRepo.UpdateReview(review); err != nil {
		logger.Error("Failed to apply moderation decision", err, map[string]interface{}{
			"review_id": reviewID,
			"status":    input.Status,
		})
		return nil, err
	}

	if oldStatus == model.ReviewStatusApproved || input.Status == model.ReviewStatusApproved {
		if err := s.rating.Recompute(review.ProductID); err != nil {
			return nil, err
		}
	}

	logger.Info("Review moderated", map[string]interface{}{
		"review_id":    reviewID,
		"moderator_id": moderatorID,
		"from":         oldStatus,
		"to":           input.Status,
	})

	loaded, err := s.reviewRepo.GetReviewByID(reviewID)
	if err != nil {
		return nil, err
	}

	switch input.Status {
	case model.ReviewStatusApproved:
		s.notifier.ReviewApproved(loaded)
	case model.ReviewStatusRejected:
		s.notifier.ReviewRejected(loaded)
	}

	return loaded, nil
}

// Report flags a review for moderator attention. Reporting is
// idempotent: only the first report of a review notifies the ops team,
// no matter how many clients race on it.
func (s *reviewService) Report(reviewID uint) error {
	review, err := s.Get(reviewID)
	if err != nil {
		return err
	}

	firstTransition, err := s.reviewRepo.MarkReported(reviewID)
	if err != nil {
		return err
	}

	if firstTransition {
		s.notifier.ReviewReported(review)
	}
	return nil
}

func (s *reviewService) MarkHelpful(reviewID uint) (*model.Review, error) {
	if err := s.reviewRepo.IncrementHelpful(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return s.reviewRepo.GetReviewByID(reviewID)
}

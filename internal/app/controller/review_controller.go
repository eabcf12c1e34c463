package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nexora/nexora-backend/internal/app/model"
	"github.com/nexora/nexora-backend/internal/app/repository"
	"github.com/nexora/nexora-backend/internal/app/service"
	apperrors "github.com/nexora/nexora-backend/internal/errors"
	"github.com/nexora/nexora-backend/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type paginationResponse struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

func paginate(total int64, page, pageSize int) paginationResponse {
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return paginationResponse{Total: total, Page: page, Pages: pages}
}

// CreateReview handles review submission.
// @Summary Submit a product review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param review body service.SubmitReviewInput true "Review"
// @Success 201 {object} model.Review
// @Router /reviews [post]
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var input service.SubmitReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid review payload")
		return
	}

	review, err := ctrl.reviewService.Submit(userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrAlreadyReviewed):
			apperrors.Conflict(c, apperrors.ReviewAlreadyExists, "You have already reviewed this product")
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
		default:
			apperrors.InternalError(c, "Failed to submit review")
		}
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetReviews lists reviews across products. Moderators see every
// status and the reported flag; everyone else gets the approved set
// only, whatever filters the request carries.
// @Summary List reviews
// @Tags Reviews
// @Produce json
// @Param status query string false "Filter by status"
// @Param product_id query int false "Filter by product"
// @Param user_id query int false "Filter by author"
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} object
// @Router /reviews [get]
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	var filter repository.ReviewFilter

	if statusParam := c.Query("status"); statusParam != "" {
		status := model.ReviewStatus(statusParam)
		if !status.Valid() {
			apperrors.BadRequest(c, apperrors.ReviewInvalidStatus, "Unknown review status")
			return
		}
		filter.Status = &status
	}

	if productParam := c.Query("product_id"); productParam != "" {
		productID, err := strconv.ParseUint(productParam, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
			return
		}
		id := uint(productID)
		filter.ProductID = &id
	}

	if userParam := c.Query("user_id"); userParam != "" {
		userID, err := strconv.ParseUint(userParam, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
			return
		}
		id := uint(userID)
		filter.UserID = &id
	}

	if reportedParam := c.Query("reported"); reportedParam != "" {
		reported := reportedParam == "true"
		filter.Reported = &reported
	}

	if role, ok := middleware.GetUserRole(c); !ok || !role.IsModerator() {
		approved := model.ReviewStatusApproved
		filter.Status = &approved
		filter.Reported = nil
	}

	reviews, total, err := ctrl.reviewService.List(filter, page, pageSize, "", "")
	if err != nil {
		apperrors.InternalError(c, "Failed to list reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":    reviews,
		"pagination": paginate(total, page, pageSize),
	})
}

// GetReview returns a single review.
// @Summary Get a review
// @Tags Reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} model.Review
// @Router /reviews/{id} [get]
func (ctrl *ReviewController) GetReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	review, err := ctrl.reviewService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		} else {
			apperrors.InternalError(c, "Failed to fetch review")
		}
		return
	}

	c.JSON(http.StatusOK, review)
}

// GetMyReviews returns the authenticated user's reviews at any status.
// @Summary List my reviews
// @Tags Reviews
// @Produce json
// @Success 200 {object} object
// @Router /users/me/reviews [get]
func (ctrl *ReviewController) GetMyReviews(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	filter := repository.ReviewFilter{UserID: &userID}
	reviews, total, err := ctrl.reviewService.List(filter, page, pageSize, "", "")
	if err != nil {
		apperrors.InternalError(c, "Failed to list reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":    reviews,
		"pagination": paginate(total, page, pageSize),
	})
}

type updateReviewRequest struct {
	Rating  *int                 `json:"rating"`
	Comment *string              `json:"comment"`
	Images  *[]model.ReviewImage `json:"images"`
	// Moderator-only; silently ignored on author self-edits
	Status   *model.ReviewStatus `json:"status"`
	Response string              `json:"response"`
}

// UpdateReview applies an author edit to rating, comment or images.
// Moderators may additionally change any review's content and set its
// status in the same request.
// @Summary Edit a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param review body updateReviewRequest true "Fields to change"
// @Success 200 {object} model.Review
// @Router /reviews/{id} [patch]
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid review payload")
		return
	}

	input := service.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
		Images:  req.Images,
	}

	review, err := ctrl.reviewService.Update(id, userID, role, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrReviewForbidden):
			apperrors.Forbidden(c, "You can only edit your own review")
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
		default:
			apperrors.InternalError(c, "Failed to update review")
		}
		return
	}

	if req.Status != nil && role.IsModerator() {
		review, err = ctrl.reviewService.Moderate(id, userID, service.ModerateReviewInput{
			Status:   *req.Status,
			Response: req.Response,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidReviewStatus):
				apperrors.BadRequest(c, apperrors.ReviewInvalidStatus, "Decision must be approved or rejected")
			case errors.Is(err, service.ErrReviewNotFound):
				apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
			default:
				apperrors.InternalError(c, "Failed to moderate review")
			}
			return
		}
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview removes a review.
// @Summary Delete a review
// @Tags Reviews
// @Param id path int true "Review ID"
// @Success 204
// @Router /reviews/{id} [delete]
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.reviewService.Delete(id, userID, role); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrReviewForbidden):
			apperrors.Forbidden(c, "You can only delete your own review")
		default:
			apperrors.InternalError(c, "Failed to delete review")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ModerateReview applies an approve or reject decision.
// @Summary Moderate a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param decision body service.ModerateReviewInput true "Decision"
// @Success 200 {object} model.Review
// @Router /reviews/{id}/moderate [put]
func (ctrl *ReviewController) ModerateReview(c *gin.Context) {
	moderatorID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input service.ModerateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid moderation payload")
		return
	}

	review, err := ctrl.reviewService.Moderate(id, moderatorID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrInvalidReviewStatus):
			apperrors.BadRequest(c, apperrors.ReviewInvalidStatus, "Status must be approved or rejected")
		default:
			apperrors.InternalError(c, "Failed to moderate review")
		}
		return
	}

	c.JSON(http.StatusOK, review)
}

// MarkHelpful bumps a review helpful counter.
// @Summary Mark a review as helpful
// @Tags Reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} model.Review
// @Router /reviews/{id}/helpful [post]
func (ctrl *ReviewController) MarkHelpful(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	review, err := ctrl.reviewService.MarkHelpful(id)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		} else {
			apperrors.InternalError(c, "Failed to mark review as helpful")
		}
		return
	}

	c.JSON(http.StatusOK, review)
}

// ReportReview flags a review for moderation.
// @Summary Report a review
// @Tags Reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} object
// @Router /reviews/{id}/report [post]
func (ctrl *ReviewController) ReportReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.reviewService.Report(id); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
		} else {
			apperrors.InternalError(c, "Failed to report review")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review reported"})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

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
)

type ProductController struct {
	productService service.ProductService
	reviewService  service.ReviewService
}

func NewProductController(productService service.ProductService, reviewService service.ReviewService) *ProductController {
	return &ProductController{
		productService: productService,
		reviewService:  reviewService,
	}
}

// ListProducts returns the product catalog.
// @Summary List products
// @Tags Products
// @Produce json
// @Param category query string false "Filter by category"
// @Param search query string false "Search in name and description"
// @Param sort query string false "Sort field" Enums(price, rating, created_at)
// @Param order query string false "Sort order" Enums(asc, desc)
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} object
// @Router /products [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	opts := service.ProductListOptions{
		Search:        c.Query("search"),
		SortAscending: c.DefaultQuery("order", "desc") == "asc",
		Limit:         pageSize,
		Offset:        (page - 1) * pageSize,
	}

	if categoryParam := c.Query("category"); categoryParam != "" {
		category := model.ProductCategory(categoryParam)
		opts.Category = &category
	}

	switch c.Query("sort") {
	case "price":
		opts.Sort = repository.ProductSortPrice
	case "rating":
		opts.Sort = repository.ProductSortRating
	default:
		opts.Sort = repository.ProductSortCreatedAt
	}

	if minRatingParam := c.Query("min_rating"); minRatingParam != "" {
		minRating, err := strconv.ParseFloat(minRatingParam, 64)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid min_rating")
			return
		}
		opts.MinRating = &minRating
	}

	products, total, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		apperrors.InternalError(c, "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"pagination": paginate(total, page, pageSize),
	})
}

// GetProduct returns a product by numeric ID or slug.
// @Summary Get a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID or slug"
// @Success 200 {object} model.Product
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	param := c.Param("id")

	var product *model.Product
	var err error
	if id, convErr := strconv.ParseUint(param, 10, 32); convErr == nil {
		product, err = ctrl.productService.GetProductByID(uint(id))
	} else {
		product, err = ctrl.productService.GetProductBySlug(param)
	}

	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		} else {
			apperrors.InternalError(c, "Failed to fetch product")
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a catalog entry (admin).
// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body service.CreateProductInput true "Product"
// @Success 201 {object} model.Product
// @Router /products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var input service.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product payload")
		return
	}

	product, err := ctrl.productService.CreateProduct(input)
	if err != nil {
		if errors.Is(err, service.ErrProductSlugExists) {
			apperrors.Conflict(c, apperrors.ProductSlugExists, "A product with this slug already exists")
		} else {
			apperrors.InternalError(c, "Failed to create product")
		}
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct edits a catalog entry (admin).
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body service.UpdateProductInput true "Fields to change"
// @Success 200 {object} model.Product
// @Router /products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input service.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product payload")
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, input)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		} else {
			apperrors.InternalError(c, "Failed to update product")
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a catalog entry (admin).
// @Summary Delete a product
// @Tags Products
// @Param id path int true "Product ID"
// @Success 204
// @Router /products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		} else {
			apperrors.InternalError(c, "Failed to delete product")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetProductReviews returns the approved reviews on a product page.
// @Summary List a product's published reviews
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Reviews per page" default(5)
// @Success 200 {object} object
// @Router /products/{id}/reviews [get]
func (ctrl *ProductController) GetProductReviews(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 5
	}

	reviews, total, err := ctrl.reviewService.GetProductReviews(id, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		} else {
			apperrors.InternalError(c, "Failed to fetch product reviews")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":    reviews,
		"pagination": paginate(total, page, limit),
	})
}

// GetProductReviewStats returns the aggregate and star distribution.
// @Summary Get a product's review statistics
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} service.ProductReviewStats
// @Router /products/{id}/reviews/stats [get]
func (ctrl *ProductController) GetProductReviewStats(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	stats, err := ctrl.reviewService.GetProductStats(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		} else {
			apperrors.InternalError(c, "Failed to fetch review statistics")
		}
		return
	}

	c.JSON(http.StatusOK, stats)
}

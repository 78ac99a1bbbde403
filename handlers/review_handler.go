package handlers

import (
	"errors"
	"math"
	"strconv"

	"github.com/LisandroRomero/bd-global/middleware"
	"github.com/LisandroRomero/bd-global/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	DB *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{DB: db}
}

// CreateReviewRequest defines the payload for a new review
type CreateReviewRequest struct {
	ProductID uint   `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// UpdateReviewRequest allows partial updates by the review owner
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// TopRatedProduct is one row of the rating aggregation
type TopRatedProduct struct {
	ProductID     uint    `json:"product_id"`
	Name          string  `json:"name"`
	ReviewCount   int64   `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// CreateReview - POST /resenas
//
// Reviews are gated by purchase history: the requester must have at least
// one order containing the product with a completed status.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	userID, _ := middleware.Principal(c)

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return models.ErrValidation("Invalid request body")
	}
	if req.ProductID == 0 {
		return models.ErrValidation("A valid product id is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return models.ErrValidation("The rating must be between 1 and 5")
	}
	if req.Comment == "" {
		return models.ErrValidation("The comment is required")
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		return models.ErrNotFound("Product not found")
	}

	var purchases int64
	err := h.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ? AND orders.status IN ?",
			userID, req.ProductID, models.ReviewableStatuses).
		Count(&purchases).Error
	if err != nil {
		return err
	}
	if purchases == 0 {
		return models.ErrForbidden("You can only review products you have purchased")
	}

	var existing models.Review
	err = h.DB.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&existing).Error
	if err == nil {
		return models.ErrValidation("You have already reviewed this product")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	review := models.Review{
		UserID:    userID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := h.DB.Create(&review).Error; err != nil {
		// The (user, product) unique index backs the check above under
		// concurrency; the central handler maps it to 400
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(review))
}

// GetProductReviews - GET /resenas/product/:productId
func (h *ReviewHandler) GetProductReviews(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return models.ErrValidation("Invalid product id")
	}

	var product models.Product
	if err := h.DB.First(&product, productID).Error; err != nil {
		return models.ErrNotFound("Product not found")
	}

	var reviews []models.Review
	err = h.DB.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name")
	}).Where("product_id = ?", productID).Order("created_at desc").Find(&reviews).Error
	if err != nil {
		return err
	}

	return c.JSON(models.CountResponse(int64(len(reviews)), reviews))
}

// UpdateReview - PATCH /resenas/:id (owner only)
func (h *ReviewHandler) UpdateReview(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return models.ErrValidation("Invalid review id")
	}

	var review models.Review
	if err := h.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound("Review not found")
		}
		return err
	}

	userID, _ := middleware.Principal(c)
	if review.UserID != userID {
		return models.ErrForbidden("You can only update your own reviews")
	}

	var req UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return models.ErrValidation("Invalid request body")
	}
	if req.Rating == nil && req.Comment == nil {
		return models.ErrValidation("Provide a rating or a comment to update")
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return models.ErrValidation("The rating must be between 1 and 5")
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		if *req.Comment == "" {
			return models.ErrValidation("The comment is required")
		}
		review.Comment = *req.Comment
	}

	if err := h.DB.Save(&review).Error; err != nil {
		return err
	}

	return c.JSON(models.SuccessResponse(review))
}

// GetTopRated - GET /resenas/top
//
// Groups reviews by product, computes count and mean rating, joins the
// product name and returns the best-rated products first. Ties keep the
// store's grouping order; no secondary sort key is applied.
func (h *ReviewHandler) GetTopRated(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}

	var rows []TopRatedProduct
	err := h.DB.Model(&models.Review{}).
		Select("reviews.product_id AS product_id, products.name AS name, COUNT(*) AS review_count, AVG(reviews.rating) AS average_rating").
		Joins("JOIN products ON products.id = reviews.product_id").
		Group("reviews.product_id, products.name").
		Order("average_rating DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return err
	}

	// Round in the application so the query stays portable across dialects
	for i := range rows {
		rows[i].AverageRating = math.Round(rows[i].AverageRating*100) / 100
	}

	return c.JSON(models.SuccessResponse(rows))
}

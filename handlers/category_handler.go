package handlers

import (
	"errors"
	"strconv"

	"github.com/LisandroRomero/bd-global/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

// CategoryRequest defines the payload for create/update
type CategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GetCategories - GET /categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := h.DB.Order("id asc").Find(&categories).Error; err != nil {
		return err
	}
	return c.JSON(models.CountResponse(int64(len(categories)), categories))
}

// GetCategoryProducts - GET /categories/:id/products
func (h *CategoryHandler) GetCategoryProducts(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return models.ErrValidation("Invalid category id")
	}

	var category models.Category
	if err := h.DB.First(&category, id).Error; err != nil {
		return models.ErrNotFound("Category not found")
	}

	var products []models.Product
	if err := h.DB.Preload("Category").Where("category_id = ?", id).Order("id asc").Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(models.CountResponse(int64(len(products)), products))
}

// CreateCategory - POST /categories (administrator only)
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.ErrValidation("Invalid request body")
	}
	if req.Name == nil || *req.Name == "" {
		return models.ErrValidation("The category name is required")
	}

	category := models.Category{Name: *req.Name}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := h.DB.Create(&category).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(category))
}

// UpdateCategory - PATCH /categories/:id (administrator only)
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return models.ErrValidation("Invalid category id")
	}

	var category models.Category
	if err := h.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound("Category not found")
		}
		return err
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.ErrValidation("Invalid request body")
	}

	if req.Name != nil {
		if *req.Name == "" {
			return models.ErrValidation("The category name is required")
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := h.DB.Save(&category).Error; err != nil {
		return err
	}

	return c.JSON(models.SuccessResponse(category))
}

// DeleteCategory - DELETE /categories/:id (administrator only)
//
// The delete is hard and unconditional: products referencing the category
// are left orphaned, matching the documented behaviour.
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return models.ErrValidation("Invalid category id")
	}

	var category models.Category
	if err := h.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound("Category not found")
		}
		return err
	}

	if err := h.DB.Delete(&category).Error; err != nil {
		return err
	}

	return c.JSON(models.SuccessResponse(nil))
}

package handlers

import (
	"errors"
	"strconv"

	"github.com/LisandroRomero/bd-global/models"
	"github.com/LisandroRomero/bd-global/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

// CreateProductRequest
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	CategoryID  uint    `json:"category_id" validate:"required"`
}

// UpdateProductRequest allows partial updates
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CategoryID  *uint    `json:"category_id"`
}

// UpdateStockRequest sets the absolute stock of a product
type UpdateStockRequest struct {
	Stock *int `json:"stock"`
}

// CreateProduct - POST /products (administrator only)
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return models.ErrValidation("Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return models.ErrValidation(err.Error())
	}

	var category models.Category
	if err := h.DB.First(&category, req.CategoryID).Error; err != nil {
		return models.ErrValidation("The product must belong to an existing category")
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	}

	if err := h.DB.Create(&product).Error; err != nil {
		return err
	}
	product.Category = category

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(product))
}

// GetProducts - GET /products
//
// Public listing with the category joined in. precioMin / precioMax query
// params filter by an inclusive price range, combined conjunctively.
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	query := h.DB.Preload("Category")

	if raw := c.Query("precioMin"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.ErrValidation("precioMin must be a number")
		}
		query = query.Where("price >= ?", min)
	}
	if raw := c.Query("precioMax"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.ErrValidation("precioMax must be a number")
		}
		query = query.Where("price <= ?", max)
	}

	var products []models.Product
	if err := query.Order("id asc").Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(models.CountResponse(int64(len(products)), products))
}

// GetProduct - GET /products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return models.ErrValidation("Invalid product id")
	}

	var product models.Product
	if err := h.DB.Preload("Category").First(&product, id).Error; err != nil {
		return models.ErrNotFound("Product not found")
	}

	return c.JSON(models.SuccessResponse(product))
}

// UpdateProduct - PATCH /products/:id (administrator only)
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return models.ErrValidation("Invalid product id")
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound("Product not found")
		}
		return err
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return models.ErrValidation("Invalid request body")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return models.ErrValidation("The price must be zero or greater")
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return models.ErrValidation("The stock must be zero or greater")
		}
		product.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := h.DB.First(&category, *req.CategoryID).Error; err != nil {
			return models.ErrValidation("The product must belong to an existing category")
		}
		product.CategoryID = *req.CategoryID
	}

	if err := h.DB.Save(&product).Error; err != nil {
		return err
	}

	return c.JSON(models.SuccessResponse(product))
}

// UpdateStock - PATCH /products/:id/stock
//
// Reachable by any authenticated role, not only administrators.
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return models.ErrValidation("Invalid product id")
	}

	var req UpdateStockRequest
	if err := c.BodyParser(&req); err != nil || req.Stock == nil || *req.Stock < 0 {
		return models.ErrValidation("The stock must be a non-negative number")
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound("Product not found")
		}
		return err
	}

	if err := h.DB.Model(&product).Update("stock", *req.Stock).Error; err != nil {
		return err
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"id":    product.ID,
		"name":  product.Name,
		"stock": product.Stock,
	}))
}

// DeleteProduct - DELETE /products/:id (administrator only)
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return models.ErrValidation("Invalid product id")
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound("Product not found")
		}
		return err
	}

	if err := h.DB.Delete(&product).Error; err != nil {
		return err
	}

	return c.JSON(models.SuccessResponse(nil))
}

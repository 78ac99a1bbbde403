package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/LisandroRomero/bd-global/middleware"
	"github.com/LisandroRomero/bd-global/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CartHandler struct {
	DB *gorm.DB
}

func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{DB: db}
}

// CartItemRequest is one line of an add request
type CartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// AddItemsRequest accepts either a single item or a batch:
// {"product_id":1,"quantity":2} or {"items":[{...},{...}]}
type AddItemsRequest struct {
	CartItemRequest
	Items []CartItemRequest `json:"items"`
}

// findCart loads the user's cart with product details resolved.
func (h *CartHandler) findCart(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := h.DB.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// GetCart - GET /cart
//
// Returns the user's cart, lazily creating an empty one on first access.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID, _ := middleware.Principal(c)

	cart, err := h.findCart(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		newCart := models.Cart{UserID: userID, Items: []models.CartItem{}}
		if err := h.DB.Create(&newCart).Error; err != nil {
			return err
		}
		return c.JSON(models.SuccessResponse(newCart))
	}
	if err != nil {
		return err
	}

	return c.JSON(models.SuccessResponse(cart))
}

// AddItems - POST /cart
//
// The whole batch is validated before anything is written: one bad item
// rejects the request and leaves the cart untouched.
func (h *CartHandler) AddItems(c *fiber.Ctx) error {
	userID, _ := middleware.Principal(c)

	var req AddItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.ErrValidation("Invalid request body")
	}

	items := req.Items
	if len(items) == 0 {
		items = []CartItemRequest{req.CartItemRequest}
	}

	for i, item := range items {
		if item.ProductID == 0 {
			return models.ErrValidation(fmt.Sprintf("item %d: a valid product id is required", i))
		}
		if item.Quantity < 1 {
			return models.ErrValidation(fmt.Sprintf("item %d: quantity must be a positive integer", i))
		}
		var product models.Product
		if err := h.DB.First(&product, item.ProductID).Error; err != nil {
			return models.ErrValidation(fmt.Sprintf("item %d: product %d does not exist", i, item.ProductID))
		}
	}

	// Find the cart or create it if it does not exist
	var cart models.Cart
	err := h.DB.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := h.DB.Create(&cart).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	// Existing lines accumulate quantity, new products append a line
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var line models.CartItem
			err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, item.ProductID).First(&line).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				line = models.CartItem{CartID: cart.ID, ProductID: item.ProductID, Quantity: item.Quantity}
				if err := tx.Create(&line).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
			line.Quantity += item.Quantity
			if err := tx.Save(&line).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	updated, err := h.findCart(userID)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(updated))
}

// RemoveItem - DELETE /cart/:productId
//
// Removing a product that is not in the cart is a no-op; only a missing
// cart is an error.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, _ := middleware.Principal(c)

	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return models.ErrValidation("Invalid product id")
	}

	var cart models.Cart
	if err := h.DB.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return models.ErrNotFound("Cart not found")
	}

	if err := h.DB.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}

	updated, err := h.findCart(userID)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(updated))
}

// ClearCart - DELETE /cart/vaciar
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID, _ := middleware.Principal(c)

	var cart models.Cart
	if err := h.DB.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return models.ErrNotFound("Cart not found")
	}

	if err := h.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}

	updated, err := h.findCart(userID)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(updated))
}

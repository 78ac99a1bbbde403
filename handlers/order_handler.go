package handlers

import (
	"errors"
	"strconv"

	"github.com/LisandroRomero/bd-global/middleware"
	"github.com/LisandroRomero/bd-global/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{DB: db}
}

// CreateOrderRequest defines the payload for order creation
type CreateOrderRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// ChangeStatusRequest defines the payload for status transitions
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// OrderStats is one row of the per-status aggregation
type OrderStats struct {
	Status       string  `json:"status"`
	Count        int64   `json:"count"`
	TotalRevenue float64 `json:"total_revenue"`
}

// CreateOrder - POST /ordenes
//
// Builds an order from the user's cart: load cart with products, check
// live stock per line, snapshot name/price/quantity/subtotal, then persist
// the order, decrement stock and clear the cart in one transaction. The
// stock check itself happens on a plain read before the transaction, so
// two concurrent orders for the same product can both pass it.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, _ := middleware.Principal(c)

	var req CreateOrderRequest
	// Body is optional; the payment method defaults below
	_ = c.BodyParser(&req)
	if req.PaymentMethod == "" {
		req.PaymentMethod = "cash"
	}

	// 1. Load the cart with product details resolved
	var cart models.Cart
	err := h.DB.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && len(cart.Items) == 0) {
		return models.ErrValidation("The cart is empty. Add products to create an order.")
	}
	if err != nil {
		return err
	}

	// 2-3. Verify stock line by line and accumulate the total
	var total float64
	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	newStock := make(map[uint]int, len(cart.Items))

	for _, item := range cart.Items {
		product := item.Product
		if product.Stock < item.Quantity {
			return models.ErrValidation("Insufficient stock for " + product.Name)
		}

		subtotal := product.Price * float64(item.Quantity)
		total += subtotal

		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			Subtotal:    subtotal,
		})
		newStock[product.ID] = product.Stock - item.Quantity
	}

	order := models.Order{
		UserID:        userID,
		Items:         orderItems,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderStatusPending,
	}

	// 4-6. Persist the order, apply the stock decrements and clear the
	// cart atomically
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for productID, stock := range newStock {
			if err := tx.Model(&models.Product{}).Where("id = ?", productID).Update("stock", stock).Error; err != nil {
				return err
			}
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(order))
}

// GetUserOrders - GET /ordenes/user/:userId (owner or administrator)
func (h *OrderHandler) GetUserOrders(c *fiber.Ctx) error {
	targetID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return models.ErrValidation("Invalid user id")
	}

	requesterID, requesterRole := middleware.Principal(c)
	if requesterRole != models.RoleAdministrator && requesterID != uint(targetID) {
		return models.ErrForbidden("You do not have permission to view these orders")
	}

	var orders []models.Order
	if err := h.DB.Preload("Items").Where("user_id = ?", targetID).Order("created_at desc").Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(models.CountResponse(int64(len(orders)), orders))
}

// ChangeStatus - PATCH /ordenes/:id/status (administrator only)
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return models.ErrValidation("Invalid order id")
	}

	var req ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return models.ErrValidation("Invalid request body")
	}
	if !models.IsValidOrderStatus(req.Status) {
		return models.ErrValidation("Invalid order status")
	}

	var order models.Order
	if err := h.DB.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound("Order not found")
		}
		return err
	}

	if err := h.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		return err
	}

	return c.JSON(models.SuccessResponse(order))
}

// GetStats - GET /ordenes/stats (administrator only)
//
// Per-status order count and summed total, highest revenue first.
func (h *OrderHandler) GetStats(c *fiber.Ctx) error {
	var stats []OrderStats
	err := h.DB.Model(&models.Order{}).
		Select("status, COUNT(*) AS count, SUM(total) AS total_revenue").
		Group("status").
		Order("total_revenue DESC").
		Scan(&stats).Error
	if err != nil {
		return err
	}

	return c.JSON(models.SuccessResponse(stats))
}

package handlers_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/LisandroRomero/bd-global/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedPurchase records an order of the product for the user with the
// given status, bypassing the cart flow.
func seedPurchase(t *testing.T, db *gorm.DB, userID uint, product models.Product, status string) models.Order {
	t.Helper()
	order := models.Order{
		UserID:        userID,
		Total:         product.Price,
		PaymentMethod: "cash",
		Status:        status,
		Items: []models.OrderItem{{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    1,
			Subtotal:    product.Price,
		}},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestCreateReviewPurchaseGate(t *testing.T) {
	app, db := setupTestApp(t)
	token, userID := registerUser(t, app, "Ana", "ana@example.com")
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, category.ID, "Keyboard", 49.99, 10)

	payload := fiber.Map{
		"product_id": product.ID,
		"rating":     5,
		"comment":    "Great keys",
	}

	t.Run("no purchase at all", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", "/resenas", token, payload)
		assert.Equal(t, fiber.StatusForbidden, status)
		assert.Contains(t, errMessage(t, body), "purchased")
	})

	t.Run("pending order does not count", func(t *testing.T) {
		seedPurchase(t, db, userID, product, models.OrderStatusPending)
		status, _ := doJSON(t, app, "POST", "/resenas", token, payload)
		assert.Equal(t, fiber.StatusForbidden, status)
	})

	t.Run("paid order opens the gate", func(t *testing.T) {
		seedPurchase(t, db, userID, product, models.OrderStatusPaid)
		status, body := doJSON(t, app, "POST", "/resenas", token, payload)
		require.Equal(t, fiber.StatusCreated, status)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, float64(5), data["rating"])
		assert.Equal(t, "Great keys", data["comment"])
	})

	t.Run("one review per product per user", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", "/resenas", token, payload)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, errMessage(t, body), "already reviewed")
	})
}

func TestCreateReviewValidation(t *testing.T) {
	app, db := setupTestApp(t)
	token, userID := registerUser(t, app, "Ana", "ana@example.com")
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, category.ID, "Keyboard", 49.99, 10)
	seedPurchase(t, db, userID, product, models.OrderStatusDelivered)

	t.Run("rating out of range", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", "/resenas", token, fiber.Map{
			"product_id": product.ID,
			"rating":     6,
			"comment":    "Too good",
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, errMessage(t, body), "between 1 and 5")
	})

	t.Run("missing comment", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/resenas", token, fiber.Map{
			"product_id": product.ID,
			"rating":     4,
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("unknown product", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/resenas", token, fiber.Map{
			"product_id": 9999,
			"rating":     4,
			"comment":    "Phantom",
		})
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestGetProductReviews(t *testing.T) {
	app, db := setupTestApp(t)
	_, anaID := registerUser(t, app, "Ana", "ana@example.com")
	_, bobID := registerUser(t, app, "Bob", "bob@example.com")
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, category.ID, "Keyboard", 49.99, 10)

	now := time.Now()
	older := models.Review{UserID: anaID, ProductID: product.ID, Rating: 4, Comment: "Fine", CreatedAt: now.Add(-time.Hour)}
	newer := models.Review{UserID: bobID, ProductID: product.ID, Rating: 5, Comment: "Excellent", CreatedAt: now}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	t.Run("unknown product", func(t *testing.T) {
		status, _ := doJSON(t, app, "GET", "/resenas/product/9999", "", nil)
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("newest first with reviewer name", func(t *testing.T) {
		path := fmt.Sprintf("/resenas/product/%d", product.ID)
		status, body := doJSON(t, app, "GET", path, "", nil)
		require.Equal(t, fiber.StatusOK, status)
		require.Equal(t, float64(2), body["count"])

		rows := body["data"].([]interface{})
		first := rows[0].(map[string]interface{})
		assert.Equal(t, "Excellent", first["comment"])
		assert.Equal(t, "Bob", first["user"].(map[string]interface{})["name"])
	})
}

func TestUpdateReview(t *testing.T) {
	app, db := setupTestApp(t)
	anaToken, anaID := registerUser(t, app, "Ana", "ana@example.com")
	bobToken, _ := registerUser(t, app, "Bob", "bob@example.com")
	category := seedCategory(t, db, "Electronics")
	product := seedProduct(t, db, category.ID, "Keyboard", 49.99, 10)

	review := models.Review{UserID: anaID, ProductID: product.ID, Rating: 3, Comment: "Okay"}
	require.NoError(t, db.Create(&review).Error)
	path := fmt.Sprintf("/resenas/%d", review.ID)

	t.Run("only the owner", func(t *testing.T) {
		status, _ := doJSON(t, app, "PATCH", path, bobToken, fiber.Map{"rating": 1})
		assert.Equal(t, fiber.StatusForbidden, status)
	})

	t.Run("rating out of range", func(t *testing.T) {
		status, _ := doJSON(t, app, "PATCH", path, anaToken, fiber.Map{"rating": 0})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("nothing to update", func(t *testing.T) {
		status, _ := doJSON(t, app, "PATCH", path, anaToken, fiber.Map{})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("unknown review", func(t *testing.T) {
		status, _ := doJSON(t, app, "PATCH", "/resenas/9999", anaToken, fiber.Map{"rating": 4})
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("owner updates", func(t *testing.T) {
		status, body := doJSON(t, app, "PATCH", path, anaToken, fiber.Map{
			"rating":  5,
			"comment": "Grew on me",
		})
		require.Equal(t, fiber.StatusOK, status)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, float64(5), data["rating"])
		assert.Equal(t, "Grew on me", data["comment"])
	})
}

func TestTopRated(t *testing.T) {
	app, db := setupTestApp(t)
	_, anaID := registerUser(t, app, "Ana", "ana@example.com")
	_, bobID := registerUser(t, app, "Bob", "bob@example.com")
	_, eveID := registerUser(t, app, "Eve", "eve@example.com")
	category := seedCategory(t, db, "Electronics")
	keyboard := seedProduct(t, db, category.ID, "Keyboard", 49.99, 10)
	mouse := seedProduct(t, db, category.ID, "Mouse", 19.99, 10)
	seedProduct(t, db, category.ID, "Webcam", 29.99, 10)

	for _, review := range []models.Review{
		{UserID: anaID, ProductID: keyboard.ID, Rating: 5, Comment: "Great"},
		{UserID: bobID, ProductID: keyboard.ID, Rating: 4, Comment: "Good"},
		{UserID: eveID, ProductID: keyboard.ID, Rating: 4, Comment: "Solid"},
		{UserID: anaID, ProductID: mouse.ID, Rating: 4, Comment: "Fine"},
	} {
		r := review
		require.NoError(t, db.Create(&r).Error)
	}

	t.Run("ordered by mean rating", func(t *testing.T) {
		status, body := doJSON(t, app, "GET", "/resenas/top", "", nil)
		require.Equal(t, fiber.StatusOK, status)
		rows := body["data"].([]interface{})
		require.Len(t, rows, 2, "products without reviews are excluded")

		first := rows[0].(map[string]interface{})
		second := rows[1].(map[string]interface{})
		assert.Equal(t, "Keyboard", first["name"])
		assert.Equal(t, float64(3), first["review_count"])
		// mean of 5,4,4 rounded to two decimals
		assert.Equal(t, 4.33, first["average_rating"])
		assert.Equal(t, "Mouse", second["name"])
		assert.Equal(t, float64(4), second["average_rating"])
	})

	t.Run("limit", func(t *testing.T) {
		status, body := doJSON(t, app, "GET", "/resenas/top?limit=1", "", nil)
		require.Equal(t, fiber.StatusOK, status)
		rows := body["data"].([]interface{})
		require.Len(t, rows, 1)
		assert.Equal(t, "Keyboard", rows[0].(map[string]interface{})["name"])
	})
}

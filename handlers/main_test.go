package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/LisandroRomero/bd-global/middleware"
	"github.com/LisandroRomero/bd-global/models"
	"github.com/LisandroRomero/bd-global/routes"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestApp builds the full application against an in-memory database.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	))

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	routes.Setup(app, db)
	return app, db
}

// doJSON performs an in-process request and decodes the envelope.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

// errMessage digs the error message out of a failed envelope.
func errMessage(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected an error body, got %v", body)
	msg, _ := errBody["message"].(string)
	return msg
}

// registerUser registers through the API and returns the session token and id.
func registerUser(t *testing.T, app *fiber.App, name, email string) (string, uint) {
	t.Helper()
	status, body := doJSON(t, app, "POST", "/users", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	return data["token"].(string), uint(user["id"].(float64))
}

// registerAdmin registers a user and promotes it to administrator.
func registerAdmin(t *testing.T, app *fiber.App, db *gorm.DB, name, email string) (string, uint) {
	t.Helper()
	token, id := registerUser(t, app, name, email)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", id).
		Update("role", models.RoleAdministrator).Error)
	return token, id
}

// seedCategory inserts a category directly in the store.
func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name, Description: name + " stuff"}
	require.NoError(t, db.Create(&category).Error)
	return category
}

// seedProduct inserts a product directly in the store.
func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:        name,
		Description: "test product",
		Price:       price,
		Stock:       stock,
		CategoryID:  categoryID,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func userPath(id uint) string {
	return fmt.Sprintf("/users/%d", id)
}

// addToCart pushes one line through the API.
func addToCart(t *testing.T, app *fiber.App, token string, productID uint, quantity int) {
	t.Helper()
	status, _ := doJSON(t, app, "POST", "/cart", token, fiber.Map{
		"product_id": productID,
		"quantity":   quantity,
	})
	require.Equal(t, fiber.StatusOK, status)
}

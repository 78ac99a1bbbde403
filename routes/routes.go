package routes

import (
	"github.com/LisandroRomero/bd-global/handlers"
	"github.com/LisandroRomero/bd-global/middleware"
	"github.com/LisandroRomero/bd-global/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup registers every route of the API on the app.
func Setup(app *fiber.App, db *gorm.DB) {
	authHandler := handlers.NewAuthHandler(db)
	userHandler := handlers.NewUserHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db)
	productHandler := handlers.NewProductHandler(db)
	cartHandler := handlers.NewCartHandler(db)
	orderHandler := handlers.NewOrderHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)

	auth := middleware.AuthRequired(db)
	admin := middleware.RequireRoles(models.RoleAdministrator)

	// Users
	app.Post("/users", authHandler.Register)
	app.Post("/users/login", authHandler.Login)
	app.Get("/users/me", auth, userHandler.Me)
	app.Get("/users", auth, admin, userHandler.ListUsers)
	app.Patch("/users/:id", auth, userHandler.UpdateUser)
	app.Delete("/users/:id", auth, userHandler.DeleteUser)

	// Categories
	app.Get("/categories", categoryHandler.GetCategories)
	app.Get("/categories/:id/products", categoryHandler.GetCategoryProducts)
	app.Post("/categories", auth, admin, categoryHandler.CreateCategory)
	app.Patch("/categories/:id", auth, admin, categoryHandler.UpdateCategory)
	app.Delete("/categories/:id", auth, admin, categoryHandler.DeleteCategory)

	// Products; stock adjustment only needs a session, not the admin role
	app.Get("/products", productHandler.GetProducts)
	app.Get("/products/:id", productHandler.GetProduct)
	app.Patch("/products/:id/stock", auth, productHandler.UpdateStock)
	app.Post("/products", auth, admin, productHandler.CreateProduct)
	app.Patch("/products/:id", auth, admin, productHandler.UpdateProduct)
	app.Delete("/products/:id", auth, admin, productHandler.DeleteProduct)

	// Cart; /cart/vaciar must be registered before /cart/:productId or the
	// param route would swallow it
	app.Get("/cart", auth, cartHandler.GetCart)
	app.Post("/cart", auth, cartHandler.AddItems)
	app.Delete("/cart/vaciar", auth, cartHandler.ClearCart)
	app.Delete("/cart/:productId", auth, cartHandler.RemoveItem)

	// Orders
	app.Post("/ordenes", auth, orderHandler.CreateOrder)
	app.Get("/ordenes/stats", auth, admin, orderHandler.GetStats)
	app.Get("/ordenes/user/:userId", auth, orderHandler.GetUserOrders)
	app.Patch("/ordenes/:id/status", auth, admin, orderHandler.ChangeStatus)

	// Reviews
	app.Post("/resenas", auth, reviewHandler.CreateReview)
	app.Get("/resenas/top", reviewHandler.GetTopRated)
	app.Get("/resenas/product/:productId", reviewHandler.GetProductReviews)
	app.Patch("/resenas/:id", auth, reviewHandler.UpdateReview)
}

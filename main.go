package main

import (
	"log"

	"github.com/LisandroRomero/bd-global/config"
	"github.com/LisandroRomero/bd-global/middleware"
	"github.com/LisandroRomero/bd-global/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.LoadConfig()

	// The connection is acquired once; a failure here is fatal
	db, err := config.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if cfg.SeedDB {
		if err := config.ResetAndMigrate(db); err != nil {
			log.Fatalf("Failed to reset database: %v", err)
		}
	} else {
		if err := config.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "Shop Backend",
		ServerHeader: "Shop Backend Server/1.0",
		ErrorHandler: middleware.ErrorHandler,
	})

	middleware.SetupMiddleware(app)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	routes.Setup(app, db)

	log.Printf("🚀 Server starting on host %s in port %s mode", cfg.HOST, cfg.AppPort)

	if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package middleware

import (
	"errors"

	"github.com/LisandroRomero/bd-global/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// SetupMiddleware configures all application middleware
func SetupMiddleware(app *fiber.App) {
	// Request ID middleware - adds unique ID to each request
	app.Use(requestid.New())

	// Logger middleware - logs all requests
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${method} ${path} - ${ip} - ${latency}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))

	// Recover middleware - recovers from panics
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Security middleware
	app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: false,
		ExposeHeaders:    "X-Request-ID",
		MaxAge:           86400, // 24 hours
	}))
}

// ErrorHandler is the single translator every handler error funnels
// through; it renders the {success:false, error:{message}} envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Typed application errors carry their own status
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status()).JSON(models.ErrorResponse(appErr.Message))
	}

	// Uniqueness-constraint violations surfaced by the store
	if field, ok := models.DuplicateKeyField(err); ok {
		msg := "Duplicate value. Please use another value."
		if field != "" {
			msg = "Duplicate value for field " + field + ". Please use another value."
		}
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(msg))
	}

	// Fiber's own errors (404 for unknown routes, body limits, ...)
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse(fiberErr.Message))
	}

	// Anything unrecognized stays generic
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Internal Server Error"))
}

package middleware

import (
	"strings"

	"github.com/LisandroRomero/bd-global/models"
	"github.com/LisandroRomero/bd-global/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthRequired verifies the bearer token and attaches the principal
// {id, role} to the request. The referenced user must still exist: a
// token outliving its account is rejected.
func AuthRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.ErrAuth("Access denied: no token provided")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return models.ErrAuth("Token format is invalid")
		}

		userID, _, err := utils.ParseToken(tokenString)
		if err != nil {
			return models.ErrAuth("Token is invalid or has expired. Please log in again.")
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return models.ErrAuth("The user belonging to this token no longer exists")
		}

		// Role comes from the live user record, not the token, so a role
		// change takes effect on the next request.
		c.Locals("user_id", user.ID)
		c.Locals("role", user.Role)

		return c.Next()
	}
}

// RequireRoles restricts a route to the given roles; run after AuthRequired.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return models.ErrForbidden("You do not have permission to perform this action")
	}
}

// Principal returns the {id, role} pair attached by AuthRequired.
func Principal(c *fiber.Ctx) (uint, string) {
	id, _ := c.Locals("user_id").(uint)
	role, _ := c.Locals("role").(string)
	return id, role
}

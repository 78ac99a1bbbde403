package handlers

import (
	"errors"
	"strconv"

	"github.com/LisandroRomero/bd-global/middleware"
	"github.com/LisandroRomero/bd-global/models"
	"github.com/LisandroRomero/bd-global/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// UpdateUserRequest carries the updatable profile fields; nil means
// "leave unchanged"
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Me - GET /users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, _ := middleware.Principal(c)

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return models.ErrNotFound("User not found")
	}

	return c.JSON(models.SuccessResponse(user))
}

// ListUsers - GET /users (administrator only, enforced in the route)
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := h.DB.Order("id asc").Find(&users).Error; err != nil {
		return err
	}

	return c.JSON(models.CountResponse(int64(len(users)), users))
}

// UpdateUser - PATCH /users/:id (self or administrator)
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	targetID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return models.ErrValidation("Invalid user id")
	}

	requesterID, requesterRole := middleware.Principal(c)
	isAdmin := requesterRole == models.RoleAdministrator
	if !isAdmin && requesterID != uint(targetID) {
		return models.ErrForbidden("You can only update your own profile")
	}

	var user models.User
	if err := h.DB.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound("User not found")
		}
		return err
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.ErrValidation("Invalid request body")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return models.ErrValidation("password must be at least 8")
		}
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return err
		}
		user.Password = hashed
	}
	if req.Role != nil {
		// Role changes are an administrator-only mutation
		if !isAdmin {
			return models.ErrForbidden("Only administrators can change roles")
		}
		if *req.Role != models.RoleCustomer && *req.Role != models.RoleAdministrator {
			return models.ErrValidation("Invalid role")
		}
		user.Role = *req.Role
	}

	if err := h.DB.Save(&user).Error; err != nil {
		return err
	}

	return c.JSON(models.SuccessResponse(user))
}

// DeleteUser - DELETE /users/:id (self or administrator; an administrator
// cannot delete their own account)
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	targetID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return models.ErrValidation("Invalid user id")
	}

	requesterID, requesterRole := middleware.Principal(c)
	isAdmin := requesterRole == models.RoleAdministrator
	if !isAdmin && requesterID != uint(targetID) {
		return models.ErrForbidden("You can only delete your own account")
	}
	if isAdmin && requesterID == uint(targetID) {
		return models.ErrValidation("Administrators cannot delete their own account")
	}

	var user models.User
	if err := h.DB.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound("User not found")
		}
		return err
	}

	if err := h.DB.Delete(&user).Error; err != nil {
		return err
	}

	return c.JSON(models.SuccessResponse(nil))
}

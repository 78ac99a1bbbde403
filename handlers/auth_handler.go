package handlers

import (
	"github.com/LisandroRomero/bd-global/models"
	"github.com/LisandroRomero/bd-global/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{DB: db}
}

// RegisterRequest defines the payload for registration
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Address  string  `json:"address"`
	Phone    *string `json:"phone"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authPayload is the {token, publicUserView} answer of register and login
func authPayload(token string, user models.User) fiber.Map {
	return fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	}
}

// Register - POST /users
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return models.ErrValidation("Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return models.ErrValidation(err.Error())
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Address:  req.Address,
		Phone:    req.Phone,
		Role:     models.RoleCustomer,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		// Duplicate email surfaces through the central error handler as 400
		return err
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(authPayload(token, user)))
}

// Login - POST /users/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.ErrValidation("Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return models.ErrValidation("Please provide email and password")
	}

	// One uniform message for unknown email and wrong password
	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return models.ErrAuth("Invalid email or password")
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return models.ErrAuth("Invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return err
	}

	return c.JSON(models.SuccessResponse(authPayload(token, user)))
}

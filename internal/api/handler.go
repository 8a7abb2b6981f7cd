package api

import (
	"github.com/gofiber/fiber/v2"

	"mercado-service/internal/service"
	"mercado-service/internal/validation"
)

type AuthHandler struct {
	authService service.AuthService
	validate    *validation.Validator
	uploadDir   string
}

func NewAuthHandler(authService service.AuthService, validate *validation.Validator, uploadDir string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validate,
		uploadDir:   uploadDir,
	}
}

type RegisterRequest struct {
	FirstName string  `json:"firstName" form:"firstName" validate:"required"`
	LastName  *string `json:"lastName,omitempty" form:"lastName"`
	Email     string  `json:"email" form:"email" validate:"required,email"`
	Password  string  `json:"password" form:"password" validate:"required,min=4"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request RegisterRequest

	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Cannot parse request body")
	}

	if err := h.validate.Check(&request); err != nil {
		return respondError(c, err)
	}

	_, err := h.authService.RegisterUser(c.UserContext(), service.RegisterInput{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		Password:  request.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Account created successfully"})
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request LoginRequest

	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Cannot parse request body")
	}

	if err := h.validate.Check(&request); err != nil {
		return respondError(c, err)
	}

	user, token, err := h.authService.LoginUser(c.UserContext(), request.Email, request.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Welcome " + user.FirstName,
		"user":    user,
		"token":   token,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := h.authService.GetUserProfile(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

type ProfileRequest struct {
	FirstName string  `json:"firstName" form:"firstName" validate:"required"`
	LastName  *string `json:"lastName,omitempty" form:"lastName"`
	Email     string  `json:"email" form:"email" validate:"required,email"`
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request ProfileRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Cannot parse request body")
	}

	photo, err := acquireUpload(c, h.uploadDir, PhotoField)
	if err != nil {
		return respondError(c, err)
	}
	defer photo.Release()

	if err := h.validate.Check(&request); err != nil {
		return respondError(c, err)
	}

	user, err := h.authService.UpdateUserProfile(c.UserContext(), userID, service.ProfileInput{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		PhotoFile: photo.Path(),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User profile updated successfully",
		"user":    user,
	})
}

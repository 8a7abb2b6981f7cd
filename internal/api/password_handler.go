package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mercado-service/internal/service"
	"mercado-service/internal/validation"
)

type PasswordHandler struct {
	passwordService service.PasswordService
	validate        *validation.Validator
	uploadDir       string
}

func NewPasswordHandler(passwordService service.PasswordService, validate *validation.Validator, uploadDir string) *PasswordHandler {
	return &PasswordHandler{
		passwordService: passwordService,
		validate:        validate,
		uploadDir:       uploadDir,
	}
}

type PasswordRequest struct {
	Website  string `json:"website" form:"website" validate:"required"`
	Username string `json:"username" form:"username" validate:"required"`
	Value    string `json:"value" form:"value" validate:"required"`
}

func (r PasswordRequest) input(logo *tempUpload) service.PasswordInput {
	return service.PasswordInput{
		Website:  r.Website,
		Username: r.Username,
		Value:    r.Value,
		LogoFile: logo.Path(),
	}
}

func (h *PasswordHandler) ListPasswords(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	passwords, err := h.passwordService.ListPasswords(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(passwords)
}

func (h *PasswordHandler) GetPassword(c *fiber.Ctx) error {
	passwordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid password ID format")
	}

	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	password, err := h.passwordService.GetPassword(c.UserContext(), passwordID, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(password)
}

func (h *PasswordHandler) CreatePassword(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	logo, err := acquireUpload(c, h.uploadDir, PhotoField)
	if err != nil {
		return respondError(c, err)
	}
	defer logo.Release()

	if logo == nil {
		return respondError(c, service.ErrFileRequired)
	}

	var request PasswordRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Cannot parse request body")
	}

	if err := h.validate.Check(&request); err != nil {
		return respondError(c, err)
	}

	password, err := h.passwordService.CreatePassword(c.UserContext(), userID, request.input(logo))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Password created successfully",
		"password": password,
	})
}

func (h *PasswordHandler) UpdatePassword(c *fiber.Ctx) error {
	passwordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid password ID format")
	}

	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request PasswordRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Cannot parse request body")
	}

	logo, err := acquireUpload(c, h.uploadDir, PhotoField)
	if err != nil {
		return respondError(c, err)
	}
	defer logo.Release()

	if err := h.validate.Check(&request); err != nil {
		return respondError(c, err)
	}

	password, err := h.passwordService.UpdatePassword(c.UserContext(), passwordID, userID, request.input(logo))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Password updated successfully",
		"password": password,
	})
}

func (h *PasswordHandler) DeletePassword(c *fiber.Ctx) error {
	passwordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid password ID format")
	}

	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	password, err := h.passwordService.DeletePassword(c.UserContext(), passwordID, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password deleted successfully",
		"id":      password.ID,
	})
}

package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"mercado-service/internal/media"
	"mercado-service/internal/repository"
	"mercado-service/internal/service"
	"mercado-service/internal/validation"
)

// respondError maps a handler failure onto its status code and JSON body.
func respondError(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verrs.Error(), "details": verrs})
	}

	switch {
	case errors.Is(err, service.ErrFileRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A photo file is required"})
	case errors.Is(err, media.ErrUnsupportedImage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only image files can be uploaded"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Wrong email and/or password"})
	case errors.Is(err, service.ErrEmailTaken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "An account with this email exists already"})
	case errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, service.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	case errors.Is(err, service.ErrPasswordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Password not found"})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}

	slog.ErrorContext(c.UserContext(), "Request failed",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

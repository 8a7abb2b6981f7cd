package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Banner = "Mercado Marketplace API v1"

type Handlers struct {
	Auth      *AuthHandler
	Items     *ItemHandler
	Passwords *PasswordHandler
}

func SetupRoutes(app *fiber.App, serviceName string, tokens TokenResolver, h Handlers) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": Banner})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": serviceName})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	requireAuth := AuthMiddleware(tokens)

	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Get("/me", requireAuth, h.Auth.Me)
	authRoutes.Put("/profile", requireAuth, h.Auth.UpdateProfile)

	itemRoutes := app.Group("/items", requireAuth)
	itemRoutes.Get("/", h.Items.ListItems)
	itemRoutes.Get("/:id", h.Items.GetItem)
	itemRoutes.Post("/", h.Items.CreateItem)
	itemRoutes.Put("/:id", h.Items.UpdateItem)
	itemRoutes.Delete("/:id", h.Items.DeleteItem)

	passwordRoutes := app.Group("/passwords", requireAuth)
	passwordRoutes.Get("/", h.Passwords.ListPasswords)
	passwordRoutes.Get("/:id", h.Passwords.GetPassword)
	passwordRoutes.Post("/", h.Passwords.CreatePassword)
	passwordRoutes.Put("/:id", h.Passwords.UpdatePassword)
	passwordRoutes.Delete("/:id", h.Passwords.DeletePassword)
}

package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mercado-service/internal/service"
	"mercado-service/internal/validation"
)

type ItemHandler struct {
	itemService service.ItemService
	validate    *validation.Validator
	uploadDir   string
}

func NewItemHandler(itemService service.ItemService, validate *validation.Validator, uploadDir string) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		validate:    validate,
		uploadDir:   uploadDir,
	}
}

// Price bounds match the NUMERIC(12,2) price column.
type ItemRequest struct {
	Title       string   `json:"title" form:"title" validate:"required,min=2,max=70"`
	Description *string  `json:"description,omitempty" form:"description"`
	Price       *float64 `json:"price" form:"price" validate:"required,finite,gte=-9999999999.99,lte=9999999999.99"`
}

func (r ItemRequest) input(photo *tempUpload) service.ItemInput {
	return service.ItemInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       *r.Price,
		PhotoFile:   photo.Path(),
	}
}

// ListItems returns every listing. ?owner=me or ?owner=<uuid> narrows it to
// one seller.
func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	var ownerID *uuid.UUID

	switch owner := c.Query("owner"); owner {
	case "":
	case "me":
		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		ownerID = &userID
	default:
		parsed, err := uuid.Parse(owner)
		if err != nil {
			return badRequest(c, "Invalid owner ID format")
		}
		ownerID = &parsed
	}

	items, err := h.itemService.ListItems(c.UserContext(), ownerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(items)
}

func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid item ID format")
	}

	item, err := h.itemService.GetItem(c.UserContext(), itemID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(item)
}

func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request ItemRequest
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

	item, err := h.itemService.CreateItem(c.UserContext(), userID, request.input(photo))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Item created successfully",
		"item":    item,
	})
}

func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid item ID format")
	}

	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request ItemRequest
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

	item, err := h.itemService.UpdateItem(c.UserContext(), itemID, userID, request.input(photo))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Item updated successfully",
		"item":    item,
	})
}

func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid item ID format")
	}

	userID, err := GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	item, err := h.itemService.DeleteItem(c.UserContext(), itemID, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Item deleted successfully",
		"id":      item.ID,
	})
}

package handler

import (
	"errors"

	"github.com/shefospecial/victoriasystem/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// All endpoints answer with the same envelope: {"success": true, ...} on
// success and {"success": false, "error": "..."} on failure.

func ok(c *fiber.Ctx, data fiber.Map) error {
	data["success"] = true
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	data["success"] = true
	return c.Status(201).JSON(data)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": message})
}

// failErr maps service errors onto HTTP statuses.
func failErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fail(c, 404, "not found")
	case errors.Is(err, service.ErrSerialTaken),
		errors.Is(err, service.ErrCategoryTaken),
		errors.Is(err, service.ErrPhoneTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrWastageReasonTaken),
		errors.Is(err, service.ErrProductReferenced),
		errors.Is(err, service.ErrCategoryNotEmpty),
		errors.Is(err, service.ErrCustomerHasHistory):
		return fail(c, 409, err.Error())
	default:
		return fail(c, 400, err.Error())
	}
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

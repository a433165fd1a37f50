package handler

import (
	"github.com/shefospecial/victoriasystem/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SettingHandler struct {
	settings service.SettingsService
	catalog  service.CatalogService
}

func NewSettingHandler(settings service.SettingsService, catalog service.CatalogService) *SettingHandler {
	return &SettingHandler{settings: settings, catalog: catalog}
}

func (h *SettingHandler) List(c *fiber.Ctx) error {
	settings, err := h.settings.List()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"settings": settings})
}

func (h *SettingHandler) Get(c *fiber.Ctx) error {
	setting, err := h.settings.Get(c.Params("key"))
	if err != nil {
		return fail(c, 404, "Setting not found")
	}
	return ok(c, fiber.Map{"setting": setting})
}

func (h *SettingHandler) Set(c *fiber.Ctx) error {
	var req struct {
		Key         string `json:"key"`
		Value       string `json:"value"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	setting, err := h.settings.Set(req.Key, req.Value, req.Description)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"setting": setting})
}

// SetBulk saves a whole settings form in one request.
func (h *SettingHandler) SetBulk(c *fiber.Ctx) error {
	var req map[string]string
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	settings, err := h.settings.SetBulk(req)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"settings": settings})
}

func (h *SettingHandler) Delete(c *fiber.Ctx) error {
	if err := h.settings.Delete(c.Params("key")); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"message": "Setting deleted"})
}

func (h *SettingHandler) TestTelegram(c *fiber.Ctx) error {
	if err := h.settings.TestTelegram(); err != nil {
		return fail(c, 400, err.Error())
	}
	return ok(c, fiber.Map{"message": "Test message sent"})
}

// CheckLowStock reports products under the threshold on demand.
func (h *SettingHandler) CheckLowStock(c *fiber.Ctx) error {
	products, err := h.catalog.LowStockProducts()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"products": products, "count": len(products)})
}

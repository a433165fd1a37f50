package handler

import (
	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	catalog service.CatalogService
}

func NewCategoryHandler(catalog service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	if err := h.catalog.CreateCategory(&category); err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{"category": category})
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", false)
	categories, err := h.catalog.ListCategories(activeOnly)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"categories": categories})
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid category ID")
	}
	category, err := h.catalog.GetCategory(id)
	if err != nil {
		return fail(c, 404, "Category not found")
	}
	return ok(c, fiber.Map{"category": category})
}

func (h *CategoryHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return fail(c, 400, "Missing search query")
	}
	categories, err := h.catalog.SearchCategories(query)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"categories": categories})
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid category ID")
	}

	var req model.Category
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	category, err := h.catalog.UpdateCategory(id, &req)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"category": category})
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid category ID")
	}
	if err := h.catalog.DeleteCategory(id); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"message": "Category deleted"})
}

func (h *CategoryHandler) ResetSales(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid category ID")
	}
	if err := h.catalog.ResetCategorySales(id); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"message": "Category sales reset"})
}

func (h *CategoryHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.catalog.CategoryStatistics()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"statistics": stats})
}

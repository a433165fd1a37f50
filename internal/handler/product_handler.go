package handler

import (
	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	catalog service.CatalogService
}

func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	if err := h.catalog.CreateProduct(&product); err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{"product": product})
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 50)

	products, total, err := h.catalog.ListProducts(page, perPage)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{
		"products": products,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}
	product, err := h.catalog.GetProduct(id)
	if err != nil {
		return fail(c, 404, "Product not found")
	}
	return ok(c, fiber.Map{"product": product})
}

// GetByBarcode looks a product up by its serial number, the path barcode
// scanners hit at the counter.
func (h *ProductHandler) GetByBarcode(c *fiber.Ctx) error {
	serial := c.Params("serial")
	product, err := h.catalog.GetProductBySerial(serial)
	if err != nil {
		return fail(c, 404, "Product not found")
	}
	return ok(c, fiber.Map{"product": product})
}

func (h *ProductHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return fail(c, 400, "Missing search query")
	}
	products, err := h.catalog.SearchProducts(query)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"products": products})
}

func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	products, err := h.catalog.LowStockProducts()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"products": products, "count": len(products)})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}

	var req model.Product
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	product, err := h.catalog.UpdateProduct(id, &req)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"product": product})
}

func (h *ProductHandler) SetQuantity(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}

	var req struct {
		Quantity *int `json:"quantity"`
		Delta    *int `json:"delta"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	var product *model.Product
	switch {
	case req.Quantity != nil:
		product, err = h.catalog.SetQuantity(id, *req.Quantity)
	case req.Delta != nil:
		product, err = h.catalog.ChangeQuantity(id, *req.Delta)
	default:
		return fail(c, 400, "Provide quantity or delta")
	}
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"product": product})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}
	if err := h.catalog.DeleteProduct(id); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"message": "Product deleted"})
}

func (h *ProductHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.catalog.ProductStatistics()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"statistics": stats})
}

// LastUpdated lets the desktop frontend poll cheaply for catalog changes.
func (h *ProductHandler) LastUpdated(c *fiber.Ctx) error {
	ts, err := h.catalog.LastUpdatedAt()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"last_updated": ts})
}

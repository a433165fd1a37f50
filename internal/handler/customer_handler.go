package handler

import (
	"errors"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	customers service.CustomerService
}

func NewCustomerHandler(customers service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	if err := h.customers.Create(&customer); err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{"customer": customer})
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 20)
	search := c.Query("search")

	customers, total, err := h.customers.List(search, page, perPage)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{
		"customers": customers,
		"total":     total,
		"page":      page,
		"per_page":  perPage,
	})
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid customer ID")
	}
	customer, err := h.customers.Get(id)
	if err != nil {
		return fail(c, 404, "Customer not found")
	}
	return ok(c, fiber.Map{"customer": customer})
}

func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return fail(c, 400, "Missing search query")
	}
	customers, err := h.customers.Search(query, c.QueryInt("limit", 10))
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"customers": customers})
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid customer ID")
	}

	var req model.Customer
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	customer, err := h.customers.Update(id, &req)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"customer": customer})
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid customer ID")
	}
	if err := h.customers.Delete(id); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"message": "Customer deleted"})
}

func (h *CustomerHandler) Invoices(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid customer ID")
	}
	invoices, err := h.customers.Invoices(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"invoices": invoices})
}

func (h *CustomerHandler) LoyaltyHistory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid customer ID")
	}
	history, err := h.customers.LoyaltyHistory(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"transactions": history})
}

func (h *CustomerHandler) RedeemPoints(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid customer ID")
	}

	var req struct {
		Points      int    `json:"points"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	customer, err := h.customers.RedeemPoints(id, req.Points, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrNotEnoughPoints) {
			return fail(c, 400, err.Error())
		}
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"customer": customer})
}

func (h *CustomerHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.customers.Statistics()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"statistics": stats})
}

package handler

import (
	"time"

	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InvoiceHandler struct {
	sales service.SalesService
}

func NewInvoiceHandler(sales service.SalesService) *InvoiceHandler {
	return &InvoiceHandler{sales: sales}
}

func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var req service.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	invoice, err := h.sales.CreateInvoice(&req)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{"invoice": invoice})
}

func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	filter := repository.InvoiceFilter{
		Status:  c.Query("status"),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 20),
	}
	if start := c.Query("start_date"); start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			filter.StartDate = &t
		}
	}
	if end := c.Query("end_date"); end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			endOfDay := t.AddDate(0, 0, 1).Add(-time.Second)
			filter.EndDate = &endOfDay
		}
	}

	invoices, total, err := h.sales.ListInvoices(filter)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{
		"invoices": invoices,
		"total":    total,
		"page":     filter.Page,
		"per_page": filter.PerPage,
	})
}

func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid invoice ID")
	}
	invoice, err := h.sales.GetInvoice(id)
	if err != nil {
		return fail(c, 404, "Invoice not found")
	}
	return ok(c, fiber.Map{"invoice": invoice})
}

func (h *InvoiceHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return fail(c, 400, "Missing search query")
	}
	invoices, total, err := h.sales.SearchInvoices(query, c.QueryInt("page", 1), c.QueryInt("per_page", 20))
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"invoices": invoices, "total": total})
}

// Return handles both flavors: an empty body returns the whole invoice,
// a body with items returns only those quantities.
func (h *InvoiceHandler) Return(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid invoice ID")
	}

	var req struct {
		Items []service.ReturnItem `json:"items"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fail(c, 400, "Invalid JSON")
		}
	}

	if len(req.Items) == 0 {
		invoice, err := h.sales.ReturnInvoice(id)
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, fiber.Map{"invoice": invoice})
	}

	reversal, err := h.sales.PartialReturn(id, req.Items)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"invoice": reversal})
}

func (h *InvoiceHandler) Stats(c *fiber.Ctx) error {
	now := time.Now()
	var start time.Time
	switch c.Query("period", "today") {
	case "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "week":
		start = now.AddDate(0, 0, -7)
	case "month":
		start = now.AddDate(0, -1, 0)
	case "year":
		start = now.AddDate(-1, 0, 0)
	default:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	stats, err := h.sales.Stats(start, now)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"stats": stats})
}

func (h *InvoiceHandler) Daily(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	now := time.Now()
	start := now.AddDate(0, 0, -days)

	summaries, err := h.sales.DailySummaries(start, now)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"daily": summaries})
}

package handler

import (
	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/internal/service"

	"github.com/gofiber/fiber/v2"
)

type WastageHandler struct {
	wastages service.WastageService
}

func NewWastageHandler(wastages service.WastageService) *WastageHandler {
	return &WastageHandler{wastages: wastages}
}

func (h *WastageHandler) Record(c *fiber.Ctx) error {
	var req service.RecordWastageRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	wastage, err := h.wastages.Record(&req)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{"wastage": wastage})
}

func (h *WastageHandler) List(c *fiber.Ctx) error {
	filter := repository.WastageFilter{
		Search:   c.Query("search"),
		Reason:   c.Query("reason"),
		DateFrom: parseDateQuery(c, "from"),
		DateTo:   parseDateQuery(c, "to"),
		Page:     c.QueryInt("page", 1),
		PerPage:  c.QueryInt("per_page", 20),
	}

	wastages, total, err := h.wastages.List(filter)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"wastages": wastages, "total": total})
}

func (h *WastageHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid wastage ID")
	}
	wastage, err := h.wastages.Get(id)
	if err != nil {
		return fail(c, 404, "Wastage record not found")
	}
	return ok(c, fiber.Map{"wastage": wastage})
}

func (h *WastageHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid wastage ID")
	}
	if err := h.wastages.Delete(id); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"message": "Wastage deleted, stock restored"})
}

func (h *WastageHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.wastages.Statistics(c.QueryInt("days", 30))
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"statistics": stats})
}

func (h *WastageHandler) ListReasons(c *fiber.Ctx) error {
	reasons, err := h.wastages.ListReasons()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"reasons": reasons})
}

func (h *WastageHandler) CreateReason(c *fiber.Ctx) error {
	var reason model.WastageReason
	if err := c.BodyParser(&reason); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	if err := h.wastages.CreateReason(&reason); err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{"reason": reason})
}

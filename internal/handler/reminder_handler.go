package handler

import (
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReminderHandler struct {
	reminders service.ReminderService
}

func NewReminderHandler(reminders service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

func (h *ReminderHandler) Create(c *fiber.Ctx) error {
	var reminder model.Reminder
	if err := c.BodyParser(&reminder); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	if err := h.reminders.Create(&reminder); err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{"reminder": reminder})
}

func (h *ReminderHandler) CreateSalary(c *fiber.Ctx) error {
	var req struct {
		EmployeeName string    `json:"employee_name"`
		Amount       float64   `json:"amount"`
		DueDate      time.Time `json:"due_date"`
		Recurring    bool      `json:"recurring"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	reminder, err := h.reminders.CreateSalary(req.EmployeeName, req.Amount, req.DueDate, req.Recurring)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{"reminder": reminder})
}

func (h *ReminderHandler) CreateSupplierPayment(c *fiber.Ctx) error {
	var req struct {
		SupplierName string    `json:"supplier_name"`
		Amount       float64   `json:"amount"`
		DueDate      time.Time `json:"due_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	reminder, err := h.reminders.CreateSupplierPayment(req.SupplierName, req.Amount, req.DueDate)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{"reminder": reminder})
}

func (h *ReminderHandler) List(c *fiber.Ctx) error {
	filter := repository.ReminderFilter{
		Status:    c.Query("status"),
		Type:      c.Query("type"),
		DaysAhead: c.QueryInt("days_ahead", 30),
	}
	reminders, err := h.reminders.List(filter)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"reminders": reminders})
}

func (h *ReminderHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid reminder ID")
	}
	reminder, err := h.reminders.Get(id)
	if err != nil {
		return fail(c, 404, "Reminder not found")
	}
	return ok(c, fiber.Map{"reminder": reminder})
}

func (h *ReminderHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid reminder ID")
	}

	var req model.Reminder
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	reminder, err := h.reminders.Update(id, &req)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"reminder": reminder})
}

func (h *ReminderHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid reminder ID")
	}
	if err := h.reminders.Delete(id); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"message": "Reminder deleted"})
}

func (h *ReminderHandler) Complete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid reminder ID")
	}
	reminder, err := h.reminders.Complete(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"reminder": reminder})
}

package handler

import (
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SupplierHandler struct {
	suppliers service.SupplierService
}

func NewSupplierHandler(suppliers service.SupplierService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

func parseDateQuery(c *fiber.Ctx, name string) *time.Time {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	if err := h.suppliers.Create(&supplier); err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{"supplier": supplier})
}

func (h *SupplierHandler) List(c *fiber.Ctx) error {
	suppliers, total, err := h.suppliers.List(
		c.Query("search"),
		c.QueryBool("active", false),
		c.QueryInt("page", 1),
		c.QueryInt("per_page", 20),
	)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"suppliers": suppliers, "total": total})
}

func (h *SupplierHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid supplier ID")
	}
	supplier, err := h.suppliers.Get(id)
	if err != nil {
		return fail(c, 404, "Supplier not found")
	}
	return ok(c, fiber.Map{"supplier": supplier})
}

func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid supplier ID")
	}

	var req model.Supplier
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	supplier, err := h.suppliers.Update(id, &req)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"supplier": supplier})
}

func (h *SupplierHandler) Deactivate(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid supplier ID")
	}
	if err := h.suppliers.Deactivate(id); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"message": "Supplier deactivated"})
}

func (h *SupplierHandler) CreatePurchaseOrder(c *fiber.Ctx) error {
	var req service.CreatePurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	order, err := h.suppliers.CreatePurchaseOrder(&req)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{"purchase_order": order})
}

func (h *SupplierHandler) ListPurchaseOrders(c *fiber.Ctx) error {
	filter := repository.PurchaseOrderFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		Page:          c.QueryInt("page", 1),
		PerPage:       c.QueryInt("per_page", 20),
	}
	if raw := c.Query("supplier_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, 400, "Invalid supplier ID")
		}
		filter.SupplierID = &id
	}

	orders, total, err := h.suppliers.ListPurchaseOrders(filter)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"purchase_orders": orders, "total": total})
}

func (h *SupplierHandler) GetPurchaseOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid purchase order ID")
	}
	order, err := h.suppliers.GetPurchaseOrder(id)
	if err != nil {
		return fail(c, 404, "Purchase order not found")
	}
	return ok(c, fiber.Map{"purchase_order": order})
}

func (h *SupplierHandler) RecordPayment(c *fiber.Ctx) error {
	var req service.SupplierPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	payment, err := h.suppliers.RecordPayment(&req)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{"payment": payment})
}

func (h *SupplierHandler) ListPayments(c *fiber.Ctx) error {
	var supplierID *uuid.UUID
	if raw := c.Query("supplier_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, 400, "Invalid supplier ID")
		}
		supplierID = &id
	}

	payments, total, err := h.suppliers.ListPayments(supplierID, c.QueryInt("page", 1), c.QueryInt("per_page", 20))
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"payments": payments, "total": total})
}

func (h *SupplierHandler) AddTransaction(c *fiber.Ctx) error {
	var req service.SupplierTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}
	entry, err := h.suppliers.AddTransaction(&req)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{"transaction": entry})
}

func (h *SupplierHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid transaction ID")
	}
	if err := h.suppliers.DeleteTransaction(id); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"message": "Transaction deleted"})
}

func (h *SupplierHandler) ListTransactions(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid supplier ID")
	}

	entries, total, err := h.suppliers.ListTransactions(
		id,
		parseDateQuery(c, "from"),
		parseDateQuery(c, "to"),
		c.QueryInt("page", 1),
		c.QueryInt("per_page", 50),
	)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"transactions": entries, "total": total})
}

func (h *SupplierHandler) Balance(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid supplier ID")
	}
	supplier, err := h.suppliers.Balance(id)
	if err != nil {
		return fail(c, 404, "Supplier not found")
	}
	return ok(c, fiber.Map{
		"supplier_id":     supplier.ID,
		"total_purchases": supplier.TotalPurchases,
		"total_payments":  supplier.TotalPayments,
		"balance":         supplier.Balance,
	})
}

func (h *SupplierHandler) Statement(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid supplier ID")
	}
	statement, err := h.suppliers.Statement(id, parseDateQuery(c, "from"), parseDateQuery(c, "to"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"statement": statement})
}

func (h *SupplierHandler) FixBalance(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid supplier ID")
	}
	supplier, err := h.suppliers.FixBalance(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{"supplier": supplier})
}

func (h *SupplierHandler) RecalculateBalances(c *fiber.Ctx) error {
	fixed, err := h.suppliers.RecalculateBalances()
	if err != nil {
		return fail(c, 500, err.Error())
	}
	return ok(c, fiber.Map{"fixed": fixed})
}

func (h *SupplierHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.suppliers.Statistics()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return ok(c, fiber.Map{"statistics": stats})
}

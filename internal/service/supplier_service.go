package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/internal/ws"
	"github.com/shefospecial/victoriasystem/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSupplierNotFound = errors.New("supplier not found")

// PurchaseOrderItemRequest is one line of an incoming delivery.
type PurchaseOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitCost  float64   `json:"unit_cost" validate:"gte=0"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID   uuid.UUID                  `json:"supplier_id" validate:"uuid_required"`
	Items        []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaidAmount   float64                    `json:"paid_amount" validate:"gte=0"`
	OrderDate    *time.Time                 `json:"order_date,omitempty"`
	DeliveryDate *time.Time                 `json:"delivery_date,omitempty"`
	Notes        string                     `json:"notes"`
}

type SupplierPaymentRequest struct {
	SupplierID      uuid.UUID  `json:"supplier_id" validate:"uuid_required"`
	PurchaseOrderID *uuid.UUID `json:"purchase_order_id,omitempty"`
	Amount          float64    `json:"amount" validate:"required,gt=0"`
	PaymentMethod   string     `json:"payment_method"`
	PaymentDate     *time.Time `json:"payment_date,omitempty"`
	ReferenceNumber string     `json:"reference_number"`
	Notes           string     `json:"notes"`
}

type SupplierTransactionRequest struct {
	SupplierID      uuid.UUID                     `json:"supplier_id" validate:"uuid_required"`
	Type            model.SupplierTransactionType `json:"transaction_type" validate:"required,oneof=purchase payment"`
	Amount          float64                       `json:"amount" validate:"required,gt=0"`
	Description     string                        `json:"description"`
	ReferenceNumber string                        `json:"reference_number"`
	CreatedBy       string                        `json:"created_by"`
}

// StatementLine is one ledger entry with the balance after it was applied.
type StatementLine struct {
	Entry   model.SupplierTransaction `json:"entry"`
	Balance float64                   `json:"balance"`
}

// SupplierStatement is the printable account statement.
type SupplierStatement struct {
	Supplier       model.Supplier  `json:"supplier"`
	OpeningBalance float64         `json:"opening_balance"`
	Lines          []StatementLine `json:"lines"`
	ClosingBalance float64         `json:"closing_balance"`
}

// SupplierStatistics is the suppliers overview block.
type SupplierStatistics struct {
	TotalSuppliers  int64   `json:"total_suppliers"`
	ActiveSuppliers int64   `json:"active_suppliers"`
	TotalOwed       float64 `json:"total_owed"`
}

type SupplierService interface {
	Create(supplier *model.Supplier) error
	Update(id uuid.UUID, req *model.Supplier) (*model.Supplier, error)
	Deactivate(id uuid.UUID) error
	Get(id uuid.UUID) (*model.Supplier, error)
	List(search string, activeOnly bool, page, perPage int) ([]model.Supplier, int64, error)

	CreatePurchaseOrder(req *CreatePurchaseOrderRequest) (*model.PurchaseOrder, error)
	GetPurchaseOrder(id uuid.UUID) (*model.PurchaseOrder, error)
	ListPurchaseOrders(filter repository.PurchaseOrderFilter) ([]model.PurchaseOrder, int64, error)

	RecordPayment(req *SupplierPaymentRequest) (*model.SupplierPayment, error)
	ListPayments(supplierID *uuid.UUID, page, perPage int) ([]model.SupplierPayment, int64, error)

	AddTransaction(req *SupplierTransactionRequest) (*model.SupplierTransaction, error)
	DeleteTransaction(id uuid.UUID) error
	ListTransactions(supplierID uuid.UUID, from, to *time.Time, page, perPage int) ([]model.SupplierTransaction, int64, error)
	Balance(supplierID uuid.UUID) (*model.Supplier, error)
	Statement(supplierID uuid.UUID, from, to *time.Time) (*SupplierStatement, error)

	FixBalance(supplierID uuid.UUID) (*model.Supplier, error)
	RecalculateBalances() (int, error)
	Statistics() (*SupplierStatistics, error)
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
	orderRepo    repository.PurchaseOrderRepository
	productRepo  repository.ProductRepository
	db           *gorm.DB
	hub          *ws.Hub
}

func NewSupplierService(
	supplierRepo repository.SupplierRepository,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
	hub *ws.Hub,
) SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		db:           db,
		hub:          hub,
	}
}

func (s *supplierService) Create(supplier *model.Supplier) error {
	if errs := validator.ValidateStruct(supplier); len(errs) > 0 {
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	supplier.IsActive = true
	return s.supplierRepo.Create(supplier)
}

func (s *supplierService) Update(id uuid.UUID, req *model.Supplier) (*model.Supplier, error) {
	existing, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	existing.Name = req.Name
	existing.CompanyName = req.CompanyName
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Address = req.Address
	existing.Notes = req.Notes
	existing.IsActive = req.IsActive

	if err := s.supplierRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Deactivate hides the supplier from active listings; the ledger history
// stays intact.
func (s *supplierService) Deactivate(id uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return ErrSupplierNotFound
	}
	supplier.IsActive = false
	return s.supplierRepo.Update(supplier)
}

func (s *supplierService) Get(id uuid.UUID) (*model.Supplier, error) {
	return s.supplierRepo.FindByID(id)
}

func (s *supplierService) List(search string, activeOnly bool, page, perPage int) ([]model.Supplier, int64, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	return s.supplierRepo.FindAll(search, activeOnly, page, perPage)
}

// lockSupplier loads the supplier row FOR UPDATE inside tx so ledger writes
// and cached total updates stay consistent.
func lockSupplier(tx *gorm.DB, id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := tx.Set("gorm:query_option", "FOR UPDATE").
		First(&supplier, "id = ?", id).Error; err != nil {
		return nil, ErrSupplierNotFound
	}
	return &supplier, nil
}

// CreatePurchaseOrder receives stock from a supplier: product quantities and
// purchase prices update, the ledger gets a purchase entry, and an upfront
// payment settles part of the order in the same transaction.
func (s *supplierService) CreatePurchaseOrder(req *CreatePurchaseOrderRequest) (*model.PurchaseOrder, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	order := &model.PurchaseOrder{
		OrderNumber:  newOrderNumber(),
		SupplierID:   req.SupplierID,
		PaidAmount:   req.PaidAmount,
		Status:       "completed",
		OrderDate:    orderDate,
		DeliveryDate: req.DeliveryDate,
		Notes:        req.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		supplier, err := lockSupplier(tx, req.SupplierID)
		if err != nil {
			return err
		}

		for _, line := range req.Items {
			product, err := s.productRepo.FindByID(line.ProductID)
			if err != nil {
				return fmt.Errorf("product %s not found", line.ProductID)
			}

			item := model.PurchaseOrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitCost:  line.UnitCost,
			}
			item.CalculateTotal()
			order.Items = append(order.Items, item)

			if err := s.productRepo.AdjustQuantity(tx, line.ProductID, line.Quantity); err != nil {
				return err
			}
			// Incoming stock refreshes the purchase price snapshot.
			if line.UnitCost > 0 && line.UnitCost != product.PurchasePrice {
				if err := tx.Model(&model.Product{}).
					Where("id = ?", line.ProductID).
					Update("purchase_price", line.UnitCost).Error; err != nil {
					return err
				}
			}
		}

		order.CalculateTotals()
		if order.PaidAmount > order.TotalAmount {
			return errors.New("paid amount exceeds order total")
		}
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}

		purchase := &model.SupplierTransaction{
			SupplierID:      req.SupplierID,
			Type:            model.SupplierPurchase,
			Amount:          order.TotalAmount,
			Description:     "Purchase order " + order.OrderNumber,
			ReferenceNumber: order.OrderNumber,
		}
		if err := s.supplierRepo.CreateTransaction(tx, purchase); err != nil {
			return err
		}
		supplier.TotalPurchases += order.TotalAmount

		if req.PaidAmount > 0 {
			payment := &model.SupplierPayment{
				SupplierID:      req.SupplierID,
				PurchaseOrderID: &order.ID,
				Amount:          req.PaidAmount,
				PaymentMethod:   "cash",
				PaymentDate:     orderDate,
				Notes:           "Paid with order " + order.OrderNumber,
			}
			if err := s.supplierRepo.CreatePayment(tx, payment); err != nil {
				return err
			}
			payout := &model.SupplierTransaction{
				SupplierID:      req.SupplierID,
				Type:            model.SupplierPayout,
				Amount:          req.PaidAmount,
				Description:     "Payment with order " + order.OrderNumber,
				ReferenceNumber: order.OrderNumber,
			}
			if err := s.supplierRepo.CreateTransaction(tx, payout); err != nil {
				return err
			}
			supplier.TotalPayments += req.PaidAmount
		}

		supplier.UpdateBalance()
		return tx.Save(supplier).Error
	})
	if err != nil {
		return nil, err
	}

	created, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(ws.EventStockReceived, map[string]interface{}{
		"order_number": created.OrderNumber,
		"supplier_id":  created.SupplierID,
		"total_amount": created.TotalAmount,
	})
	return created, nil
}

func newOrderNumber() string {
	return fmt.Sprintf("PO-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]))
}

func (s *supplierService) GetPurchaseOrder(id uuid.UUID) (*model.PurchaseOrder, error) {
	return s.orderRepo.FindByID(id)
}

func (s *supplierService) ListPurchaseOrders(filter repository.PurchaseOrderFilter) ([]model.PurchaseOrder, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	return s.orderRepo.FindAll(filter)
}

// RecordPayment settles supplier debt. When tied to a purchase order the
// order's paid amount and payment status update in the same transaction.
func (s *supplierService) RecordPayment(req *SupplierPaymentRequest) (*model.SupplierPayment, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}
	method := req.PaymentMethod
	if method == "" {
		method = "cash"
	}

	payment := &model.SupplierPayment{
		SupplierID:      req.SupplierID,
		PurchaseOrderID: req.PurchaseOrderID,
		Amount:          req.Amount,
		PaymentMethod:   method,
		PaymentDate:     paymentDate,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		supplier, err := lockSupplier(tx, req.SupplierID)
		if err != nil {
			return err
		}

		if err := s.supplierRepo.CreatePayment(tx, payment); err != nil {
			return err
		}

		entry := &model.SupplierTransaction{
			SupplierID:      req.SupplierID,
			Type:            model.SupplierPayout,
			Amount:          req.Amount,
			Description:     "Payment to supplier",
			ReferenceNumber: req.ReferenceNumber,
		}
		if err := s.supplierRepo.CreateTransaction(tx, entry); err != nil {
			return err
		}

		if req.PurchaseOrderID != nil {
			order, err := s.orderRepo.FindByIDTx(tx, *req.PurchaseOrderID)
			if err != nil {
				return errors.New("purchase order not found")
			}
			if order.SupplierID != req.SupplierID {
				return errors.New("purchase order belongs to a different supplier")
			}
			order.PaidAmount += req.Amount
			order.CalculateTotals()
			if err := s.orderRepo.Save(tx, order); err != nil {
				return err
			}
		}

		supplier.TotalPayments += req.Amount
		supplier.UpdateBalance()
		return tx.Save(supplier).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *supplierService) ListPayments(supplierID *uuid.UUID, page, perPage int) ([]model.SupplierPayment, int64, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	return s.supplierRepo.ListPayments(supplierID, page, perPage)
}

// AddTransaction appends a manual ledger entry and moves the cached totals
// with it.
func (s *supplierService) AddTransaction(req *SupplierTransactionRequest) (*model.SupplierTransaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = "admin"
	}
	entry := &model.SupplierTransaction{
		SupplierID:      req.SupplierID,
		Type:            req.Type,
		Amount:          req.Amount,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		CreatedBy:       createdBy,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		supplier, err := lockSupplier(tx, req.SupplierID)
		if err != nil {
			return err
		}
		if err := s.supplierRepo.CreateTransaction(tx, entry); err != nil {
			return err
		}

		switch req.Type {
		case model.SupplierPurchase:
			supplier.TotalPurchases += req.Amount
		case model.SupplierPayout:
			supplier.TotalPayments += req.Amount
		}
		supplier.UpdateBalance()
		return tx.Save(supplier).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteTransaction removes a manual ledger entry and rolls its effect out of
// the cached totals.
func (s *supplierService) DeleteTransaction(id uuid.UUID) error {
	entry, err := s.supplierRepo.FindTransaction(id)
	if err != nil {
		return errors.New("transaction not found")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		supplier, err := lockSupplier(tx, entry.SupplierID)
		if err != nil {
			return err
		}
		if err := s.supplierRepo.DeleteTransaction(tx, entry); err != nil {
			return err
		}

		switch entry.Type {
		case model.SupplierPurchase:
			supplier.TotalPurchases -= entry.Amount
		case model.SupplierPayout:
			supplier.TotalPayments -= entry.Amount
		}
		supplier.UpdateBalance()
		return tx.Save(supplier).Error
	})
}

func (s *supplierService) ListTransactions(supplierID uuid.UUID, from, to *time.Time, page, perPage int) ([]model.SupplierTransaction, int64, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 50
	}
	return s.supplierRepo.ListTransactions(supplierID, from, to, page, perPage)
}

func (s *supplierService) Balance(supplierID uuid.UUID) (*model.Supplier, error) {
	return s.supplierRepo.FindByID(supplierID)
}

// Statement walks the ledger oldest-first and reports the running balance
// after each entry.
func (s *supplierService) Statement(supplierID uuid.UUID, from, to *time.Time) (*SupplierStatement, error) {
	supplier, err := s.supplierRepo.FindByID(supplierID)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	// Opening balance is everything before the window start.
	var opening float64
	if from != nil {
		purchases, err := s.supplierRepo.SumTransactions(supplierID, model.SupplierPurchase, nil, from)
		if err != nil {
			return nil, err
		}
		payments, err := s.supplierRepo.SumTransactions(supplierID, model.SupplierPayout, nil, from)
		if err != nil {
			return nil, err
		}
		opening = purchases - payments
	}

	entries, _, err := s.supplierRepo.ListTransactions(supplierID, from, to, 1, 10000)
	if err != nil {
		return nil, err
	}

	statement := &SupplierStatement{
		Supplier:       *supplier,
		OpeningBalance: opening,
	}

	balance := opening
	for i := len(entries) - 1; i >= 0; i-- { // ledger comes newest-first
		entry := entries[i]
		if entry.Type == model.SupplierPurchase {
			balance += entry.Amount
		} else {
			balance -= entry.Amount
		}
		statement.Lines = append(statement.Lines, StatementLine{Entry: entry, Balance: balance})
	}
	statement.ClosingBalance = balance
	return statement, nil
}

// FixBalance re-derives one supplier's cached totals from the purchase order
// and payment tables. Safe to run any number of times.
func (s *supplierService) FixBalance(supplierID uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(supplierID)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	purchases, err := s.supplierRepo.SumPurchaseOrders(supplierID)
	if err != nil {
		return nil, err
	}
	payments, err := s.supplierRepo.SumPayments(supplierID)
	if err != nil {
		return nil, err
	}

	supplier.TotalPurchases = purchases
	supplier.TotalPayments = payments
	supplier.UpdateBalance()
	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// RecalculateBalances runs FixBalance across every supplier and returns how
// many were touched.
func (s *supplierService) RecalculateBalances() (int, error) {
	fixed := 0
	page := 1
	for {
		suppliers, _, err := s.supplierRepo.FindAll("", false, page, 200)
		if err != nil {
			return fixed, err
		}
		if len(suppliers) == 0 {
			return fixed, nil
		}
		for _, supplier := range suppliers {
			if _, err := s.FixBalance(supplier.ID); err != nil {
				return fixed, err
			}
			fixed++
		}
		page++
	}
}

func (s *supplierService) Statistics() (*SupplierStatistics, error) {
	total, err := s.supplierRepo.Count()
	if err != nil {
		return nil, err
	}
	active, err := s.supplierRepo.CountActive()
	if err != nil {
		return nil, err
	}
	owed, err := s.supplierRepo.TotalBalance()
	if err != nil {
		return nil, err
	}
	return &SupplierStatistics{
		TotalSuppliers:  total,
		ActiveSuppliers: active,
		TotalOwed:       owed,
	}, nil
}

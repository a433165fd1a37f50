package service

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/notify"
	"github.com/shefospecial/victoriasystem/internal/printer"
	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/internal/ws"
	"github.com/shefospecial/victoriasystem/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotCompleted  = errors.New("only completed invoices can be returned")
	ErrInsufficientStock    = errors.New("insufficient stock remaining")
	ErrReturnExceedsInvoice = errors.New("return quantity exceeds the invoiced quantity")
)

// SaleItem is one line of a sale request. UnitPrice overrides the product's
// selling price when set, which covers negotiated prices at the counter.
type SaleItem struct {
	ProductID      uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity       int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice      *float64  `json:"unit_price,omitempty"`
	DiscountAmount float64   `json:"discount_amount" validate:"gte=0"`
}

type CreateInvoiceRequest struct {
	CustomerID     *uuid.UUID `json:"customer_id,omitempty"`
	Items          []SaleItem `json:"items" validate:"required,min=1,dive"`
	PaymentMethod  string     `json:"payment_method"`
	TaxAmount      float64    `json:"tax_amount" validate:"gte=0"`
	DiscountAmount float64    `json:"discount_amount" validate:"gte=0"`
}

// ReturnItem selects how much of an invoice line to take back.
type ReturnItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// DailySummary is the per-day sales rollup.
type DailySummary struct {
	Date          string  `json:"date"`
	TotalSales    float64 `json:"total_sales"`
	TotalProfit   float64 `json:"total_profit"`
	InvoiceCount  int64   `json:"invoice_count"`
	ReturnedCount int64   `json:"returned_count"`
}

type SalesService interface {
	CreateInvoice(req *CreateInvoiceRequest) (*model.Invoice, error)
	GetInvoice(id uuid.UUID) (*model.Invoice, error)
	ListInvoices(filter repository.InvoiceFilter) ([]model.Invoice, int64, error)
	SearchInvoices(query string, page, perPage int) ([]model.Invoice, int64, error)
	ReturnInvoice(id uuid.UUID) (*model.Invoice, error)
	PartialReturn(id uuid.UUID, items []ReturnItem) (*model.Invoice, error)
	Stats(start, end time.Time) (*repository.InvoicePeriodStats, error)
	DailySummaries(start, end time.Time) ([]DailySummary, error)
}

type salesService struct {
	invoiceRepo  repository.InvoiceRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	customerRepo repository.CustomerRepository
	settingRepo  repository.SettingRepository
	db           *gorm.DB
	hub          *ws.Hub
	telegram     *notify.Telegram
	printer      printer.Printer
}

func NewSalesService(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	customerRepo repository.CustomerRepository,
	settingRepo repository.SettingRepository,
	db *gorm.DB,
	hub *ws.Hub,
	telegram *notify.Telegram,
	receiptPrinter printer.Printer,
) SalesService {
	return &salesService{
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		customerRepo: customerRepo,
		settingRepo:  settingRepo,
		db:           db,
		hub:          hub,
		telegram:     telegram,
		printer:      receiptPrinter,
	}
}

// nextInvoiceNumber builds YYYYMMDD + 4-digit daily sequence.
func (s *salesService) nextInvoiceNumber() (string, error) {
	prefix := time.Now().Format("20060102")
	last, err := s.invoiceRepo.LastNumberWithPrefix(prefix)
	if err != nil {
		return "", err
	}
	seq := 1
	if last != "" && len(last) > len(prefix) {
		if n, err := strconv.Atoi(last[len(prefix):]); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

func (s *salesService) allowNegativeStock() bool {
	return s.settingRepo.GetValue(model.SettingAllowNegativeStock, "true") != "false"
}

func (s *salesService) lowStockThreshold() int {
	threshold, err := strconv.Atoi(s.settingRepo.GetValue(model.SettingLowStockThreshold, "5"))
	if err != nil {
		return 5
	}
	return threshold
}

func (s *salesService) CreateInvoice(req *CreateInvoiceRequest) (*model.Invoice, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	number, err := s.nextInvoiceNumber()
	if err != nil {
		return nil, err
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	allowNegative := s.allowNegativeStock()
	invoice := &model.Invoice{
		InvoiceNumber:  number,
		CustomerID:     req.CustomerID,
		TaxAmount:      req.TaxAmount,
		DiscountAmount: req.DiscountAmount,
		Status:         model.InvoiceCompleted,
		PaymentMethod:  paymentMethod,
	}

	var lowStock []model.Product

	err = s.db.Transaction(func(tx *gorm.DB) error {
		categoryDeltas := map[uuid.UUID]float64{}
		threshold := s.lowStockThreshold()

		for _, line := range req.Items {
			var product model.Product
			if err := tx.Set("gorm:query_option", "FOR UPDATE").
				First(&product, "id = ?", line.ProductID).Error; err != nil {
				return fmt.Errorf("product %s not found", line.ProductID)
			}

			if !allowNegative && product.Quantity < line.Quantity {
				return fmt.Errorf("%w for '%s'", ErrInsufficientStock, product.Name)
			}

			unitPrice := product.SellingPrice
			if line.UnitPrice != nil {
				unitPrice = *line.UnitPrice
			}

			item := model.InvoiceItem{
				ProductID:      product.ID,
				Quantity:       line.Quantity,
				UnitPrice:      unitPrice,
				UnitCost:       product.PurchasePrice,
				DiscountAmount: line.DiscountAmount,
			}
			item.CalculateTotals()
			invoice.Items = append(invoice.Items, item)

			if err := s.productRepo.AdjustQuantity(tx, product.ID, -line.Quantity); err != nil {
				return err
			}
			if product.Quantity-line.Quantity < threshold {
				product.Quantity -= line.Quantity
				lowStock = append(lowStock, product)
			}
			if product.CategoryID != nil {
				categoryDeltas[*product.CategoryID] += item.TotalPrice
			}
		}

		invoice.CalculateTotals()
		if err := s.invoiceRepo.Create(tx, invoice); err != nil {
			return err
		}

		for categoryID, delta := range categoryDeltas {
			if err := s.categoryRepo.AddSales(tx, categoryID, delta); err != nil {
				return err
			}
		}

		if req.CustomerID != nil {
			return s.applyCustomerSale(tx, *req.CustomerID, invoice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.invoiceRepo.FindByID(invoice.ID)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(ws.EventSaleCompleted, map[string]interface{}{
		"invoice_number": created.InvoiceNumber,
		"total_amount":   created.TotalAmount,
		"item_count":     len(created.Items),
	})
	go func() {
		s.telegram.SendInvoice(created)
		if len(lowStock) > 0 {
			s.telegram.SendLowStock(lowStock)
		}
	}()
	go func() {
		receipt := printer.Receipt{StoreName: s.settingRepo.GetValue(model.SettingStoreName, "Victoria Store")}
		if err := s.printer.Print(receipt.Render(created)); err != nil {
			log.Printf("receipt print failed: %v", err)
		}
	}()

	return created, nil
}

// applyCustomerSale updates loyalty and visit stats inside the sale's
// transaction. One point is earned per 10 currency units of the total.
func (s *salesService) applyCustomerSale(tx *gorm.DB, customerID uuid.UUID, invoice *model.Invoice) error {
	var customer model.Customer
	if err := tx.Set("gorm:query_option", "FOR UPDATE").
		First(&customer, "id = ?", customerID).Error; err != nil {
		return errors.New("customer not found")
	}

	points := int(invoice.TotalAmount / 10)
	now := time.Now()

	customer.LoyaltyPoints += points
	customer.TotalPurchases += invoice.TotalAmount
	customer.VisitCount++
	customer.LastVisit = &now
	if err := tx.Save(&customer).Error; err != nil {
		return err
	}

	if points > 0 {
		entry := model.LoyaltyTransaction{
			CustomerID:  customer.ID,
			Points:      points,
			Type:        model.LoyaltyEarned,
			Description: "Purchase " + invoice.InvoiceNumber,
			InvoiceID:   &invoice.ID,
		}
		return tx.Create(&entry).Error
	}
	return nil
}

func (s *salesService) GetInvoice(id uuid.UUID) (*model.Invoice, error) {
	return s.invoiceRepo.FindByID(id)
}

func (s *salesService) ListInvoices(filter repository.InvoiceFilter) ([]model.Invoice, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	return s.invoiceRepo.FindAll(filter)
}

func (s *salesService) SearchInvoices(query string, page, perPage int) ([]model.Invoice, int64, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	return s.invoiceRepo.Search(query, page, perPage)
}

// ReturnInvoice takes back every item on the invoice: stock is restored,
// category totals and loyalty earnings are reversed, and the invoice is
// marked returned.
func (s *salesService) ReturnInvoice(id uuid.UUID) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("invoice not found")
	}
	if invoice.Status != model.InvoiceCompleted {
		return nil, ErrInvoiceNotCompleted
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range invoice.Items {
			if err := s.productRepo.AdjustQuantity(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			if item.Product != nil && item.Product.CategoryID != nil {
				if err := s.categoryRepo.AddSales(tx, *item.Product.CategoryID, -item.TotalPrice); err != nil {
					return err
				}
			}
		}

		if invoice.CustomerID != nil {
			if err := s.reverseCustomerSale(tx, *invoice.CustomerID, invoice, invoice.TotalAmount); err != nil {
				return err
			}
		}

		return tx.Model(&model.Invoice{}).
			Where("id = ?", invoice.ID).
			Update("status", model.InvoiceReturned).Error
	})
	if err != nil {
		return nil, err
	}

	returned, err := s.invoiceRepo.FindByID(invoice.ID)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(ws.EventInvoiceReturned, map[string]interface{}{
		"invoice_number": returned.InvoiceNumber,
		"total_amount":   returned.TotalAmount,
	})
	return returned, nil
}

// PartialReturn takes back part of an invoice by issuing a reversal invoice
// numbered RET-<original>. The reversal carries negative quantities and
// amounts proportional to what was originally charged per unit.
func (s *salesService) PartialReturn(id uuid.UUID, items []ReturnItem) (*model.Invoice, error) {
	if len(items) == 0 {
		return nil, errors.New("no items to return")
	}
	for _, item := range items {
		if errs := validator.ValidateStruct(&item); len(errs) > 0 {
			return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
		}
	}

	original, err := s.invoiceRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("invoice not found")
	}
	if original.Status != model.InvoiceCompleted {
		return nil, ErrInvoiceNotCompleted
	}

	number, err := s.nextReturnNumber(original.InvoiceNumber)
	if err != nil {
		return nil, err
	}

	reversal := &model.Invoice{
		InvoiceNumber: number,
		CustomerID:    original.CustomerID,
		Status:        model.InvoiceReturned,
		PaymentMethod: original.PaymentMethod,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		remaining := map[uuid.UUID]int{}
		lines := map[uuid.UUID]model.InvoiceItem{}
		for _, line := range original.Items {
			remaining[line.ProductID] += line.Quantity
			lines[line.ProductID] = line
		}

		for _, ret := range items {
			line, ok := lines[ret.ProductID]
			if !ok {
				return fmt.Errorf("product %s is not on invoice %s", ret.ProductID, original.InvoiceNumber)
			}
			if ret.Quantity > remaining[ret.ProductID] {
				return ErrReturnExceedsInvoice
			}

			// Charge back at the effective per-unit amounts, so line
			// discounts are reversed proportionally.
			unitPrice := line.TotalPrice / float64(line.Quantity)
			unitCost := line.TotalCost / float64(line.Quantity)

			item := model.InvoiceItem{
				ProductID: ret.ProductID,
				Quantity:  -ret.Quantity,
				UnitPrice: unitPrice,
				UnitCost:  unitCost,
			}
			item.CalculateTotals()
			reversal.Items = append(reversal.Items, item)

			if err := s.productRepo.AdjustQuantity(tx, ret.ProductID, ret.Quantity); err != nil {
				return err
			}
			if line.Product != nil && line.Product.CategoryID != nil {
				if err := s.categoryRepo.AddSales(tx, *line.Product.CategoryID, item.TotalPrice); err != nil {
					return err
				}
			}
		}

		reversal.CalculateTotals()
		if err := s.invoiceRepo.Create(tx, reversal); err != nil {
			return err
		}

		if original.CustomerID != nil {
			if err := s.reverseCustomerSale(tx, *original.CustomerID, original, -reversal.TotalAmount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.invoiceRepo.FindByID(reversal.ID)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(ws.EventInvoiceReturned, map[string]interface{}{
		"invoice_number":  created.InvoiceNumber,
		"original_number": original.InvoiceNumber,
		"total_amount":    created.TotalAmount,
	})
	return created, nil
}

// reverseCustomerSale undoes the loyalty and purchase-stat effects of a sale,
// fully or for the returned portion. amount is the positive returned value.
func (s *salesService) reverseCustomerSale(tx *gorm.DB, customerID uuid.UUID, invoice *model.Invoice, amount float64) error {
	var customer model.Customer
	if err := tx.Set("gorm:query_option", "FOR UPDATE").
		First(&customer, "id = ?", customerID).Error; err != nil {
		return errors.New("customer not found")
	}

	points := int(amount / 10)
	if points > customer.LoyaltyPoints {
		points = customer.LoyaltyPoints
	}

	customer.LoyaltyPoints -= points
	customer.TotalPurchases -= amount
	if customer.TotalPurchases < 0 {
		customer.TotalPurchases = 0
	}
	if err := tx.Save(&customer).Error; err != nil {
		return err
	}

	if points > 0 {
		entry := model.LoyaltyTransaction{
			CustomerID:  customer.ID,
			Points:      -points,
			Type:        model.LoyaltyRedeemed,
			Description: "Return of " + invoice.InvoiceNumber,
			InvoiceID:   &invoice.ID,
		}
		return tx.Create(&entry).Error
	}
	return nil
}

// nextReturnNumber yields RET-<number>, then RET-<number>-2 and so on when an
// invoice is partially returned more than once.
func (s *salesService) nextReturnNumber(invoiceNumber string) (string, error) {
	base := "RET-" + invoiceNumber
	last, err := s.invoiceRepo.LastNumberWithPrefix(base)
	if err != nil {
		return "", err
	}
	if last == "" {
		return base, nil
	}
	seq := 2
	if idx := strings.LastIndex(last, "-"); idx > len("RET-") {
		if n, err := strconv.Atoi(last[idx+1:]); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s-%d", base, seq), nil
}

func (s *salesService) Stats(start, end time.Time) (*repository.InvoicePeriodStats, error) {
	return s.invoiceRepo.PeriodStats(start, end)
}

// DailySummaries buckets completed and returned sales per calendar day.
func (s *salesService) DailySummaries(start, end time.Time) ([]DailySummary, error) {
	invoices, err := s.invoiceRepo.FindInRange(start, end)
	if err != nil {
		return nil, err
	}

	byDay := map[string]*DailySummary{}
	var order []string
	for _, invoice := range invoices {
		day := invoice.CreatedAt.Format("2006-01-02")
		summary, ok := byDay[day]
		if !ok {
			summary = &DailySummary{Date: day}
			byDay[day] = summary
			order = append(order, day)
		}
		switch invoice.Status {
		case model.InvoiceCompleted:
			summary.TotalSales += invoice.TotalAmount
			summary.TotalProfit += invoice.Profit
			summary.InvoiceCount++
		case model.InvoiceReturned:
			summary.ReturnedCount++
		}
	}

	summaries := make([]DailySummary, 0, len(order))
	for _, day := range order {
		summaries = append(summaries, *byDay[day])
	}
	return summaries, nil
}

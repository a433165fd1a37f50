package repository

import (
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PerPage   int
}

// InvoicePeriodStats aggregates completed sales over a date range.
type InvoicePeriodStats struct {
	TotalSales     float64 `json:"total_sales"`
	TotalProfit    float64 `json:"total_profit"`
	CompletedCount int64   `json:"completed_count"`
	ReturnedCount  int64   `json:"returned_count"`
}

type InvoiceRepository interface {
	Create(tx *gorm.DB, invoice *model.Invoice) error
	FindByID(id uuid.UUID) (*model.Invoice, error)
	FindAll(filter InvoiceFilter) ([]model.Invoice, int64, error)
	Search(query string, page, perPage int) ([]model.Invoice, int64, error)
	FindByCustomer(customerID uuid.UUID) ([]model.Invoice, error)
	LastNumberWithPrefix(prefix string) (string, error)
	FindInRange(start, end time.Time) ([]model.Invoice, error)
	PeriodStats(start, end time.Time) (*InvoicePeriodStats, error)
}

type invoiceRepo struct {
	db *gorm.DB
}

func NewInvoiceRepo(db *gorm.DB) InvoiceRepository {
	return &invoiceRepo{db}
}

func (r *invoiceRepo) Create(tx *gorm.DB, invoice *model.Invoice) error {
	return tx.Create(invoice).Error
}

func (r *invoiceRepo) FindByID(id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.Preload("Items.Product").Preload("Customer").
		First(&invoice, "id = ?", id).Error
	return &invoice, err
}

func (r *invoiceRepo) FindAll(filter InvoiceFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	query := r.db.Model(&model.Invoice{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Items.Product").Preload("Customer").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PerPage).Limit(filter.PerPage).
		Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepo) Search(query string, page, perPage int) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64
	like := "%" + query + "%"

	base := r.db.Model(&model.Invoice{}).
		Joins("LEFT JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.invoice_number LIKE ? OR customers.name LIKE ? OR customers.phone LIKE ?", like, like, like)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Preload("Items.Product").Preload("Customer").
		Order("invoices.created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepo) FindByCustomer(customerID uuid.UUID) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

// LastNumberWithPrefix returns the highest invoice number sharing the given
// date prefix, or "" when none exists yet.
func (r *invoiceRepo) LastNumberWithPrefix(prefix string) (string, error) {
	var invoice model.Invoice
	err := r.db.Where("invoice_number LIKE ?", prefix+"%").
		Order("invoice_number DESC").
		First(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return invoice.InvoiceNumber, nil
}

func (r *invoiceRepo) FindInRange(start, end time.Time) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.Preload("Items").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) PeriodStats(start, end time.Time) (*InvoicePeriodStats, error) {
	var stats InvoicePeriodStats

	err := r.db.Model(&model.Invoice{}).
		Where("created_at >= ? AND created_at <= ? AND status = ?", start, end, model.InvoiceCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalSales).Error
	if err != nil {
		return nil, err
	}
	err = r.db.Model(&model.Invoice{}).
		Where("created_at >= ? AND created_at <= ? AND status = ?", start, end, model.InvoiceCompleted).
		Select("COALESCE(SUM(profit), 0)").
		Scan(&stats.TotalProfit).Error
	if err != nil {
		return nil, err
	}
	err = r.db.Model(&model.Invoice{}).
		Where("created_at >= ? AND created_at <= ? AND status = ?", start, end, model.InvoiceCompleted).
		Count(&stats.CompletedCount).Error
	if err != nil {
		return nil, err
	}
	err = r.db.Model(&model.Invoice{}).
		Where("created_at >= ? AND created_at <= ? AND status = ?", start, end, model.InvoiceReturned).
		Count(&stats.ReturnedCount).Error
	return &stats, err
}

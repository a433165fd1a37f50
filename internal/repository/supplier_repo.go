package repository

import (
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	FindAll(search string, activeOnly bool, page, perPage int) ([]model.Supplier, int64, error)
	FindByID(id uuid.UUID) (*model.Supplier, error)
	Update(supplier *model.Supplier) error
	Count() (int64, error)
	CountActive() (int64, error)
	TotalBalance() (float64, error)

	// Ledger aggregates used by reconciliation.
	SumPurchaseOrders(supplierID uuid.UUID) (float64, error)
	SumPayments(supplierID uuid.UUID) (float64, error)

	CreateTransaction(tx *gorm.DB, entry *model.SupplierTransaction) error
	FindTransaction(id uuid.UUID) (*model.SupplierTransaction, error)
	DeleteTransaction(tx *gorm.DB, entry *model.SupplierTransaction) error
	ListTransactions(supplierID uuid.UUID, from, to *time.Time, page, perPage int) ([]model.SupplierTransaction, int64, error)
	SumTransactions(supplierID uuid.UUID, txType model.SupplierTransactionType, from, to *time.Time) (float64, error)

	CreatePayment(tx *gorm.DB, payment *model.SupplierPayment) error
	ListPayments(supplierID *uuid.UUID, page, perPage int) ([]model.SupplierPayment, int64, error)
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *supplierRepo) FindAll(search string, activeOnly bool, page, perPage int) ([]model.Supplier, int64, error) {
	var suppliers []model.Supplier
	var total int64

	query := r.db.Model(&model.Supplier{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", like, like)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("name ASC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&suppliers).Error
	return suppliers, total, err
}

func (r *supplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.First(&supplier, "id = ?", id).Error
	return &supplier, err
}

func (r *supplierRepo) Update(supplier *model.Supplier) error {
	return r.db.Save(supplier).Error
}

func (r *supplierRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Supplier{}).Count(&count).Error
	return count, err
}

func (r *supplierRepo) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Supplier{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *supplierRepo) TotalBalance() (float64, error) {
	var total float64
	err := r.db.Model(&model.Supplier{}).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&total).Error
	return total, err
}

func (r *supplierRepo) SumPurchaseOrders(supplierID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.Model(&model.PurchaseOrder{}).
		Where("supplier_id = ?", supplierID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *supplierRepo) SumPayments(supplierID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.Model(&model.SupplierPayment{}).
		Where("supplier_id = ?", supplierID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *supplierRepo) CreateTransaction(tx *gorm.DB, entry *model.SupplierTransaction) error {
	return tx.Create(entry).Error
}

func (r *supplierRepo) FindTransaction(id uuid.UUID) (*model.SupplierTransaction, error) {
	var entry model.SupplierTransaction
	err := r.db.First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *supplierRepo) DeleteTransaction(tx *gorm.DB, entry *model.SupplierTransaction) error {
	return tx.Delete(entry).Error
}

func (r *supplierRepo) ListTransactions(supplierID uuid.UUID, from, to *time.Time, page, perPage int) ([]model.SupplierTransaction, int64, error) {
	var entries []model.SupplierTransaction
	var total int64

	query := r.db.Model(&model.SupplierTransaction{}).Where("supplier_id = ?", supplierID)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&entries).Error
	return entries, total, err
}

func (r *supplierRepo) SumTransactions(supplierID uuid.UUID, txType model.SupplierTransactionType, from, to *time.Time) (float64, error) {
	var total float64
	query := r.db.Model(&model.SupplierTransaction{}).
		Where("supplier_id = ? AND type = ?", supplierID, txType)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}
	err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

func (r *supplierRepo) CreatePayment(tx *gorm.DB, payment *model.SupplierPayment) error {
	return tx.Create(payment).Error
}

func (r *supplierRepo) ListPayments(supplierID *uuid.UUID, page, perPage int) ([]model.SupplierPayment, int64, error) {
	var payments []model.SupplierPayment
	var total int64

	query := r.db.Model(&model.SupplierPayment{})
	if supplierID != nil {
		query = query.Where("supplier_id = ?", *supplierID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Supplier").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&payments).Error
	return payments, total, err
}

package repository

import (
	"github.com/shefospecial/victoriasystem/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseOrderFilter narrows purchase order listings.
type PurchaseOrderFilter struct {
	SupplierID    *uuid.UUID
	Status        string
	PaymentStatus string
	Page          int
	PerPage       int
}

type PurchaseOrderRepository interface {
	Create(tx *gorm.DB, order *model.PurchaseOrder) error
	FindByID(id uuid.UUID) (*model.PurchaseOrder, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error)
	FindAll(filter PurchaseOrderFilter) ([]model.PurchaseOrder, int64, error)
	Save(tx *gorm.DB, order *model.PurchaseOrder) error
}

type purchaseOrderRepo struct {
	db *gorm.DB
}

func NewPurchaseOrderRepo(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db}
}

func (r *purchaseOrderRepo) Create(tx *gorm.DB, order *model.PurchaseOrder) error {
	return tx.Create(order).Error
}

func (r *purchaseOrderRepo) FindByID(id uuid.UUID) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	err := r.db.Preload("Items.Product").Preload("Supplier").
		First(&order, "id = ?", id).Error
	return &order, err
}

func (r *purchaseOrderRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	err := tx.Preload("Items").First(&order, "id = ?", id).Error
	return &order, err
}

func (r *purchaseOrderRepo) FindAll(filter PurchaseOrderFilter) ([]model.PurchaseOrder, int64, error) {
	var orders []model.PurchaseOrder
	var total int64

	query := r.db.Model(&model.PurchaseOrder{})
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Items.Product").Preload("Supplier").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PerPage).Limit(filter.PerPage).
		Find(&orders).Error
	return orders, total, err
}

func (r *purchaseOrderRepo) Save(tx *gorm.DB, order *model.PurchaseOrder) error {
	return tx.Save(order).Error
}

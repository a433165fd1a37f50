package repository

import (
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(page, perPage int) ([]model.Product, int64, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySerial(serial string) (*model.Product, error)
	Search(query string) ([]model.Product, error)
	LowStock(threshold int) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(product *model.Product) error
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int) error
	AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int) error
	HasInvoiceItems(id uuid.UUID) (bool, error)
	Count() (int64, error)
	LastUpdatedAt() (*time.Time, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(page, perPage int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64
	if err := r.db.Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("Category").
		Order("name ASC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySerial(serial string) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "serial_number = ?", serial).Error
	return &product, err
}

func (r *productRepo) Search(query string) ([]model.Product, error) {
	var products []model.Product
	like := "%" + query + "%"
	err := r.db.Preload("Category").
		Where("name LIKE ? OR serial_number LIKE ? OR barcode LIKE ?", like, like, like).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) LowStock(threshold int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Where("quantity < ?", threshold).
		Order("quantity ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(product *model.Product) error {
	return r.db.Delete(product).Error
}

// UpdateQuantity runs inside the caller's transaction so stock writes stay
// atomic with the rest of the workflow.
func (r *productRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("quantity", newQuantity).Error
}

// AdjustQuantity applies a relative stock change as an atomic increment.
func (r *productRepo) AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

func (r *productRepo) HasInvoiceItems(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.InvoiceItem{}).Where("product_id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *productRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) LastUpdatedAt() (*time.Time, error) {
	var product model.Product
	err := r.db.Order("updated_at DESC").First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product.UpdatedAt, nil
}

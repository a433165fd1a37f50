package repository

import (
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WastageFilter narrows wastage listings.
type WastageFilter struct {
	Search   string
	Reason   string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PerPage  int
}

// WastageReasonStats aggregates losses per reason.
type WastageReasonStats struct {
	Reason        string  `json:"reason"`
	Count         int64   `json:"count"`
	TotalCost     float64 `json:"total_cost"`
	TotalQuantity int64   `json:"total_quantity"`
}

// WastedProductStats ranks products by write-off losses.
type WastedProductStats struct {
	Name          string  `json:"name"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalCost     float64 `json:"total_cost"`
}

type WastageRepository interface {
	Create(tx *gorm.DB, wastage *model.Wastage) error
	FindByID(id uuid.UUID) (*model.Wastage, error)
	Delete(tx *gorm.DB, wastage *model.Wastage) error
	FindAll(filter WastageFilter) ([]model.Wastage, int64, error)

	CountSince(since time.Time) (int64, error)
	TotalCostSince(since time.Time) (float64, error)
	TotalQuantitySince(since time.Time) (int64, error)
	StatsByReason(since time.Time) ([]WastageReasonStats, error)
	TopWastedProducts(since time.Time, limit int) ([]WastedProductStats, error)

	CreateReason(reason *model.WastageReason) error
	FindReasonByName(name string) (*model.WastageReason, error)
	FindActiveReasons() ([]model.WastageReason, error)
}

type wastageRepo struct {
	db *gorm.DB
}

func NewWastageRepo(db *gorm.DB) WastageRepository {
	return &wastageRepo{db}
}

func (r *wastageRepo) Create(tx *gorm.DB, wastage *model.Wastage) error {
	return tx.Create(wastage).Error
}

func (r *wastageRepo) FindByID(id uuid.UUID) (*model.Wastage, error) {
	var wastage model.Wastage
	err := r.db.Preload("Product").First(&wastage, "id = ?", id).Error
	return &wastage, err
}

func (r *wastageRepo) Delete(tx *gorm.DB, wastage *model.Wastage) error {
	return tx.Delete(wastage).Error
}

func (r *wastageRepo) FindAll(filter WastageFilter) ([]model.Wastage, int64, error) {
	var wastages []model.Wastage
	var total int64

	query := r.db.Model(&model.Wastage{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Joins("JOIN products ON products.id = wastages.product_id").
			Where("products.name LIKE ? OR products.serial_number LIKE ? OR wastages.recorded_by LIKE ?", like, like, like)
	}
	if filter.Reason != "" {
		query = query.Where("wastages.reason = ?", filter.Reason)
	}
	if filter.DateFrom != nil {
		query = query.Where("wastages.created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("wastages.created_at < ?", *filter.DateTo)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Product").
		Order("wastages.created_at DESC").
		Offset((filter.Page - 1) * filter.PerPage).Limit(filter.PerPage).
		Find(&wastages).Error
	return wastages, total, err
}

func (r *wastageRepo) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Wastage{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *wastageRepo) TotalCostSince(since time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&model.Wastage{}).
		Where("created_at >= ?", since).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&total).Error
	return total, err
}

func (r *wastageRepo) TotalQuantitySince(since time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&model.Wastage{}).
		Where("created_at >= ?", since).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *wastageRepo) StatsByReason(since time.Time) ([]WastageReasonStats, error) {
	var stats []WastageReasonStats
	err := r.db.Model(&model.Wastage{}).
		Select("reason, COUNT(id) as count, COALESCE(SUM(total_cost), 0) as total_cost, COALESCE(SUM(quantity), 0) as total_quantity").
		Where("created_at >= ?", since).
		Group("reason").
		Scan(&stats).Error
	return stats, err
}

func (r *wastageRepo) TopWastedProducts(since time.Time, limit int) ([]WastedProductStats, error) {
	var stats []WastedProductStats
	err := r.db.Model(&model.Wastage{}).
		Select("products.name as name, COALESCE(SUM(wastages.quantity), 0) as total_quantity, COALESCE(SUM(wastages.total_cost), 0) as total_cost").
		Joins("JOIN products ON products.id = wastages.product_id").
		Where("wastages.created_at >= ?", since).
		Group("products.id, products.name").
		Order("total_cost DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

func (r *wastageRepo) CreateReason(reason *model.WastageReason) error {
	return r.db.Create(reason).Error
}

func (r *wastageRepo) FindReasonByName(name string) (*model.WastageReason, error) {
	var reason model.WastageReason
	err := r.db.First(&reason, "name = ?", name).Error
	return &reason, err
}

func (r *wastageRepo) FindActiveReasons() ([]model.WastageReason, error) {
	var reasons []model.WastageReason
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&reasons).Error
	return reasons, err
}

package repository

import (
	"github.com/shefospecial/victoriasystem/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll() ([]model.Category, error)
	FindActive() ([]model.Category, error)
	FindByID(id uuid.UUID) (*model.Category, error)
	FindByName(name string) (*model.Category, error)
	Search(query string) ([]model.Category, error)
	Update(category *model.Category) error
	Delete(category *model.Category) error
	AddSales(tx *gorm.DB, id uuid.UUID, delta float64) error
	ResetSales(id uuid.UUID) error
	ProductCount(id uuid.UUID) (int64, error)
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindActive() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	var category model.Category
	err := r.db.First(&category, "id = ?", id).Error
	return &category, err
}

func (r *categoryRepo) FindByName(name string) (*model.Category, error) {
	var category model.Category
	err := r.db.First(&category, "name = ?", name).Error
	return &category, err
}

func (r *categoryRepo) Search(query string) ([]model.Category, error) {
	var categories []model.Category
	like := "%" + query + "%"
	err := r.db.Where("name LIKE ? OR description LIKE ?", like, like).Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) Update(category *model.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepo) Delete(category *model.Category) error {
	return r.db.Delete(category).Error
}

// AddSales applies a net sales delta as an atomic increment inside the
// caller's transaction. delta is negative for returns.
func (r *categoryRepo) AddSales(tx *gorm.DB, id uuid.UUID, delta float64) error {
	return tx.Model(&model.Category{}).
		Where("id = ?", id).
		Update("total_sales", gorm.Expr("total_sales + ?", delta)).Error
}

func (r *categoryRepo) ResetSales(id uuid.UUID) error {
	return r.db.Model(&model.Category{}).
		Where("id = ?", id).
		Update("total_sales", 0).Error
}

func (r *categoryRepo) ProductCount(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

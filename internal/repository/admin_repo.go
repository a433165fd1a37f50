package repository

import (
	"github.com/shefospecial/victoriasystem/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(admin *model.Admin) error
	FindByID(id uuid.UUID) (*model.Admin, error)
	FindByUsername(username string) (*model.Admin, error)
	Count() (int64, error)
}

type adminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) AdminRepository {
	return &adminRepo{db}
}

func (r *adminRepo) Create(admin *model.Admin) error {
	return r.db.Create(admin).Error
}

func (r *adminRepo) FindByID(id uuid.UUID) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.First(&admin, "id = ?", id).Error
	return &admin, err
}

func (r *adminRepo) FindByUsername(username string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.First(&admin, "username = ?", username).Error
	return &admin, err
}

func (r *adminRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Admin{}).Count(&count).Error
	return count, err
}

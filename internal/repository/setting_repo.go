package repository

import (
	"github.com/shefospecial/victoriasystem/internal/model"

	"gorm.io/gorm"
)

type SettingRepository interface {
	FindAll() ([]model.Setting, error)
	FindByKey(key string) (*model.Setting, error)
	GetValue(key, fallback string) string
	Upsert(key, value, description string) (*model.Setting, error)
	Delete(setting *model.Setting) error
}

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db}
}

func (r *settingRepo) FindAll() ([]model.Setting, error) {
	var settings []model.Setting
	err := r.db.Order("key ASC").Find(&settings).Error
	return settings, err
}

func (r *settingRepo) FindByKey(key string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.First(&setting, "key = ?", key).Error
	return &setting, err
}

// GetValue returns the stored value or fallback when the key is absent.
func (r *settingRepo) GetValue(key, fallback string) string {
	setting, err := r.FindByKey(key)
	if err != nil {
		return fallback
	}
	return setting.Value
}

func (r *settingRepo) Upsert(key, value, description string) (*model.Setting, error) {
	setting, err := r.FindByKey(key)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		setting = &model.Setting{Key: key, Value: value, Description: description}
		if err := r.db.Create(setting).Error; err != nil {
			return nil, err
		}
		return setting, nil
	}

	setting.Value = value
	if description != "" {
		setting.Description = description
	}
	if err := r.db.Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}

func (r *settingRepo) Delete(setting *model.Setting) error {
	return r.db.Delete(setting).Error
}

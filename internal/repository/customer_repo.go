package repository

import (
	"github.com/shefospecial/victoriasystem/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll(search string, page, perPage int) ([]model.Customer, int64, error)
	FindByID(id uuid.UUID) (*model.Customer, error)
	FindByPhone(phone string) (*model.Customer, error)
	FindByEmail(email string) (*model.Customer, error)
	Search(query string, limit int) ([]model.Customer, error)
	Update(customer *model.Customer) error
	Delete(customer *model.Customer) error
	HasInvoices(id uuid.UUID) (bool, error)
	LoyaltyHistory(customerID uuid.UUID) ([]model.LoyaltyTransaction, error)
	Count() (int64, error)
	TotalLoyaltyPoints() (int64, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindAll(search string, page, perPage int) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	query := r.db.Model(&model.Customer{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&customers).Error
	return customers, total, err
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "id = ?", id).Error
	return &customer, err
}

func (r *customerRepo) FindByPhone(phone string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "phone = ?", phone).Error
	return &customer, err
}

func (r *customerRepo) FindByEmail(email string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "email = ?", email).Error
	return &customer, err
}

func (r *customerRepo) Search(query string, limit int) ([]model.Customer, error) {
	var customers []model.Customer
	like := "%" + query + "%"
	err := r.db.Where("name LIKE ? OR phone LIKE ?", like, like).
		Limit(limit).Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) Delete(customer *model.Customer) error {
	return r.db.Delete(customer).Error
}

func (r *customerRepo) HasInvoices(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Invoice{}).Where("customer_id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *customerRepo) LoyaltyHistory(customerID uuid.UUID) ([]model.LoyaltyTransaction, error) {
	var transactions []model.LoyaltyTransaction
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *customerRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Customer{}).Count(&count).Error
	return count, err
}

func (r *customerRepo) TotalLoyaltyPoints() (int64, error) {
	var total int64
	err := r.db.Model(&model.Customer{}).
		Select("COALESCE(SUM(loyalty_points), 0)").
		Scan(&total).Error
	return total, err
}

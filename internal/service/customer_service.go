package service

import (
	"errors"
	"fmt"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrCustomerHasHistory = errors.New("customer has invoices and cannot be deleted")
	ErrNotEnoughPoints    = errors.New("not enough loyalty points")
)

// CustomerStatistics is the customers overview block.
type CustomerStatistics struct {
	TotalCustomers     int64 `json:"total_customers"`
	TotalLoyaltyPoints int64 `json:"total_loyalty_points"`
}

type CustomerService interface {
	Create(customer *model.Customer) error
	Update(id uuid.UUID, req *model.Customer) (*model.Customer, error)
	Delete(id uuid.UUID) error
	Get(id uuid.UUID) (*model.Customer, error)
	List(search string, page, perPage int) ([]model.Customer, int64, error)
	Search(query string, limit int) ([]model.Customer, error)
	Invoices(id uuid.UUID) ([]model.Invoice, error)
	LoyaltyHistory(id uuid.UUID) ([]model.LoyaltyTransaction, error)
	RedeemPoints(id uuid.UUID, points int, description string) (*model.Customer, error)
	Statistics() (*CustomerStatistics, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	db           *gorm.DB
}

func NewCustomerService(customerRepo repository.CustomerRepository, invoiceRepo repository.InvoiceRepository, db *gorm.DB) CustomerService {
	return &customerService{customerRepo: customerRepo, invoiceRepo: invoiceRepo, db: db}
}

func (s *customerService) checkDuplicates(req *model.Customer, selfID uuid.UUID) error {
	if req.Phone != nil && *req.Phone != "" {
		other, _ := s.customerRepo.FindByPhone(*req.Phone)
		if other != nil && other.ID != uuid.Nil && other.ID != selfID {
			return ErrPhoneTaken
		}
	}
	if req.Email != nil && *req.Email != "" {
		other, _ := s.customerRepo.FindByEmail(*req.Email)
		if other != nil && other.ID != uuid.Nil && other.ID != selfID {
			return ErrEmailTaken
		}
	}
	return nil
}

func (s *customerService) Create(customer *model.Customer) error {
	if errs := validator.ValidateStruct(customer); len(errs) > 0 {
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	if err := s.checkDuplicates(customer, uuid.Nil); err != nil {
		return err
	}
	return s.customerRepo.Create(customer)
}

func (s *customerService) Update(id uuid.UUID, req *model.Customer) (*model.Customer, error) {
	existing, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	if err := s.checkDuplicates(req, id); err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Address = req.Address

	if err := s.customerRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *customerService) Delete(id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return errors.New("customer not found")
	}
	hasInvoices, err := s.customerRepo.HasInvoices(id)
	if err != nil {
		return err
	}
	if hasInvoices {
		return ErrCustomerHasHistory
	}
	return s.customerRepo.Delete(customer)
}

func (s *customerService) Get(id uuid.UUID) (*model.Customer, error) {
	return s.customerRepo.FindByID(id)
}

func (s *customerService) List(search string, page, perPage int) ([]model.Customer, int64, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	return s.customerRepo.FindAll(search, page, perPage)
}

func (s *customerService) Search(query string, limit int) ([]model.Customer, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.customerRepo.Search(query, limit)
}

func (s *customerService) Invoices(id uuid.UUID) ([]model.Invoice, error) {
	if _, err := s.customerRepo.FindByID(id); err != nil {
		return nil, errors.New("customer not found")
	}
	return s.invoiceRepo.FindByCustomer(id)
}

func (s *customerService) LoyaltyHistory(id uuid.UUID) ([]model.LoyaltyTransaction, error) {
	if _, err := s.customerRepo.FindByID(id); err != nil {
		return nil, errors.New("customer not found")
	}
	return s.customerRepo.LoyaltyHistory(id)
}

// RedeemPoints deducts loyalty points atomically. When the balance is too
// low nothing changes and the customer keeps their points.
func (s *customerService) RedeemPoints(id uuid.UUID, points int, description string) (*model.Customer, error) {
	if points <= 0 {
		return nil, errors.New("points must be positive")
	}

	var redeemed *model.Customer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var customer model.Customer
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&customer, "id = ?", id).Error; err != nil {
			return errors.New("customer not found")
		}

		if customer.LoyaltyPoints < points {
			return ErrNotEnoughPoints
		}

		customer.LoyaltyPoints -= points
		if err := tx.Save(&customer).Error; err != nil {
			return err
		}

		if description == "" {
			description = "Points redemption"
		}
		entry := model.LoyaltyTransaction{
			CustomerID:  customer.ID,
			Points:      -points,
			Type:        model.LoyaltyRedeemed,
			Description: description,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		redeemed = &customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return redeemed, nil
}

func (s *customerService) Statistics() (*CustomerStatistics, error) {
	total, err := s.customerRepo.Count()
	if err != nil {
		return nil, err
	}
	points, err := s.customerRepo.TotalLoyaltyPoints()
	if err != nil {
		return nil, err
	}
	return &CustomerStatistics{TotalCustomers: total, TotalLoyaltyPoints: points}, nil
}

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/notify"
	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/internal/ws"
	"github.com/shefospecial/victoriasystem/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrWastageReasonTaken = errors.New("wastage reason already exists")

// RecordWastageRequest writes stock off as loss.
type RecordWastageRequest struct {
	ProductID  uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0"`
	Reason     string    `json:"reason" validate:"required"`
	Notes      string    `json:"notes"`
	RecordedBy string    `json:"recorded_by" validate:"required"`
}

// WastageStatistics aggregates losses over a trailing window.
type WastageStatistics struct {
	Days          int                             `json:"days"`
	Count         int64                           `json:"count"`
	TotalQuantity int64                           `json:"total_quantity"`
	TotalCost     float64                         `json:"total_cost"`
	ByReason      []repository.WastageReasonStats `json:"by_reason"`
	TopProducts   []repository.WastedProductStats `json:"top_products"`
}

type WastageService interface {
	Record(req *RecordWastageRequest) (*model.Wastage, error)
	Delete(id uuid.UUID) error
	Get(id uuid.UUID) (*model.Wastage, error)
	List(filter repository.WastageFilter) ([]model.Wastage, int64, error)
	Statistics(days int) (*WastageStatistics, error)

	ListReasons() ([]model.WastageReason, error)
	CreateReason(reason *model.WastageReason) error
}

type wastageService struct {
	wastageRepo repository.WastageRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	hub         *ws.Hub
	telegram    *notify.Telegram
}

func NewWastageService(
	wastageRepo repository.WastageRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
	hub *ws.Hub,
	telegram *notify.Telegram,
) WastageService {
	return &wastageService{
		wastageRepo: wastageRepo,
		productRepo: productRepo,
		db:          db,
		hub:         hub,
		telegram:    telegram,
	}
}

// Record writes off stock. Unlike sales, wastage never drives a quantity
// negative: you cannot lose more than you have. The unit cost is snapshotted
// from the current purchase price.
func (s *wastageService) Record(req *RecordWastageRequest) (*model.Wastage, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	wastage := &model.Wastage{
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		Reason:     req.Reason,
		Notes:      req.Notes,
		RecordedBy: req.RecordedBy,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&product, "id = ?", req.ProductID).Error; err != nil {
			return errors.New("product not found")
		}

		if product.Quantity < req.Quantity {
			return fmt.Errorf("%w for '%s'", ErrInsufficientStock, product.Name)
		}

		wastage.CostPerUnit = product.PurchasePrice
		wastage.TotalCost = product.PurchasePrice * float64(req.Quantity)

		if err := s.productRepo.AdjustQuantity(tx, product.ID, -req.Quantity); err != nil {
			return err
		}
		return s.wastageRepo.Create(tx, wastage)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.wastageRepo.FindByID(wastage.ID)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(ws.EventWastageRecorded, map[string]interface{}{
		"product_id": created.ProductID,
		"quantity":   created.Quantity,
		"reason":     created.Reason,
		"total_cost": created.TotalCost,
	})
	go s.telegram.SendWastage(created)
	return created, nil
}

// Delete reverses a wastage record and restores the written-off quantity.
func (s *wastageService) Delete(id uuid.UUID) error {
	wastage, err := s.wastageRepo.FindByID(id)
	if err != nil {
		return errors.New("wastage record not found")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.AdjustQuantity(tx, wastage.ProductID, wastage.Quantity); err != nil {
			return err
		}
		return s.wastageRepo.Delete(tx, wastage)
	})
}

func (s *wastageService) Get(id uuid.UUID) (*model.Wastage, error) {
	return s.wastageRepo.FindByID(id)
}

func (s *wastageService) List(filter repository.WastageFilter) ([]model.Wastage, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	return s.wastageRepo.FindAll(filter)
}

func (s *wastageService) Statistics(days int) (*WastageStatistics, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	count, err := s.wastageRepo.CountSince(since)
	if err != nil {
		return nil, err
	}
	quantity, err := s.wastageRepo.TotalQuantitySince(since)
	if err != nil {
		return nil, err
	}
	cost, err := s.wastageRepo.TotalCostSince(since)
	if err != nil {
		return nil, err
	}
	byReason, err := s.wastageRepo.StatsByReason(since)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.wastageRepo.TopWastedProducts(since, 10)
	if err != nil {
		return nil, err
	}

	return &WastageStatistics{
		Days:          days,
		Count:         count,
		TotalQuantity: quantity,
		TotalCost:     cost,
		ByReason:      byReason,
		TopProducts:   topProducts,
	}, nil
}

func (s *wastageService) ListReasons() ([]model.WastageReason, error) {
	return s.wastageRepo.FindActiveReasons()
}

func (s *wastageService) CreateReason(reason *model.WastageReason) error {
	if errs := validator.ValidateStruct(reason); len(errs) > 0 {
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	existing, _ := s.wastageRepo.FindReasonByName(reason.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrWastageReasonTaken
	}
	reason.IsActive = true
	return s.wastageRepo.CreateReason(reason)
}

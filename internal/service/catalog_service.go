package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/notify"
	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/internal/ws"
	"github.com/shefospecial/victoriasystem/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSerialTaken       = errors.New("serial number already exists")
	ErrCategoryTaken     = errors.New("category name already exists")
	ErrProductReferenced = errors.New("product has invoices and cannot be deleted")
	ErrCategoryNotEmpty  = errors.New("category still has products")
)

// ProductStatistics is the catalog overview block.
type ProductStatistics struct {
	TotalProducts  int64   `json:"total_products"`
	LowStockCount  int     `json:"low_stock_count"`
	InventoryValue float64 `json:"inventory_value"`
	RetailValue    float64 `json:"retail_value"`
}

// CategoryStatistics summarizes one category.
type CategoryStatistics struct {
	Category     model.Category `json:"category"`
	ProductCount int64          `json:"product_count"`
}

type CatalogService interface {
	CreateProduct(product *model.Product) error
	UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetProductBySerial(serial string) (*model.Product, error)
	ListProducts(page, perPage int) ([]model.Product, int64, error)
	SearchProducts(query string) ([]model.Product, error)
	LowStockProducts() ([]model.Product, error)
	SetQuantity(id uuid.UUID, quantity int) (*model.Product, error)
	ChangeQuantity(id uuid.UUID, delta int) (*model.Product, error)
	ProductStatistics() (*ProductStatistics, error)
	LastUpdatedAt() (*time.Time, error)

	CreateCategory(category *model.Category) error
	UpdateCategory(id uuid.UUID, req *model.Category) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
	GetCategory(id uuid.UUID) (*model.Category, error)
	ListCategories(activeOnly bool) ([]model.Category, error)
	SearchCategories(query string) ([]model.Category, error)
	ResetCategorySales(id uuid.UUID) error
	CategoryStatistics() ([]CategoryStatistics, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	settingRepo  repository.SettingRepository
	db           *gorm.DB
	hub          *ws.Hub
	telegram     *notify.Telegram
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	settingRepo repository.SettingRepository,
	db *gorm.DB,
	hub *ws.Hub,
	telegram *notify.Telegram,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		settingRepo:  settingRepo,
		db:           db,
		hub:          hub,
		telegram:     telegram,
	}
}

func (s *catalogService) lowStockThreshold() int {
	threshold, err := strconv.Atoi(s.settingRepo.GetValue(model.SettingLowStockThreshold, "5"))
	if err != nil {
		return 5
	}
	return threshold
}

func (s *catalogService) CreateProduct(product *model.Product) error {
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	if product.SerialNumber != nil && *product.SerialNumber != "" {
		existing, _ := s.productRepo.FindBySerial(*product.SerialNumber)
		if existing != nil && existing.ID != uuid.Nil {
			return ErrSerialTaken
		}
	}
	if product.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*product.CategoryID); err != nil {
			return errors.New("category not found")
		}
	}

	if err := s.productRepo.Create(product); err != nil {
		return err
	}

	s.hub.Publish(ws.EventStockChanged, map[string]interface{}{
		"action":     "product_created",
		"product_id": product.ID,
		"name":       product.Name,
		"quantity":   product.Quantity,
	})
	go s.telegram.SendProductAdded(product)
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error) {
	var updated *model.Product
	changes := map[string]string{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&existing, "id = ?", id).Error; err != nil {
			return errors.New("product not found")
		}

		if req.SerialNumber != nil && *req.SerialNumber != "" &&
			(existing.SerialNumber == nil || *existing.SerialNumber != *req.SerialNumber) {
			other, _ := s.productRepo.FindBySerial(*req.SerialNumber)
			if other != nil && other.ID != uuid.Nil && other.ID != id {
				return ErrSerialTaken
			}
		}

		if existing.Name != req.Name {
			changes["name"] = fmt.Sprintf("%s → %s", existing.Name, req.Name)
		}
		if existing.PurchasePrice != req.PurchasePrice {
			changes["purchase_price"] = fmt.Sprintf("%.2f → %.2f", existing.PurchasePrice, req.PurchasePrice)
		}
		if existing.SellingPrice != req.SellingPrice {
			changes["selling_price"] = fmt.Sprintf("%.2f → %.2f", existing.SellingPrice, req.SellingPrice)
		}
		if existing.Quantity != req.Quantity {
			changes["quantity"] = fmt.Sprintf("%d → %d", existing.Quantity, req.Quantity)
		}

		existing.Name = req.Name
		existing.PurchasePrice = req.PurchasePrice
		existing.SellingPrice = req.SellingPrice
		existing.Quantity = req.Quantity
		existing.SerialNumber = req.SerialNumber
		existing.Barcode = req.Barcode
		existing.CategoryID = req.CategoryID

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		s.hub.Publish(ws.EventStockChanged, map[string]interface{}{
			"action":     "product_updated",
			"product_id": updated.ID,
			"name":       updated.Name,
			"quantity":   updated.Quantity,
		})
		go s.telegram.SendProductUpdated(updated, changes)
	}
	return updated, nil
}

// DeleteProduct refuses to remove products referenced by invoices; those
// stay for reporting history.
func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return errors.New("product not found")
	}

	referenced, err := s.productRepo.HasInvoiceItems(id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrProductReferenced
	}
	return s.productRepo.Delete(product)
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *catalogService) GetProductBySerial(serial string) (*model.Product, error) {
	return s.productRepo.FindBySerial(serial)
}

func (s *catalogService) ListProducts(page, perPage int) ([]model.Product, int64, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 50
	}
	return s.productRepo.FindAll(page, perPage)
}

func (s *catalogService) SearchProducts(query string) ([]model.Product, error) {
	return s.productRepo.Search(query)
}

func (s *catalogService) LowStockProducts() ([]model.Product, error) {
	return s.productRepo.LowStock(s.lowStockThreshold())
}

// SetQuantity overwrites the stock level, for manual corrections.
func (s *catalogService) SetQuantity(id uuid.UUID, quantity int) (*model.Product, error) {
	if quantity < 0 {
		return nil, errors.New("quantity cannot be negative")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&existing, "id = ?", id).Error; err != nil {
			return errors.New("product not found")
		}
		return s.productRepo.UpdateQuantity(tx, id, quantity)
	})
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(ws.EventStockChanged, map[string]interface{}{
		"action":     "quantity_set",
		"product_id": product.ID,
		"name":       product.Name,
		"quantity":   product.Quantity,
	})
	return product, nil
}

// ChangeQuantity applies a relative stock adjustment, clamped at zero.
func (s *catalogService) ChangeQuantity(id uuid.UUID, delta int) (*model.Product, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&existing, "id = ?", id).Error; err != nil {
			return errors.New("product not found")
		}
		if existing.Quantity+delta < 0 {
			return s.productRepo.UpdateQuantity(tx, id, 0)
		}
		return s.productRepo.AdjustQuantity(tx, id, delta)
	})
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(ws.EventStockChanged, map[string]interface{}{
		"action":     "quantity_adjusted",
		"product_id": product.ID,
		"name":       product.Name,
		"quantity":   product.Quantity,
	})
	return product, nil
}

func (s *catalogService) ProductStatistics() (*ProductStatistics, error) {
	total, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}
	lowStock, err := s.LowStockProducts()
	if err != nil {
		return nil, err
	}

	stats := &ProductStatistics{
		TotalProducts: total,
		LowStockCount: len(lowStock),
	}

	// Inventory values need every row; paging through keeps memory bounded.
	page := 1
	for {
		products, _, err := s.productRepo.FindAll(page, 500)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			break
		}
		for _, p := range products {
			if p.Quantity > 0 {
				stats.InventoryValue += float64(p.Quantity) * p.PurchasePrice
				stats.RetailValue += float64(p.Quantity) * p.SellingPrice
			}
		}
		page++
	}
	return stats, nil
}

func (s *catalogService) LastUpdatedAt() (*time.Time, error) {
	return s.productRepo.LastUpdatedAt()
}

func (s *catalogService) CreateCategory(category *model.Category) error {
	if errs := validator.ValidateStruct(category); len(errs) > 0 {
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}

	existing, _ := s.categoryRepo.FindByName(category.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrCategoryTaken
	}
	category.IsActive = true
	return s.categoryRepo.Create(category)
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *model.Category) (*model.Category, error) {
	existing, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("category not found")
	}

	if req.Name != "" && req.Name != existing.Name {
		other, _ := s.categoryRepo.FindByName(req.Name)
		if other != nil && other.ID != uuid.Nil && other.ID != id {
			return nil, ErrCategoryTaken
		}
		existing.Name = req.Name
	}
	existing.Description = req.Description
	existing.IsActive = req.IsActive

	if err := s.categoryRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return errors.New("category not found")
	}

	count, err := s.categoryRepo.ProductCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryNotEmpty
	}
	return s.categoryRepo.Delete(category)
}

func (s *catalogService) GetCategory(id uuid.UUID) (*model.Category, error) {
	return s.categoryRepo.FindByID(id)
}

func (s *catalogService) ListCategories(activeOnly bool) ([]model.Category, error) {
	if activeOnly {
		return s.categoryRepo.FindActive()
	}
	return s.categoryRepo.FindAll()
}

func (s *catalogService) SearchCategories(query string) ([]model.Category, error) {
	return s.categoryRepo.Search(query)
}

func (s *catalogService) ResetCategorySales(id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return errors.New("category not found")
	}
	return s.categoryRepo.ResetSales(id)
}

func (s *catalogService) CategoryStatistics() ([]CategoryStatistics, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}

	stats := make([]CategoryStatistics, 0, len(categories))
	for _, category := range categories {
		count, err := s.categoryRepo.ProductCount(category.ID)
		if err != nil {
			return nil, err
		}
		stats = append(stats, CategoryStatistics{Category: category, ProductCount: count})
	}
	return stats, nil
}

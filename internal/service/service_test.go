package service

import (
	"testing"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/notify"
	"github.com/shefospecial/victoriasystem/internal/printer"
	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/internal/ws"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires the full service stack against an in-memory database.
type testEnv struct {
	db *gorm.DB

	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	supplierRepo repository.SupplierRepository
	orderRepo    repository.PurchaseOrderRepository
	wastageRepo  repository.WastageRepository
	reminderRepo repository.ReminderRepository
	settingRepo  repository.SettingRepository

	sales     SalesService
	catalog   CatalogService
	customers CustomerService
	suppliers SupplierService
	wastages  WastageService
	reminders ReminderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Admin{},
		&model.Category{},
		&model.Product{},
		&model.Customer{},
		&model.LoyaltyTransaction{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.Supplier{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderItem{},
		&model.SupplierPayment{},
		&model.SupplierTransaction{},
		&model.Wastage{},
		&model.WastageReason{},
		&model.Reminder{},
		&model.Setting{},
	))

	for i := range model.DefaultSettings {
		setting := model.DefaultSettings[i]
		require.NoError(t, db.Create(&setting).Error)
	}
	for i := range model.DefaultWastageReasons {
		reason := model.DefaultWastageReasons[i]
		reason.IsActive = true
		require.NoError(t, db.Create(&reason).Error)
	}

	hub := ws.NewHub()
	go hub.Run()

	env := &testEnv{
		db:           db,
		productRepo:  repository.NewProductRepo(db),
		categoryRepo: repository.NewCategoryRepo(db),
		customerRepo: repository.NewCustomerRepo(db),
		invoiceRepo:  repository.NewInvoiceRepo(db),
		supplierRepo: repository.NewSupplierRepo(db),
		orderRepo:    repository.NewPurchaseOrderRepo(db),
		wastageRepo:  repository.NewWastageRepo(db),
		reminderRepo: repository.NewReminderRepo(db),
		settingRepo:  repository.NewSettingRepo(db),
	}

	telegram := notify.NewTelegram(env.settingRepo)

	env.catalog = NewCatalogService(env.productRepo, env.categoryRepo, env.settingRepo, db, hub, telegram)
	env.customers = NewCustomerService(env.customerRepo, env.invoiceRepo, db)
	env.sales = NewSalesService(env.invoiceRepo, env.productRepo, env.categoryRepo, env.customerRepo, env.settingRepo, db, hub, telegram, printer.LogPrinter{})
	env.suppliers = NewSupplierService(env.supplierRepo, env.orderRepo, env.productRepo, db, hub)
	env.wastages = NewWastageService(env.wastageRepo, env.productRepo, db, hub, telegram)
	env.reminders = NewReminderService(env.reminderRepo)

	return env
}

func (env *testEnv) createCategory(t *testing.T, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name}
	require.NoError(t, env.catalog.CreateCategory(category))
	return category
}

func (env *testEnv) createProduct(t *testing.T, name string, purchase, selling float64, quantity int, categoryID *uuid.UUID) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:          name,
		PurchasePrice: purchase,
		SellingPrice:  selling,
		Quantity:      quantity,
		CategoryID:    categoryID,
	}
	require.NoError(t, env.catalog.CreateProduct(product))
	return product
}

func (env *testEnv) createCustomer(t *testing.T, name string) *model.Customer {
	t.Helper()
	customer := &model.Customer{Name: name}
	require.NoError(t, env.customers.Create(customer))
	return customer
}

func (env *testEnv) createSupplier(t *testing.T, name string) *model.Supplier {
	t.Helper()
	supplier := &model.Supplier{Name: name}
	require.NoError(t, env.suppliers.Create(supplier))
	return supplier
}

func (env *testEnv) productQuantity(t *testing.T, id uuid.UUID) int {
	t.Helper()
	product, err := env.productRepo.FindByID(id)
	require.NoError(t, err)
	return product.Quantity
}

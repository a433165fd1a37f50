package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shefospecial/victoriasystem/internal/config"
	"github.com/shefospecial/victoriasystem/internal/handler"
	"github.com/shefospecial/victoriasystem/internal/middleware"
	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/notify"
	"github.com/shefospecial/victoriasystem/internal/printer"
	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/internal/service"
	"github.com/shefospecial/victoriasystem/internal/ws"
	"github.com/shefospecial/victoriasystem/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db := database.Connect(cfg.DBDriver, cfg.DBDSN)
	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatal("Migration failed:", err)
	}

	seedDefaults(db)

	wsHub := ws.NewHub()
	go wsHub.Run()

	// Repositories
	adminRepo := repository.NewAdminRepo(db)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	orderRepo := repository.NewPurchaseOrderRepo(db)
	wastageRepo := repository.NewWastageRepo(db)
	reminderRepo := repository.NewReminderRepo(db)
	settingRepo := repository.NewSettingRepo(db)

	telegram := notify.NewTelegram(settingRepo)
	receiptPrinter := printer.LogPrinter{}

	// Services
	authService := service.NewAuthService(adminRepo)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, settingRepo, db, wsHub, telegram)
	customerService := service.NewCustomerService(customerRepo, invoiceRepo, db)
	salesService := service.NewSalesService(invoiceRepo, productRepo, categoryRepo, customerRepo, settingRepo, db, wsHub, telegram, receiptPrinter)
	supplierService := service.NewSupplierService(supplierRepo, orderRepo, productRepo, db, wsHub)
	wastageService := service.NewWastageService(wastageRepo, productRepo, db, wsHub, telegram)
	reminderService := service.NewReminderService(reminderRepo)
	settingsService := service.NewSettingsService(settingRepo, telegram)

	if err := authService.SeedDefaultAdmin(); err != nil {
		log.Printf("Warning: failed to seed admin account: %v", err)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	categoryHandler := handler.NewCategoryHandler(catalogService)
	customerHandler := handler.NewCustomerHandler(customerService)
	invoiceHandler := handler.NewInvoiceHandler(salesService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	wastageHandler := handler.NewWastageHandler(wastageService)
	reminderHandler := handler.NewReminderHandler(reminderService)
	settingHandler := handler.NewSettingHandler(settingsService, catalogService)

	app := fiber.New(fiber.Config{
		AppName: "Victoria Store v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/verify", authHandler.Verify)

	protected := api.Group("", middleware.RequireAuth(adminRepo))

	protected.Get("/products", productHandler.List)
	protected.Post("/products", productHandler.Create)
	protected.Get("/products/search", productHandler.Search)
	protected.Get("/products/low-stock", productHandler.LowStock)
	protected.Get("/products/statistics", productHandler.Statistics)
	protected.Get("/products/last-updated", productHandler.LastUpdated)
	protected.Get("/products/barcode/:serial", productHandler.GetByBarcode)
	protected.Get("/products/:id", productHandler.Get)
	protected.Put("/products/:id", productHandler.Update)
	protected.Patch("/products/:id/quantity", productHandler.SetQuantity)
	protected.Delete("/products/:id", productHandler.Delete)

	protected.Get("/categories", categoryHandler.List)
	protected.Post("/categories", categoryHandler.Create)
	protected.Get("/categories/search", categoryHandler.Search)
	protected.Get("/categories/statistics", categoryHandler.Statistics)
	protected.Get("/categories/:id", categoryHandler.Get)
	protected.Put("/categories/:id", categoryHandler.Update)
	protected.Delete("/categories/:id", categoryHandler.Delete)
	protected.Post("/categories/:id/reset-sales", categoryHandler.ResetSales)

	protected.Get("/customers", customerHandler.List)
	protected.Post("/customers", customerHandler.Create)
	protected.Get("/customers/search", customerHandler.Search)
	protected.Get("/customers/statistics", customerHandler.Statistics)
	protected.Get("/customers/:id", customerHandler.Get)
	protected.Put("/customers/:id", customerHandler.Update)
	protected.Delete("/customers/:id", customerHandler.Delete)
	protected.Get("/customers/:id/invoices", customerHandler.Invoices)
	protected.Get("/customers/:id/loyalty", customerHandler.LoyaltyHistory)
	protected.Post("/customers/:id/redeem", customerHandler.RedeemPoints)

	protected.Get("/invoices", invoiceHandler.List)
	protected.Post("/invoices", invoiceHandler.Create)
	protected.Get("/invoices/search", invoiceHandler.Search)
	protected.Get("/invoices/stats", invoiceHandler.Stats)
	protected.Get("/invoices/daily", invoiceHandler.Daily)
	protected.Get("/invoices/:id", invoiceHandler.Get)
	protected.Post("/invoices/:id/return", invoiceHandler.Return)

	protected.Get("/suppliers", supplierHandler.List)
	protected.Post("/suppliers", supplierHandler.Create)
	protected.Get("/suppliers/statistics", supplierHandler.Statistics)
	protected.Post("/suppliers/recalculate-balances", supplierHandler.RecalculateBalances)
	protected.Get("/suppliers/:id", supplierHandler.Get)
	protected.Put("/suppliers/:id", supplierHandler.Update)
	protected.Delete("/suppliers/:id", supplierHandler.Deactivate)
	protected.Get("/suppliers/:id/transactions", supplierHandler.ListTransactions)
	protected.Get("/suppliers/:id/balance", supplierHandler.Balance)
	protected.Get("/suppliers/:id/statement", supplierHandler.Statement)
	protected.Post("/suppliers/:id/fix-balance", supplierHandler.FixBalance)

	protected.Get("/purchase-orders", supplierHandler.ListPurchaseOrders)
	protected.Post("/purchase-orders", supplierHandler.CreatePurchaseOrder)
	protected.Get("/purchase-orders/:id", supplierHandler.GetPurchaseOrder)

	protected.Get("/supplier-payments", supplierHandler.ListPayments)
	protected.Post("/supplier-payments", supplierHandler.RecordPayment)

	protected.Post("/supplier-transactions", supplierHandler.AddTransaction)
	protected.Delete("/supplier-transactions/:id", supplierHandler.DeleteTransaction)

	protected.Get("/wastages", wastageHandler.List)
	protected.Post("/wastages", wastageHandler.Record)
	protected.Get("/wastages/statistics", wastageHandler.Statistics)
	protected.Get("/wastages/:id", wastageHandler.Get)
	protected.Delete("/wastages/:id", wastageHandler.Delete)

	protected.Get("/wastage-reasons", wastageHandler.ListReasons)
	protected.Post("/wastage-reasons", wastageHandler.CreateReason)

	protected.Get("/reminders", reminderHandler.List)
	protected.Post("/reminders", reminderHandler.Create)
	protected.Post("/reminders/salary", reminderHandler.CreateSalary)
	protected.Post("/reminders/supplier-payment", reminderHandler.CreateSupplierPayment)
	protected.Get("/reminders/:id", reminderHandler.Get)
	protected.Put("/reminders/:id", reminderHandler.Update)
	protected.Delete("/reminders/:id", reminderHandler.Delete)
	protected.Post("/reminders/:id/complete", reminderHandler.Complete)

	protected.Get("/settings", settingHandler.List)
	protected.Post("/settings", settingHandler.Set)
	protected.Put("/settings/bulk", settingHandler.SetBulk)
	protected.Post("/settings/telegram/test", settingHandler.TestTelegram)
	protected.Get("/settings/check-low-stock", settingHandler.CheckLowStock)
	protected.Get("/settings/:key", settingHandler.Get)
	protected.Delete("/settings/:key", settingHandler.Delete)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exited")
}

// seedDefaults fills the settings and wastage reason tables on first start.
func seedDefaults(db *gorm.DB) {
	for _, setting := range model.DefaultSettings {
		var count int64
		db.Model(&model.Setting{}).Where("key = ?", setting.Key).Count(&count)
		if count == 0 {
			if err := db.Create(&setting).Error; err != nil {
				log.Printf("Warning: failed to seed setting %s: %v", setting.Key, err)
			}
		}
	}

	var categoryCount int64
	db.Model(&model.Category{}).Count(&categoryCount)
	if categoryCount == 0 {
		for _, category := range model.DefaultCategories {
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Warning: failed to seed category %s: %v", category.Name, err)
			}
		}
	}

	for _, reason := range model.DefaultWastageReasons {
		var count int64
		db.Model(&model.WastageReason{}).Where("name = ?", reason.Name).Count(&count)
		if count == 0 {
			reason.IsActive = true
			if err := db.Create(&reason).Error; err != nil {
				log.Printf("Warning: failed to seed wastage reason %s: %v", reason.Name, err)
			}
		}
	}
}

package service

import (
	"testing"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoiceTotals(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "Drinks")
	cola := env.createProduct(t, "Cola", 6.00, 10.00, 20, &category.ID)
	water := env.createProduct(t, "Water", 1.00, 2.00, 50, &category.ID)

	invoice, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		Items: []SaleItem{
			{ProductID: cola.ID, Quantity: 3},
			{ProductID: water.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 34.00, invoice.TotalAmount, 0.001)
	assert.InDelta(t, 20.00, invoice.TotalCost, 0.001)
	assert.InDelta(t, 14.00, invoice.Profit, 0.001)
	assert.Equal(t, model.InvoiceCompleted, invoice.Status)
	assert.Len(t, invoice.InvoiceNumber, 12) // YYYYMMDD + 4-digit sequence

	// Stock moved with the sale.
	assert.Equal(t, 17, env.productQuantity(t, cola.ID))
	assert.Equal(t, 48, env.productQuantity(t, water.ID))

	// Category running total follows the revenue.
	updated, err := env.categoryRepo.FindByID(category.ID)
	require.NoError(t, err)
	assert.InDelta(t, 34.00, updated.TotalSales, 0.001)
}

func TestCreateInvoiceSequentialNumbers(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Gum", 0.50, 1.00, 100, nil)

	first, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		Items: []SaleItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		Items: []SaleItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, first.InvoiceNumber[:8], second.InvoiceNumber[:8])
	assert.Greater(t, second.InvoiceNumber, first.InvoiceNumber)
}

func TestCreateInvoiceEarnsLoyaltyPoints(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Cheese", 20.00, 35.00, 10, nil)
	customer := env.createCustomer(t, "Mona")

	_, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		CustomerID: &customer.ID,
		Items:      []SaleItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	updated, err := env.customerRepo.FindByID(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.LoyaltyPoints) // floor(35 / 10)
	assert.InDelta(t, 35.00, updated.TotalPurchases, 0.001)
	assert.Equal(t, 1, updated.VisitCount)
	require.NotNil(t, updated.LastVisit)

	history, err := env.customerRepo.LoyaltyHistory(customer.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 3, history[0].Points)
	assert.Equal(t, model.LoyaltyEarned, history[0].Type)
}

func TestCreateInvoiceNegativeStockAllowedByDefault(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Juice", 3.00, 5.00, 2, nil)

	_, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		Items: []SaleItem{{ProductID: product.ID, Quantity: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, -3, env.productQuantity(t, product.ID))
}

func TestCreateInvoiceStrictStockPolicy(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.settingRepo.Upsert(model.SettingAllowNegativeStock, "false", "")
	require.NoError(t, err)

	category := env.createCategory(t, "Snacks")
	product := env.createProduct(t, "Chips", 1.00, 2.00, 2, &category.ID)

	_, err = env.sales.CreateInvoice(&CreateInvoiceRequest{
		Items: []SaleItem{{ProductID: product.ID, Quantity: 5}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing moved: stock, category totals and invoice table stay put.
	assert.Equal(t, 2, env.productQuantity(t, product.ID))
	updated, err := env.categoryRepo.FindByID(category.ID)
	require.NoError(t, err)
	assert.Zero(t, updated.TotalSales)
	invoices, total, err := env.invoiceRepo.FindAll(repository.InvoiceFilter{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, invoices)
}

func TestReturnInvoiceRestoresEverything(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "Dairy")
	product := env.createProduct(t, "Milk", 4.00, 6.00, 10, &category.ID)
	customer := env.createCustomer(t, "Hany")

	invoice, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		CustomerID: &customer.ID,
		Items:      []SaleItem{{ProductID: product.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, env.productQuantity(t, product.ID))

	returned, err := env.sales.ReturnInvoice(invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceReturned, returned.Status)

	assert.Equal(t, 10, env.productQuantity(t, product.ID))

	updatedCategory, err := env.categoryRepo.FindByID(category.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0, updatedCategory.TotalSales, 0.001)

	updatedCustomer, err := env.customerRepo.FindByID(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updatedCustomer.LoyaltyPoints)
	assert.InDelta(t, 0, updatedCustomer.TotalPurchases, 0.001)
}

func TestReturnInvoiceTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Tea", 2.00, 4.00, 10, nil)

	invoice, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		Items: []SaleItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = env.sales.ReturnInvoice(invoice.ID)
	require.NoError(t, err)
	_, err = env.sales.ReturnInvoice(invoice.ID)
	assert.ErrorIs(t, err, ErrInvoiceNotCompleted)
	assert.Equal(t, 10, env.productQuantity(t, product.ID))
}

func TestPartialReturnProportionalAmounts(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "Bakery")
	product := env.createProduct(t, "Bread", 1.00, 2.00, 20, &category.ID)

	// 10 units with a 5.00 line discount: effective unit price 1.50.
	discount := 5.00
	invoice, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		Items: []SaleItem{{ProductID: product.ID, Quantity: 10, DiscountAmount: discount}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 15.00, invoice.TotalAmount, 0.001)

	reversal, err := env.sales.PartialReturn(invoice.ID, []ReturnItem{
		{ProductID: product.ID, Quantity: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, "RET-"+invoice.InvoiceNumber, reversal.InvoiceNumber)
	assert.Equal(t, model.InvoiceReturned, reversal.Status)
	require.Len(t, reversal.Items, 1)
	assert.Equal(t, -4, reversal.Items[0].Quantity)
	// 4 of 10 units at the effective 1.50 each.
	assert.InDelta(t, -6.00, reversal.TotalAmount, 0.001)
	assert.InDelta(t, -4.00, reversal.TotalCost, 0.001)

	// Stock back, category total reduced by the returned revenue.
	assert.Equal(t, 14, env.productQuantity(t, product.ID))
	updated, err := env.categoryRepo.FindByID(category.ID)
	require.NoError(t, err)
	assert.InDelta(t, 9.00, updated.TotalSales, 0.001)
}

func TestPartialReturnRejectsExcessQuantity(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Eggs", 3.00, 5.00, 30, nil)

	invoice, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		Items: []SaleItem{{ProductID: product.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = env.sales.PartialReturn(invoice.ID, []ReturnItem{
		{ProductID: product.ID, Quantity: 5},
	})
	assert.ErrorIs(t, err, ErrReturnExceedsInvoice)
	assert.Equal(t, 27, env.productQuantity(t, product.ID))
}

func TestSecondPartialReturnGetsSuffixedNumber(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Soap", 1.00, 3.00, 20, nil)

	invoice, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		Items: []SaleItem{{ProductID: product.ID, Quantity: 6}},
	})
	require.NoError(t, err)

	first, err := env.sales.PartialReturn(invoice.ID, []ReturnItem{{ProductID: product.ID, Quantity: 2}})
	require.NoError(t, err)
	second, err := env.sales.PartialReturn(invoice.ID, []ReturnItem{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	assert.Equal(t, "RET-"+invoice.InvoiceNumber, first.InvoiceNumber)
	assert.Equal(t, "RET-"+invoice.InvoiceNumber+"-2", second.InvoiceNumber)
}

func TestStatsCountCompletedOnly(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Rice", 5.00, 8.00, 50, nil)

	kept, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		Items: []SaleItem{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	returned, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		Items: []SaleItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = env.sales.ReturnInvoice(returned.ID)
	require.NoError(t, err)

	stats, err := env.sales.Stats(kept.CreatedAt.AddDate(0, 0, -1), kept.CreatedAt.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.CompletedCount)
	assert.Equal(t, int64(1), stats.ReturnedCount)
	assert.InDelta(t, 16.00, stats.TotalSales, 0.001)
	assert.InDelta(t, 6.00, stats.TotalProfit, 0.001)
}

package service

import (
	"testing"

	"github.com/shefospecial/victoriasystem/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductRejectsDuplicateSerial(t *testing.T) {
	env := newTestEnv(t)

	first := &model.Product{Name: "Router", SellingPrice: 100, SerialNumber: strPtr("SN-001")}
	require.NoError(t, env.catalog.CreateProduct(first))

	second := &model.Product{Name: "Other Router", SellingPrice: 120, SerialNumber: strPtr("SN-001")}
	err := env.catalog.CreateProduct(second)
	assert.ErrorIs(t, err, ErrSerialTaken)
}

func TestLookupByBarcode(t *testing.T) {
	env := newTestEnv(t)
	product := &model.Product{Name: "Charger", SellingPrice: 50, SerialNumber: strPtr("SN-CHG-9")}
	require.NoError(t, env.catalog.CreateProduct(product))

	found, err := env.catalog.GetProductBySerial("SN-CHG-9")
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
}

func TestLowStockUsesThresholdSetting(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "Batteries", 1.00, 2.00, 3, nil)
	env.createProduct(t, "Cables", 4.00, 7.00, 40, nil)

	low, err := env.catalog.LowStockProducts()
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Batteries", low[0].Name)

	// Raising the threshold pulls more products in.
	_, err = env.settingRepo.Upsert(model.SettingLowStockThreshold, "50", "")
	require.NoError(t, err)
	low, err = env.catalog.LowStockProducts()
	require.NoError(t, err)
	assert.Len(t, low, 2)
}

func TestDeleteProductWithSalesBlocked(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Lamp", 10.00, 18.00, 6, nil)

	_, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		Items: []SaleItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	err = env.catalog.DeleteProduct(product.ID)
	assert.ErrorIs(t, err, ErrProductReferenced)
}

func TestDeleteCategoryWithProductsBlocked(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "Electronics")
	env.createProduct(t, "Speaker", 30.00, 55.00, 4, &category.ID)

	err := env.catalog.DeleteCategory(category.ID)
	assert.ErrorIs(t, err, ErrCategoryNotEmpty)
}

func TestResetCategorySales(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "Frozen")
	product := env.createProduct(t, "Ice Cream", 5.00, 9.00, 30, &category.ID)

	_, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		Items: []SaleItem{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, env.catalog.ResetCategorySales(category.ID))
	updated, err := env.categoryRepo.FindByID(category.ID)
	require.NoError(t, err)
	assert.Zero(t, updated.TotalSales)
}

func TestChangeQuantityClampsAtZero(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Juice", 2.00, 4.00, 5, nil)

	updated, err := env.catalog.ChangeQuantity(product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Quantity)

	updated, err = env.catalog.ChangeQuantity(product.ID, -20)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
}

func TestProductStatistics(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "A", 2.00, 3.00, 10, nil)
	env.createProduct(t, "B", 5.00, 8.00, 2, nil)

	stats, err := env.catalog.ProductStatistics()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.InDelta(t, 30.00, stats.InventoryValue, 0.001) // 10*2 + 2*5
	assert.InDelta(t, 46.00, stats.RetailValue, 0.001)    // 10*3 + 2*8
}

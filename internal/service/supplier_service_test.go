package service

import (
	"testing"

	"github.com/shefospecial/victoriasystem/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePurchaseOrderMovesStockAndLedger(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.createSupplier(t, "Fresh Farms")
	product := env.createProduct(t, "Butter", 10.00, 15.00, 5, nil)

	order, err := env.suppliers.CreatePurchaseOrder(&CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Items: []PurchaseOrderItemRequest{
			{ProductID: product.ID, Quantity: 20, UnitCost: 9.00},
		},
		PaidAmount: 100.00,
	})
	require.NoError(t, err)

	assert.InDelta(t, 180.00, order.TotalAmount, 0.001)
	assert.InDelta(t, 100.00, order.PaidAmount, 0.001)
	assert.InDelta(t, 80.00, order.RemainingAmount, 0.001)
	assert.Equal(t, model.PaymentPartial, order.PaymentStatus)

	// Stock received, purchase price refreshed.
	updated, err := env.productRepo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Quantity)
	assert.InDelta(t, 9.00, updated.PurchasePrice, 0.001)

	// Cached supplier totals follow the ledger.
	refreshed, err := env.supplierRepo.FindByID(supplier.ID)
	require.NoError(t, err)
	assert.InDelta(t, 180.00, refreshed.TotalPurchases, 0.001)
	assert.InDelta(t, 100.00, refreshed.TotalPayments, 0.001)
	assert.InDelta(t, 80.00, refreshed.Balance, 0.001)

	// One purchase entry and one payment entry in the ledger.
	entries, total, err := env.supplierRepo.ListTransactions(supplier.ID, nil, nil, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, entries, 2)
}

func TestCreatePurchaseOrderRejectsOverpayment(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.createSupplier(t, "Metro Goods")
	product := env.createProduct(t, "Oil", 20.00, 28.00, 3, nil)

	_, err := env.suppliers.CreatePurchaseOrder(&CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Items: []PurchaseOrderItemRequest{
			{ProductID: product.ID, Quantity: 2, UnitCost: 20.00},
		},
		PaidAmount: 100.00,
	})
	require.Error(t, err)

	// Rolled back entirely.
	assert.Equal(t, 3, env.productQuantity(t, product.ID))
	refreshed, err := env.supplierRepo.FindByID(supplier.ID)
	require.NoError(t, err)
	assert.Zero(t, refreshed.TotalPurchases)
}

func TestRecordPaymentSettlesOrder(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.createSupplier(t, "Nile Trading")
	product := env.createProduct(t, "Sugar", 8.00, 12.00, 0, nil)

	order, err := env.suppliers.CreatePurchaseOrder(&CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Items: []PurchaseOrderItemRequest{
			{ProductID: product.ID, Quantity: 10, UnitCost: 8.00},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentUnpaid, order.PaymentStatus)

	_, err = env.suppliers.RecordPayment(&SupplierPaymentRequest{
		SupplierID:      supplier.ID,
		PurchaseOrderID: &order.ID,
		Amount:          80.00,
	})
	require.NoError(t, err)

	settled, err := env.suppliers.GetPurchaseOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, settled.PaymentStatus)
	assert.InDelta(t, 0, settled.RemainingAmount, 0.001)

	refreshed, err := env.supplierRepo.FindByID(supplier.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0, refreshed.Balance, 0.001)
}

func TestManualTransactionAdjustsBalance(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.createSupplier(t, "Old Debts Co")

	entry, err := env.suppliers.AddTransaction(&SupplierTransactionRequest{
		SupplierID:  supplier.ID,
		Type:        model.SupplierPurchase,
		Amount:      500.00,
		Description: "Opening balance carried over",
	})
	require.NoError(t, err)

	refreshed, err := env.supplierRepo.FindByID(supplier.ID)
	require.NoError(t, err)
	assert.InDelta(t, 500.00, refreshed.Balance, 0.001)

	require.NoError(t, env.suppliers.DeleteTransaction(entry.ID))
	refreshed, err = env.supplierRepo.FindByID(supplier.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0, refreshed.Balance, 0.001)
}

func TestFixBalanceIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.createSupplier(t, "Delta Foods")
	product := env.createProduct(t, "Flour", 5.00, 7.50, 0, nil)

	_, err := env.suppliers.CreatePurchaseOrder(&CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Items: []PurchaseOrderItemRequest{
			{ProductID: product.ID, Quantity: 40, UnitCost: 5.00},
		},
		PaidAmount: 50.00,
	})
	require.NoError(t, err)

	// Corrupt the cache, then fix it twice.
	require.NoError(t, env.db.Model(&model.Supplier{}).
		Where("id = ?", supplier.ID).
		Updates(map[string]interface{}{"total_purchases": 999.0, "balance": 999.0}).Error)

	for i := 0; i < 2; i++ {
		fixed, err := env.suppliers.FixBalance(supplier.ID)
		require.NoError(t, err)
		assert.InDelta(t, 200.00, fixed.TotalPurchases, 0.001)
		assert.InDelta(t, 50.00, fixed.TotalPayments, 0.001)
		assert.InDelta(t, 150.00, fixed.Balance, 0.001)
	}
}

func TestStatementRunningBalance(t *testing.T) {
	env := newTestEnv(t)
	supplier := env.createSupplier(t, "Ledger Bros")

	_, err := env.suppliers.AddTransaction(&SupplierTransactionRequest{
		SupplierID: supplier.ID,
		Type:       model.SupplierPurchase,
		Amount:     300.00,
	})
	require.NoError(t, err)
	_, err = env.suppliers.AddTransaction(&SupplierTransactionRequest{
		SupplierID: supplier.ID,
		Type:       model.SupplierPayout,
		Amount:     120.00,
	})
	require.NoError(t, err)

	statement, err := env.suppliers.Statement(supplier.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, statement.Lines, 2)
	assert.InDelta(t, 300.00, statement.Lines[0].Balance, 0.001)
	assert.InDelta(t, 180.00, statement.Lines[1].Balance, 0.001)
	assert.InDelta(t, 180.00, statement.ClosingBalance, 0.001)
}

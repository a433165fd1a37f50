package service

import (
	"testing"

	"github.com/shefospecial/victoriasystem/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWastageSnapshotsCost(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Yogurt", 2.00, 3.50, 12, nil)

	wastage, err := env.wastages.Record(&RecordWastageRequest{
		ProductID:  product.ID,
		Quantity:   5,
		Reason:     "expired",
		RecordedBy: "admin",
	})
	require.NoError(t, err)

	assert.InDelta(t, 2.00, wastage.CostPerUnit, 0.001)
	assert.InDelta(t, 10.00, wastage.TotalCost, 0.001)
	assert.Equal(t, 7, env.productQuantity(t, product.ID))

	// Later price changes must not touch the snapshot.
	product.PurchasePrice = 4.00
	_, err = env.catalog.UpdateProduct(product.ID, product)
	require.NoError(t, err)

	reloaded, err := env.wastages.Get(wastage.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.00, reloaded.CostPerUnit, 0.001)
}

func TestRecordWastageRejectsInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Cream", 6.00, 9.00, 3, nil)

	_, err := env.wastages.Record(&RecordWastageRequest{
		ProductID:  product.ID,
		Quantity:   4,
		Reason:     "broken",
		RecordedBy: "admin",
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 3, env.productQuantity(t, product.ID))
}

func TestDeleteWastageRestoresStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Jam", 3.00, 5.00, 10, nil)

	wastage, err := env.wastages.Record(&RecordWastageRequest{
		ProductID:  product.ID,
		Quantity:   4,
		Reason:     "poor storage",
		RecordedBy: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, env.productQuantity(t, product.ID))

	require.NoError(t, env.wastages.Delete(wastage.ID))
	assert.Equal(t, 10, env.productQuantity(t, product.ID))

	_, _, err = env.wastages.List(repository.WastageFilter{})
	require.NoError(t, err)
}

func TestWastageStatistics(t *testing.T) {
	env := newTestEnv(t)
	yogurt := env.createProduct(t, "Yogurt", 2.00, 3.50, 50, nil)
	cheese := env.createProduct(t, "Cheese", 10.00, 14.00, 50, nil)

	_, err := env.wastages.Record(&RecordWastageRequest{
		ProductID: yogurt.ID, Quantity: 5, Reason: "expired", RecordedBy: "admin",
	})
	require.NoError(t, err)
	_, err = env.wastages.Record(&RecordWastageRequest{
		ProductID: cheese.ID, Quantity: 2, Reason: "expired", RecordedBy: "admin",
	})
	require.NoError(t, err)
	_, err = env.wastages.Record(&RecordWastageRequest{
		ProductID: cheese.ID, Quantity: 1, Reason: "broken", RecordedBy: "admin",
	})
	require.NoError(t, err)

	stats, err := env.wastages.Statistics(30)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Count)
	assert.Equal(t, int64(8), stats.TotalQuantity)
	assert.InDelta(t, 40.00, stats.TotalCost, 0.001) // 5*2 + 2*10 + 1*10
	assert.Len(t, stats.ByReason, 2)
	require.NotEmpty(t, stats.TopProducts)
	assert.Equal(t, "Cheese", stats.TopProducts[0].Name)
}

func TestCreateDuplicateWastageReason(t *testing.T) {
	env := newTestEnv(t)

	reasons, err := env.wastages.ListReasons()
	require.NoError(t, err)
	require.NotEmpty(t, reasons)

	err = env.wastages.CreateReason(&reasons[0])
	assert.ErrorIs(t, err, ErrWastageReasonTaken)
}

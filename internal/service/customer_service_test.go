package service

import (
	"testing"

	"github.com/shefospecial/victoriasystem/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateCustomerRejectsDuplicatePhone(t *testing.T) {
	env := newTestEnv(t)

	first := &model.Customer{Name: "Sara", Phone: strPtr("0100000001")}
	require.NoError(t, env.customers.Create(first))

	second := &model.Customer{Name: "Other Sara", Phone: strPtr("0100000001")}
	err := env.customers.Create(second)
	assert.ErrorIs(t, err, ErrPhoneTaken)
}

func TestUpdateCustomerKeepsOwnPhone(t *testing.T) {
	env := newTestEnv(t)

	customer := &model.Customer{Name: "Nour", Phone: strPtr("0100000002")}
	require.NoError(t, env.customers.Create(customer))

	customer.Name = "Nour Updated"
	updated, err := env.customers.Update(customer.ID, customer)
	require.NoError(t, err)
	assert.Equal(t, "Nour Updated", updated.Name)
}

func TestRedeemPoints(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "TV", 300.00, 500.00, 5, nil)
	customer := env.createCustomer(t, "Adel")

	_, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		CustomerID: &customer.ID,
		Items:      []SaleItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// 500 / 10 = 50 points earned.
	redeemed, err := env.customers.RedeemPoints(customer.ID, 30, "Discount on next purchase")
	require.NoError(t, err)
	assert.Equal(t, 20, redeemed.LoyaltyPoints)

	history, err := env.customers.LoyaltyHistory(customer.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestRedeemPointsInsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Laila")

	_, err := env.customers.RedeemPoints(customer.ID, 10, "")
	assert.ErrorIs(t, err, ErrNotEnoughPoints)

	// No state change and no ledger entry on failure.
	unchanged, err := env.customerRepo.FindByID(customer.ID)
	require.NoError(t, err)
	assert.Zero(t, unchanged.LoyaltyPoints)
	history, err := env.customers.LoyaltyHistory(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDeleteCustomerWithInvoicesBlocked(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Fan", 50.00, 80.00, 5, nil)
	customer := env.createCustomer(t, "Tamer")

	_, err := env.sales.CreateInvoice(&CreateInvoiceRequest{
		CustomerID: &customer.ID,
		Items:      []SaleItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	err = env.customers.Delete(customer.ID)
	assert.ErrorIs(t, err, ErrCustomerHasHistory)
}
